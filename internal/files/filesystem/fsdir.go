package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// fsEntry implements Entry for an fs.FS
type fsEntry struct {
	absPath string // path within the fs.FS (always uses forward slashes)
	relPath string
	info    fs.FileInfo
}

func (e *fsEntry) Path() string         { return e.absPath }
func (e *fsEntry) RelativePath() string { return e.relPath }
func (e *fsEntry) Info() FileInfo       { return e.info }

// fsDirectory implements Directory for a read-only fs.FS such as embed.FS
type fsDirectory struct {
	fsys    fs.FS
	absPath string
}

// OpenFS opens root within fsys as a walkable Directory.
// Paths are slash-separated as required by io/fs.
func OpenFS(fsys fs.FS, root string) (Directory, error) {
	root = path.Clean(strings.ReplaceAll(root, "\\", "/"))

	info, err := fs.Stat(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open directory %s: not a directory", root)
	}
	return &fsDirectory{fsys: fsys, absPath: root}, nil
}

func (d *fsDirectory) Path() string { return d.absPath }

func (d *fsDirectory) Walk(fn func(Entry, error) error) error {
	return fs.WalkDir(d.fsys, d.absPath, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}

		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get file info for %s: %w", p, err))
		}

		relPath := "."
		if p != d.absPath {
			relPath = strings.TrimPrefix(p, d.absPath+"/")
		}
		return fn(&fsEntry{absPath: p, relPath: relPath, info: info}, nil)
	})
}
