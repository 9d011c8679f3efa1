package collapse

import (
	"path/filepath"
	"strings"

	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// FileRecord is a file as it was when the snapshot was taken.
type FileRecord struct {
	File *entity.File
	// Path is the original absolute path
	Path string
	// Ancestors are the folder names between the root and the file's
	// parent, outermost first. Empty for files directly in the root.
	Ancestors []string
}

// Base returns the original file name including extension.
func (r FileRecord) Base() string { return filepath.Base(r.Path) }

// DirRecord is a folder below the root as it was when the snapshot was taken.
type DirRecord struct {
	Path string
	// Depth is the number of folders between the root and this folder,
	// itself included. Direct children of the root have depth 1.
	Depth int
}

// Snapshot is a frozen listing of a folder tree.
type Snapshot struct {
	Root  *entity.Folder
	Files []FileRecord
	Dirs  []DirRecord
}

// TakeSnapshot walks root once and records every file and folder below it.
func TakeSnapshot(root *entity.Folder) (*Snapshot, error) {
	if !root.Exists() {
		return nil, &pathkit.PathError{Op: "snapshot", Path: root.Path(), Err: pathkit.ErrNotFound}
	}

	snap := &Snapshot{Root: root}
	err := root.Walk(func(p entity.Path, relPath string) error {
		parts := strings.Split(filepath.ToSlash(relPath), "/")
		switch entry := p.(type) {
		case *entity.Folder:
			snap.Dirs = append(snap.Dirs, DirRecord{Path: entry.Path(), Depth: len(parts)})
		case *entity.File:
			snap.Files = append(snap.Files, FileRecord{
				File:      entry,
				Path:      entry.Path(),
				Ancestors: parts[:len(parts)-1],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
