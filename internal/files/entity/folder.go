package entity

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/pathkit/internal/files/filesystem"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// Folder is a path entity with children.
type Folder struct {
	pathEntity
}

// NewFolder wraps p as a folder living on fsys. The folder need not exist yet.
// Panics if fsys is nil.
func NewFolder(fsys filesystem.FileSystemProvider, p string) *Folder {
	return &Folder{pathEntity: newPathEntity(fsys, p)}
}

func (d *Folder) Kind() Kind { return KindFolder }

// Name returns the folder name. Folders have no extension, so a dot in the
// name is kept.
func (d *Folder) Name() string { return d.Base() }

func (d *Folder) Extension() string { return "" }

// Exists reports whether a directory exists at the path.
func (d *Folder) Exists() bool {
	info, err := d.fs.Stat(d.path)
	return err == nil && info.IsDir()
}

// Create creates the folder and any missing parents. A file at the path is
// a path conflict.
func (d *Folder) Create() error {
	if info, err := d.fs.Stat(d.path); err == nil {
		if !info.IsDir() {
			return &pathkit.PathError{Op: "create", Path: d.path, Err: pathkit.ErrPathConflict}
		}
		return nil
	}
	if err := d.fs.MkdirAll(d.path); err != nil {
		return wrapFSError("create", d.path, "", err)
	}
	return nil
}

// Delete removes the folder. Without recursive a folder with children fails
// with ErrNotEmpty.
func (d *Folder) Delete(recursive bool) error {
	info, err := d.fs.Stat(d.path)
	if err != nil {
		return wrapFSError("delete", d.path, "", err)
	}
	if !info.IsDir() {
		return &pathkit.PathError{Op: "delete", Path: d.path, Err: pathkit.ErrPathConflict}
	}

	if recursive {
		if err := d.fs.RemoveAll(d.path); err != nil {
			return wrapFSError("delete", d.path, "", err)
		}
		return nil
	}

	empty, err := d.IsEmpty()
	if err != nil {
		return err
	}
	if !empty {
		return &pathkit.PathError{Op: "delete", Path: d.path, Err: pathkit.ErrNotEmpty}
	}
	if err := d.fs.Remove(d.path); err != nil {
		return wrapFSError("delete", d.path, "", err)
	}
	return nil
}

// IsEmpty reports whether the folder has no children.
func (d *Folder) IsEmpty() (bool, error) {
	infos, err := d.fs.ReadDir(d.path)
	if err != nil {
		return false, wrapFSError("list", d.path, "", err)
	}
	return len(infos) == 0, nil
}

// Children lists the direct children in the provider's listing order. The
// result is a snapshot; later changes to the folder are not reflected.
func (d *Folder) Children() ([]Path, error) {
	infos, err := d.fs.ReadDir(d.path)
	if err != nil {
		return nil, wrapFSError("list", d.path, "", err)
	}

	children := make([]Path, 0, len(infos))
	for _, info := range infos {
		childPath := filepath.Join(d.path, info.Name())
		if info.IsDir() {
			children = append(children, NewFolder(d.fs, childPath))
		} else {
			children = append(children, NewFile(d.fs, childPath))
		}
	}
	return children, nil
}

// Walk visits every descendant once in lexical order, passing its path
// relative to the folder. The folder itself is not visited.
func (d *Folder) Walk(fn func(p Path, relPath string) error) error {
	dir, err := d.fs.Open(d.path)
	if err != nil {
		return wrapFSError("walk", d.path, "", err)
	}

	return dir.Walk(func(entry filesystem.Entry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking %s: %w", d.path, err)
		}
		if entry.RelativePath() == "." {
			return nil
		}
		if entry.Info().IsDir() {
			return fn(NewFolder(d.fs, entry.Path()), entry.RelativePath())
		}
		return fn(NewFile(d.fs, entry.Path()), entry.RelativePath())
	})
}

var _ Path = (*Folder)(nil)
