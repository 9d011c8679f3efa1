package entity

import (
	"errors"
	"io/fs"

	"github.com/vvka-141/pathkit/internal/files/filesystem"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// File is a leaf path entity.
type File struct {
	pathEntity
}

// NewFile wraps p as a file living on fsys. The file need not exist yet.
// Panics if fsys is nil.
func NewFile(fsys filesystem.FileSystemProvider, p string) *File {
	return &File{pathEntity: newPathEntity(fsys, p)}
}

func (f *File) Kind() Kind { return KindFile }

func (f *File) Name() string {
	name, _ := SplitName(f.Base())
	return name
}

func (f *File) Extension() string {
	_, ext := SplitName(f.Base())
	return ext
}

// Exists reports whether a non-directory object exists at the path.
func (f *File) Exists() bool {
	info, err := f.fs.Stat(f.path)
	return err == nil && !info.IsDir()
}

// Create creates an empty file, creating missing parent folders. An existing
// file is left untouched; an existing folder is a path conflict.
func (f *File) Create() error {
	if info, err := f.fs.Stat(f.path); err == nil {
		if info.IsDir() {
			return &pathkit.PathError{Op: "create", Path: f.path, Err: pathkit.ErrPathConflict}
		}
		return nil
	}

	if err := f.fs.MkdirAll(f.Dir()); err != nil {
		return wrapFSError("create", f.path, "", err)
	}
	if err := f.fs.CreateFile(f.path); err != nil && !errors.Is(err, fs.ErrExist) {
		return wrapFSError("create", f.path, "", err)
	}
	return nil
}

// Delete removes the file. recursive has no effect on files.
func (f *File) Delete(recursive bool) error {
	info, err := f.fs.Stat(f.path)
	if err != nil {
		return wrapFSError("delete", f.path, "", err)
	}
	if info.IsDir() {
		return &pathkit.PathError{Op: "delete", Path: f.path, Err: pathkit.ErrPathConflict}
	}
	if err := f.fs.Remove(f.path); err != nil {
		return wrapFSError("delete", f.path, "", err)
	}
	return nil
}

var _ Path = (*File)(nil)
