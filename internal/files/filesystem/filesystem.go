package filesystem

import (
	"io/fs"
	"time"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// Times holds the three timestamps of a path.
// A zero value means the filesystem could not supply that timestamp.
type Times struct {
	Created  time.Time
	Modified time.Time
	Accessed time.Time
}

// Entry represents a file or directory discovered while walking a tree
type Entry interface {
	// Path returns the absolute path to the entry
	Path() string

	// RelativePath returns the path relative to the walked directory ("." for the directory itself)
	RelativePath() string

	// Info returns entry metadata
	Info() FileInfo
}

// Directory represents a directory that can be traversed to discover entries
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order, calling fn for the
	// directory itself and then for every descendant.
	// If fn returns an error, walking stops
	Walk(fn func(Entry, error) error) error
}

// FileSystemProvider is the filesystem collaborator used by path entities.
// Errors follow the os package conventions (*fs.PathError wrapping
// fs.ErrNotExist, fs.ErrExist, fs.ErrPermission) so callers can classify them
// with errors.Is regardless of the implementation.
type FileSystemProvider interface {
	// Open opens a directory at the specified path for walking
	Open(path string) (Directory, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// ReadDir returns the direct children of a directory in listing order.
	// Both bundled providers list by name; other providers may not.
	ReadDir(path string) ([]FileInfo, error)

	// Times returns the created/modified/accessed timestamps of a path
	Times(path string) (Times, error)

	// CreateFile creates an empty file. It fails with fs.ErrExist if anything
	// already exists at the path, and with fs.ErrNotExist if the parent is missing.
	CreateFile(path string) error

	// MkdirAll creates a directory together with any missing parents
	MkdirAll(path string) error

	// Rename moves oldPath to newPath
	Rename(oldPath, newPath string) error

	// Remove deletes a file or an empty directory
	Remove(path string) error

	// RemoveAll deletes a path and everything below it
	RemoveAll(path string) error
}
