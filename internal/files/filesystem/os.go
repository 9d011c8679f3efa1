package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// osEntry implements Entry for the OS filesystem
type osEntry struct {
	absPath string
	relPath string
	info    fs.FileInfo
}

func (e *osEntry) Path() string         { return e.absPath }
func (e *osEntry) RelativePath() string { return e.relPath }
func (e *osEntry) Info() FileInfo       { return e.info }

// osDirectory implements Directory interface for OS filesystem
type osDirectory struct {
	absPath string
}

func (d *osDirectory) Path() string { return d.absPath }

func (d *osDirectory) Walk(fn func(Entry, error) error) error {
	return filepath.Walk(d.absPath, func(path string, info os.FileInfo, walkErr error) error {
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", path, r)
				}
			}()

			if walkErr != nil {
				callbackErr = fn(nil, walkErr)
				return
			}

			relPath, relErr := filepath.Rel(d.absPath, path)
			if relErr != nil {
				callbackErr = fn(nil, fmt.Errorf("failed to get relative path: %w", relErr))
				return
			}

			callbackErr = fn(&osEntry{
				absPath: path,
				relPath: relPath,
				info:    info,
			}, nil)
		}()

		return callbackErr
	})
}

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(path string) (Directory, error) {
	// Verify path exists and is a directory
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	return &osDirectory{absPath: absPath}, nil
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

func (p *OSFileSystem) ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	result := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", entry.Name(), err)
		}
		result = append(result, info)
	}

	return result, nil
}

func (p *OSFileSystem) Times(path string) (Times, error) {
	return statTimes(path)
}

func (p *OSFileSystem) CreateFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (p *OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// Rename refuses to replace an existing destination. os.Rename silently
// overwrites files on POSIX systems.
func (p *OSFileSystem) Rename(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(oldPath, newPath)
}

func (p *OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}

func (p *OSFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
