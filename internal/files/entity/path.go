package entity

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/vvka-141/pathkit/internal/files/filesystem"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// Kind distinguishes the two path variants.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// Path is the capability set shared by files and folders.
type Path interface {
	// Path returns the absolute location
	Path() string
	// Base returns the final path element, extension included
	Base() string
	// Name returns the base name without extension
	Name() string
	// Extension returns the suffix including the leading dot, or ""
	Extension() string
	Kind() Kind
	Exists() bool
	Create() error
	Move(destination string) error
	Rename(newName string) error
	Delete(recursive bool) error
	Timestamp(kind pathkit.TimestampKind) (time.Time, error)
}

// pathEntity implements the behavior shared by File and Folder.
type pathEntity struct {
	fs   filesystem.FileSystemProvider
	path string
}

func newPathEntity(fsys filesystem.FileSystemProvider, p string) pathEntity {
	if fsys == nil {
		panic("filesystem provider cannot be nil")
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = filepath.Clean(p)
	}
	return pathEntity{fs: fsys, path: abs}
}

func (p *pathEntity) Path() string   { return p.path }
func (p *pathEntity) String() string { return p.path }
func (p *pathEntity) Base() string   { return filepath.Base(p.path) }

// FileSystem returns the provider the entity operates on
func (p *pathEntity) FileSystem() filesystem.FileSystemProvider { return p.fs }

// Dir returns the absolute path of the containing folder
func (p *pathEntity) Dir() string { return filepath.Dir(p.path) }

// Parent returns the containing folder
func (p *pathEntity) Parent() *Folder { return NewFolder(p.fs, p.Dir()) }

// Depth returns the number of path segments, the root counting as none.
func (p *pathEntity) Depth() int {
	return len(splitPath(p.path))
}

// Times reads the created/modified/accessed timestamps in one call.
func (p *pathEntity) Times() (filesystem.Times, error) {
	times, err := p.fs.Times(p.path)
	if err != nil {
		return filesystem.Times{}, wrapFSError("stat", p.path, "", err)
	}
	return times, nil
}

func (p *pathEntity) Created() (time.Time, error) {
	return p.Timestamp(pathkit.TimestampCreated)
}

func (p *pathEntity) Modified() (time.Time, error) {
	return p.Timestamp(pathkit.TimestampModified)
}

func (p *pathEntity) Accessed() (time.Time, error) {
	return p.Timestamp(pathkit.TimestampAccessed)
}

// Timestamp returns the requested timestamp. TimestampLeast substitutes the
// earliest readable timestamp and fails only when none is readable.
func (p *pathEntity) Timestamp(kind pathkit.TimestampKind) (time.Time, error) {
	times, err := p.Times()
	if err != nil {
		return time.Time{}, err
	}
	return PickTimestamp(p.path, times, kind)
}

// PickTimestamp selects kind out of times, applying the least-timestamp
// fallback. Zero timestamps count as unavailable.
func PickTimestamp(path string, times filesystem.Times, kind pathkit.TimestampKind) (time.Time, error) {
	var t time.Time
	switch kind {
	case pathkit.TimestampCreated:
		t = times.Created
	case pathkit.TimestampModified:
		t = times.Modified
	case pathkit.TimestampAccessed:
		t = times.Accessed
	case pathkit.TimestampLeast:
		for _, candidate := range []time.Time{times.Created, times.Modified, times.Accessed} {
			if candidate.IsZero() {
				continue
			}
			if t.IsZero() || candidate.Before(t) {
				t = candidate
			}
		}
		if t.IsZero() {
			return time.Time{}, &pathkit.TimestampError{Path: path, Kind: kind, Err: pathkit.ErrNoTimestampAvailable}
		}
		return t, nil
	}

	if t.IsZero() {
		return time.Time{}, &pathkit.TimestampError{Path: path, Kind: kind, Err: pathkit.ErrTimestampUnavailable}
	}
	return t, nil
}

// Move relocates the object to destination and updates the entity in place.
// An existing destination is never replaced.
func (p *pathEntity) Move(destination string) error {
	dest, err := filepath.Abs(destination)
	if err != nil {
		dest = filepath.Clean(destination)
	}
	if dest == p.path {
		return nil
	}

	if _, err := p.fs.Stat(p.path); err != nil {
		return wrapFSError("move", p.path, dest, err)
	}
	if _, err := p.fs.Stat(dest); err == nil {
		return &pathkit.PathError{Op: "move", Path: p.path, Destination: dest, Err: pathkit.ErrDestinationCollision}
	}

	if err := p.fs.Rename(p.path, dest); err != nil {
		return wrapFSError("move", p.path, dest, err)
	}
	p.path = dest
	return nil
}

// Rename moves the object within its current folder.
func (p *pathEntity) Rename(newName string) error {
	if err := ValidateName(newName); err != nil {
		return &pathkit.PathError{Op: "rename", Path: p.path, Destination: newName, Err: err}
	}
	return p.Move(filepath.Join(p.Dir(), newName))
}

// ValidateName checks that name can be used as a single path element.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return pathkit.ErrInvalidName
	}
	return nil
}

// SplitName splits a base name into name and extension. A leading dot does
// not start an extension, so ".profile" has no extension.
func SplitName(base string) (name, ext string) {
	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx <= 0 {
		return base, ""
	}
	cut := len(base) - len(trimmed) + idx
	return base[:cut], base[cut:]
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(filepath.ToSlash(p), "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
