// Package entity represents files and folders as manipulable objects.
//
// A File or Folder wraps an absolute path and the filesystem provider it
// lives on. Identity accessors (Name, Extension, timestamps) read from the
// provider on demand; mutation primitives (Create, Move, Rename, Delete)
// update the wrapped path in place. Dropping an entity never touches the
// filesystem.
//
// All errors are *pathkit.PathError or *pathkit.TimestampError values wrapping
// the pathkit sentinel errors, so callers can use errors.Is without knowing
// which provider is in use.
package entity
