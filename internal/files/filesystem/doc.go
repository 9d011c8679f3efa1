// Package filesystem provides the filesystem collaborator used by pathkit's
// path entities.
//
// This package defines the operations the rest of pathkit needs from a
// filesystem (list, stat, read timestamps, create, move, delete), enabling
// testability through an in-memory implementation while maintaining
// compatibility with the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: The collaborator itself
//   - Directory: Represents a directory that can be traversed
//   - Entry: A file or directory found while walking
//   - Times: Created/modified/accessed timestamps
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//   - OpenFS: Read-only Directory over an fs.FS, used to walk embedded layouts
//
// Neither implementation is safe for concurrent mutation of the same tree.
package filesystem
