// Package files groups the filesystem-facing sub-packages of pathkit.
//
//   - filesystem: Filesystem collaborator interfaces and implementations (OS and in-memory)
//   - entity: File and Folder objects bound to a filesystem
//   - collapse: Collapse engine and in-place renamer
//   - tree: Folder tree rendering
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/pathkit/internal/files/collapse"
//	    "github.com/vvka-141/pathkit/internal/files/entity"
//	    "github.com/vvka-141/pathkit/internal/files/filesystem"
//	)
//
//	root := entity.NewFolder(filesystem.NewOSFileSystem(), "./photos")
//	engine := collapse.NewEngine(collapse.Options{Template: "%B %C[-]%E"}, logger)
//	result, err := engine.Collapse(root)
package files
