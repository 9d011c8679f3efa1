package entity

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// wrapFSError classifies a provider error into the pathkit taxonomy while
// keeping the original error in the chain.
func wrapFSError(op, path, dest string, err error) error {
	var sentinel error
	switch {
	case errors.Is(err, fs.ErrPermission):
		sentinel = pathkit.ErrPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		sentinel = pathkit.ErrNotFound
	case errors.Is(err, syscall.ENOTEMPTY):
		sentinel = pathkit.ErrNotEmpty
	case errors.Is(err, syscall.ENOTDIR):
		sentinel = pathkit.ErrPathConflict
	case errors.Is(err, fs.ErrExist):
		if op == "delete" {
			// some platforms report a non-empty directory as EEXIST
			sentinel = pathkit.ErrNotEmpty
		} else {
			sentinel = pathkit.ErrDestinationCollision
		}
	}

	if sentinel != nil {
		err = fmt.Errorf("%w: %w", sentinel, err)
	}
	return &pathkit.PathError{Op: op, Path: path, Destination: dest, Err: err}
}
