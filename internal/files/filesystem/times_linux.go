//go:build linux

package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// statTimes reads timestamps with statx(2), which reports the birth time on
// filesystems that record it. Kernels without statx fall back to the
// modification time only.
func statTimes(path string) (Times, error) {
	var stx unix.Statx_t
	mask := unix.STATX_BTIME | unix.STATX_ATIME | unix.STATX_MTIME
	if err := unix.Statx(unix.AT_FDCWD, path, 0, mask, &stx); err != nil {
		if errors.Is(err, unix.ENOSYS) {
			return modTimeOnly(path)
		}
		return Times{}, &fs.PathError{Op: "statx", Path: path, Err: err}
	}

	var t Times
	if stx.Mask&unix.STATX_BTIME != 0 {
		t.Created = statxTime(stx.Btime)
	}
	if stx.Mask&unix.STATX_MTIME != 0 {
		t.Modified = statxTime(stx.Mtime)
	}
	if stx.Mask&unix.STATX_ATIME != 0 {
		t.Accessed = statxTime(stx.Atime)
	}
	return t, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}

func modTimeOnly(path string) (Times, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Times{}, err
	}
	return Times{Modified: info.ModTime()}, nil
}
