//go:build !linux

package filesystem

import "os"

// statTimes reports only the modification time; creation and access times
// are not portable across the remaining platforms.
func statTimes(path string) (Times, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Times{}, err
	}
	return Times{Modified: info.ModTime()}, nil
}
