//go:build !windows

package host

import (
	"golang.org/x/sys/unix"
)

func isElevated() bool {
	return unix.Geteuid() == 0
}

func canWrite(dir string) bool {
	return unix.Access(dir, unix.W_OK) == nil
}

// freeSpace uses Bavail (available to non-root users) rather than Bfree.
func freeSpace(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
