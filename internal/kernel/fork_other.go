//go:build unix && !linux

package kernel

import "golang.org/x/sys/unix"

func rawFork() (int, error) {
	return -1, unix.ENOSYS
}
