//go:build linux

package kernel

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// rawFork duplicates the calling process with clone(SIGCHLD), which is what
// fork(2) is on Linux. The child holds only the calling thread.
func rawFork() (int, error) {
	syscall.ForkLock.Lock()
	pid, _, e := unix.RawSyscall(unix.SYS_CLONE, uintptr(unix.SIGCHLD), 0, 0)
	syscall.ForkLock.Unlock()
	if e != 0 {
		return -1, e
	}
	return int(pid), nil
}
