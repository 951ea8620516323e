// Package api defines public API contracts for plugin-posix.
package api

// Processes creates and reaps child processes.
type Processes interface {
	Fork() (int, error)
	Getpid() int
	// Waitpid waits for pid (-1 for any child). The exit status is discarded.
	Waitpid(pid, options int) error
}

// Syscalls is the whole facade.
type Syscalls interface {
	Descriptors
	Multiplexer
	ByteChannel
	Processes
}
