// Package api defines public API contracts for plugin-posix.
package api

// ByteChannel moves bytes with exactly one syscall per call.
type ByteChannel interface {
	// Read returns at most n bytes; an empty result at end of stream.
	Read(fd, n int) ([]byte, error)
	// Write reports success even when the OS accepted only part of data.
	Write(fd int, data []byte) error
}
