// Package api defines public API contracts for plugin-posix.
package api

// Descriptors creates, configures and connects descriptors.
type Descriptors interface {
	Socket(domain, typ, proto int) (int, error)
	Open(path string, flags int) (int, error)
	Close(fd int) error
	Fcntl(fd, cmd, arg int) (int, error)
	Connect(fd, port int, addr string) error
	Bind(fd, port int, addr string) error
	Listen(fd, backlog int) error
	Accept(fd int) (int, error)
}
