//go:build unix

// Package kernel is the raw syscall surface used by the facade.
//
// Everything above this package talks to a Kernel, so tests can substitute
// one that interrupts, fails or reports readiness on demand.
package kernel

import (
	"golang.org/x/sys/unix"
)

// Kernel issues single system calls. Implementations never retry.
type Kernel interface {
	Socket(domain, typ, proto int) (int, error)
	SetsockoptInt(fd, level, opt, value int) error
	GetsockoptInt(fd, level, opt int) (int, error)
	Open(path string, flags int, mode uint32) (int, error)
	Close(fd int) error
	Fcntl(fd, cmd, arg int) (int, error)

	Connect(fd int, sa unix.Sockaddr) error
	Bind(fd int, sa unix.Sockaddr) error
	Listen(fd, backlog int) error
	Accept(fd int) (int, unix.Sockaddr, error)

	Select(nfd int, r, w, e *unix.FdSet, timeout *unix.Timeval) (int, error)

	Read(fd int, p []byte) (int, error)
	Write(fd int, p []byte) (int, error)

	Fork() (int, error)
	Getpid() int
	Wait4(pid int, status *unix.WaitStatus, options int) (int, error)
}

// Host is the Kernel of the running operating system.
type Host struct{}

// Default is the shared Host instance.
var Default Kernel = Host{}

func (Host) Socket(domain, typ, proto int) (int, error) {
	return unix.Socket(domain, typ, proto)
}

func (Host) SetsockoptInt(fd, level, opt, value int) error {
	return unix.SetsockoptInt(fd, level, opt, value)
}

func (Host) GetsockoptInt(fd, level, opt int) (int, error) {
	return unix.GetsockoptInt(fd, level, opt)
}

func (Host) Open(path string, flags int, mode uint32) (int, error) {
	return unix.Open(path, flags, mode)
}

func (Host) Close(fd int) error {
	return unix.Close(fd)
}

func (Host) Fcntl(fd, cmd, arg int) (int, error) {
	return unix.FcntlInt(uintptr(fd), cmd, arg)
}

func (Host) Connect(fd int, sa unix.Sockaddr) error {
	return unix.Connect(fd, sa)
}

func (Host) Bind(fd int, sa unix.Sockaddr) error {
	return unix.Bind(fd, sa)
}

func (Host) Listen(fd, backlog int) error {
	return unix.Listen(fd, backlog)
}

func (Host) Accept(fd int) (int, unix.Sockaddr, error) {
	return unix.Accept(fd)
}

func (Host) Select(nfd int, r, w, e *unix.FdSet, timeout *unix.Timeval) (int, error) {
	return unix.Select(nfd, r, w, e, timeout)
}

func (Host) Read(fd int, p []byte) (int, error) {
	return unix.Read(fd, p)
}

func (Host) Write(fd int, p []byte) (int, error) {
	return unix.Write(fd, p)
}

func (Host) Fork() (int, error) {
	return rawFork()
}

func (Host) Getpid() int {
	return unix.Getpid()
}

func (Host) Wait4(pid int, status *unix.WaitStatus, options int) (int, error) {
	return unix.Wait4(pid, status, options, nil)
}
