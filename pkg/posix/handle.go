/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

//go:build unix

package posix

import (
	"sync/atomic"
)

// Handle exclusively owns one descriptor. After Close or Release every
// method fails with ErrClosed. A Handle must not be copied.
type Handle struct {
	sys    *System
	fd     int
	closed atomic.Bool
}

// NewHandle takes ownership of fd.
func (s *System) NewHandle(fd int) *Handle {
	return &Handle{sys: s, fd: fd}
}

// SocketHandle is Socket returning an owned descriptor.
func (s *System) SocketHandle(domain, typ, proto int) (*Handle, error) {
	fd, err := s.Socket(domain, typ, proto)
	if err != nil {
		return nil, err
	}
	return s.NewHandle(fd), nil
}

// OpenHandle is Open returning an owned descriptor.
func (s *System) OpenHandle(path string, flags int) (*Handle, error) {
	fd, err := s.Open(path, flags)
	if err != nil {
		return nil, err
	}
	return s.NewHandle(fd), nil
}

// Fd returns the descriptor, or -1 once released.
func (h *Handle) Fd() int {
	if h.closed.Load() {
		return -1
	}
	return h.fd
}

// Closed reports whether the handle was closed or released.
func (h *Handle) Closed() bool {
	return h.closed.Load()
}

// Close closes the descriptor. Only the first call reaches the OS.
func (h *Handle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return h.sys.Close(h.fd)
}

// Release gives up ownership without closing and returns the descriptor.
func (h *Handle) Release() (int, error) {
	if !h.closed.CompareAndSwap(false, true) {
		return -1, ErrClosed
	}
	return h.fd, nil
}

func (h *Handle) live() (int, error) {
	if h.closed.Load() {
		return -1, ErrClosed
	}
	return h.fd, nil
}

func (h *Handle) Fcntl(cmd, arg int) (int, error) {
	fd, err := h.live()
	if err != nil {
		return -1, err
	}
	return h.sys.Fcntl(fd, cmd, arg)
}

func (h *Handle) SetNonblock(on bool) error {
	fd, err := h.live()
	if err != nil {
		return err
	}
	return h.sys.SetNonblock(fd, on)
}

func (h *Handle) Bind(port int, addr string) error {
	fd, err := h.live()
	if err != nil {
		return err
	}
	return h.sys.Bind(fd, port, addr)
}

func (h *Handle) Listen(backlog int) error {
	fd, err := h.live()
	if err != nil {
		return err
	}
	return h.sys.Listen(fd, backlog)
}

func (h *Handle) Connect(port int, addr string) error {
	fd, err := h.live()
	if err != nil {
		return err
	}
	return h.sys.Connect(fd, port, addr)
}

// Accept returns the accepted connection as a new Handle.
func (h *Handle) Accept() (*Handle, error) {
	fd, err := h.live()
	if err != nil {
		return nil, err
	}
	nfd, err := h.sys.Accept(fd)
	if err != nil {
		return nil, err
	}
	return h.sys.NewHandle(nfd), nil
}

func (h *Handle) Read(n int) ([]byte, error) {
	fd, err := h.live()
	if err != nil {
		return nil, err
	}
	return h.sys.Read(fd, n)
}

func (h *Handle) Write(data []byte) error {
	fd, err := h.live()
	if err != nil {
		return err
	}
	return h.sys.Write(fd, data)
}

func (h *Handle) WriteFull(data []byte) error {
	fd, err := h.live()
	if err != nil {
		return err
	}
	return h.sys.WriteFull(fd, data)
}

func NewHandle(fd int) *Handle {
	return std.NewHandle(fd)
}

func SocketHandle(domain, typ, proto int) (*Handle, error) {
	return std.SocketHandle(domain, typ, proto)
}

func OpenHandle(path string, flags int) (*Handle, error) {
	return std.OpenHandle(path, flags)
}
