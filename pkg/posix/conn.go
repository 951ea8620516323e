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
	"time"

	"golang.org/x/sys/unix"
)

// Connect starts a stream connection to addr:port. On a non-blocking
// descriptor EINPROGRESS is success; use Select for writability and then
// ConnectDone to learn the outcome.
func (s *System) Connect(fd, port int, addr string) error {
	start := time.Now()
	sa, err := sockaddr(opConnect, port, addr)
	if err != nil {
		return s.done(opConnect, start, err)
	}
	err = s.k.Connect(fd, sa)
	if err == unix.EINPROGRESS {
		err = nil
	}
	return s.done(opConnect, start, err)
}

// ConnectDone reports the result of a pending non-blocking connect by
// reading SO_ERROR.
func (s *System) ConnectDone(fd int) error {
	start := time.Now()
	v, err := s.k.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err == nil && v != 0 {
		err = unix.Errno(v)
	}
	return s.done(opConnect, start, err)
}

// Bind assigns addr:port to fd.
func (s *System) Bind(fd, port int, addr string) error {
	start := time.Now()
	sa, err := sockaddr(opBind, port, addr)
	if err != nil {
		return s.done(opBind, start, err)
	}
	return s.done(opBind, start, s.k.Bind(fd, sa))
}

// Listen marks fd passive.
func (s *System) Listen(fd, backlog int) error {
	start := time.Now()
	return s.done(opListen, start, s.k.Listen(fd, backlog))
}

// Accept waits for a pending connection on fd. Interrupted attempts are
// retried and never reported.
func (s *System) Accept(fd int) (int, error) {
	nfd, _, err := s.accept(fd)
	return nfd, err
}

// AcceptAddr is Accept that also returns the IPv4 peer address.
func (s *System) AcceptAddr(fd int) (int, string, int, error) {
	nfd, sa, err := s.accept(fd)
	if err != nil {
		return -1, "", 0, err
	}
	host, port := peer(sa)
	return nfd, host, port, nil
}

func (s *System) accept(fd int) (int, unix.Sockaddr, error) {
	start := time.Now()
	for {
		nfd, sa, err := s.k.Accept(fd)
		if err == unix.EINTR {
			s.interrupted(opAccept)
			continue
		}
		if err != nil {
			return -1, nil, s.done(opAccept, start, err)
		}
		return nfd, sa, s.done(opAccept, start, nil)
	}
}

func Connect(fd, port int, addr string) error {
	return std.Connect(fd, port, addr)
}

func ConnectDone(fd int) error {
	return std.ConnectDone(fd)
}

func Bind(fd, port int, addr string) error {
	return std.Bind(fd, port, addr)
}

func Listen(fd, backlog int) error {
	return std.Listen(fd, backlog)
}

func Accept(fd int) (int, error) {
	return std.Accept(fd)
}

func AcceptAddr(fd int) (int, string, int, error) {
	return std.AcceptAddr(fd)
}
