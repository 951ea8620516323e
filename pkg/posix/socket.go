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

// Socket creates a socket and enables SO_REUSEADDR on it. If the option
// cannot be set the new descriptor is closed before the error is returned.
func (s *System) Socket(domain, typ, proto int) (int, error) {
	start := time.Now()
	fd, err := s.k.Socket(domain, typ, proto)
	if err != nil {
		return -1, s.done(opSocket, start, err)
	}
	if err = s.k.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = s.k.Close(fd)
		return -1, s.done(opSocket, start, err)
	}
	return fd, s.done(opSocket, start, nil)
}

// Close releases fd.
func (s *System) Close(fd int) error {
	start := time.Now()
	return s.done(opClose, start, s.k.Close(fd))
}

func Socket(domain, typ, proto int) (int, error) {
	return std.Socket(domain, typ, proto)
}

func Close(fd int) error {
	return std.Close(fd)
}
