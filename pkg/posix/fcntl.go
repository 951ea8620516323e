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

// Fcntl passes cmd and arg through to fcntl(2).
func (s *System) Fcntl(fd, cmd, arg int) (int, error) {
	start := time.Now()
	v, err := s.k.Fcntl(fd, cmd, arg)
	if err != nil {
		return -1, s.done(opFcntl, start, err)
	}
	return v, s.done(opFcntl, start, nil)
}

// SetNonblock switches O_NONBLOCK on or off, keeping the other status flags.
func (s *System) SetNonblock(fd int, on bool) error {
	flags, err := s.Fcntl(fd, unix.F_GETFL, 0)
	if err != nil {
		return err
	}
	next := flags &^ unix.O_NONBLOCK
	if on {
		next = flags | unix.O_NONBLOCK
	}
	if next == flags {
		return nil
	}
	_, err = s.Fcntl(fd, unix.F_SETFL, next)
	return err
}

func Fcntl(fd, cmd, arg int) (int, error) {
	return std.Fcntl(fd, cmd, arg)
}

func SetNonblock(fd int, on bool) error {
	return std.SetNonblock(fd, on)
}
