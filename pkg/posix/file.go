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

// CreateMode is the permission used when Open is asked to create a file.
const CreateMode = 0o644

// Open opens path with the given flag bitmask.
func (s *System) Open(path string, flags int) (int, error) {
	start := time.Now()
	var mode uint32
	if flags&unix.O_CREAT != 0 {
		mode = CreateMode
	}
	fd, err := s.k.Open(path, flags, mode)
	if err != nil {
		return -1, s.done(opOpen, start, err)
	}
	return fd, s.done(opOpen, start, nil)
}

func Open(path string, flags int) (int, error) {
	return std.Open(path, flags)
}
