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

import "golang.org/x/sys/unix"

// Host values, passed through unchanged.
const (
	AF_INET  = unix.AF_INET
	AF_INET6 = unix.AF_INET6
	AF_UNIX  = unix.AF_UNIX

	SOCK_STREAM = unix.SOCK_STREAM
	SOCK_DGRAM  = unix.SOCK_DGRAM

	F_GETFL    = unix.F_GETFL
	F_SETFL    = unix.F_SETFL
	F_GETFD    = unix.F_GETFD
	F_SETFD    = unix.F_SETFD
	FD_CLOEXEC = unix.FD_CLOEXEC

	O_RDONLY   = unix.O_RDONLY
	O_WRONLY   = unix.O_WRONLY
	O_RDWR     = unix.O_RDWR
	O_NONBLOCK = unix.O_NONBLOCK
	O_CREAT    = unix.O_CREAT
	O_TRUNC    = unix.O_TRUNC
	O_APPEND   = unix.O_APPEND

	SOL_SOCKET   = unix.SOL_SOCKET
	SO_REUSEADDR = unix.SO_REUSEADDR

	WNOHANG = unix.WNOHANG
)

// Constants maps every exported constant name to its host value.
func Constants() map[string]int {
	return map[string]int{
		"AF_INET":      AF_INET,
		"AF_INET6":     AF_INET6,
		"AF_UNIX":      AF_UNIX,
		"SOCK_STREAM":  SOCK_STREAM,
		"SOCK_DGRAM":   SOCK_DGRAM,
		"F_GETFL":      F_GETFL,
		"F_SETFL":      F_SETFL,
		"F_GETFD":      F_GETFD,
		"F_SETFD":      F_SETFD,
		"FD_CLOEXEC":   FD_CLOEXEC,
		"O_RDONLY":     O_RDONLY,
		"O_WRONLY":     O_WRONLY,
		"O_RDWR":       O_RDWR,
		"O_NONBLOCK":   O_NONBLOCK,
		"O_CREAT":      O_CREAT,
		"O_TRUNC":      O_TRUNC,
		"O_APPEND":     O_APPEND,
		"SOL_SOCKET":   SOL_SOCKET,
		"SO_REUSEADDR": SO_REUSEADDR,
		"WNOHANG":      WNOHANG,
	}
}
