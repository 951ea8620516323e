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
	"net"

	"github.com/srediag/plugin-posix/internal/errno"
	"golang.org/x/sys/unix"
)

// sockaddr builds an AF_INET address from a dotted-decimal host. Names are
// not resolved.
func sockaddr(op string, port int, addr string) (*unix.SockaddrInet4, error) {
	if port < 0 || port > 0xffff {
		return nil, errno.Invalid(op, "port %d out of range", port)
	}
	ip := net.ParseIP(addr).To4()
	if ip == nil {
		return nil, errno.Invalid(op, "invalid IPv4 address %q", addr)
	}
	sa := &unix.SockaddrInet4{Port: port}
	copy(sa.Addr[:], ip)
	return sa, nil
}

// peer decodes an accepted peer address. Non-AF_INET peers yield ("", 0).
func peer(sa unix.Sockaddr) (string, int) {
	in4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return "", 0
	}
	return net.IP(in4.Addr[:]).String(), in4.Port
}
