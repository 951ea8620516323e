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

	"github.com/srediag/plugin-posix/api"
	"github.com/srediag/plugin-posix/internal/errno"
	"github.com/srediag/plugin-posix/internal/fdset"
	"golang.org/x/sys/unix"
)

// Select waits until a descriptor in r, w or e is ready, or timeout
// elapses. A nil timeout blocks indefinitely and zero polls.
//
// Each result list keeps the members of its input that the kernel marked,
// in input order. EINTR is retried with the time that remains.
func (s *System) Select(r, w, e []int, timeout *time.Duration) (api.Ready, error) {
	start := time.Now()
	if err := checkSets(r, w, e); err != nil {
		return api.Ready{}, s.done(opSelect, start, err)
	}
	var deadline time.Time
	if timeout != nil {
		if *timeout < 0 {
			return api.Ready{}, s.done(opSelect, start, errno.Invalid(opSelect, "negative timeout %v", *timeout))
		}
		deadline = start.Add(*timeout)
	}

	nfd := fdset.Width(r, w, e)
	var rs, ws, es fdset.Set
	for {
		rs.Fill(r)
		ws.Fill(w)
		es.Fill(e)

		var tv *unix.Timeval
		if timeout != nil {
			left := time.Until(deadline)
			if left < 0 {
				left = 0
			}
			t := unix.NsecToTimeval(left.Nanoseconds())
			tv = &t
		}

		_, err := s.k.Select(nfd, rs.Raw(), ws.Raw(), es.Raw(), tv)
		if err == unix.EINTR {
			s.interrupted(opSelect)
			continue
		}
		if err != nil {
			return api.Ready{}, s.done(opSelect, start, err)
		}
		break
	}

	ready := api.Ready{
		Read:   rs.Filter(r),
		Write:  ws.Filter(w),
		Except: es.Filter(e),
	}
	return ready, s.done(opSelect, start, nil)
}

func checkSets(lists ...[]int) error {
	for _, l := range lists {
		for _, fd := range l {
			if !fdset.Valid(fd) {
				return errno.Invalid(opSelect, "descriptor %d outside [0, %d)", fd, fdset.Capacity)
			}
		}
	}
	return nil
}

func Select(r, w, e []int, timeout *time.Duration) (api.Ready, error) {
	return std.Select(r, w, e, timeout)
}
