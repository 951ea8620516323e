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
	"sync"
	"time"

	"github.com/srediag/plugin-posix/internal/kernel"
	"golang.org/x/sys/unix"
)

// scripted is the host kernel with injectable failures.
type scripted struct {
	kernel.Host

	mu          sync.Mutex
	selectEINTR int
	acceptEINTR int
	selectCalls int
	acceptCalls int
	timeouts    []*unix.Timeval
	sockoptErr  error
	closed      []int
}

func (k *scripted) Select(nfd int, r, w, e *unix.FdSet, tv *unix.Timeval) (int, error) {
	k.mu.Lock()
	k.selectCalls++
	if tv != nil {
		t := *tv
		k.timeouts = append(k.timeouts, &t)
	} else {
		k.timeouts = append(k.timeouts, nil)
	}
	if k.selectEINTR > 0 {
		k.selectEINTR--
		k.mu.Unlock()
		// a real interrupted select leaves the sets undefined
		if r != nil {
			r.Zero()
		}
		if w != nil {
			w.Zero()
		}
		return -1, unix.EINTR
	}
	k.mu.Unlock()
	return k.Host.Select(nfd, r, w, e, tv)
}

func (k *scripted) Accept(fd int) (int, unix.Sockaddr, error) {
	k.mu.Lock()
	k.acceptCalls++
	if k.acceptEINTR > 0 {
		k.acceptEINTR--
		k.mu.Unlock()
		return -1, nil, unix.EINTR
	}
	k.mu.Unlock()
	return k.Host.Accept(fd)
}

func (k *scripted) SetsockoptInt(fd, level, opt, value int) error {
	if k.sockoptErr != nil {
		return k.sockoptErr
	}
	return k.Host.SetsockoptInt(fd, level, opt, value)
}

func (k *scripted) Close(fd int) error {
	k.mu.Lock()
	k.closed = append(k.closed, fd)
	k.mu.Unlock()
	return k.Host.Close(fd)
}

// recorder is an Observer that counts calls.
type recorder struct {
	mu          sync.Mutex
	calls       map[string]int
	failures    map[string]int
	interrupted map[string]int
}

func newRecorder() *recorder {
	return &recorder{
		calls:       map[string]int{},
		failures:    map[string]int{},
		interrupted: map[string]int{},
	}
}

func (r *recorder) Observe(op string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[op]++
	if err != nil {
		r.failures[op]++
	}
}

func (r *recorder) Interrupted(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interrupted[op]++
}

func pipe() (int, int) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		panic(err)
	}
	return p[0], p[1]
}
