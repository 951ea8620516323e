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
	"github.com/srediag/plugin-posix/internal/kernel"
)

const (
	opSocket  = "socket"
	opOpen    = "open"
	opClose   = "close"
	opFcntl   = "fcntl"
	opConnect = "connect"
	opBind    = "bind"
	opListen  = "listen"
	opAccept  = "accept"
	opSelect  = "select"
	opRead    = "read"
	opWrite   = "write"
	opFork    = "fork"
	opWaitpid = "waitpid"
)

// Observer is told about every completed call and every retried interrupt.
// Implementations must be safe for concurrent use.
type Observer interface {
	Observe(op string, elapsed time.Duration, err error)
	Interrupted(op string)
}

// Observers fans out to several observers.
type Observers []Observer

func (o Observers) Observe(op string, elapsed time.Duration, err error) {
	for _, x := range o {
		x.Observe(op, elapsed, err)
	}
}

func (o Observers) Interrupted(op string) {
	for _, x := range o {
		x.Interrupted(op)
	}
}

// System dispatches facade operations to a kernel. It holds no descriptor
// state, so one System may be shared by any number of goroutines.
type System struct {
	k   kernel.Kernel
	obs Observers
}

var _ api.Syscalls = (*System)(nil)

// Option configures a System.
type Option func(*System)

// WithKernel replaces the host kernel.
func WithKernel(k kernel.Kernel) Option {
	return func(s *System) {
		s.k = k
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(s *System) {
		if o != nil {
			s.obs = append(s.obs, o)
		}
	}
}

// New returns a System bound to the host kernel unless WithKernel says otherwise.
func New(opts ...Option) *System {
	s := &System{k: kernel.Default}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var std = New()

// Default returns the package-level System.
func Default() *System {
	return std
}

// done translates err and reports the call.
func (s *System) done(op string, start time.Time, err error) error {
	err = errno.Translate(op, err)
	if len(s.obs) > 0 {
		s.obs.Observe(op, time.Since(start), err)
	}
	return err
}

func (s *System) interrupted(op string) {
	if len(s.obs) > 0 {
		s.obs.Interrupted(op)
	}
}

// Seconds returns a select timeout of n whole seconds.
func Seconds(n int) *time.Duration {
	d := time.Duration(n) * time.Second
	return &d
}

// Timeout returns a select timeout of d.
func Timeout(d time.Duration) *time.Duration {
	return &d
}
