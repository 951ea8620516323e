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
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// AnyChild is the pid that makes Waitpid wait for any child.
const AnyChild = -1

// forkMu keeps concurrent forks from restoring each other's GC setting.
var forkMu sync.Mutex

// Fork creates a child process. The child sees 0, the parent the child's
// pid.
//
// The child holds only the forking thread, so a stop-the-world collection
// there would never complete. Fork disables the garbage collector around
// the clone and restores it in the parent only: the child keeps running
// with collection off. It may allocate, but it should only issue facade
// calls and then Exit. Locks held by other goroutines at the time of the
// fork stay held in the child.
func (s *System) Fork() (int, error) {
	start := time.Now()
	forkMu.Lock()
	gc := debug.SetGCPercent(-1)
	pid, err := s.k.Fork()
	if pid == 0 && err == nil {
		forkMu.Unlock()
		// no observers in the child
		return 0, nil
	}
	debug.SetGCPercent(gc)
	forkMu.Unlock()
	if err != nil {
		return -1, s.done(opFork, start, err)
	}
	return pid, s.done(opFork, start, nil)
}

// Getpid returns the caller's process id.
func (s *System) Getpid() int {
	return s.k.Getpid()
}

// Waitpid waits for pid, or any child when pid is AnyChild, to change state.
// The exit status is collected and discarded; see WaitpidStatus.
func (s *System) Waitpid(pid, options int) error {
	_, _, err := s.WaitpidStatus(pid, options)
	return err
}

// WaitpidStatus is Waitpid returning the reaped pid and its status. With
// WNOHANG and no child ready the pid is 0.
func (s *System) WaitpidStatus(pid, options int) (int, unix.WaitStatus, error) {
	start := time.Now()
	var ws unix.WaitStatus
	wpid, err := s.k.Wait4(pid, &ws, options)
	if err != nil {
		return -1, 0, s.done(opWaitpid, start, err)
	}
	return wpid, ws, s.done(opWaitpid, start, nil)
}

// Exit ends the calling process immediately without running deferred calls.
func Exit(code int) {
	unix.Exit(code)
}

func Fork() (int, error) {
	return std.Fork()
}

func Getpid() int {
	return std.Getpid()
}

func Waitpid(pid, options int) error {
	return std.Waitpid(pid, options)
}

func WaitpidStatus(pid, options int) (int, unix.WaitStatus, error) {
	return std.WaitpidStatus(pid, options)
}
