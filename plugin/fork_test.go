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

//go:build linux

package plugin

import (
	"time"

	"github.com/srediag/plugin-posix/pkg/posix"
	"golang.org/x/sys/unix"
)

func (s *ModuleTestSuite) TestForkChildSkipsRecentCalls() {
	// held across the fork, as if another goroutine were mid-record
	s.m.recent.mu.Lock()
	time.AfterFunc(200*time.Millisecond, s.m.recent.mu.Unlock)

	v, err := s.m.Call("fork")
	s.Require().NoError(err)
	pid := v.(int)
	if pid == 0 {
		posix.Exit(0)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		wpid, status, err := posix.WaitpidStatus(pid, posix.WNOHANG)
		s.Require().NoError(err)
		if wpid == pid {
			s.True(status.Exited())
			s.Zero(status.ExitStatus())
			break
		}
		if time.Now().After(deadline) {
			_ = unix.Kill(pid, unix.SIGKILL)
			_ = posix.Waitpid(pid, 0)
			s.FailNow("child blocked after fork")
		}
		time.Sleep(10 * time.Millisecond)
	}

	recent := s.m.Recent()
	s.Require().NotEmpty(recent)
	s.Equal("fork", recent[len(recent)-1].Name)
}

func (s *ModuleTestSuite) TestForkedChildDetection() {
	s.True(forkedChild("fork", 0, nil))
	s.False(forkedChild("fork", 42, nil))
	s.False(forkedChild("fork", -1, unix.EAGAIN))
	s.False(forkedChild("getpid", 0, nil))
}
