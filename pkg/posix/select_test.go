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
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sys/unix"
)

type SelectTestSuite struct {
	suite.Suite
	pipes [][2]int
}

func (s *SelectTestSuite) TearDownTest() {
	for _, p := range s.pipes {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
	}
	s.pipes = nil
}

func (s *SelectTestSuite) pipe() (int, int) {
	r, w := pipe()
	s.pipes = append(s.pipes, [2]int{r, w})
	return r, w
}

func (s *SelectTestSuite) TestWritableReturnsBeforeTimeout() {
	_, w := s.pipe()
	begin := time.Now()
	ready, err := Select(nil, []int{w}, nil, Seconds(5))
	s.Require().NoError(err)
	s.Less(time.Since(begin), time.Second)
	s.Equal([]int{w}, ready.Write)
	s.Empty(ready.Read)
	s.Empty(ready.Except)
}

func (s *SelectTestSuite) TestResultKeepsInputOrder() {
	a, aw := s.pipe()
	b, _ := s.pipe()
	c, cw := s.pipe()
	s.Require().NoError(Write(aw, []byte("x")))
	s.Require().NoError(Write(cw, []byte("y")))

	ready, err := Select([]int{c, b, a, c}, nil, nil, Timeout(0))
	s.Require().NoError(err)
	s.Equal([]int{c, a, c}, ready.Read)
	s.NotNil(ready.Write)
	s.NotNil(ready.Except)
}

func (s *SelectTestSuite) TestEmptySetsSleep() {
	begin := time.Now()
	ready, err := Select(nil, nil, nil, Timeout(20*time.Millisecond))
	s.Require().NoError(err)
	s.GreaterOrEqual(time.Since(begin), 15*time.Millisecond)
	s.True(ready.Empty())
	s.Equal([][]int{{}, {}, {}}, ready.Lists())
}

func (s *SelectTestSuite) TestZeroTimeoutPolls() {
	r, _ := s.pipe()
	ready, err := Select([]int{r}, nil, nil, Timeout(0))
	s.Require().NoError(err)
	s.Empty(ready.Read)
}

func (s *SelectTestSuite) TestInterruptsAreRetried() {
	r, w := s.pipe()
	s.Require().NoError(Write(w, []byte("z")))

	k := &scripted{selectEINTR: 3}
	rec := newRecorder()
	sys := New(WithKernel(k), WithObserver(rec))

	ready, err := sys.Select([]int{r}, []int{w}, nil, Seconds(5))
	s.Require().NoError(err)
	s.Equal([]int{r}, ready.Read)
	s.Equal([]int{w}, ready.Write)
	s.Equal(4, k.selectCalls)
	s.Equal(3, rec.interrupted[opSelect])
	s.Equal(1, rec.calls[opSelect])
	s.Zero(rec.failures[opSelect])
}

func (s *SelectTestSuite) TestInterruptUsesRemainingTime() {
	k := &scripted{selectEINTR: 1}
	sys := New(WithKernel(k))

	_, err := sys.Select(nil, nil, nil, Timeout(30*time.Millisecond))
	s.Require().NoError(err)
	s.Require().Len(k.timeouts, 2)
	first := time.Duration(k.timeouts[0].Nano())
	second := time.Duration(k.timeouts[1].Nano())
	s.LessOrEqual(second, first)
}

func (s *SelectTestSuite) TestNilTimeoutPassesNil() {
	_, w := s.pipe()
	k := &scripted{}
	sys := New(WithKernel(k))
	_, err := sys.Select(nil, []int{w}, nil, nil)
	s.Require().NoError(err)
	s.Require().Len(k.timeouts, 1)
	s.Nil(k.timeouts[0])
}

func (s *SelectTestSuite) TestRejectsOutOfRangeDescriptor() {
	k := &scripted{}
	sys := New(WithKernel(k))

	_, err := sys.Select([]int{-1}, nil, nil, Timeout(0))
	s.Equal(KindInvalidArgument, KindOf(err))
	_, err = sys.Select(nil, nil, []int{1 << 20}, Timeout(0))
	s.Equal(KindInvalidArgument, KindOf(err))
	_, err = sys.Select(nil, nil, nil, Timeout(-time.Second))
	s.Equal(KindInvalidArgument, KindOf(err))
	s.Zero(k.selectCalls)
}

func (s *SelectTestSuite) TestBadDescriptor() {
	r, w := pipe()
	_ = unix.Close(r)
	_ = unix.Close(w)
	_, err := Select([]int{r}, nil, nil, Timeout(0))
	s.Require().Error(err)
	s.Equal(KindBadDescriptor, KindOf(err))
	s.Equal(unix.EBADF.Error(), err.Error())
}

func TestSelectTestSuite(t *testing.T) {
	suite.Run(t, new(SelectTestSuite))
}
