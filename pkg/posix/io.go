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
	"errors"
	"io"
	"time"

	"code.hybscloud.com/iox"
	"github.com/srediag/plugin-posix/internal/errno"
	"github.com/valyala/bytebufferpool"
)

// DefaultChunk is the read size ReadAll uses when given a non-positive chunk.
const DefaultChunk = 4096

// Read issues one read of at most n bytes and returns what arrived. End of
// stream is an empty result with a nil error.
func (s *System) Read(fd, n int) ([]byte, error) {
	start := time.Now()
	if n < 0 {
		return nil, s.done(opRead, start, errno.Invalid(opRead, "negative byte count %d", n))
	}
	buf := make([]byte, n)
	got, err := s.k.Read(fd, buf)
	if err != nil {
		return nil, s.done(opRead, start, err)
	}
	return buf[:got], s.done(opRead, start, nil)
}

// Write issues one write of data. A short write is still success; use
// WriteN to see the count or WriteFull to finish the payload.
func (s *System) Write(fd int, data []byte) error {
	_, err := s.WriteN(fd, data)
	return err
}

// WriteN issues one write of data and returns how many bytes the OS took.
func (s *System) WriteN(fd int, data []byte) (int, error) {
	start := time.Now()
	n, err := s.k.Write(fd, data)
	if err != nil {
		return 0, s.done(opWrite, start, err)
	}
	return n, s.done(opWrite, start, nil)
}

// WriteFull writes all of data, backing off while the descriptor would block.
func (s *System) WriteFull(fd int, data []byte) error {
	var bo iox.Backoff
	for len(data) > 0 {
		n, err := s.WriteN(fd, data)
		if err != nil {
			if errors.Is(err, iox.ErrWouldBlock) {
				bo.Wait()
				continue
			}
			return err
		}
		bo.Reset()
		data = data[n:]
	}
	return nil
}

// ReadFull reads exactly n bytes. It returns io.EOF if the stream ended
// before any byte and io.ErrUnexpectedEOF if it ended part way. A
// non-blocking descriptor is waited on with Select.
func (s *System) ReadFull(fd, n int) ([]byte, error) {
	if n < 0 {
		return nil, errno.Invalid(opRead, "negative byte count %d", n)
	}
	out := make([]byte, 0, n)
	for len(out) < n {
		p, err := s.Read(fd, n-len(out))
		if err != nil {
			if errors.Is(err, iox.ErrWouldBlock) {
				if _, err = s.Select([]int{fd}, nil, nil, nil); err != nil {
					return out, err
				}
				continue
			}
			return out, err
		}
		if len(p) == 0 {
			if len(out) == 0 {
				return out, io.EOF
			}
			return out, io.ErrUnexpectedEOF
		}
		out = append(out, p...)
	}
	return out, nil
}

// ReadAll reads chunk-sized pieces until end of stream.
func (s *System) ReadAll(fd, chunk int) ([]byte, error) {
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	for {
		p, err := s.Read(fd, chunk)
		if err != nil {
			if errors.Is(err, iox.ErrWouldBlock) {
				if _, err = s.Select([]int{fd}, nil, nil, nil); err == nil {
					continue
				}
			}
			return append([]byte(nil), bb.B...), err
		}
		if len(p) == 0 {
			return append([]byte{}, bb.B...), nil
		}
		_, _ = bb.Write(p)
	}
}

func Read(fd, n int) ([]byte, error) {
	return std.Read(fd, n)
}

func Write(fd int, data []byte) error {
	return std.Write(fd, data)
}

func WriteN(fd int, data []byte) (int, error) {
	return std.WriteN(fd, data)
}

func WriteFull(fd int, data []byte) error {
	return std.WriteFull(fd, data)
}

func ReadFull(fd, n int) ([]byte, error) {
	return std.ReadFull(fd, n)
}

func ReadAll(fd, chunk int) ([]byte, error) {
	return std.ReadAll(fd, chunk)
}
