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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestReadShortAndEOF(t *testing.T) {
	r, w := pipe()
	defer unix.Close(r)

	require.NoError(t, Write(w, []byte("pi")))
	got, err := Read(r, 16)
	require.NoError(t, err)
	assert.Equal(t, []byte("pi"), got)

	require.NoError(t, unix.Close(w))
	got, err = Read(r, 16)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadRejectsNegativeCount(t *testing.T) {
	_, err := Read(0, -1)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestReadWouldBlock(t *testing.T) {
	r, w := pipe()
	defer unix.Close(r)
	defer unix.Close(w)
	require.NoError(t, SetNonblock(r, true))
	_, err := Read(r, 1)
	assert.Equal(t, KindWouldBlock, KindOf(err))
}

func TestWriteNReportsCount(t *testing.T) {
	r, w := pipe()
	defer unix.Close(r)
	defer unix.Close(w)
	n, err := WriteN(w, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestWriteFullAcrossWouldBlock(t *testing.T) {
	r, w := pipe()
	defer unix.Close(r)
	require.NoError(t, SetNonblock(w, true))

	payload := bytes.Repeat([]byte("0123456789abcdef"), 1<<14)
	done := make(chan error, 1)
	go func() {
		done <- WriteFull(w, payload)
		_ = unix.Close(w)
	}()

	got, err := ReadAll(r, 0)
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.Equal(t, len(payload), len(got))
	assert.True(t, bytes.Equal(payload, got))
}

func TestReadFull(t *testing.T) {
	r, w := pipe()
	defer unix.Close(r)
	require.NoError(t, SetNonblock(r, true))

	go func() {
		_ = Write(w, []byte("pi"))
		_ = Write(w, []byte("ng"))
	}()
	got, err := ReadFull(r, 4)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(got))

	require.NoError(t, Write(w, []byte("x")))
	require.NoError(t, unix.Close(w))
	got, err = ReadFull(r, 4)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "x", string(got))

	_, err = ReadFull(r, 1)
	assert.ErrorIs(t, err, io.EOF)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")

	_, err := Open(path, O_RDONLY)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, unix.ENOENT.Error(), err.Error())

	fd, err := Open(path, O_WRONLY|O_CREAT|O_TRUNC)
	require.NoError(t, err)
	require.NoError(t, Write(fd, []byte("payload")))
	require.NoError(t, Close(fd))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&^os.FileMode(CreateMode))

	fd, err = Open(path, O_RDONLY)
	require.NoError(t, err)
	defer Close(fd)
	got, err := ReadAll(fd, 3)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestCloseTwice(t *testing.T) {
	r, w := pipe()
	defer unix.Close(w)
	require.NoError(t, Close(r))
	err := Close(r)
	assert.Equal(t, KindBadDescriptor, KindOf(err))
}
