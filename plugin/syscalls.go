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

package plugin

import (
	"time"

	"github.com/srediag/plugin-posix/pkg/posix"
)

func (m *Module) registerSyscalls() {
	m.Register("socket", m.socket)
	m.Register("fcntl", m.fcntl)
	m.Register("connect", m.connect)
	m.Register("bind", m.bind)
	m.Register("listen", m.listen)
	m.Register("accept", m.accept)
	m.Register("select", m.selectFds)
	m.Register("close", m.close)
	m.Register("read", m.read)
	m.Register("write", m.write)
	m.Register("fork", m.fork)
	m.Register("getpid", m.getpid)
	m.Register("waitpid", m.waitpid)
	m.Register("open", m.open)
}

func (m *Module) socket(args ...any) (any, error) {
	if len(args) != 3 {
		return nil, badArgs("socket", msgSocketArity)
	}
	n, ok := numbers(args...)
	if !ok {
		return nil, badArgs("socket", msgNumbers)
	}
	return m.sys.Socket(n[0], n[1], n[2])
}

func (m *Module) fcntl(args ...any) (any, error) {
	if len(args) != 3 {
		return nil, badArgs("fcntl", msgFcntlArity)
	}
	n, ok := numbers(args...)
	if !ok {
		return nil, badArgs("fcntl", msgNumbers)
	}
	return m.sys.Fcntl(n[0], n[1], n[2])
}

// endpoint unpacks the FD, port, address triple shared by connect and bind.
func endpoint(op string, args []any) (fd, port int, addr string, err error) {
	if len(args) != 3 {
		return 0, 0, "", badArgs(op, msgAddrArity)
	}
	n, ok := numbers(args[0], args[1])
	addr, isString := args[2].(string)
	if !ok || !isString {
		return 0, 0, "", badArgs(op, msgAddrType)
	}
	return n[0], n[1], addr, nil
}

func (m *Module) connect(args ...any) (any, error) {
	fd, port, addr, err := endpoint("connect", args)
	if err != nil {
		return nil, err
	}
	return nil, m.sys.Connect(fd, port, addr)
}

func (m *Module) bind(args ...any) (any, error) {
	fd, port, addr, err := endpoint("bind", args)
	if err != nil {
		return nil, err
	}
	return nil, m.sys.Bind(fd, port, addr)
}

func (m *Module) listen(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, badArgs("listen", msgListenArity)
	}
	n, ok := numbers(args...)
	if !ok {
		return nil, badArgs("listen", msgListenType)
	}
	return nil, m.sys.Listen(n[0], n[1])
}

func (m *Module) fd(op string, args []any) (int, error) {
	if len(args) != 1 {
		return 0, badArgs(op, msgFDArity)
	}
	fd, ok := number(args[0])
	if !ok {
		return 0, badArgs(op, msgFDType)
	}
	return fd, nil
}

func (m *Module) accept(args ...any) (any, error) {
	fd, err := m.fd("accept", args)
	if err != nil {
		return nil, err
	}
	return m.sys.Accept(fd)
}

func (m *Module) close(args ...any) (any, error) {
	fd, err := m.fd("close", args)
	if err != nil {
		return nil, err
	}
	return nil, m.sys.Close(fd)
}

// selectFds returns [][]int{read, write, except}. The optional fourth
// argument is the timeout in seconds; without it the call blocks.
func (m *Module) selectFds(args ...any) (any, error) {
	if len(args) < 3 || len(args) > 4 {
		return nil, badArgs("select", msgSelectArity)
	}
	var sets [3][]int
	for i := range sets {
		l, ok := descriptors(args[i])
		if !ok {
			return nil, badArgs("select", msgSelectType)
		}
		sets[i] = l
	}
	var timeout *time.Duration
	if len(args) == 4 {
		t, ok := seconds(args[3])
		if !ok {
			return nil, badArgs("select", msgSelectType)
		}
		timeout = t
	}
	ready, err := m.sys.Select(sets[0], sets[1], sets[2], timeout)
	if err != nil {
		return nil, err
	}
	return ready.Lists(), nil
}

func (m *Module) read(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, badArgs("read", msgReadArity)
	}
	n, ok := numbers(args...)
	if !ok {
		return nil, badArgs("read", msgReadType)
	}
	return m.sys.Read(n[0], n[1])
}

// write accepts an ignored third argument.
func (m *Module) write(args ...any) (any, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, badArgs("write", msgWriteArity)
	}
	fd, ok := number(args[0])
	data, isData := payload(args[1])
	if !ok || !isData {
		return nil, badArgs("write", msgWriteType)
	}
	return nil, m.sys.Write(fd, data)
}

func (m *Module) fork(...any) (any, error) {
	return m.sys.Fork()
}

func (m *Module) getpid(...any) (any, error) {
	return m.sys.Getpid(), nil
}

// waitpid defaults to any child and no options.
func (m *Module) waitpid(args ...any) (any, error) {
	if len(args) > 2 {
		return nil, badArgs("waitpid", msgWaitpidArity)
	}
	pid, options := posix.AnyChild, 0
	if len(args) >= 1 {
		n, ok := number(args[0])
		if !ok {
			return nil, badArgs("waitpid", msgWaitpidType)
		}
		pid = n
	}
	if len(args) == 2 {
		n, ok := number(args[1])
		if !ok {
			return nil, badArgs("waitpid", msgWaitpidType)
		}
		options = n
	}
	return nil, m.sys.Waitpid(pid, options)
}

func (m *Module) open(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, badArgs("open", msgOpenArity)
	}
	path, isString := args[0].(string)
	flags, ok := number(args[1])
	if !isString || !ok {
		return nil, badArgs("open", msgOpenType)
	}
	return m.sys.Open(path, flags)
}
