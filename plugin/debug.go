/*
 * Copyright 2025 SREDiag Authors
 * Copyright 2023 CloudWeGo Authors
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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/valyala/bytebufferpool"
)

// logger writes coloured leveled lines. callDepth is the stack distance
// from location() to the frame reported in the prefix.
type logger struct {
	name      string
	out       io.Writer
	callDepth int
	mu        sync.Mutex
}

var (
	internalLogger = newLogger("", os.Stdout)
	level          int
	debugMode      = false

	magenta = string([]byte{27, 91, 57, 53, 109}) // Trace
	green   = string([]byte{27, 91, 57, 50, 109}) // Debug
	blue    = string([]byte{27, 91, 57, 52, 109}) // Info
	yellow  = string([]byte{27, 91, 57, 51, 109}) // Warn
	red     = string([]byte{27, 91, 57, 49, 109}) // Error
	reset   = string([]byte{27, 91, 48, 109})

	colors = []string{
		magenta,
		green,
		blue,
		yellow,
		red,
	}

	levelName = []string{
		"Trace",
		"Debug",
		"Info",
		"Warn",
		"Error",
	}
)

const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
	levelNoPrint
)

func init() {
	level = levelWarn
	if os.Getenv("POSIX_LOG_LEVEL") != "" {
		if n, err := strconv.Atoi(os.Getenv("POSIX_LOG_LEVEL")); err == nil {
			if n >= levelTrace && n <= levelNoPrint {
				level = n
			}
		}
	}

	if os.Getenv("POSIX_DEBUG_MODE") != "" {
		debugMode = true
	}
}

// SetLogLevel changes the level of every plugin logger. The default is
// Warn; the process env `POSIX_LOG_LEVEL` (0 trace .. 5 silent) sets it at
// start-up.
func SetLogLevel(l int) {
	if l >= levelTrace && l <= levelNoPrint {
		level = l
	}
}

// SetDebugMode makes every call, not only failures, reach the debug log.
// The process env `POSIX_DEBUG_MODE` turns it on at start-up.
func SetDebugMode(on bool) {
	debugMode = on
}

func newLogger(name string, out io.Writer) *logger {
	if out == nil {
		out = os.Stdout
	}
	return &logger{
		name:      name,
		out:       out,
		callDepth: 4,
	}
}

func (l *logger) errorf(format string, a ...interface{}) {
	l.logf(levelError, format, a...)
}

func (l *logger) warnf(format string, a ...interface{}) {
	l.logf(levelWarn, format, a...)
}

func (l *logger) infof(format string, a ...interface{}) {
	l.logf(levelInfo, format, a...)
}

func (l *logger) debugf(format string, a ...interface{}) {
	l.logf(levelDebug, format, a...)
}

func (l *logger) tracef(format string, a ...interface{}) {
	l.logf(levelTrace, format, a...)
}

func (l *logger) logf(lvl int, format string, a ...interface{}) {
	if level > lvl {
		return
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	l.prefix(buf, lvl)
	_, _ = fmt.Fprintf(buf, format, a...)
	_, _ = buf.WriteString(reset)
	_ = buf.WriteByte('\n')

	l.mu.Lock()
	_, err := l.out.Write(buf.B)
	l.mu.Unlock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "plugin logger write failed: %v\n", err)
	}
}

func (l *logger) prefix(buf *bytebufferpool.ByteBuffer, lvl int) {
	_, _ = buf.WriteString(colors[lvl])
	_, _ = buf.WriteString(levelName[lvl])
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(time.Now().Format("2006-01-02 15:04:05.999999"))
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(l.location())
	_ = buf.WriteByte(' ')
	if l.name != "" {
		_, _ = buf.WriteString(l.name)
		_ = buf.WriteByte(' ')
	}
}

func (l *logger) location() string {
	_, file, line, ok := runtime.Caller(l.callDepth)
	if !ok {
		file = "???"
		line = 0
	}
	file = filepath.Base(file)
	return file + ":" + strconv.Itoa(line)
}
