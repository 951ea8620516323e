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
	"math"
	"time"

	"github.com/srediag/plugin-posix/internal/errno"
)

// Argument-contract messages, one pair per call.
const (
	msgSocketArity  = "Wrong number of arguments. Expecting domain, type, protocol."
	msgNumbers      = "Wrong type of arguments. Expecting numbers"
	msgFcntlArity   = "Wrong number of arguments. Expecting FD, command, value."
	msgAddrArity    = "Wrong number of arguments. Expecting FD, port, address."
	msgAddrType     = "Wrong type of arguments. Expecting number, number, string"
	msgListenArity  = "Wrong number of arguments. Expecting FD, backlog"
	msgListenType   = "Wrong type of argument. Expecting number, number"
	msgFDArity      = "Wrong number of arguments. Expecting FD."
	msgFDType       = "Wrong type of argument. Expecting number"
	msgSelectArity  = "Wrong number of arguments. Expecting readables, writables, exceptionals[, timeout]."
	msgSelectType   = "Wrong type of arguments. Expecting array, array, array[, number]"
	msgReadArity    = "Wrong number of arguments. Expecting FD, number of bytes."
	msgReadType     = "Wrong type of argument. Expecting number, number."
	msgWriteArity   = "Wrong number of arguments. Expecting FD, data."
	msgWriteType    = "Wrong type of argument. Expecting number, string."
	msgOpenArity    = "Wrong number of arguments. Expecting path, flags."
	msgOpenType     = "Wrong type of argument. Expecting string, number."
	msgWaitpidType  = "Wrong type of argument. Expecting number, number"
	msgWaitpidArity = "Wrong number of arguments. Expecting [pid[, options]]."
)

func badArgs(op, msg string) error {
	return errno.Invalid(op, "%s", msg)
}

// number accepts any Go integer type and integral float64 values that fit
// in an int.
func number(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint:
		return unsigned(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return unsigned(uint64(n))
	case uint64:
		return unsigned(n)
	case float32:
		return number(float64(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		// -MinInt is exactly representable, MaxInt is not
		if n < math.MinInt || n >= -float64(math.MinInt) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func unsigned(n uint64) (int, bool) {
	if n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// numbers converts every element of vs, failing on the first non-number.
func numbers(vs ...any) ([]int, bool) {
	out := make([]int, len(vs))
	for i, v := range vs {
		n, ok := number(v)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// descriptors accepts []int or a []any of numbers. Nil is an empty list.
func descriptors(v any) ([]int, bool) {
	switch l := v.(type) {
	case nil:
		return []int{}, true
	case []int:
		return l, true
	case []any:
		return numbers(l...)
	}
	return nil, false
}

// seconds converts a timeout in seconds, fractions allowed.
func seconds(v any) (*time.Duration, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case time.Duration:
		return &n, true
	default:
		i, ok := number(v)
		if !ok {
			return nil, false
		}
		f = float64(i)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	var d time.Duration
	switch ns := f * float64(time.Second); {
	case ns >= math.MaxInt64:
		d = math.MaxInt64
	case ns <= math.MinInt64:
		d = math.MinInt64
	default:
		d = time.Duration(ns)
	}
	return &d, true
}

// payload accepts string or []byte.
func payload(v any) ([]byte, bool) {
	switch p := v.(type) {
	case string:
		return []byte(p), true
	case []byte:
		return p, true
	}
	return nil, false
}
