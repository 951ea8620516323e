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

// Package posix is a thin facade over a small set of POSIX primitives:
// socket creation, connection establishment, readiness multiplexing,
// single-attempt byte I/O and process control.
//
// Every operation issues the syscall it is named after and translates a
// failure into an *Error whose message is the OS description text. Only two
// conditions are not failures:
//
//   - EINTR inside Select and Accept, which are retried until they complete;
//   - EINPROGRESS from Connect on a non-blocking descriptor.
//
// Read and Write never loop. A short read returns what arrived, a short write
// still reports success. ReadFull, WriteFull and ReadAll are the retrying
// helpers built on top of them.
//
// Descriptors are plain ints with no ownership tracking. Handle wraps one
// when exclusive ownership and use-after-close checks are wanted.
//
// Waitpid discards the child's exit status to keep parity with the call it
// mirrors. WaitpidStatus returns it for callers that need it.
//
// Example:
//
//	fd, err := posix.Socket(posix.AF_INET, posix.SOCK_STREAM, 0)
//	// ...
//	ready, err := posix.Select([]int{fd}, nil, nil, posix.Seconds(5))
package posix
