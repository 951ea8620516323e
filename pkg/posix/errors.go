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
	"github.com/srediag/plugin-posix/internal/errno"
)

// Error is the failure value of every operation.
type Error = errno.Error

// Kind classifies an Error.
type Kind = errno.Kind

const (
	KindOther            = errno.Other
	KindWouldBlock       = errno.WouldBlock
	KindConnRefused      = errno.ConnRefused
	KindAddrInUse        = errno.AddrInUse
	KindInterrupted      = errno.Interrupted
	KindNotFound         = errno.NotFound
	KindPermissionDenied = errno.PermissionDenied
	KindBadDescriptor    = errno.BadDescriptor
	KindInvalidArgument  = errno.InvalidArgument
	KindInProgress       = errno.InProgress
	KindUnsupported      = errno.Unsupported
)

// ErrClosed is returned by a Handle used after Close or Release.
var ErrClosed = &errno.Error{Op: "handle", Kind: errno.BadDescriptor, Msg: "use of closed descriptor handle"}

// KindOf returns the Kind of err.
func KindOf(err error) Kind {
	return errno.KindOf(err)
}
