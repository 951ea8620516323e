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

import "errors"

var (
	// ErrUnknownCall is returned by Call for a name that is not registered.
	ErrUnknownCall = errors.New("unknown call")
	// ErrOffloadDisabled is returned by Go when the module has no workers.
	ErrOffloadDisabled = errors.New("offload is disabled, set Config.OffloadWorkers")
	// ErrModuleClosed is returned by every call after Close.
	ErrModuleClosed = errors.New("module is closed")
)
