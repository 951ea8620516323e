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
	"sync"
	"time"

	queuepkg "github.com/Workiva/go-datastructures/queue"
	"github.com/srediag/plugin-posix/internal/errno"
)

// CallRecord describes one completed Call.
type CallRecord struct {
	Name    string
	At      time.Time
	Elapsed time.Duration
	// Kind is meaningful only when Err is set.
	Kind errno.Kind
	Err  string
}

// callQueue keeps the most recent call records, evicting the oldest when
// full. put and snapshot are serialised by mu; the ring itself is only a
// bounded FIFO here.
type callQueue struct {
	mu sync.Mutex
	q  *queuepkg.RingBuffer
}

func newCallQueue(cap uint64) *callQueue {
	return &callQueue{q: queuepkg.NewRingBuffer(cap)}
}

func (c *callQueue) put(r CallRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		ok, err := c.q.Offer(r)
		if err != nil || ok {
			return
		}
		// full: drop the oldest, Len() == Cap() so Get does not block
		if _, err = c.q.Get(); err != nil {
			return
		}
	}
}

// snapshot returns the records oldest first.
func (c *callQueue) snapshot() []CallRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.q.Len()
	out := make([]CallRecord, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := c.q.Get()
		if err != nil {
			break
		}
		r := v.(CallRecord)
		out = append(out, r)
		_, _ = c.q.Offer(r)
	}
	return out
}

func (c *callQueue) dispose() {
	c.q.Dispose()
}
