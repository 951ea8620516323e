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
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/srediag/plugin-posix/adapter"
	"github.com/srediag/plugin-posix/api"
	"github.com/srediag/plugin-posix/internal/errno"
	"github.com/srediag/plugin-posix/pkg/metrics"
	"github.com/srediag/plugin-posix/pkg/offload"
	"github.com/srediag/plugin-posix/pkg/posix"
)

// Handler runs one named call with already-unmarshalled arguments.
type Handler func(args ...any) (any, error)

// Module is the callable namespace: a name to handler registry over one
// posix.System.
type Module struct {
	config   *Config
	sys      api.Syscalls
	handlers cmap.ConcurrentMap[string, Handler]
	recent   *callQueue
	pool     *offload.Pool
	metrics  *metrics.Collector
	logger   *logger
	closed   atomic.Bool
}

var _ api.Caller = (*Module)(nil)

// New builds a Module with every facade call registered.
func New(config *Config, opts ...posix.Option) (*Module, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := VerifyConfig(config); err != nil {
		internalLogger.warnf("rejected module config: %v", err)
		return nil, err
	}
	m := &Module{
		config:   config,
		handlers: cmap.New[Handler](),
		recent:   newCallQueue(config.RecentCalls),
		logger:   newLogger("", config.LogOutput),
	}

	opts = append(opts, posix.WithObserver(logObserver{m.logger}))
	if config.Registerer != nil {
		c, err := metrics.New(config.Registerer)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		m.metrics = c
		opts = append(opts, posix.WithObserver(c))
	}
	m.sys = posix.New(opts...)
	if config.Tracer != nil || config.Meter != nil {
		traced, err := adapter.NewTraced(m.sys, config.Tracer, config.Meter)
		if err != nil {
			return nil, fmt.Errorf("otel: %w", err)
		}
		m.sys = traced
	}
	if config.OffloadWorkers > 0 {
		p, err := offload.New(config.OffloadWorkers, false)
		if err != nil {
			return nil, err
		}
		m.pool = p
	}
	m.registerSyscalls()
	return m, nil
}

// Register adds or replaces the handler for name.
func (m *Module) Register(name string, h Handler) {
	m.handlers.Set(name, h)
}

// Has reports whether name is registered.
func (m *Module) Has(name string) bool {
	return m.handlers.Has(name)
}

// Names lists the registered calls.
func (m *Module) Names() []string {
	return m.handlers.Keys()
}

// Constants returns the exported constant table.
func (m *Module) Constants() map[string]int {
	return posix.Constants()
}

// Call runs name on the calling goroutine.
func (m *Module) Call(name string, args ...any) (any, error) {
	if m.closed.Load() {
		return nil, ErrModuleClosed
	}
	h, ok := m.handlers.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCall, name)
	}
	start := time.Now()
	v, err := h(args...)
	if forkedChild(name, v, err) {
		// ring and logger locks may have been held by other goroutines
		return v, err
	}
	m.record(name, start, err)
	return v, err
}

// forkedChild reports whether a call returned inside a new child process.
func forkedChild(name string, v any, err error) bool {
	pid, ok := v.(int)
	return name == "fork" && err == nil && ok && pid == 0
}

// Go runs name on the offload pool and delivers the result on the channel.
func (m *Module) Go(name string, args ...any) (<-chan offload.Result, error) {
	if m.closed.Load() {
		return nil, ErrModuleClosed
	}
	if m.pool == nil {
		return nil, ErrOffloadDisabled
	}
	if !m.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCall, name)
	}
	return m.pool.Submit(func() (any, error) {
		return m.Call(name, args...)
	})
}

// Recent returns the last completed calls, oldest first.
func (m *Module) Recent() []CallRecord {
	return m.recent.snapshot()
}

// Metrics returns the Prometheus collector, or nil when none was configured.
func (m *Module) Metrics() *metrics.Collector {
	return m.metrics
}

// Syscalls returns the facade the handlers dispatch to.
func (m *Module) Syscalls() api.Syscalls {
	return m.sys
}

// Close stops the offload pool and refuses further calls. Descriptors the
// caller opened stay open.
func (m *Module) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return ErrModuleClosed
	}
	if m.pool != nil {
		if n := m.pool.Running(); n > 0 {
			m.logger.warnf("closing with %d offloaded calls still blocked", n)
		}
		m.pool.Close()
	}
	m.recent.dispose()
	return nil
}

func (m *Module) record(name string, start time.Time, err error) {
	r := CallRecord{Name: name, At: start, Elapsed: time.Since(start)}
	if err != nil {
		r.Kind = errno.KindOf(err)
		r.Err = err.Error()
		detail := r.Err
		var e *errno.Error
		if errors.As(err, &e) {
			detail = e.Detail()
		}
		m.logger.debugf("%s failed after %v: %s", name, r.Elapsed, detail)
	} else if debugMode {
		m.logger.debugf("%s ok in %v", name, r.Elapsed)
	}
	m.recent.put(r)
}

// logObserver reports retried interrupts at trace level.
type logObserver struct {
	l *logger
}

func (o logObserver) Observe(string, time.Duration, error) {}

func (o logObserver) Interrupted(op string) {
	o.l.tracef("%s interrupted, retrying", op)
}
