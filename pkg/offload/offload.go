// Package offload runs blocking facade calls on a bounded worker pool so the
// caller's goroutine stays free. Each worker issues one call at a time.
package offload

import (
	"errors"
	"fmt"

	"github.com/panjf2000/ants/v2"
)

// ErrSaturated is returned by Submit when every worker is busy and the pool
// was created non-blocking.
var ErrSaturated = errors.New("offload: all workers busy")

// Result is the outcome of one offloaded call.
type Result struct {
	Value any
	Err   error
}

// Pool is a fixed-size set of workers.
type Pool struct {
	p *ants.Pool
}

// New returns a pool of size workers. With nonblocking set, Submit fails
// instead of waiting for a free worker.
func New(size int, nonblocking bool) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("offload: invalid pool size %d", size)
	}
	p, err := ants.NewPool(size,
		ants.WithNonblocking(nonblocking),
		ants.WithPanicHandler(func(v interface{}) {}),
	)
	if err != nil {
		return nil, err
	}
	return &Pool{p: p}, nil
}

// Submit schedules fn and returns a channel that receives its result once.
// A panic in fn is reported as an error result.
func (p *Pool) Submit(fn func() (any, error)) (<-chan Result, error) {
	ch := make(chan Result, 1)
	err := p.p.Submit(func() {
		defer func() {
			if v := recover(); v != nil {
				ch <- Result{Err: fmt.Errorf("offload: panic: %v", v)}
			}
		}()
		v, err := fn()
		ch <- Result{Value: v, Err: err}
	})
	if errors.Is(err, ants.ErrPoolOverload) {
		return nil, ErrSaturated
	}
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// Running returns the number of busy workers.
func (p *Pool) Running() int {
	return p.p.Running()
}

// Cap returns the pool size.
func (p *Pool) Cap() int {
	return p.p.Cap()
}

// Close stops accepting work. Calls already running finish on their own.
func (p *Pool) Close() {
	p.p.Release()
}
