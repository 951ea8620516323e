//go:build unix

// Package health serves liveness and readiness probes for a process that
// uses the facade.
package health

import (
	"fmt"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/srediag/plugin-posix/api"
	"github.com/srediag/plugin-posix/pkg/posix"
	"golang.org/x/sys/unix"
)

// DefaultHeadroom is the share of RLIMIT_NOFILE a process may hold open
// before DescriptorHeadroom fails.
const DefaultHeadroom = 0.9

// Checker wraps a healthcheck handler. Live is served on /live and ready
// on /ready.
type Checker struct {
	h healthcheck.Handler
}

var _ api.Health = (*Checker)(nil)

// New returns a Checker with the default liveness checks installed.
func New(sys *posix.System) *Checker {
	if sys == nil {
		sys = posix.Default()
	}
	c := &Checker{h: healthcheck.NewHandler()}
	c.h.AddLivenessCheck("descriptor-headroom", DescriptorHeadroom(int32(sys.Getpid()), DefaultHeadroom))
	c.h.AddLivenessCheck("select-poll", SelectPoll(sys))
	return c
}

func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.h.ServeHTTP(w, r)
}

func (c *Checker) AddLivenessCheck(name string, check func() error) {
	c.h.AddLivenessCheck(name, check)
}

func (c *Checker) AddReadinessCheck(name string, check func() error) {
	c.h.AddReadinessCheck(name, check)
}

// WatchListener adds a readiness check that dials addr.
func (c *Checker) WatchListener(addr string, timeout time.Duration) {
	c.h.AddReadinessCheck("listener "+addr, healthcheck.TCPDialCheck(addr, timeout))
}

// DescriptorHeadroom fails once pid holds more than ratio of its
// descriptor limit.
func DescriptorHeadroom(pid int32, ratio float64) healthcheck.Check {
	return func() error {
		p, err := process.NewProcess(pid)
		if err != nil {
			return err
		}
		open, err := p.NumFDs()
		if err != nil {
			return err
		}
		var rl unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
			return err
		}
		limit := uint64(rl.Cur)
		if limit == 0 {
			return nil
		}
		if float64(open) > ratio*float64(limit) {
			return fmt.Errorf("%d of %d descriptors open", open, limit)
		}
		return nil
	}
}

// SelectPoll checks that a zero-timeout select completes.
func SelectPoll(sys *posix.System) healthcheck.Check {
	return func() error {
		_, err := sys.Select(nil, nil, nil, posix.Timeout(0))
		return err
	}
}
