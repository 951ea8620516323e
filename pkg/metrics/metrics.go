// Package metrics exports facade call counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/srediag/plugin-posix/internal/errno"
)

// Collector is a posix.Observer backed by Prometheus vectors.
type Collector struct {
	calls      *prometheus.CounterVec
	errors     *prometheus.CounterVec
	interrupts *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates the vectors and registers them with reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posix_calls_total",
			Help: "Completed facade calls.",
		}, []string{"op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posix_errors_total",
			Help: "Failed facade calls by error kind.",
		}, []string{"op", "kind"}),
		interrupts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posix_interrupts_total",
			Help: "EINTR results retried inside select and accept.",
		}, []string{"op"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "posix_call_duration_seconds",
			Help:    "Wall time of facade calls, including retries.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"op"}),
	}
	if reg == nil {
		return c, nil
	}
	for _, col := range []prometheus.Collector{c.calls, c.errors, c.interrupts, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is New that panics on registration failure.
func MustNew(reg prometheus.Registerer) *Collector {
	c, err := New(reg)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Collector) Observe(op string, elapsed time.Duration, err error) {
	c.calls.WithLabelValues(op).Inc()
	c.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		c.errors.WithLabelValues(op, errno.KindOf(err).String()).Inc()
	}
}

func (c *Collector) Interrupted(op string) {
	c.interrupts.WithLabelValues(op).Inc()
}

// Calls returns the counter for op.
func (c *Collector) Calls(op string) prometheus.Counter {
	return c.calls.WithLabelValues(op)
}

// Errors returns the counter for op failing with kind.
func (c *Collector) Errors(op string, kind errno.Kind) prometheus.Counter {
	return c.errors.WithLabelValues(op, kind.String())
}

// Interrupts returns the retry counter for op.
func (c *Collector) Interrupts(op string) prometheus.Counter {
	return c.interrupts.WithLabelValues(op)
}
