// Package adapter connects the facade to tracing, networking and health
// tooling.
package adapter

import (
	"context"
	"time"

	"github.com/srediag/plugin-posix/api"
	"github.com/srediag/plugin-posix/internal/errno"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentation = "github.com/srediag/plugin-posix"

// Traced wraps a Syscalls with one span and one counter sample per call.
type Traced struct {
	next   api.Syscalls
	tracer trace.Tracer
	calls  metric.Int64Counter
	errs   metric.Int64Counter
}

var _ api.Syscalls = (*Traced)(nil)

// NewTraced wraps next. Nil tracer or meter fall back to no-op providers.
func NewTraced(next api.Syscalls, tracer trace.Tracer, meter metric.Meter) (*Traced, error) {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(instrumentation)
	}
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(instrumentation)
	}
	calls, err := meter.Int64Counter("posix.calls", metric.WithDescription("Completed facade calls."))
	if err != nil {
		return nil, err
	}
	errs, err := meter.Int64Counter("posix.errors", metric.WithDescription("Failed facade calls."))
	if err != nil {
		return nil, err
	}
	return &Traced{next: next, tracer: tracer, calls: calls, errs: errs}, nil
}

func (t *Traced) run(op string, fn func() error, attrs ...attribute.KeyValue) error {
	ctx, span := t.tracer.Start(context.Background(), "posix."+op, trace.WithAttributes(attrs...))
	defer span.End()
	start := time.Now()
	err := fn()
	opAttr := attribute.String("op", op)
	t.calls.Add(ctx, 1, metric.WithAttributes(opAttr))
	span.SetAttributes(attribute.Int64("duration_us", time.Since(start).Microseconds()))
	if err != nil {
		kind := attribute.String("kind", errno.KindOf(err).String())
		t.errs.Add(ctx, 1, metric.WithAttributes(opAttr, kind))
		span.SetAttributes(kind)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func fdAttr(fd int) attribute.KeyValue {
	return attribute.Int("fd", fd)
}

func (t *Traced) Socket(domain, typ, proto int) (fd int, err error) {
	err = t.run("socket", func() error {
		fd, err = t.next.Socket(domain, typ, proto)
		return err
	}, attribute.Int("domain", domain), attribute.Int("type", typ))
	return fd, err
}

func (t *Traced) Open(path string, flags int) (fd int, err error) {
	err = t.run("open", func() error {
		fd, err = t.next.Open(path, flags)
		return err
	}, attribute.String("path", path))
	return fd, err
}

func (t *Traced) Close(fd int) error {
	return t.run("close", func() error { return t.next.Close(fd) }, fdAttr(fd))
}

func (t *Traced) Fcntl(fd, cmd, arg int) (v int, err error) {
	err = t.run("fcntl", func() error {
		v, err = t.next.Fcntl(fd, cmd, arg)
		return err
	}, fdAttr(fd), attribute.Int("cmd", cmd))
	return v, err
}

func (t *Traced) Connect(fd, port int, addr string) error {
	return t.run("connect", func() error { return t.next.Connect(fd, port, addr) },
		fdAttr(fd), attribute.String("addr", addr), attribute.Int("port", port))
}

func (t *Traced) Bind(fd, port int, addr string) error {
	return t.run("bind", func() error { return t.next.Bind(fd, port, addr) },
		fdAttr(fd), attribute.String("addr", addr), attribute.Int("port", port))
}

func (t *Traced) Listen(fd, backlog int) error {
	return t.run("listen", func() error { return t.next.Listen(fd, backlog) }, fdAttr(fd))
}

func (t *Traced) Accept(fd int) (nfd int, err error) {
	err = t.run("accept", func() error {
		nfd, err = t.next.Accept(fd)
		return err
	}, fdAttr(fd))
	return nfd, err
}

func (t *Traced) Select(r, w, e []int, timeout *time.Duration) (ready api.Ready, err error) {
	err = t.run("select", func() error {
		ready, err = t.next.Select(r, w, e, timeout)
		return err
	}, attribute.IntSlice("read", r), attribute.IntSlice("write", w), attribute.IntSlice("except", e))
	return ready, err
}

func (t *Traced) Read(fd, n int) (p []byte, err error) {
	err = t.run("read", func() error {
		p, err = t.next.Read(fd, n)
		return err
	}, fdAttr(fd), attribute.Int("count", n))
	return p, err
}

func (t *Traced) Write(fd int, data []byte) error {
	return t.run("write", func() error { return t.next.Write(fd, data) },
		fdAttr(fd), attribute.Int("count", len(data)))
}

// Fork is not traced: the child would inherit an open span.
func (t *Traced) Fork() (int, error) {
	return t.next.Fork()
}

func (t *Traced) Getpid() int {
	return t.next.Getpid()
}

func (t *Traced) Waitpid(pid, options int) error {
	return t.run("waitpid", func() error { return t.next.Waitpid(pid, options) }, attribute.Int("pid", pid))
}
