//go:build unix

package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/srediag/plugin-posix/pkg/health"
	"github.com/srediag/plugin-posix/pkg/posix"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sys/unix"
)

type spyTracer struct {
	embedded.Tracer
	mu    sync.Mutex
	spans []string
}

func (s *spyTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	s.mu.Lock()
	s.spans = append(s.spans, name)
	s.mu.Unlock()
	return tracenoop.NewTracerProvider().Tracer("").Start(ctx, name, opts...)
}

type AdapterTestSuite struct {
	suite.Suite
}

func (s *AdapterTestSuite) TestTracedPassesThrough() {
	spy := &spyTracer{}
	t, err := NewTraced(posix.New(), spy, nil)
	s.Require().NoError(err)

	var p [2]int
	s.Require().NoError(unix.Pipe(p[:]))
	defer t.Close(p[0])
	defer t.Close(p[1])

	s.Require().NoError(t.Write(p[1], []byte("hi")))
	ready, err := t.Select([]int{p[0]}, nil, nil, posix.Timeout(time.Second))
	s.Require().NoError(err)
	s.Equal([]int{p[0]}, ready.Read)
	got, err := t.Read(p[0], 8)
	s.Require().NoError(err)
	s.Equal("hi", string(got))

	_, err = t.Fcntl(-1, posix.F_GETFL, 0)
	s.Equal(posix.KindBadDescriptor, posix.KindOf(err))
	s.Equal(t.Getpid(), unix.Getpid())

	s.Equal([]string{"posix.write", "posix.select", "posix.read", "posix.fcntl"}, spy.spans)
}

func (s *AdapterTestSuite) TestNetworkListenDial() {
	n := NewNetwork(nil, time.Second)
	ln, err := n.Listen("127.0.0.1", 0, 4)
	s.Require().NoError(err)
	defer ln.Close()
	sa, err := unix.Getsockname(ln.Fd())
	s.Require().NoError(err)
	port := sa.(*unix.SockaddrInet4).Port

	cli, err := n.Dial("127.0.0.1", port)
	s.Require().NoError(err)
	defer cli.Close()
	acc, err := ln.Accept()
	s.Require().NoError(err)
	defer acc.Close()
	s.NotEqual(ln.Fd(), acc.Fd())
}

func (s *AdapterTestSuite) TestDialGivesUpOnRefused() {
	spare, err := posix.Socket(posix.AF_INET, posix.SOCK_STREAM, 0)
	s.Require().NoError(err)
	s.Require().NoError(posix.Bind(spare, 0, "127.0.0.1"))
	sa, err := unix.Getsockname(spare)
	s.Require().NoError(err)
	port := sa.(*unix.SockaddrInet4).Port
	s.Require().NoError(posix.Close(spare))

	attempts := 0
	n := NewNetwork(nil, 0).WithBackOff(func() backoff.BackOff {
		attempts++
		return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 2)
	})
	_, err = n.Dial("127.0.0.1", port)
	s.Require().Error(err)
	s.Equal(posix.KindConnRefused, posix.KindOf(err))
	s.Equal(1, attempts)
}

func (s *AdapterTestSuite) TestDialPermanentFailure() {
	n := NewNetwork(nil, time.Second)
	_, err := n.Dial("not-an-ip", 80)
	s.Require().Error(err)
	var perr *posix.Error
	s.True(errors.As(err, &perr))
	s.Equal(posix.KindInvalidArgument, perr.Kind)
}

func (s *AdapterTestSuite) TestMountHealth() {
	mux := http.NewServeMux()
	MountHealth(mux, "/healthz", health.New(nil))
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/healthz/live", nil))
	s.Equal(http.StatusOK, rw.Code)
}

func TestAdapterTestSuite(t *testing.T) {
	suite.Run(t, new(AdapterTestSuite))
}
