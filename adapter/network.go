//go:build unix

package adapter

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/srediag/plugin-posix/pkg/posix"
)

// Network opens TCP endpoints through the facade, retrying transient
// failures with exponential backoff.
type Network struct {
	sys     *posix.System
	backoff func() backoff.BackOff
}

// NewNetwork returns a Network on sys that gives up after maxElapsed.
func NewNetwork(sys *posix.System, maxElapsed time.Duration) *Network {
	if sys == nil {
		sys = posix.Default()
	}
	return &Network{
		sys: sys,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 10 * time.Millisecond
			b.MaxElapsedTime = maxElapsed
			return b
		},
	}
}

// WithBackOff replaces the retry policy.
func (n *Network) WithBackOff(policy func() backoff.BackOff) *Network {
	n.backoff = policy
	return n
}

// transient reports whether a fresh attempt may succeed.
func transient(err error) bool {
	switch posix.KindOf(err) {
	case posix.KindConnRefused, posix.KindAddrInUse, posix.KindInterrupted, posix.KindWouldBlock:
		return true
	}
	return false
}

// Listen binds a passive IPv4 stream socket on host:port.
func (n *Network) Listen(host string, port, backlog int) (*posix.Handle, error) {
	var h *posix.Handle
	op := func() error {
		s, err := n.sys.SocketHandle(posix.AF_INET, posix.SOCK_STREAM, 0)
		if err != nil {
			return backoff.Permanent(err)
		}
		if err = s.Bind(port, host); err == nil {
			err = s.Listen(backlog)
		}
		if err != nil {
			_ = s.Close()
			if !transient(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		h = s
		return nil
	}
	if err := backoff.Retry(op, n.backoff()); err != nil {
		return nil, fmt.Errorf("listen %s:%d: %w", host, port, err)
	}
	return h, nil
}

// Dial connects a new IPv4 stream socket to host:port. Each attempt uses a
// fresh socket.
func (n *Network) Dial(host string, port int) (*posix.Handle, error) {
	var h *posix.Handle
	op := func() error {
		s, err := n.sys.SocketHandle(posix.AF_INET, posix.SOCK_STREAM, 0)
		if err != nil {
			return backoff.Permanent(err)
		}
		if err = s.Connect(port, host); err != nil {
			_ = s.Close()
			if !transient(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		h = s
		return nil
	}
	if err := backoff.Retry(op, n.backoff()); err != nil {
		return nil, fmt.Errorf("dial %s:%d: %w", host, port, err)
	}
	return h, nil
}
