package core

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"lineack/internal/capability"
	lerrors "lineack/internal/errors"
	"lineack/internal/metrics"
	"lineack/internal/retry"
	"lineack/internal/session"
	"lineack/internal/transport"
	"lineack/util"
)

// ListenMode binds one TCP port and services connections one at a
// time until an accept waits longer than IdleTimeout, the context is
// cancelled, or a fatal transport error occurs.
type ListenMode struct {
	Address        string        // "host:port"
	IdleTimeout    time.Duration // per-accept wait; 0 waits forever
	SessionTimeout time.Duration // read+write deadline per session; 0 disables
	Isolate        bool          // session errors are logged, not fatal
	Capability     capability.Capability
	Logger         *util.Logger
	Metrics        *metrics.Collector

	// Backoff retries temporary accept errors.  Only used with Isolate.
	Backoff *retry.Backoff

	// OnListen, if set, is called once the socket is bound.
	OnListen func(addr net.Addr)

	state atomic.Int32
}

// State reports the current lifecycle phase.
func (m *ListenMode) State() State { return State(m.state.Load()) }

func (m *ListenMode) setState(s State) {
	prev := State(m.state.Swap(int32(s)))
	if prev != s {
		m.Logger.Debug("state %s → %s", prev, s)
	}
}

// Run binds the listener and runs the accept loop.  An idle timeout or
// a cancelled context is a normal shutdown and returns nil.
func (m *ListenMode) Run(ctx context.Context) error {
	m.setState(StateInit)

	ln, err := transport.ListenTCP(ctx, m.Address, m.IdleTimeout)
	if err != nil {
		m.setState(StateClosed)
		return err
	}
	defer func() {
		ln.Close()
		m.setState(StateClosed)
		m.Logger.Debug("metrics: %s", m.Metrics.JSON())
	}()

	// Shut the listener down when the context expires.
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	m.setState(StateListening)
	if m.OnListen != nil {
		m.OnListen(ln.Addr())
	}

	for {
		m.Logger.Info("waiting for client on port %d...", ln.Port())

		conn, err := m.accept(ctx, ln)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				m.Logger.Verbose("listener stopped: %v", ctx.Err())
				return nil
			case lerrors.Is(err, lerrors.ErrIdleTimeout):
				m.Logger.Info("socket timed out after %s", m.IdleTimeout)
				return nil
			default:
				m.Metrics.RecordError(err.Error())
				m.Logger.Error("accept: %v", err)
				return err
			}
		}

		m.setState(StateAccepted)
		if err := m.serve(ctx, conn); err != nil {
			m.Metrics.RecordError(err.Error())
			if !m.Isolate {
				m.Logger.Error("session %s: %v", conn.RemoteAddr(), err)
				return fmt.Errorf("session %s: %w", conn.RemoteAddr(), err)
			}
			m.Logger.Warn("session %s: %v", conn.RemoteAddr(), err)
		}
		m.setState(StateListening)
	}
}

// accept waits for the next connection.  In isolate mode temporary
// failures (fd exhaustion, aborted handshakes) are retried with
// backoff; everything else is returned as is.
func (m *ListenMode) accept(ctx context.Context, ln transport.Listener) (net.Conn, error) {
	if !m.Isolate || m.Backoff == nil {
		return ln.Accept()
	}

	var conn net.Conn
	err := m.Backoff.Do(ctx, func(attempt int) error {
		c, err := ln.Accept()
		if err == nil {
			conn = c
			return nil
		}
		if !lerrors.IsRetryable(err) {
			return retry.Permanent(err)
		}
		m.Metrics.AcceptRetry()
		m.Logger.Warn("accept (attempt %d): %v", attempt, err)
		return err
	})
	return conn, err
}

// serve runs the capability on one connection and always closes it.
func (m *ListenMode) serve(ctx context.Context, conn net.Conn) error {
	sess := session.New(conn, m.Logger, m.Metrics)
	defer sess.Close()

	// Unblock a pending read or write when the context expires.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	m.Logger.Info("just connected to %s", sess.RemoteAddr())

	if m.SessionTimeout > 0 {
		if err := sess.SetDeadline(time.Now().Add(m.SessionTimeout)); err != nil {
			return lerrors.Wrap("deadline", sess.RemoteAddr(), err)
		}
	}

	err := m.Capability.Handle(ctx, sess)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
