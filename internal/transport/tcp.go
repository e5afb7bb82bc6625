package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	lerrors "lineack/internal/errors"
)

// TCPListener is a TCP listener whose every Accept is bounded by an
// idle timeout.
type TCPListener struct {
	ln          *net.TCPListener
	IdleTimeout time.Duration // 0 waits indefinitely
}

// ListenTCP binds address and returns a listener with the given idle
// timeout.
func ListenTCP(ctx context.Context, address string, idle time.Duration) (*TCPListener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, lerrors.Wrap("listen", address, err)
	}
	return &TCPListener{ln: ln.(*net.TCPListener), IdleTimeout: idle}, nil
}

// Accept re-arms the idle deadline and waits for one connection.
func (l *TCPListener) Accept() (net.Conn, error) {
	var deadline time.Time
	if l.IdleTimeout > 0 {
		deadline = time.Now().Add(l.IdleTimeout)
	}
	if err := l.ln.SetDeadline(deadline); err != nil {
		return nil, l.classify(err)
	}

	conn, err := l.ln.Accept()
	if err != nil {
		return nil, l.classify(err)
	}
	return conn, nil
}

func (l *TCPListener) classify(err error) error {
	switch {
	case lerrors.Is(err, net.ErrClosed):
		return lerrors.ErrListenerClosed
	case lerrors.IsTimeout(err):
		return fmt.Errorf("%w (%s)", lerrors.ErrIdleTimeout, l.IdleTimeout)
	default:
		return lerrors.Wrap("accept", l.ln.Addr().String(), err)
	}
}

// Close stops the listener.
func (l *TCPListener) Close() error { return l.ln.Close() }

// Addr returns the bound address.
func (l *TCPListener) Addr() net.Addr { return l.ln.Addr() }

// Port returns the bound TCP port.
func (l *TCPListener) Port() int { return l.ln.Addr().(*net.TCPAddr).Port }
