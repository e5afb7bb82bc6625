// Package session represents one accepted connection and its single
// request/response exchange.
//
// Capabilities operate on a Session rather than a raw net.Conn, so
// byte accounting, line framing and teardown live in one place.
package session

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	lerrors "lineack/internal/errors"
	"lineack/internal/metrics"
	"lineack/util"
)

// Session encapsulates the runtime context for a single connection.
type Session struct {
	Conn    net.Conn
	Reader  *bufio.Reader
	Logger  *util.Logger
	Metrics *metrics.Collector
	Started time.Time

	closeOnce sync.Once
}

// New creates a Session bound to conn.  The session counts as open in
// m until Close.
func New(conn net.Conn, logger *util.Logger, m *metrics.Collector) *Session {
	m.SessionOpened()
	return &Session{
		Conn:    conn,
		Reader:  util.GetReader(conn),
		Logger:  logger,
		Metrics: m,
		Started: time.Now(),
	}
}

// RemoteAddr is the peer's address.
func (s *Session) RemoteAddr() string { return s.Conn.RemoteAddr().String() }

// LocalAddr is the address the peer connected to.
func (s *Session) LocalAddr() string { return s.Conn.LocalAddr().String() }

// SetDeadline bounds every remaining read and write of the session.
func (s *Session) SetDeadline(t time.Time) error { return s.Conn.SetDeadline(t) }

// ReadLine reads up to the next '\n' and returns the line without its
// terminator (a trailing '\r' is dropped too).  EOF after some data
// ends the line; EOF before any data returns an error wrapping io.EOF.
// Lines longer than max bytes fail with errors.ErrLineTooLong.
func (s *Session) ReadLine(max int) (string, error) {
	var buf []byte
	for {
		frag, err := s.Reader.ReadSlice('\n')
		buf = append(buf, frag...)
		s.Metrics.BytesReceived(int64(len(frag)))

		switch {
		case err == nil, errors.Is(err, io.EOF) && len(buf) > 0:
			line := trimEOL(string(buf))
			if len(line) > max {
				return "", lerrors.Wrap("read", s.RemoteAddr(), lerrors.ErrLineTooLong)
			}
			return line, nil
		case errors.Is(err, bufio.ErrBufferFull):
			if len(buf) > max {
				return "", lerrors.Wrap("read", s.RemoteAddr(), lerrors.ErrLineTooLong)
			}
		default:
			return "", lerrors.Wrap("read", s.RemoteAddr(), err)
		}
	}
}

// WriteString writes msg in full.  Partial writes are not resumed.
func (s *Session) WriteString(msg string) (int, error) {
	n, err := io.WriteString(s.Conn, msg)
	s.Metrics.BytesSent(int64(n))
	if err != nil {
		return n, lerrors.Wrap("write", s.RemoteAddr(), err)
	}
	return n, nil
}

// Close shuts both directions of the connection and releases the
// session's buffer.  It is safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if tc, ok := s.Conn.(*net.TCPConn); ok {
			tc.CloseWrite() //nolint:errcheck // flush FIN before the full close
		}
		err = s.Conn.Close()
		util.PutReader(s.Reader)
		s.Reader = nil
		s.Metrics.SessionClosed()
		s.Logger.Debug("session %s closed after %s", s.RemoteAddr(), time.Since(s.Started).Truncate(time.Microsecond))
	})
	return err
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
