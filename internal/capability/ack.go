package capability

import (
	"context"
	"io"

	lerrors "lineack/internal/errors"
	"lineack/internal/session"
)

// Ack reads one request line and answers with a fixed acknowledgement.
// The content of the line never changes the reply.
type Ack struct {
	Reply        string // acknowledgement text
	NoAddr       bool   // if false, the session's local address is appended
	MaxLineBytes int
}

// Message returns the reply for a session accepted on localAddr.
func (a *Ack) Message(localAddr string) string {
	if a.NoAddr {
		return a.Reply
	}
	return a.Reply + localAddr
}

// Handle reads the request line and writes the reply once, without a
// trailing newline.  A peer that closes before sending anything still
// gets the reply.
func (a *Ack) Handle(_ context.Context, sess *session.Session) error {
	line, err := sess.ReadLine(a.MaxLineBytes)
	switch {
	case err == nil:
		sess.Logger.Info("%s: %s", sess.RemoteAddr(), line)
	case lerrors.Is(err, io.EOF):
		sess.Logger.Verbose("%s sent no data", sess.RemoteAddr())
	default:
		return err
	}

	n, err := sess.WriteString(a.Message(sess.LocalAddr()))
	if err != nil {
		return err
	}
	sess.Logger.Verbose("replied %d bytes to %s", n, sess.RemoteAddr())
	return nil
}
