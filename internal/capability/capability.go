// Package capability defines what happens over an accepted session.
// A Capability operates on a Session rather than a raw net.Conn, which
// keeps it testable and decoupled from the listener.
package capability

import (
	"context"

	"lineack/internal/session"
)

// Capability handles a single session.
type Capability interface {
	// Handle runs one exchange against the session.  It must not
	// close the session; the caller owns teardown.
	Handle(ctx context.Context, sess *session.Session) error
}
