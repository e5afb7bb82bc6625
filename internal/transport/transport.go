// Package transport owns the listening socket.  It turns the idle
// timeout into a per-accept deadline and normalises accept failures
// into the errors the accept loop branches on.
package transport

import "net"

// Listener hands out inbound connections one at a time.
type Listener interface {
	// Accept waits for the next connection.  It returns an error
	// wrapping errors.ErrIdleTimeout when the idle window passes with
	// no client, and errors.ErrListenerClosed after Close.
	Accept() (net.Conn, error)

	// Close stops the listener.  Pending Accept calls return.
	Close() error

	// Addr is the bound local address.
	Addr() net.Addr
}
