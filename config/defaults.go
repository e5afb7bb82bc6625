package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultIdleTimeout is how long one accept waits before the
	// listener shuts down for lack of traffic.
	DefaultIdleTimeout = 10 * time.Second

	// DefaultReply is the acknowledgement prefix; the accepted socket's
	// local address is appended unless disabled.
	DefaultReply = "Thank you for connecting to "

	// DefaultMaxLineBytes caps a single request line.
	DefaultMaxLineBytes = 64 * 1024

	// DefaultVerbosity prints phase transitions (waiting, connected,
	// timed out) without per-byte detail.
	DefaultVerbosity = 1

	// DefaultAcceptBackoffMax caps the retry delay for temporary accept
	// errors in isolate mode.
	DefaultAcceptBackoffMax = time.Second

	// DefaultAcceptRetries bounds consecutive temporary accept failures.
	DefaultAcceptRetries = 8
)
