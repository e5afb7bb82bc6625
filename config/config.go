// Package config defines the runtime configuration for lineack and
// provides helpers for parsing and validating the listen port.
package config

import (
	"strconv"
	"strings"
	"time"

	lerrors "lineack/internal/errors"
	"lineack/util"
)

// Config holds every tuneable for a single responder run.
type Config struct {
	// ── Listener ─────────────────────────────────────────────────────
	Port        int
	BindHost    string        // empty → all interfaces
	IdleTimeout time.Duration // per-accept wait; 0 waits forever

	// ── Session ──────────────────────────────────────────────────────
	SessionTimeout time.Duration // read+write deadline; 0 disables
	Reply          string
	NoAddr         bool // omit the local address suffix from Reply
	MaxLineBytes   int
	Isolate        bool // keep accepting after a session error

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// Default returns a Config pre-filled from defaults.go.
func Default() *Config {
	return &Config{
		IdleTimeout:  DefaultIdleTimeout,
		Reply:        DefaultReply,
		MaxLineBytes: DefaultMaxLineBytes,
		Verbose:      DefaultVerbosity,
	}
}

// ParsePort accepts a decimal port number in 1-65535.
func ParsePort(spec string) (int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, &lerrors.ConfigError{
			Field:   "port",
			Message: "port is required",
			Hint:    "usage: lineack [options] <port>",
		}
	}
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, &lerrors.ConfigError{
			Field:   "port",
			Value:   spec,
			Message: "not a number",
			Hint:    "use a port between 1 and 65535",
		}
	}
	if port < 1 || port > 65535 {
		return 0, &lerrors.ConfigError{
			Field:   "port",
			Value:   port,
			Message: "out of range 1-65535",
		}
	}
	return port, nil
}

// Address returns the host:port the listener binds.
func (c *Config) Address() string {
	return util.FormatAddr(c.BindHost, c.Port)
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port == 0 {
		return &lerrors.ConfigError{
			Field:   "port",
			Message: "port is required",
			Hint:    "usage: lineack [options] <port>",
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &lerrors.ConfigError{Field: "port", Value: c.Port, Message: "out of range 1-65535"}
	}
	if c.IdleTimeout < 0 {
		return &lerrors.ConfigError{
			Field:   "timeout",
			Value:   c.IdleTimeout,
			Message: "must not be negative",
			Hint:    "use 0 to wait for connections indefinitely",
		}
	}
	if c.SessionTimeout < 0 {
		return &lerrors.ConfigError{Field: "session-timeout", Value: c.SessionTimeout, Message: "must not be negative"}
	}
	if c.MaxLineBytes < 1 {
		return &lerrors.ConfigError{Field: "max-line", Value: c.MaxLineBytes, Message: "must be at least 1 byte"}
	}
	if c.Reply == "" && c.NoAddr {
		return &lerrors.ConfigError{
			Field:   "reply",
			Message: "reply would be empty",
			Hint:    "set --reply or drop --no-addr",
		}
	}
	return nil
}
