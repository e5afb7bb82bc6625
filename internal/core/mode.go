// Package core is the orchestration layer.  It composes the listener,
// sessions and the acknowledgement capability into the responder loop
// and provides a builder that assembles it from a Config.
//
// Architecture layers (bottom → top):
//
//	transport  →  capability  →  session  →  core  →  cmd (CLI)
package core

import "context"

// Mode is a complete operational mode; it owns its lifecycle from
// bind to teardown.
type Mode interface {
	Run(ctx context.Context) error
}

// State is the responder's lifecycle phase.
//
//	init → listening → (accepted → listening)* → closed
type State int32

const (
	StateInit State = iota
	StateListening
	StateAccepted
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateListening:
		return "listening"
	case StateAccepted:
		return "accepted"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
