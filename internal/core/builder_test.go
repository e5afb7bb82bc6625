package core

import (
	"testing"
	"time"

	"lineack/config"
	"lineack/internal/capability"
	lerrors "lineack/internal/errors"
	"lineack/util"
)

// TestBuild_Listen verifies Build assembles a ListenMode from config.
func TestBuild_Listen(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 5000
	cfg.BindHost = "127.0.0.1"
	cfg.IdleTimeout = 10 * time.Second

	mode, err := Build(cfg, util.NewLogger(0))
	if err != nil {
		t.Fatal(err)
	}
	lm, ok := mode.(*ListenMode)
	if !ok {
		t.Fatalf("expected *ListenMode, got %T", mode)
	}
	if lm.Address != "127.0.0.1:5000" {
		t.Errorf("address = %q", lm.Address)
	}
	if lm.IdleTimeout != 10*time.Second {
		t.Errorf("idle timeout = %v", lm.IdleTimeout)
	}
	ack, ok := lm.Capability.(*capability.Ack)
	if !ok {
		t.Fatalf("expected *capability.Ack, got %T", lm.Capability)
	}
	if ack.Reply != config.DefaultReply || ack.MaxLineBytes != config.DefaultMaxLineBytes {
		t.Errorf("ack = %+v", ack)
	}
	if lm.Backoff != nil {
		t.Error("backoff should only be set in isolate mode")
	}
	if lm.State() != StateInit {
		t.Errorf("state = %s, want init", lm.State())
	}
}

// TestBuild_Isolate verifies isolate mode carries an accept backoff.
func TestBuild_Isolate(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 5000
	cfg.Isolate = true

	mode, err := Build(cfg, util.NewLogger(0))
	if err != nil {
		t.Fatal(err)
	}
	lm := mode.(*ListenMode)
	if !lm.Isolate || lm.Backoff == nil {
		t.Errorf("isolate = %v, backoff = %v", lm.Isolate, lm.Backoff)
	}
}

// TestBuild_InvalidConfig verifies a config error surfaces before any
// listener exists.
func TestBuild_InvalidConfig(t *testing.T) {
	cfg := config.Default() // no port

	_, err := Build(cfg, util.NewLogger(0))
	if !lerrors.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateInit:      "init",
		StateListening: "listening",
		StateAccepted:  "accepted",
		StateClosed:    "closed",
		State(42):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d) = %q, want %q", s, got, want)
		}
	}
}
