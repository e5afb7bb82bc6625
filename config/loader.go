package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags and the positional port  (cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv overlays LINEACK_* environment variables onto cfg.  Only
// non-empty, well-formed values override.  Call it BEFORE flag parsing
// so flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := envInt("LINEACK_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("LINEACK_BIND"); v != "" {
		cfg.BindHost = v
	}
	if d, ok := envDuration("LINEACK_TIMEOUT"); ok {
		cfg.IdleTimeout = d
	}
	if d, ok := envDuration("LINEACK_SESSION_TIMEOUT"); ok {
		cfg.SessionTimeout = d
	}
	if v, ok := os.LookupEnv("LINEACK_REPLY"); ok && v != "" {
		cfg.Reply = v
	}
	if envBool("LINEACK_NO_ADDR") {
		cfg.NoAddr = true
	}
	if envBool("LINEACK_ISOLATE") {
		cfg.Isolate = true
	}
	if v := envInt("LINEACK_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

// ParseDuration accepts Go durations ("1500ms", "10s") or bare
// seconds ("10").  Negative values are rejected.
func ParseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative duration %q", v)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", v)
	}
	return d, nil
}
