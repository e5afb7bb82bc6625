// Package cmd wires up the CLI flags and starts the responder.
package cmd

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"lineack/config"
	"lineack/internal/core"
	lerrors "lineack/internal/errors"
	"lineack/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X lineack/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the responder until it times out, the
// context is cancelled, or a fatal error occurs.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("lineack", flag.ContinueOnError)

	// ── listener ─────────────────────────────────────────────────
	fs.StringVarP(&cfg.BindHost, "bind", "s", cfg.BindHost, "Local address to bind (default all interfaces)")
	timeout := fs.StringP("timeout", "w", "", "Idle timeout per accept, e.g. 10s or 10 (default 10s, 0 waits forever)")

	// ── session ──────────────────────────────────────────────────
	sessionTimeout := fs.String("session-timeout", "", "Read/write deadline per session (default none)")
	fs.StringVar(&cfg.Reply, "reply", cfg.Reply, "Acknowledgement text")
	fs.BoolVar(&cfg.NoAddr, "no-addr", cfg.NoAddr, "Do not append the local address to the reply")
	fs.IntVar(&cfg.MaxLineBytes, "max-line", cfg.MaxLineBytes, "Maximum request line length in bytes")
	fs.BoolVar(&cfg.Isolate, "isolate", cfg.Isolate, "Keep accepting after a failed session")

	// ── output ───────────────────────────────────────────────────
	var extraVerbose int
	fs.CountVarP(&extraVerbose, "verbose", "v", "Increase verbosity (repeatable)")
	quiet := fs.BoolP("quiet", "q", false, "Only print errors")

	var showVersion, showHelp, dryRun bool
	fs.BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("lineack %s\n", version)
		return nil
	}

	if err := applyDurations(cfg, *timeout, *sessionTimeout); err != nil {
		return err
	}
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}
	cfg.Verbose += extraVerbose
	if *quiet {
		cfg.Verbose = 0
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := util.NewLogger(cfg.Verbose)

	if dryRun {
		logger.Info("configuration OK: listen on %s, idle timeout %s", cfg.Address(), cfg.IdleTimeout)
		return nil
	}

	// ── run ──────────────────────────────────────────────────────
	mode, err := core.Build(cfg, logger)
	if err != nil {
		return err
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	switch len(remaining) {
	case 0:
		// LINEACK_PORT may have supplied it; Validate reports if not.
		return nil
	case 1:
		port, err := config.ParsePort(remaining[0])
		if err != nil {
			return err
		}
		cfg.Port = port
		return nil
	default:
		return &lerrors.ConfigError{
			Field:   "port",
			Value:   remaining,
			Message: "expected exactly one port argument",
			Hint:    "usage: lineack [options] <port>",
		}
	}
}

func applyDurations(cfg *config.Config, idle, session string) error {
	if idle != "" {
		d, err := config.ParseDuration(idle)
		if err != nil {
			return &lerrors.ConfigError{Field: "timeout", Value: idle, Message: err.Error()}
		}
		cfg.IdleTimeout = d
	}
	if session != "" {
		d, err := config.ParseDuration(session)
		if err != nil {
			return &lerrors.ConfigError{Field: "session-timeout", Value: session, Message: err.Error()}
		}
		cfg.SessionTimeout = d
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `lineack – one-line TCP acknowledgement responder v%s

Waits for a client, reads one line, replies with a fixed
acknowledgement and closes.  Exits cleanly once no client arrives
within the idle timeout.

Usage:
  lineack [options] <port>

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  lineack 5000                                Listen on 5000, 10s idle timeout
  lineack -w 1s 5001                          Give up after 1s without a client
  lineack --isolate --session-timeout 5s 5000 Survive misbehaving clients
  echo hello | nc localhost 5000              Talk to it
`)
}
