package core

import (
	"lineack/config"
	"lineack/internal/capability"
	"lineack/internal/metrics"
	"lineack/internal/retry"
	"lineack/util"
)

// Build constructs the responder from a validated configuration.
func Build(cfg *config.Config, logger *util.Logger) (Mode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &ListenMode{
		Address:        cfg.Address(),
		IdleTimeout:    cfg.IdleTimeout,
		SessionTimeout: cfg.SessionTimeout,
		Isolate:        cfg.Isolate,
		Capability: &capability.Ack{
			Reply:        cfg.Reply,
			NoAddr:       cfg.NoAddr,
			MaxLineBytes: cfg.MaxLineBytes,
		},
		Logger:  logger,
		Metrics: metrics.New(),
	}
	if cfg.Isolate {
		m.Backoff = retry.AcceptBackoff(config.DefaultAcceptBackoffMax, config.DefaultAcceptRetries)
	}
	return m, nil
}
