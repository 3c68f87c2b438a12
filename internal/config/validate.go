package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the settings the given command depends on.
func (c *Config) Validate(command string) error {
	var errs []string

	switch command {
	case "serve", "mlserve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	case "analyze":
	default:
		return eris.Errorf("config: unknown mode %q", command)
	}

	if command != "mlserve" {
		errs = append(errs, c.validateSources()...)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateSources() []string {
	var errs []string

	if c.Mode == ModeLive {
		if !c.Helius.Configured() {
			errs = append(errs, "helius.key is required in live mode")
		}
		if !c.RugCheck.Configured() {
			errs = append(errs, "rugcheck.key is required in live mode")
		}
	}

	sources := []struct {
		name string
		src  SourceConfig
	}{
		{"helius", c.Helius},
		{"birdeye", c.Birdeye},
		{"rugcheck", c.RugCheck},
	}
	for _, s := range sources {
		if s.src.TimeoutSecs <= 0 {
			errs = append(errs, fmt.Sprintf("%s.timeout_secs must be > 0", s.name))
		}
		if s.src.RatePerSec < 0 {
			errs = append(errs, fmt.Sprintf("%s.rate_per_sec must be >= 0", s.name))
		}
	}

	if c.Scoring.DelegateTimeoutSecs <= 0 {
		errs = append(errs, "scoring.delegate_timeout_secs must be > 0")
	}

	if c.Risk.MediumThreshold <= 0 || c.Risk.HighThreshold > 100 || c.Risk.MediumThreshold >= c.Risk.HighThreshold {
		errs = append(errs, "risk thresholds must satisfy 0 < medium_threshold < high_threshold <= 100")
	}

	return errs
}
