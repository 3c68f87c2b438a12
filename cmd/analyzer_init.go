package main

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/token-scout/internal/config"
	"github.com/sells-group/token-scout/internal/demo"
	"github.com/sells-group/token-scout/internal/fetcher"
	"github.com/sells-group/token-scout/internal/monitoring"
	"github.com/sells-group/token-scout/internal/pipeline"
	"github.com/sells-group/token-scout/internal/risk"
	"github.com/sells-group/token-scout/internal/scorer"
	"github.com/sells-group/token-scout/pkg/birdeye"
	"github.com/sells-group/token-scout/pkg/helius"
	"github.com/sells-group/token-scout/pkg/mlscore"
	"github.com/sells-group/token-scout/pkg/rugcheck"
)

// analyzerEnv holds the analyzer and the collectors it reports to.
type analyzerEnv struct {
	Analyzer *pipeline.Analyzer
	Metrics  *monitoring.Metrics
}

// initAnalyzer builds the clients and the analyzer from c. Modes are
// resolved here, once.
func initAnalyzer(c *config.Config, command string) (*analyzerEnv, error) {
	if err := c.Validate(command); err != nil {
		return nil, err
	}

	heuristic, err := scorer.NewHeuristic(c.Scoring)
	if err != nil {
		return nil, err
	}
	dataset, err := demo.Load()
	if err != nil {
		return nil, err
	}
	metrics := monitoring.NewMetrics()

	opts := pipeline.Options{
		LiveToken:       c.LiveToken(),
		LiveRisk:        c.LiveRisk(),
		RiskTimeout:     c.RugCheck.Timeout(),
		Classifier:      risk.NewClassifier(risk.Thresholds{Medium: c.Risk.MediumThreshold, High: c.Risk.HighThreshold}),
		Heuristic:       heuristic,
		DelegateTimeout: c.Scoring.DelegateTimeout(),
		Demo:            dataset,
		Metrics:         metrics,
	}

	if opts.LiveToken {
		fo := fetcher.Options{
			Helius: helius.NewClient(c.Helius.Key,
				helius.WithBaseURL(c.Helius.BaseURL),
				helius.WithRateLimit(c.Helius.RatePerSec)),
			HeliusTimeout:  c.Helius.Timeout(),
			BirdeyeTimeout: c.Birdeye.Timeout(),
			Metrics:        metrics,
		}
		if c.Birdeye.Configured() {
			fo.Birdeye = birdeye.NewClient(c.Birdeye.Key,
				birdeye.WithBaseURL(c.Birdeye.BaseURL),
				birdeye.WithRateLimit(c.Birdeye.RatePerSec))
		}
		opts.Fetcher = fetcher.New(fo)
	}
	if opts.LiveRisk {
		opts.RugCheck = rugcheck.NewClient(c.RugCheck.Key,
			rugcheck.WithBaseURL(c.RugCheck.BaseURL),
			rugcheck.WithRateLimit(c.RugCheck.RatePerSec))
	}
	if c.Scoring.DelegateURL != "" {
		opts.Delegate = mlscore.NewClient(c.Scoring.DelegateURL)
	}

	analyzer, err := pipeline.New(opts)
	if err != nil {
		return nil, eris.Wrap(err, "init analyzer")
	}

	zap.L().Info("analyzer ready",
		zap.String("mode", c.Mode),
		zap.Bool("live_token", opts.LiveToken),
		zap.Bool("live_risk", opts.LiveRisk),
		zap.Bool("birdeye", c.Birdeye.Configured()),
		zap.String("delegate", c.Scoring.DelegateURL),
	)

	return &analyzerEnv{Analyzer: analyzer, Metrics: metrics}, nil
}
