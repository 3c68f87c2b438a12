// Package fetcher gathers the raw metadata documents for a mint from the
// metadata sources.
package fetcher

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/token-scout/internal/monitoring"
	"github.com/sells-group/token-scout/internal/resilience"
	"github.com/sells-group/token-scout/pkg/birdeye"
	"github.com/sells-group/token-scout/pkg/helius"
)

const defaultTimeout = 10 * time.Second

// Aggregate holds the raw documents returned by each source. A nil field
// means that source failed or is not configured.
type Aggregate struct {
	Helius  json.RawMessage
	Birdeye json.RawMessage
}

// Empty reports whether every source came back empty.
func (a Aggregate) Empty() bool {
	return a.Helius == nil && a.Birdeye == nil
}

// Options configures a Fetcher. Birdeye is optional.
type Options struct {
	Helius         helius.Client
	Birdeye        birdeye.Client
	HeliusTimeout  time.Duration
	BirdeyeTimeout time.Duration
	Metrics        *monitoring.Metrics
}

// Fetcher queries Helius and Birdeye concurrently. It never fails: each
// source failure is logged, counted and turned into a nil document.
type Fetcher struct {
	helius         helius.Client
	birdeye        birdeye.Client
	heliusTimeout  time.Duration
	birdeyeTimeout time.Duration
	metrics        *monitoring.Metrics
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	f := &Fetcher{
		helius:         opts.Helius,
		birdeye:        opts.Birdeye,
		heliusTimeout:  opts.HeliusTimeout,
		birdeyeTimeout: opts.BirdeyeTimeout,
		metrics:        opts.Metrics,
	}
	if f.heliusTimeout <= 0 {
		f.heliusTimeout = defaultTimeout
	}
	if f.birdeyeTimeout <= 0 {
		f.birdeyeTimeout = defaultTimeout
	}
	return f
}

// Fetch runs every configured source for mint, each under its own timeout.
func (f *Fetcher) Fetch(ctx context.Context, mint string) Aggregate {
	var agg Aggregate
	var g errgroup.Group

	if f.helius != nil {
		g.Go(func() error {
			agg.Helius = f.call(ctx, helius.Source, mint, f.heliusTimeout, f.helius.GetAsset)
			return nil
		})
	}
	if f.birdeye != nil {
		g.Go(func() error {
			agg.Birdeye = f.call(ctx, birdeye.Source, mint, f.birdeyeTimeout, f.birdeye.TokenOverview)
			return nil
		})
	}

	_ = g.Wait()
	return agg
}

type sourceFunc func(ctx context.Context, mint string) (json.RawMessage, error)

func (f *Fetcher) call(ctx context.Context, source, mint string, timeout time.Duration, fn sourceFunc) json.RawMessage {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	doc, err := resilience.Guard(ctx, source, func(ctx context.Context) (json.RawMessage, error) {
		return fn(ctx, mint)
	})
	f.metrics.Upstream(source, err)

	if err != nil {
		zap.L().Warn("fetcher: source failed",
			zap.String("source", source),
			zap.String("mint", mint),
			zap.String("class", string(resilience.Classify(err))),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil
	}

	zap.L().Debug("fetcher: source ok",
		zap.String("source", source),
		zap.String("mint", mint),
		zap.Duration("elapsed", time.Since(start)),
	)
	return doc
}
