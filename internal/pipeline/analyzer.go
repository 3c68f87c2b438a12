// Package pipeline sequences address validation, metadata fetching, risk
// classification and scoring, substituting demo data whenever a stage fails.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/token-scout/internal/address"
	"github.com/sells-group/token-scout/internal/demo"
	"github.com/sells-group/token-scout/internal/fetcher"
	"github.com/sells-group/token-scout/internal/model"
	"github.com/sells-group/token-scout/internal/monitoring"
	"github.com/sells-group/token-scout/internal/risk"
	"github.com/sells-group/token-scout/pkg/mlscore"
	"github.com/sells-group/token-scout/pkg/rugcheck"
)

// ErrMissingIdentifier is the only error surfaced to callers: the request
// carried no mint address at all.
var ErrMissingIdentifier = eris.New("pipeline: mint address is required")

// Artifacts, as used in fallback metrics and logs.
const (
	ArtifactToken = "token"
	ArtifactRisk  = "risk"
	ArtifactScore = "score"
)

const (
	defaultRiskTimeout     = 10 * time.Second
	defaultDelegateTimeout = 5 * time.Second
)

// MetadataFetcher returns the raw metadata documents for a mint.
type MetadataFetcher interface {
	Fetch(ctx context.Context, mint string) fetcher.Aggregate
}

// Scorer is a local, pure scorer.
type Scorer interface {
	Score(req model.ScoreRequest) model.ScoreResult
}

// Options wires an Analyzer. Modes are decided by the caller once, at
// construction, and never re-read.
type Options struct {
	// LiveToken enables the metadata sources; otherwise Token serves demo data.
	LiveToken bool
	// LiveRisk enables RugCheck; otherwise Risk serves demo data.
	LiveRisk bool

	Fetcher     MetadataFetcher
	RugCheck    rugcheck.Client
	RiskTimeout time.Duration
	Classifier  *risk.Classifier

	Heuristic       Scorer
	Delegate        mlscore.Client // optional
	DelegateTimeout time.Duration

	Demo    *demo.Dataset
	Metrics *monitoring.Metrics
}

// Analyzer is the token analysis orchestrator. It holds no per-request state
// and is safe for concurrent use.
type Analyzer struct {
	liveToken bool
	liveRisk  bool

	fetcher     MetadataFetcher
	rugcheck    rugcheck.Client
	riskTimeout time.Duration
	classifier  *risk.Classifier

	heuristic       Scorer
	delegate        mlscore.Client
	delegateTimeout time.Duration

	demo     *demo.Dataset
	metrics  *monitoring.Metrics
	validate *validator.Validate
}

// New checks opts and builds an Analyzer.
func New(opts Options) (*Analyzer, error) {
	var errs []string
	if opts.Demo == nil {
		errs = append(errs, "demo dataset is required")
	}
	if opts.Heuristic == nil {
		errs = append(errs, "heuristic scorer is required")
	}
	if opts.LiveToken && opts.Fetcher == nil {
		errs = append(errs, "live token mode requires a fetcher")
	}
	if opts.LiveRisk && opts.RugCheck == nil {
		errs = append(errs, "live risk mode requires a rugcheck client")
	}
	if len(errs) > 0 {
		return nil, eris.Errorf("pipeline: invalid options: %s", strings.Join(errs, "; "))
	}

	a := &Analyzer{
		liveToken:       opts.LiveToken,
		liveRisk:        opts.LiveRisk,
		fetcher:         opts.Fetcher,
		rugcheck:        opts.RugCheck,
		riskTimeout:     opts.RiskTimeout,
		classifier:      opts.Classifier,
		heuristic:       opts.Heuristic,
		delegate:        opts.Delegate,
		delegateTimeout: opts.DelegateTimeout,
		demo:            opts.Demo,
		metrics:         opts.Metrics,
		validate:        validator.New(),
	}
	if a.riskTimeout <= 0 {
		a.riskTimeout = defaultRiskTimeout
	}
	if a.delegateTimeout <= 0 {
		a.delegateTimeout = defaultDelegateTimeout
	}
	if a.classifier == nil {
		a.classifier = risk.NewClassifier(risk.DefaultThresholds())
	}
	return a, nil
}

// Analyze runs the token, risk and score stages for one mint and bundles
// the results into a report. A malformed address gets the demo report
// without touching any upstream.
func (a *Analyzer) Analyze(ctx context.Context, id string) (model.Report, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Report{}, ErrMissingIdentifier
	}
	if res := address.Validate(id); !res.Valid {
		log := zap.L().With(zap.String("mint", id))
		log.Info("pipeline: invalid address", zap.String("reason", res.Reason))
		return model.NewReport(id,
			a.demoToken(log, monitoring.ReasonInvalidAddress, nil),
			a.demoRisk(log, monitoring.ReasonInvalidAddress, nil),
			a.demoScore(monitoring.ReasonInvalidAddress, nil),
		), nil
	}

	token, err := a.Token(ctx, id)
	if err != nil {
		return model.Report{}, err
	}
	rug, err := a.Risk(ctx, id)
	if err != nil {
		return model.Report{}, err
	}
	score := a.Score(ctx, model.NewScoreRequest(token, rug))

	return model.NewReport(id, token, rug, score), nil
}
