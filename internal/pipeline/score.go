package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abadojack/whatlanggo"
	"go.uber.org/zap"

	"github.com/sells-group/token-scout/internal/model"
	"github.com/sells-group/token-scout/internal/monitoring"
	"github.com/sells-group/token-scout/internal/resilience"
	"github.com/sells-group/token-scout/pkg/mlscore"
)

// Scorer labels for metrics.
const (
	scorerDelegate  = "delegate"
	scorerHeuristic = "heuristic"
	scorerDemo      = "demo"
)

// ScoreRaw decodes a request body and scores it. A body that does not decode
// or fails validation yields the demo score.
func (a *Analyzer) ScoreRaw(ctx context.Context, body []byte) model.ScoreResult {
	var req model.ScoreRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return a.demoScore(monitoring.ReasonBadRequest, err)
	}
	return a.Score(ctx, req)
}

// Score asks the delegate first and falls back to the local heuristic. It
// always returns a well-formed result.
func (a *Analyzer) Score(ctx context.Context, req model.ScoreRequest) model.ScoreResult {
	if err := a.validate.Struct(req); err != nil {
		return a.demoScore(monitoring.ReasonBadRequest, err)
	}
	a.flagLanguage(req)

	if a.delegate != nil {
		if res, ok := a.scoreDelegate(ctx, req); ok {
			a.metrics.Score(scorerDelegate, res.Probability)
			return res
		}
	}

	res, err := resilience.Guard(ctx, "score", func(context.Context) (model.ScoreResult, error) {
		return a.heuristic.Score(req), nil
	})
	if err != nil {
		return a.demoScore(monitoring.ReasonPanic, err)
	}
	a.metrics.Score(scorerHeuristic, res.Probability)
	return res
}

func (a *Analyzer) scoreDelegate(ctx context.Context, req model.ScoreRequest) (model.ScoreResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, a.delegateTimeout)
	defer cancel()

	res, err := resilience.Guard(ctx, "delegate", func(ctx context.Context) (model.ScoreResult, error) {
		return a.delegate.Score(ctx, req)
	})
	a.metrics.Upstream(mlscore.Source, err)
	if err != nil {
		zap.L().Info("pipeline: scoring delegate unavailable, using heuristic",
			zap.String("class", string(resilience.Classify(err))),
			zap.Error(err),
		)
		return model.ScoreResult{}, false
	}
	return res, true
}

// flagLanguage logs and counts requests whose text is reliably detected as
// something other than English. Keyword lists are English-only.
func (a *Analyzer) flagLanguage(req model.ScoreRequest) {
	text := strings.TrimSpace(req.Name + " " + req.Description)
	if text == "" {
		return
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() || info.Lang == whatlanggo.Eng {
		return
	}
	a.metrics.NonEnglish()
	zap.L().Debug("pipeline: non-english token text",
		zap.String("lang", info.Lang.Iso6391()),
		zap.Float64("confidence", info.Confidence),
	)
}

func (a *Analyzer) demoScore(reason string, err error) model.ScoreResult {
	a.metrics.Fallback(ArtifactScore, reason)
	a.metrics.Score(scorerDemo, a.demo.Score().Probability)
	zap.L().Info("pipeline: serving demo score", zap.String("reason", reason), zap.Error(err))
	return a.demo.Score()
}
