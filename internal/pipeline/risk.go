package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/token-scout/internal/address"
	"github.com/sells-group/token-scout/internal/model"
	"github.com/sells-group/token-scout/internal/monitoring"
	"github.com/sells-group/token-scout/internal/resilience"
	"github.com/sells-group/token-scout/pkg/rugcheck"
)

// Risk returns the rug risk assessment for id, or the demo assessment when
// RugCheck is disabled, the address is malformed, or the scan fails.
func (a *Analyzer) Risk(ctx context.Context, id string) (model.RiskAssessment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.RiskAssessment{}, ErrMissingIdentifier
	}
	log := zap.L().With(zap.String("mint", id))

	if !a.liveRisk {
		return a.demoRisk(log, monitoring.ReasonDemoMode, nil), nil
	}

	res := address.Validate(id)
	if !res.Valid {
		log.Info("pipeline: invalid address", zap.String("reason", res.Reason))
		return a.demoRisk(log, monitoring.ReasonInvalidAddress, nil), nil
	}

	assessment, err := resilience.Guard(ctx, "risk", func(ctx context.Context) (model.RiskAssessment, error) {
		ctx, cancel := context.WithTimeout(ctx, a.riskTimeout)
		defer cancel()

		payload, err := a.rugcheck.Scan(ctx, res.Normalized)
		a.metrics.Upstream(rugcheck.Source, err)
		if err != nil {
			return model.RiskAssessment{}, err
		}
		return a.assess(payload)
	})
	if err != nil {
		reason := monitoring.ReasonUpstream
		if eris.Is(err, resilience.ErrPanic) {
			reason = monitoring.ReasonPanic
		}
		return a.demoRisk(log, reason, err), nil
	}
	return assessment, nil
}

func (a *Analyzer) assess(payload json.RawMessage) (model.RiskAssessment, error) {
	assessment := a.classifier.Assess(payload)
	if assessment.Risk == model.RiskUnknown {
		return model.RiskAssessment{}, resilience.Malformed(rugcheck.Source, eris.New("scan is not a json object"))
	}
	return assessment, nil
}

func (a *Analyzer) demoRisk(log *zap.Logger, reason string, err error) model.RiskAssessment {
	a.metrics.Fallback(ArtifactRisk, reason)
	log.Info("pipeline: serving demo risk",
		zap.String("reason", reason),
		zap.String("class", string(resilience.Classify(err))),
		zap.Error(err),
	)
	return a.demo.Risk()
}
