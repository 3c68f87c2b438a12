package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/token-scout/internal/config"
	"github.com/sells-group/token-scout/internal/model"
)

// Verdicts appended to the rationale, by final probability.
const (
	VerdictStrong   = "Strong pump potential detected!"
	VerdictModerate = "Moderate potential with some risk factors."
	VerdictHighRisk = "High risk detected, proceed with caution."
)

// Heuristic is the local additive scorer. It is pure: the same request
// always yields the same result, and it performs no I/O.
type Heuristic struct {
	cfg  config.ScoringConfig
	hype *Matcher
	scam *Matcher
}

// NewHeuristic validates cfg and builds the keyword matchers.
func NewHeuristic(cfg config.ScoringConfig) (*Heuristic, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	hype, err := NewMatcher(cfg.HypeKeywords)
	if err != nil {
		return nil, err
	}
	scam, err := NewMatcher(cfg.ScamKeywords)
	if err != nil {
		return nil, err
	}
	return &Heuristic{cfg: cfg, hype: hype, scam: scam}, nil
}

// factorList applies labelled adjustments to a running score in evaluation
// order. The order matters: float addition is not associative.
type factorList struct {
	labels  []string
	weights map[string]float64
	score   float64
}

func (f *factorList) add(label string, weight float64) {
	if f.weights == nil {
		f.weights = make(map[string]float64)
	}
	f.labels = append(f.labels, label)
	f.weights[label] += weight
	f.score += weight
}

// Score computes the pump probability for req.
func (h *Heuristic) Score(req model.ScoreRequest) model.ScoreResult {
	c := h.cfg
	f := factorList{score: c.Base}

	text := req.Name + " " + req.Description
	for _, kw := range h.hype.Find(text) {
		f.add("+"+kw, c.HypeWeight)
	}
	for _, kw := range h.scam.Find(text) {
		f.add("-"+kw, c.ScamWeight)
	}

	if req.Socials.Twitter != "" {
		f.add("+twitter", c.TwitterWeight)
	}
	if req.Socials.Telegram != "" {
		f.add("+telegram", c.TelegramWeight)
	}
	if req.Socials.Website != "" {
		f.add("+website", c.WebsiteWeight)
	}

	if req.Market.Liquidity > c.HighLiquidity {
		f.add("+liquidity", c.HighLiquidityWeight)
	} else if req.Market.Liquidity < c.LowLiquidity {
		f.add("-low_liquidity", c.LowLiquidityWeight)
	}

	if req.Market.Volume24h > c.HighVolume {
		f.add("+volume", c.HighVolumeWeight)
	}

	switch model.ParseRiskLevel(string(req.Rug.Risk)) {
	case model.RiskLow:
		f.add("+low_risk", c.LowRiskWeight)
	case model.RiskHigh:
		f.add("-high_risk", c.HighRiskWeight)
	}

	p := clamp(f.score, c.MinProbability, c.MaxProbability)

	return model.ScoreResult{
		Probability: p,
		Explain:     h.explain(f.labels, p),
		Factors:     f.weights,
	}
}

func (h *Heuristic) explain(labels []string, p float64) string {
	basis := "no notable factors"
	if len(labels) > 0 {
		basis = strings.Join(labels, ", ")
	}
	return fmt.Sprintf("Analysis based on: %s. %s", basis, Verdict(p, h.cfg.StrongThreshold, h.cfg.ModerateThreshold))
}

// Verdict picks the rationale sentence for a probability.
func Verdict(p, strong, moderate float64) string {
	switch {
	case p > strong:
		return VerdictStrong
	case p > moderate:
		return VerdictModerate
	default:
		return VerdictHighRisk
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
