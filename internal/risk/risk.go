// Package risk classifies RugCheck scan results.
package risk

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/sells-group/token-scout/internal/model"
)

// Score fields RugCheck has used, in lookup order.
var scoreFields = []string{"score", "riskScore"}

// Thresholds splits the 0..100 score scale into levels.
type Thresholds struct {
	Medium float64 // scores below this are low
	High   float64 // scores below this are medium
}

// DefaultThresholds returns the 30/70 split.
func DefaultThresholds() Thresholds {
	return Thresholds{Medium: 30, High: 70}
}

// Classifier maps scan scores to risk levels.
type Classifier struct {
	t Thresholds
}

// NewClassifier creates a classifier. Zero thresholds fall back to the defaults.
func NewClassifier(t Thresholds) *Classifier {
	d := DefaultThresholds()
	if t.Medium <= 0 {
		t.Medium = d.Medium
	}
	if t.High <= 0 {
		t.High = d.High
	}
	return &Classifier{t: t}
}

// Classify buckets a score. No smoothing: the result depends only on score.
func (c *Classifier) Classify(score float64) model.RiskLevel {
	switch {
	case score < c.t.Medium:
		return model.RiskLow
	case score < c.t.High:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// Assess builds an assessment from a raw scan payload. A missing or
// unparseable payload yields an unknown assessment.
func (c *Classifier) Assess(payload json.RawMessage) model.RiskAssessment {
	if len(payload) == 0 || !gjson.ValidBytes(payload) {
		return Unknown()
	}
	doc := gjson.ParseBytes(payload)
	if !doc.IsObject() {
		return Unknown()
	}

	var details map[string]any
	if err := json.Unmarshal(payload, &details); err != nil {
		return Unknown()
	}

	return model.RiskAssessment{
		Status:  "ok",
		Risk:    c.Classify(ScoreFrom(doc)),
		Details: details,
	}
}

// ScoreFrom reads the first non-zero numeric score field, or 0.
func ScoreFrom(doc gjson.Result) float64 {
	for _, field := range scoreFields {
		v := doc.Get(field)
		if v.Type == gjson.Number && v.Num != 0 {
			return v.Num
		}
	}
	return 0
}

// Unknown is the assessment used when no scan data is available.
func Unknown() model.RiskAssessment {
	return model.RiskAssessment{
		Status:  "unknown",
		Risk:    model.RiskUnknown,
		Details: map[string]any{},
	}
}
