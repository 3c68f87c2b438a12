package model

import "strings"

// RiskLevel is the three-level rug risk category, plus unknown.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// ParseRiskLevel maps a free-form string onto a RiskLevel. Anything
// unrecognized is RiskUnknown.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// Valid reports whether r is one of the known levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskUnknown:
		return true
	default:
		return false
	}
}

// RiskAssessment is the classified result of a rug risk scan.
type RiskAssessment struct {
	Status  string         `json:"status" yaml:"status"`
	Risk    RiskLevel      `json:"risk" yaml:"risk"`
	Details map[string]any `json:"details" yaml:"details"`
}
