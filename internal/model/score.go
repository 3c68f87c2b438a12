package model

import "github.com/google/uuid"

// ScoreRequest is the token + risk bundle submitted for scoring.
type ScoreRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Socials     Socials        `json:"socials"`
	Market      Market         `json:"market"`
	Rug         RiskAssessment `json:"rug"`
}

// NewScoreRequest bundles a descriptor and its risk assessment.
func NewScoreRequest(token TokenDescriptor, rug RiskAssessment) ScoreRequest {
	return ScoreRequest{
		Name:        token.Name,
		Description: token.Description,
		Image:       token.Image,
		Socials:     token.Socials,
		Market:      token.Market,
		Rug:         rug,
	}
}

// ScoreResult is the pump probability and its rationale.
type ScoreResult struct {
	Probability float64            `json:"probability" yaml:"probability"`
	Explain     string             `json:"explain" yaml:"explain"`
	Factors     map[string]float64 `json:"factors,omitempty" yaml:"factors,omitempty"`
}

// Report is the full analysis of one mint address.
type Report struct {
	ID    string          `json:"id"`
	Mint  string          `json:"mint"`
	Token TokenDescriptor `json:"token"`
	Risk  RiskAssessment  `json:"risk"`
	Score ScoreResult     `json:"score"`
}

// NewReport creates a report with a fresh ID.
func NewReport(mint string, token TokenDescriptor, risk RiskAssessment, score ScoreResult) Report {
	return Report{
		ID:    uuid.NewString(),
		Mint:  mint,
		Token: token,
		Risk:  risk,
		Score: score,
	}
}
