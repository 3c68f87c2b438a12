package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/token-scout/internal/config"
)

func TestValidateConfig_Defaults(t *testing.T) {
	assert.NoError(t, ValidateConfig(config.DefaultScoringConfig()))
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.ScoringConfig)
		want   string
	}{
		{"inverted bounds", func(c *config.ScoringConfig) { c.MinProbability, c.MaxProbability = 0.9, 0.1 }, "probability bounds"},
		{"bound above one", func(c *config.ScoringConfig) { c.MaxProbability = 1.5 }, "probability bounds"},
		{"base outside", func(c *config.ScoringConfig) { c.Base = 0 }, "base must lie"},
		{"empty keyword", func(c *config.ScoringConfig) { c.HypeKeywords = []string{"moon", " "} }, "hype_keywords[1] must not be empty"},
		{"negative bonus", func(c *config.ScoringConfig) { c.TwitterWeight = -0.1 }, "twitter_weight must be >= 0"},
		{"positive scam", func(c *config.ScoringConfig) { c.ScamWeight = 0.15 }, "scam_weight must be < 0"},
		{"positive penalty", func(c *config.ScoringConfig) { c.HighRiskWeight = 0.25 }, "high_risk_weight must be <= 0"},
		{"liquidity band", func(c *config.ScoringConfig) { c.LowLiquidity = 200_000 }, "liquidity thresholds"},
		{"negative volume", func(c *config.ScoringConfig) { c.HighVolume = -1 }, "high_volume must be >= 0"},
		{"verdict thresholds", func(c *config.ScoringConfig) { c.ModerateThreshold = 0.8 }, "moderate_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.DefaultScoringConfig()
			tt.mutate(&c)
			err := ValidateConfig(c)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewHeuristic_RejectsInvalidConfig(t *testing.T) {
	c := config.DefaultScoringConfig()
	c.ScamWeight = 0
	_, err := NewHeuristic(c)
	assert.Error(t, err)
}
