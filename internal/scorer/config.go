// Package scorer computes pump probabilities from normalized token data.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/token-scout/internal/config"
)

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	// Probability bounds.
	if c.MinProbability < 0 || c.MaxProbability > 1 || c.MinProbability >= c.MaxProbability {
		errs = append(errs, "probability bounds must satisfy 0 <= min_probability < max_probability <= 1")
	}
	if c.Base < c.MinProbability || c.Base > c.MaxProbability {
		errs = append(errs, "base must lie within the probability bounds")
	}

	// Keywords.
	for _, list := range []struct {
		name     string
		keywords []string
	}{
		{"hype_keywords", c.HypeKeywords},
		{"scam_keywords", c.ScamKeywords},
	} {
		for i, kw := range list.keywords {
			if strings.TrimSpace(kw) == "" {
				errs = append(errs, fmt.Sprintf("%s[%d] must not be empty", list.name, i))
			}
		}
	}

	// Bonuses must not be negative and penalties must not be positive.
	bonuses := map[string]float64{
		"hype_weight":           c.HypeWeight,
		"twitter_weight":        c.TwitterWeight,
		"telegram_weight":       c.TelegramWeight,
		"website_weight":        c.WebsiteWeight,
		"high_liquidity_weight": c.HighLiquidityWeight,
		"high_volume_weight":    c.HighVolumeWeight,
		"low_risk_weight":       c.LowRiskWeight,
	}
	for name, w := range bonuses {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}
	if c.ScamWeight >= 0 {
		errs = append(errs, "scam_weight must be < 0")
	}
	penalties := map[string]float64{
		"low_liquidity_weight": c.LowLiquidityWeight,
		"high_risk_weight":     c.HighRiskWeight,
	}
	for name, w := range penalties {
		if w > 0 {
			errs = append(errs, fmt.Sprintf("%s must be <= 0", name))
		}
	}

	// Thresholds.
	if c.LowLiquidity < 0 || c.HighLiquidity < c.LowLiquidity {
		errs = append(errs, "liquidity thresholds must satisfy 0 <= low_liquidity <= high_liquidity")
	}
	if c.HighVolume < 0 {
		errs = append(errs, "high_volume must be >= 0")
	}
	if c.ModerateThreshold >= c.StrongThreshold {
		errs = append(errs, "moderate_threshold must be below strong_threshold")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
