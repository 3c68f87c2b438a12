package scorer

import (
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/sells-group/token-scout/internal/model"
)

// FeatureConfig holds the weights of the feature-based scorer served by
// the scoring delegate.
type FeatureConfig struct {
	PumpKeywords []string
	ScamKeywords []string

	TwitterWeight       float64
	TelegramWeight      float64
	WebsiteWeight       float64
	HighLiquidityWeight float64
	LowLiquidityPenalty float64
	GoodVolumeWeight    float64
	LowRiskWeight       float64
	HighRiskPenalty     float64
	PumpKeywordWeight   float64
	PumpKeywordCap      float64
	ScamKeywordPenalty  float64

	HighLiquidity float64
	LowLiquidity  float64
	GoodVolume    float64

	// RiskScores maps a risk level to a 0..1 safety score.
	RiskScores map[model.RiskLevel]float64
}

// DefaultFeatureConfig returns the delegate scorer's stock weights.
func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		PumpKeywords: []string{
			"moon", "rocket", "pump", "gem", "100x", "1000x",
			"pepe", "doge", "shiba", "elon", "bonk", "lambo",
			"diamond", "hands", "hodl", "ape", "chad",
		},
		ScamKeywords: []string{
			"scam", "rug", "honeypot", "fake", "warning",
			"danger", "avoid", "stolen", "hack",
		},

		TwitterWeight:       0.15,
		TelegramWeight:      0.10,
		WebsiteWeight:       0.10,
		HighLiquidityWeight: 0.20,
		LowLiquidityPenalty: -0.10,
		GoodVolumeWeight:    0.15,
		LowRiskWeight:       0.20,
		HighRiskPenalty:     -0.20,
		PumpKeywordWeight:   0.05,
		PumpKeywordCap:      0.15,
		ScamKeywordPenalty:  -0.15,

		HighLiquidity: 100_000,
		LowLiquidity:  10_000,
		GoodVolume:    50_000,

		RiskScores: map[model.RiskLevel]float64{
			model.RiskLow:     1.0,
			model.RiskMedium:  0.5,
			model.RiskHigh:    0.0,
			model.RiskUnknown: 0.3,
		},
	}
}

// Features are the numeric inputs extracted from a score request.
type Features struct {
	TextLength       int     `json:"text_length"`
	NameLength       int     `json:"name_length"`
	PumpKeywordCount int     `json:"pump_keyword_count"`
	ScamKeywordCount int     `json:"scam_keyword_count"`
	HasTwitter       bool    `json:"has_twitter"`
	HasTelegram      bool    `json:"has_telegram"`
	HasWebsite       bool    `json:"has_website"`
	SocialCount      int     `json:"social_count"`
	Price            float64 `json:"price"`
	Liquidity        float64 `json:"liquidity"`
	Volume24h        float64 `json:"volume24h"`
	LiquidityLog     float64 `json:"liquidity_log"`
	VolumeLog        float64 `json:"volume_log"`
	RiskScore        float64 `json:"risk_score"`
}

// FeatureScorer is the feature-extraction scorer behind the delegate service.
type FeatureScorer struct {
	cfg  FeatureConfig
	pump *Matcher
	scam *Matcher
}

// NewFeatureScorer builds a FeatureScorer.
func NewFeatureScorer(cfg FeatureConfig) (*FeatureScorer, error) {
	pump, err := NewMatcher(cfg.PumpKeywords)
	if err != nil {
		return nil, err
	}
	scam, err := NewMatcher(cfg.ScamKeywords)
	if err != nil {
		return nil, err
	}
	return &FeatureScorer{cfg: cfg, pump: pump, scam: scam}, nil
}

// Extract computes the feature vector for req.
func (s *FeatureScorer) Extract(req model.ScoreRequest) Features {
	text := req.Name + " " + req.Description

	f := Features{
		TextLength:       len([]rune(text)),
		NameLength:       len([]rune(req.Name)),
		PumpKeywordCount: len(s.pump.Find(text)),
		ScamKeywordCount: len(s.scam.Find(text)),
		HasTwitter:       req.Socials.Twitter != "",
		HasTelegram:      req.Socials.Telegram != "",
		HasWebsite:       req.Socials.Website != "",
		Price:            req.Market.Price,
		Liquidity:        req.Market.Liquidity,
		Volume24h:        req.Market.Volume24h,
		LiquidityLog:     math.Log1p(req.Market.Liquidity),
		VolumeLog:        math.Log1p(req.Market.Volume24h),
	}
	f.SocialCount = lo.Count([]bool{f.HasTwitter, f.HasTelegram, f.HasWebsite}, true)

	risk := model.ParseRiskLevel(string(req.Rug.Risk))
	score, ok := s.cfg.RiskScores[risk]
	if !ok {
		score = s.cfg.RiskScores[model.RiskUnknown]
	}
	f.RiskScore = score

	return f
}

// Score computes the probability, an explanation and per-factor contributions.
func (s *FeatureScorer) Score(req model.ScoreRequest) model.ScoreResult {
	c := s.cfg
	f := s.Extract(req)
	fl := factorList{score: 0.5}

	if f.HasTwitter {
		fl.add("twitter", c.TwitterWeight)
	}
	if f.HasTelegram {
		fl.add("telegram", c.TelegramWeight)
	}
	if f.HasWebsite {
		fl.add("website", c.WebsiteWeight)
	}

	if f.Liquidity > c.HighLiquidity {
		fl.add("high_liquidity", c.HighLiquidityWeight)
	} else if f.Liquidity < c.LowLiquidity {
		fl.add("low_liquidity", c.LowLiquidityPenalty)
	}

	if f.Volume24h > c.GoodVolume {
		fl.add("good_volume", c.GoodVolumeWeight)
	}

	if f.RiskScore > 0.7 {
		fl.add("low_risk", c.LowRiskWeight)
	} else if f.RiskScore < 0.3 {
		fl.add("high_risk", c.HighRiskPenalty)
	}

	if f.PumpKeywordCount > 0 {
		fl.add("pump_keywords", math.Min(float64(f.PumpKeywordCount)*c.PumpKeywordWeight, c.PumpKeywordCap))
	}
	if f.ScamKeywordCount > 0 {
		fl.add("scam_keywords", float64(f.ScamKeywordCount)*c.ScamKeywordPenalty)
	}

	p := clamp(fl.score, 0.01, 0.99)

	return model.ScoreResult{
		Probability: p,
		Explain:     featureExplain(p, fl),
		Factors:     fl.weights,
	}
}

func featureExplain(p float64, fl factorList) string {
	var base string
	switch {
	case p > 0.7:
		base = VerdictStrong
	case p > 0.4:
		base = "Moderate potential with mixed signals."
	default:
		base = VerdictHighRisk
	}

	positive := lo.Filter(fl.labels, func(l string, _ int) bool { return fl.weights[l] > 0 })
	negative := lo.Filter(fl.labels, func(l string, _ int) bool { return fl.weights[l] < 0 })

	parts := []string{base}
	if len(positive) > 0 {
		parts = append(parts, "Positive: "+strings.Join(positive, ", "))
	}
	if len(negative) > 0 {
		parts = append(parts, "Concerns: "+strings.Join(negative, ", "))
	}
	return strings.Join(parts, " ")
}
