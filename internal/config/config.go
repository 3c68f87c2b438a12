package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Mode selects between live upstream calls and the demo dataset.
const (
	ModeAuto = "auto"
	ModeLive = "live"
	ModeDemo = "demo"
)

// Config holds the full application configuration.
type Config struct {
	Mode     string        `yaml:"mode" mapstructure:"mode"`
	Server   ServerConfig  `yaml:"server" mapstructure:"server"`
	Helius   SourceConfig  `yaml:"helius" mapstructure:"helius"`
	Birdeye  SourceConfig  `yaml:"birdeye" mapstructure:"birdeye"`
	RugCheck SourceConfig  `yaml:"rugcheck" mapstructure:"rugcheck"`
	Risk     RiskConfig    `yaml:"risk" mapstructure:"risk"`
	Scoring  ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Log      LogConfig     `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// SourceConfig holds the settings shared by every upstream data source.
type SourceConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// Timeout returns the per-call timeout.
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// Configured reports whether an API key is present.
func (s SourceConfig) Configured() bool {
	return strings.TrimSpace(s.Key) != ""
}

// RiskConfig holds the rug risk score thresholds (0..100 scale).
type RiskConfig struct {
	MediumThreshold float64 `yaml:"medium_threshold" mapstructure:"medium_threshold"`
	HighThreshold   float64 `yaml:"high_threshold" mapstructure:"high_threshold"`
}

// ScoringConfig configures the heuristic scorer and the scoring delegate.
type ScoringConfig struct {
	DelegateURL         string `yaml:"delegate_url" mapstructure:"delegate_url"`
	DelegateTimeoutSecs int    `yaml:"delegate_timeout_secs" mapstructure:"delegate_timeout_secs"`

	Base           float64 `yaml:"base" mapstructure:"base"`
	MinProbability float64 `yaml:"min_probability" mapstructure:"min_probability"`
	MaxProbability float64 `yaml:"max_probability" mapstructure:"max_probability"`

	HypeKeywords []string `yaml:"hype_keywords" mapstructure:"hype_keywords"`
	ScamKeywords []string `yaml:"scam_keywords" mapstructure:"scam_keywords"`
	HypeWeight   float64  `yaml:"hype_weight" mapstructure:"hype_weight"`
	ScamWeight   float64  `yaml:"scam_weight" mapstructure:"scam_weight"`

	TwitterWeight  float64 `yaml:"twitter_weight" mapstructure:"twitter_weight"`
	TelegramWeight float64 `yaml:"telegram_weight" mapstructure:"telegram_weight"`
	WebsiteWeight  float64 `yaml:"website_weight" mapstructure:"website_weight"`

	// Liquidity between LowLiquidity and HighLiquidity (inclusive) is neutral.
	HighLiquidity       float64 `yaml:"high_liquidity" mapstructure:"high_liquidity"`
	HighLiquidityWeight float64 `yaml:"high_liquidity_weight" mapstructure:"high_liquidity_weight"`
	LowLiquidity        float64 `yaml:"low_liquidity" mapstructure:"low_liquidity"`
	LowLiquidityWeight  float64 `yaml:"low_liquidity_weight" mapstructure:"low_liquidity_weight"`

	HighVolume       float64 `yaml:"high_volume" mapstructure:"high_volume"`
	HighVolumeWeight float64 `yaml:"high_volume_weight" mapstructure:"high_volume_weight"`

	LowRiskWeight  float64 `yaml:"low_risk_weight" mapstructure:"low_risk_weight"`
	HighRiskWeight float64 `yaml:"high_risk_weight" mapstructure:"high_risk_weight"`

	StrongThreshold   float64 `yaml:"strong_threshold" mapstructure:"strong_threshold"`
	ModerateThreshold float64 `yaml:"moderate_threshold" mapstructure:"moderate_threshold"`
}

// DelegateTimeout returns the scoring delegate call timeout.
func (s ScoringConfig) DelegateTimeout() time.Duration {
	return time.Duration(s.DelegateTimeoutSecs) * time.Second
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultScoringConfig returns the stock heuristic weights and keyword lists.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		DelegateURL:         "http://127.0.0.1:8000",
		DelegateTimeoutSecs: 5,

		Base:           0.5,
		MinProbability: 0.01,
		MaxProbability: 0.99,

		HypeKeywords: []string{"moon", "rocket", "pump", "gem", "100x", "pepe", "doge", "elon", "bonk"},
		ScamKeywords: []string{"scam", "rug", "honeypot", "fake", "warning"},
		HypeWeight:   0.05,
		ScamWeight:   -0.15,

		TwitterWeight:  0.10,
		TelegramWeight: 0.05,
		WebsiteWeight:  0.05,

		HighLiquidity:       100_000,
		HighLiquidityWeight: 0.15,
		LowLiquidity:        10_000,
		LowLiquidityWeight:  -0.10,

		HighVolume:       50_000,
		HighVolumeWeight: 0.10,

		LowRiskWeight:  0.15,
		HighRiskWeight: -0.25,

		StrongThreshold:   0.7,
		ModerateThreshold: 0.4,
	}
}

// Legacy environment names accepted alongside the TOKENSCOUT_ prefix.
var envAliases = map[string][]string{
	"helius.key":           {"TOKENSCOUT_HELIUS_KEY", "HELIUS_API_KEY"},
	"birdeye.key":          {"TOKENSCOUT_BIRDEYE_KEY", "BIRDEYE_API_KEY"},
	"rugcheck.key":         {"TOKENSCOUT_RUGCHECK_KEY", "RUGCHECK_API_KEY"},
	"scoring.delegate_url": {"TOKENSCOUT_SCORING_DELEGATE_URL", "ML_SERVICE_URL"},
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TOKENSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// An empty TOKENSCOUT_SCORING_DELEGATE_URL disables the delegate.
	v.AllowEmptyEnv(true)
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("mode", ModeAuto)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("helius.key", "")
	v.SetDefault("helius.base_url", "https://mainnet.helius-rpc.com")
	v.SetDefault("helius.timeout_secs", 10)
	v.SetDefault("helius.rate_per_sec", 0)
	v.SetDefault("birdeye.key", "")
	v.SetDefault("birdeye.base_url", "https://public-api.birdeye.so")
	v.SetDefault("birdeye.timeout_secs", 10)
	v.SetDefault("birdeye.rate_per_sec", 0)
	v.SetDefault("rugcheck.key", "")
	v.SetDefault("rugcheck.base_url", "https://api.rugcheck.xyz")
	v.SetDefault("rugcheck.timeout_secs", 10)
	v.SetDefault("rugcheck.rate_per_sec", 0)
	v.SetDefault("risk.medium_threshold", 30)
	v.SetDefault("risk.high_threshold", 70)

	s := DefaultScoringConfig()
	v.SetDefault("scoring.delegate_url", s.DelegateURL)
	v.SetDefault("scoring.delegate_timeout_secs", s.DelegateTimeoutSecs)
	v.SetDefault("scoring.base", s.Base)
	v.SetDefault("scoring.min_probability", s.MinProbability)
	v.SetDefault("scoring.max_probability", s.MaxProbability)
	v.SetDefault("scoring.hype_keywords", s.HypeKeywords)
	v.SetDefault("scoring.scam_keywords", s.ScamKeywords)
	v.SetDefault("scoring.hype_weight", s.HypeWeight)
	v.SetDefault("scoring.scam_weight", s.ScamWeight)
	v.SetDefault("scoring.twitter_weight", s.TwitterWeight)
	v.SetDefault("scoring.telegram_weight", s.TelegramWeight)
	v.SetDefault("scoring.website_weight", s.WebsiteWeight)
	v.SetDefault("scoring.high_liquidity", s.HighLiquidity)
	v.SetDefault("scoring.high_liquidity_weight", s.HighLiquidityWeight)
	v.SetDefault("scoring.low_liquidity", s.LowLiquidity)
	v.SetDefault("scoring.low_liquidity_weight", s.LowLiquidityWeight)
	v.SetDefault("scoring.high_volume", s.HighVolume)
	v.SetDefault("scoring.high_volume_weight", s.HighVolumeWeight)
	v.SetDefault("scoring.low_risk_weight", s.LowRiskWeight)
	v.SetDefault("scoring.high_risk_weight", s.HighRiskWeight)
	v.SetDefault("scoring.strong_threshold", s.StrongThreshold)
	v.SetDefault("scoring.moderate_threshold", s.ModerateThreshold)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	switch cfg.Mode {
	case ModeAuto, ModeLive, ModeDemo:
	default:
		return nil, eris.Errorf("config: invalid mode %q (want auto, live or demo)", cfg.Mode)
	}

	return &cfg, nil
}

// LiveToken reports whether token metadata should come from live sources.
// Birdeye is optional, so only Helius decides.
func (c *Config) LiveToken() bool {
	return c.live(c.Helius)
}

// LiveRisk reports whether risk scans should come from RugCheck.
func (c *Config) LiveRisk() bool {
	return c.live(c.RugCheck)
}

func (c *Config) live(src SourceConfig) bool {
	switch c.Mode {
	case ModeLive:
		return true
	case ModeDemo:
		return false
	default:
		return src.Configured()
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
