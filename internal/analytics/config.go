package analytics

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SentimentMethod selects which sub-scores feed sentiment fusion.
type SentimentMethod string

const (
	MethodLexicon     SentimentMethod = "lexicon"
	MethodStatistical SentimentMethod = "statistical"
	MethodContextual  SentimentMethod = "contextual"
	MethodFusion      SentimentMethod = "fusion"
)

// TemporalConfig tunes the temporal pattern analyzer.
type TemporalConfig struct {
	// Window is the sliding window size for rate computation.
	Window time.Duration `yaml:"window"`
	// BurstK is the burst threshold in standard deviations above the mean
	// window rate.
	BurstK float64 `yaml:"burst_k"`
	// DormancyThreshold is the minimum gap reported as dormancy.
	DormancyThreshold time.Duration `yaml:"dormancy_threshold"`
	// SessionGap splits the message sequence into sessions.
	SessionGap time.Duration `yaml:"session_gap"`
}

// Config is the explicit, validated configuration for one analysis run.
// The engine never reads ambient state: credentials and mode flags all
// arrive here, which keeps concurrent analyses of different conversations
// safe by construction.
type Config struct {
	SentimentMethod SentimentMethod `yaml:"sentiment_method"`

	// UseContextual enables the remote contextual sub-score. It requires
	// Credential; without one the sub-score is omitted from fusion.
	UseContextual     bool          `yaml:"use_contextual"`
	Credential        string        `yaml:"-"`
	ContextualModel   string        `yaml:"contextual_model"`
	ContextualTimeout time.Duration `yaml:"contextual_timeout"`

	NetworkEnabled bool           `yaml:"network_enabled"`
	Temporal       TemporalConfig `yaml:"temporal"`

	// RiskDensity is the severe-term density above which a message is
	// risk-flagged.
	RiskDensity float64 `yaml:"risk_density"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		SentimentMethod:   MethodFusion,
		UseContextual:     false,
		ContextualModel:   "gpt-4o-mini",
		ContextualTimeout: 30 * time.Second,
		NetworkEnabled:    true,
		Temporal: TemporalConfig{
			Window:            time.Hour,
			BurstK:            2.0,
			DormancyThreshold: 24 * time.Hour,
			SessionGap:        30 * time.Minute,
		},
		RiskDensity: 0.1,
	}
}

// Validate rejects unknown enum values and non-positive tunables.
func (c Config) Validate() error {
	switch c.SentimentMethod {
	case MethodLexicon, MethodStatistical, MethodContextual, MethodFusion:
	default:
		return fmt.Errorf("invalid sentiment_method %q", c.SentimentMethod)
	}
	if c.Temporal.Window <= 0 {
		return fmt.Errorf("temporal window must be positive, got %v", c.Temporal.Window)
	}
	if c.Temporal.BurstK <= 0 {
		return fmt.Errorf("burst_k must be positive, got %v", c.Temporal.BurstK)
	}
	if c.Temporal.DormancyThreshold <= 0 {
		return fmt.Errorf("dormancy_threshold must be positive, got %v", c.Temporal.DormancyThreshold)
	}
	if c.Temporal.SessionGap <= 0 {
		return fmt.Errorf("session_gap must be positive, got %v", c.Temporal.SessionGap)
	}
	if c.RiskDensity <= 0 || c.RiskDensity > 1 {
		return fmt.Errorf("risk_density must be in (0,1], got %v", c.RiskDensity)
	}
	if c.UseContextual && c.ContextualTimeout <= 0 {
		return fmt.Errorf("contextual_timeout must be positive, got %v", c.ContextualTimeout)
	}
	return nil
}

// LoadConfig reads a YAML config file over the defaults. Fields absent from
// the file keep their default values. Credentials are deliberately not
// loadable from the file; the caller supplies them explicitly.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
