// Package config defines engine configuration and its loading hooks.
package config

import (
	"fmt"
	"time"

	"github.com/okian/talentscope/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WorkerCount sets the number of analysis workers. Zero or less means
	// one per CPU.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory job queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize sets the size of the job deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// RuleWeight and ModelWeight blend rule and model scores.
	RuleWeight  float64 `koanf:"rule_weight"`
	ModelWeight float64 `koanf:"model_weight"`

	// ModelDir holds <domain>_model.yaml predictor files. Empty disables
	// model scoring.
	ModelDir string `koanf:"model_dir"`

	// ModelVersion overrides the version reported by loaded predictors.
	ModelVersion string `koanf:"model_version"`

	// WatchModels reloads predictors when ModelDir changes.
	WatchModels bool `koanf:"watch_models"`

	// ReloadDebounce is how long a burst of model file events must settle.
	ReloadDebounce time.Duration `koanf:"reload_debounce"`

	// MaxRecommendations caps next activities per session analysis.
	MaxRecommendations int `koanf:"max_recommendations"`

	// ResponseWindow is how many recent responses an assessment reads.
	ResponseWindow int `koanf:"response_window"`
}

// New creates a Config with defaults.
func New() *Config {
	w := scoring.DefaultWeights()
	return &Config{
		LogLevel:           "info",
		WorkerCount:        0,
		QueueSize:          1024,
		DedupeSize:         50_000,
		RuleWeight:         w.Rule,
		ModelWeight:        w.Model,
		WatchModels:        true,
		ReloadDebounce:     250 * time.Millisecond,
		MaxRecommendations: 5,
		ResponseWindow:     20,
	}
}

// Weights returns the configured hybrid blend.
func (c *Config) Weights() scoring.Weights {
	return scoring.Weights{Rule: c.RuleWeight, Model: c.ModelWeight}
}

// Validate reports ErrInvalidConfig for values the engine cannot run with.
func (c *Config) Validate() error {
	if err := c.Weights().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.DedupeSize <= 0 {
		return fmt.Errorf("%w: dedupe_size must be positive, got %d", ErrInvalidConfig, c.DedupeSize)
	}
	if c.MaxRecommendations <= 0 {
		return fmt.Errorf("%w: max_recommendations must be positive, got %d", ErrInvalidConfig, c.MaxRecommendations)
	}
	if c.ResponseWindow <= 0 {
		return fmt.Errorf("%w: response_window must be positive, got %d", ErrInvalidConfig, c.ResponseWindow)
	}
	if c.ReloadDebounce < 0 {
		return fmt.Errorf("%w: reload_debounce must not be negative", ErrInvalidConfig)
	}
	return nil
}
