// Package config handles configuration loading and validation for stride.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	MaxIterations   int           `yaml:"max_iterations"`
	ThinkingDepth   int           `yaml:"thinking_depth"`
	Interactive     bool          `yaml:"interactive"`
	AutoApprove     bool          `yaml:"auto_approve"`
	GuidanceCadence int           `yaml:"guidance_cadence"`
	InputRetryLimit int           `yaml:"input_retry_limit"`
	Timeouts        Timeouts      `yaml:"timeouts"`
	Planner         PlannerConfig `yaml:"planner"`
	Log             LogConfig     `yaml:"log"`
}

// Timeouts bounds how long the loop waits on a human.
type Timeouts struct {
	Gate  time.Duration `yaml:"gate"`  // select-style gates (approval, validation, ...)
	Input time.Duration `yaml:"input"` // free-form text prompts
}

// PlannerConfig selects and configures the reasoning backend.
type PlannerConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"` // falls back to OPENAI_API_KEY
}

// LogConfig controls structured log output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty logs to stderr
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations:   10,
		ThinkingDepth:   3,
		GuidanceCadence: 3,
		InputRetryLimit: 3,
		Timeouts: Timeouts{
			Gate:  30 * time.Second,
			Input: 60 * time.Second,
		},
		Planner: PlannerConfig{
			Model: "gpt-4o-mini",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.MaxIterations == 0 {
		c.MaxIterations = defaults.MaxIterations
	}
	if c.ThinkingDepth == 0 {
		c.ThinkingDepth = defaults.ThinkingDepth
	}
	if c.GuidanceCadence == 0 {
		c.GuidanceCadence = defaults.GuidanceCadence
	}
	if c.InputRetryLimit == 0 {
		c.InputRetryLimit = defaults.InputRetryLimit
	}
	if c.Timeouts.Gate == 0 {
		c.Timeouts.Gate = defaults.Timeouts.Gate
	}
	if c.Timeouts.Input == 0 {
		c.Timeouts.Input = defaults.Timeouts.Input
	}
	if c.Planner.Model == "" {
		c.Planner.Model = defaults.Planner.Model
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Token resolves the planner API key, preferring config over environment.
func (p PlannerConfig) Token() string {
	if p.APIKey != "" {
		return p.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}
