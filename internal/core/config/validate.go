package config

import (
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
)

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true,
	"warn": true, "error": true,
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateBounds(),
		c.validateTimeouts(),
		criterio.Run("log.level", c.Log.Level, validLogLevel),
	)
}

func (c *Config) validateBounds() error {
	var errs criterio.FieldErrorsBuilder

	bounds := []struct {
		field string
		value int
	}{
		{"max_iterations", c.MaxIterations},
		{"thinking_depth", c.ThinkingDepth},
		{"guidance_cadence", c.GuidanceCadence},
		{"input_retry_limit", c.InputRetryLimit},
	}
	for _, b := range bounds {
		if b.value < 1 {
			errs = errs.Append(b.field, fmt.Errorf("must be at least 1"))
		}
	}

	return errs.ToError()
}

// ValidateDeep performs comprehensive validation including file accessibility.
// The configPath argument specifies the config file location to validate
// (empty string skips the config file check). This calls Validate() first for
// basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("log.file", c.Log.File, isFileOrNotExist),
	)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Interactive && c.AutoApprove {
		warnings = append(warnings, ValidationWarning{
			Category: "Gates",
			Item:     "auto_approve",
			Message:  "auto_approve has no effect in interactive mode",
		})
	}

	if c.Planner.APIKey == "" && os.Getenv("OPENAI_API_KEY") == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Planner",
			Item:     "api_key",
			Message:  "no API key configured, the keyword planner will be used",
		})
	}

	return warnings
}

func (c *Config) validateTimeouts() error {
	var errs criterio.FieldErrorsBuilder
	if c.Timeouts.Gate <= 0 {
		errs = errs.Append("timeouts.gate", fmt.Errorf("must be positive"))
	}
	if c.Timeouts.Input <= 0 {
		errs = errs.Append("timeouts.input", fmt.Errorf("must be positive"))
	}
	return errs.ToError()
}

func validLogLevel(level string) error {
	if level == "" {
		return nil
	}
	if !logLevels[level] {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isFileOrNotExist validates that a path is a file or doesn't exist yet.
func isFileOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("is a directory, not a file")
	}
	return nil
}
