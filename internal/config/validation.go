package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wayneeseguin/nodeselect/pkg/selector"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Validate validates the entire configuration.
func Validate(cfg *Config) error {
	var errors ValidationErrors

	if errs := validateSelection(&cfg.Selection); len(errs) > 0 {
		errors = append(errors, errs...)
	}

	if errs := validateLogging(&cfg.Logging); len(errs) > 0 {
		errors = append(errors, errs...)
	}

	if cfg.Version == "" {
		errors = append(errors, ValidationError{
			Field:   "version",
			Value:   cfg.Version,
			Message: "version cannot be empty",
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// validateSelection validates the selection behavior configuration.
func validateSelection(cfg *SelectionConfig) ValidationErrors {
	var errors ValidationErrors

	if _, ok := selector.ParseIndirectSelection(cfg.DefaultIndirectSelection); !ok {
		errors = append(errors, ValidationError{
			Field:   "selection.default_indirect_selection",
			Value:   cfg.DefaultIndirectSelection,
			Message: "must be one of: eager, cautious, buildable, empty",
		})
	}

	for _, key := range cfg.DefaultResourceTypes {
		if _, ok := selector.NodeKindFromKey(key); !ok {
			errors = append(errors, ValidationError{
				Field:   "selection.default_resource_types",
				Value:   key,
				Message: "unrecognized resource type key",
			})
		}
	}

	if cfg.PreviousStateFile != "" {
		if _, err := os.Stat(cfg.PreviousStateFile); err != nil && !os.IsNotExist(err) {
			errors = append(errors, ValidationError{
				Field:   "selection.previous_state_file",
				Value:   cfg.PreviousStateFile,
				Message: fmt.Sprintf("cannot stat file: %v", err),
			})
		}
	}

	if cfg.SelectorsFile != "" {
		if _, err := os.Stat(cfg.SelectorsFile); err != nil && !os.IsNotExist(err) {
			errors = append(errors, ValidationError{
				Field:   "selection.selectors_file",
				Value:   cfg.SelectorsFile,
				Message: fmt.Sprintf("cannot stat file: %v", err),
			})
		}
	}

	return errors
}

// validateLogging validates logging configuration.
func validateLogging(cfg *LoggingConfig) ValidationErrors {
	var errors ValidationErrors

	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	if !contains(validLevels, strings.ToLower(cfg.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   cfg.Level,
			Message: fmt.Sprintf("must be one of: %v", validLevels),
		})
	}

	validFormats := []string{"text", "json", "logfmt"}
	if !contains(validFormats, cfg.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("must be one of: %v", validFormats),
		})
	}

	if cfg.Output != "stdout" && cfg.Output != "stderr" {
		dir := filepath.Dir(cfg.Output)
		if _, err := os.Stat(dir); err != nil {
			errors = append(errors, ValidationError{
				Field:   "logging.output",
				Value:   cfg.Output,
				Message: fmt.Sprintf("directory does not exist: %s", dir),
			})
		}
	}

	return errors
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
