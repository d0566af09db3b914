package config

import (
	"testing"
)

func TestValidateValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Errorf("valid config should not have validation errors: %v", err)
	}
}

func TestValidateEmptyVersion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = ""

	err := Validate(cfg)
	if err == nil {
		t.Error("expected validation error for empty version")
	}

	if !containsError(err, "version cannot be empty") {
		t.Errorf("expected 'version cannot be empty' error, got: %v", err)
	}
}

func TestValidateInvalidIndirectSelection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selection.DefaultIndirectSelection = "not_a_mode"

	err := Validate(cfg)
	if err == nil {
		t.Error("expected validation error for invalid indirect selection mode")
	}

	if !containsError(err, "must be one of") {
		t.Errorf("expected 'must be one of' error, got: %v", err)
	}
}

func TestValidateInvalidResourceType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selection.DefaultResourceTypes = []string{"model", "not_a_kind"}

	err := Validate(cfg)
	if err == nil {
		t.Error("expected validation error for unrecognized resource type")
	}

	if !containsError(err, "unrecognized resource type key") {
		t.Errorf("expected 'unrecognized resource type key' error, got: %v", err)
	}
}

func TestValidateMissingPreviousStateFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selection.PreviousStateFile = "/nonexistent/path/to/state.json"

	if err := Validate(cfg); err != nil {
		t.Errorf("a not-yet-existing previous state file should not fail validation: %v", err)
	}
}

func TestValidateInvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "invalid"

	err := Validate(cfg)
	if err == nil {
		t.Error("expected validation error for invalid log level")
	}

	if !containsError(err, "must be one of") {
		t.Errorf("expected 'must be one of' error, got: %v", err)
	}
}

func TestValidateInvalidLogFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Format = "invalid"

	err := Validate(cfg)
	if err == nil {
		t.Error("expected validation error for invalid log format")
	}

	if !containsError(err, "must be one of") {
		t.Errorf("expected 'must be one of' error, got: %v", err)
	}
}

func TestValidateLogOutputDirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Output = "/nonexistent/directory/log.txt"

	err := Validate(cfg)
	if err == nil {
		t.Error("expected validation error for log output in nonexistent directory")
	}

	if !containsError(err, "directory does not exist") {
		t.Errorf("expected 'directory does not exist' error, got: %v", err)
	}
}

func TestValidationErrors(t *testing.T) {
	var errors ValidationErrors
	errors = append(errors, ValidationError{
		Field:   "test1",
		Value:   "value1",
		Message: "error1",
	})
	errors = append(errors, ValidationError{
		Field:   "test2",
		Value:   "value2",
		Message: "error2",
	})

	errorStr := errors.Error()
	if !containsSubstring(errorStr, "test1") {
		t.Error("error string should contain test1")
	}
	if !containsSubstring(errorStr, "error1") {
		t.Error("error string should contain error1")
	}
	if !containsSubstring(errorStr, "test2") {
		t.Error("error string should contain test2")
	}
	if !containsSubstring(errorStr, "error2") {
		t.Error("error string should contain error2")
	}

	var emptyErrors ValidationErrors
	if emptyErrors.Error() != "" {
		t.Error("empty validation errors should return empty string")
	}
}

// Helper functions

func containsError(err error, substr string) bool {
	if err == nil {
		return false
	}
	return containsSubstring(err.Error(), substr)
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return substr == ""
}
