package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigNotFound(t *testing.T) {
	err := ConfigNotFound("/tmp/x/config.yaml")

	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigNotFound should return ErrConfig")
	}
	if err.Details["path"] != "/tmp/x/config.yaml" {
		t.Error("Should include path in details")
	}
	if !strings.Contains(err.Suggestion, "todos init") {
		t.Error("Suggestion should mention todos init")
	}
}

func TestConfigParseError(t *testing.T) {
	cause := errors.New("yaml: line 3")
	err := ConfigParseError("config.yaml", cause)

	if !errors.Is(err, cause) {
		t.Error("Should wrap the parse error")
	}
	if !strings.Contains(err.Error(), "yaml: line 3") {
		t.Errorf("Error() = %q, should include cause", err.Error())
	}
}

func TestConfigValidationError(t *testing.T) {
	err := ConfigValidationError("ui.default_filter", "unknown filter", []string{"all", "active", "completed"})

	if err.Details["field"] != "ui.default_filter" {
		t.Error("Should include field in details")
	}
	if !strings.Contains(err.Suggestion, "all, active, completed") {
		t.Errorf("Suggestion = %q, should list valid options", err.Suggestion)
	}
}

func TestTodoNotFound(t *testing.T) {
	err := TodoNotFound(42)

	if !errors.Is(err, ErrNotFound) {
		t.Error("TodoNotFound should return ErrNotFound")
	}
	if err.Details["id"] != "42" {
		t.Errorf("Details[id] = %q, want 42", err.Details["id"])
	}
}
