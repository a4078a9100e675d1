// Package errors provides error types for todos.
// This file contains configuration and input errors.
package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigNotFound creates an error for a missing configuration file that was
// requested explicitly.
func ConfigNotFound(configPath string) *TodoError {
	return &TodoError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("configuration file not found: %s", configPath),
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: `Create a default configuration:

    todos init

or point at an existing file:

    todos --config path/to/config.yaml`,
	}
}

// ConfigParseError creates an error for YAML parsing failures.
func ConfigParseError(configPath string, parseErr error) *TodoError {
	return &TodoError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("failed to parse configuration: %s", configPath),
		Cause:   parseErr,
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: `Check your config.yaml for syntax errors:
  1. Ensure proper YAML indentation (use spaces, not tabs)
  2. Check for missing colons or quotes
  3. Durations need a unit, e.g. "3s" or "500ms"`,
	}
}

// ConfigValidationError creates an error for invalid configuration values.
func ConfigValidationError(field, message string, validOptions []string) *TodoError {
	suggestion := fmt.Sprintf("Fix the %q field in .todos/config.yaml", field)
	if len(validOptions) > 0 {
		suggestion += fmt.Sprintf("\n  Valid options: %s", strings.Join(validOptions, ", "))
	}

	return &TodoError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("invalid configuration: %s", message),
		Details: map[string]string{
			"field": field,
		},
		Suggestion: suggestion,
	}
}

// InvalidTodoID creates an error for a todo id argument that is not a positive integer.
func InvalidTodoID(arg string) *TodoError {
	return &TodoError{
		Kind:       ErrValidation,
		Message:    fmt.Sprintf("invalid todo id: %q", arg),
		Suggestion: "Todo ids are positive integers. Run 'todos list' to see them.",
	}
}

// TodoNotFound creates an error when a todo id is not in the loaded list.
func TodoNotFound(id int) *TodoError {
	return &TodoError{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("todo not found: %d", id),
		Details: map[string]string{
			"id": strconv.Itoa(id),
		},
		Suggestion: "Run 'todos list' to see the ids of your todos.",
	}
}
