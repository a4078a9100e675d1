// Package errors provides error types with actionable suggestions for the todos
// client. Errors carry a kind sentinel, contextual details and an optional hint
// that the CLI prints when a command fails.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common sentinel errors for use with errors.Is().
var (
	// ErrNetwork indicates the remote todo API could not be reached or answered badly.
	ErrNetwork = errors.New("network error")
	// ErrTimeout indicates a request or operation ran out of time.
	ErrTimeout = errors.New("timeout error")
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrValidation indicates invalid input such as an empty title.
	ErrValidation = errors.New("validation error")
	// ErrNotFound indicates a todo was not found.
	ErrNotFound = errors.New("not found")
)

// TodoError is the base error type for todos errors.
// It wraps an underlying error and provides additional context.
type TodoError struct {
	// Kind is the category of error (e.g., ErrNetwork, ErrConfig).
	Kind error
	// Message is the human-readable error message.
	Message string
	// Suggestion provides actionable advice for resolving the error.
	Suggestion string
	// Cause is the underlying error that caused this error.
	Cause error
	// Details provides additional context (e.g., status code, URL).
	Details map[string]string
}

// Error implements the error interface.
func (e *TodoError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *TodoError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether the error kind matches the target.
func (e *TodoError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Format returns a formatted error message with details and suggestion.
func (e *TodoError) Format() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, e.Details[k]))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n💡 Suggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WithDetails adds details to the error.
func (e *TodoError) WithDetails(key, value string) *TodoError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause of the error.
func (e *TodoError) WithCause(cause error) *TodoError {
	e.Cause = cause
	return e
}

// New creates a new TodoError with the given kind and message.
func New(kind error, message string) *TodoError {
	return &TodoError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind error, message string) *TodoError {
	return &TodoError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// WithSuggestion creates a new error with a suggestion.
func WithSuggestion(kind error, message, suggestion string) *TodoError {
	return &TodoError{
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	}
}

// FormatAny renders err with Format when it is a TodoError and as a plain
// "Error: ..." line otherwise.
func FormatAny(err error) string {
	if err == nil {
		return ""
	}
	var te *TodoError
	if errors.As(err, &te) {
		return te.Format()
	}
	return "Error: " + err.Error() + "\n"
}
