// Package errors provides error types for todos.
// This file contains network and timeout-related errors.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Network-related error constructors.

// NetworkUnavailable creates an error for transport failures talking to the API.
func NetworkUnavailable(host string, cause error) *TodoError {
	err := &TodoError{
		Kind:    ErrNetwork,
		Message: "network unavailable",
		Cause:   cause,
		Suggestion: `Check your network connection and the API address:

  1. Verify internet connectivity
  2. Check the api.base_url setting in .todos/config.yaml
  3. Try: todos list --verbose

If you're behind a proxy:
  export HTTP_PROXY=http://proxy:port
  export HTTPS_PROXY=http://proxy:port`,
	}
	if host != "" {
		err.Details = map[string]string{"host": host}
	}
	return err
}

// RequestFailed creates an error for a non-2xx API response.
func RequestFailed(method, url string, status int) *TodoError {
	kind := ErrNetwork
	if status == http.StatusNotFound {
		kind = ErrNotFound
	}
	return &TodoError{
		Kind:    kind,
		Message: fmt.Sprintf("%s %s returned %d", method, url, status),
		Details: map[string]string{
			"method": method,
			"url":    url,
			"status": fmt.Sprintf("%d", status),
		},
	}
}

// InvalidResponse creates an error for a payload that could not be decoded or
// did not match the expected shape.
func InvalidResponse(url string, cause error) *TodoError {
	return &TodoError{
		Kind:    ErrNetwork,
		Message: "invalid response from todo API",
		Cause:   cause,
		Details: map[string]string{
			"url":     url,
			"payload": "invalid",
		},
		Suggestion: "The server answered with an unexpected payload. Check that api.base_url points at a todos API.",
	}
}

// RateLimited creates an error for API rate limiting.
func RateLimited(retryAfter time.Duration) *TodoError {
	suggestion := "Wait before retrying."
	if retryAfter > 0 {
		suggestion = fmt.Sprintf("Wait %v before retrying.", retryAfter.Round(time.Second))
	}
	return &TodoError{
		Kind:       ErrNetwork,
		Message:    "rate limit exceeded",
		Suggestion: suggestion + "\n\nLower api.rate_limit in .todos/config.yaml to send fewer requests.",
	}
}

// Timeout-related error constructors.

// OperationTimeout creates a generic timeout error.
func OperationTimeout(operation string, elapsed time.Duration) *TodoError {
	return &TodoError{
		Kind:    ErrTimeout,
		Message: fmt.Sprintf("%s timed out after %v", operation, elapsed.Round(time.Millisecond)),
		Details: map[string]string{
			"operation": operation,
			"elapsed":   elapsed.Round(time.Millisecond).String(),
		},
		Suggestion: "The API took too long to answer. Raise api.timeout or try again later.",
	}
}

// FromTransport classifies an error returned by http.Client.Do.
func FromTransport(host string, elapsed time.Duration, err error) *TodoError {
	if errors.Is(err, context.DeadlineExceeded) {
		return OperationTimeout("request to "+host, elapsed).WithCause(err)
	}
	return NetworkUnavailable(host, err)
}

// Helper functions for error detection.

// IsRetryable returns true if the error is likely transient and retrying may succeed.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TodoError
	if !errors.As(err, &te) {
		return false
	}

	switch te.Kind {
	case ErrTimeout:
		return true
	case ErrNetwork:
		// 4xx answers are deterministic; only transport and 5xx failures are worth retrying.
		if status, ok := te.Details["status"]; ok {
			return (len(status) == 3 && status[0] == '5') || status == "429"
		}
		_, invalid := te.Details["payload"]
		return !invalid
	default:
		return false
	}
}

// IsUserError returns true if the error is due to user input or misconfiguration.
func IsUserError(err error) bool {
	var te *TodoError
	if errors.As(err, &te) {
		switch te.Kind {
		case ErrConfig, ErrValidation:
			return true
		default:
			return false
		}
	}
	return false
}
