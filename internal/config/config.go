// Package config provides configuration data structures for todos.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/wexinc/todos/internal/todo"
)

// Config represents the complete todos configuration loaded from .todos/config.yaml.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api"     mapstructure:"api"`
	UI      UIConfig      `yaml:"ui"      json:"ui"      mapstructure:"ui"`
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`
}

// APIConfig configures the remote todos API.
type APIConfig struct {
	// BaseURL is the root of the REST resource; todos live under BaseURL + "/todos".
	BaseURL string `yaml:"base_url" json:"base_url" mapstructure:"base_url"`
	// UserID is the owner whose todos are listed and created.
	UserID int `yaml:"user_id" json:"user_id" mapstructure:"user_id"`
	// Timeout bounds every single request (default: 10s).
	Timeout time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
	// Retries is how many times an idempotent request is retried on transient failures.
	Retries int `yaml:"retries" json:"retries" mapstructure:"retries"`
	// RateLimit caps requests per second; 0 disables throttling.
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit" mapstructure:"rate_limit"`
	// Burst is the token bucket size used with RateLimit.
	Burst int `yaml:"burst" json:"burst" mapstructure:"burst"`
	// MaxConcurrency bounds in-flight requests during bulk toggle and bulk clear.
	MaxConcurrency int `yaml:"max_concurrency" json:"max_concurrency" mapstructure:"max_concurrency"`
}

// UIConfig configures the interactive interface.
type UIConfig struct {
	// ErrorTimeout is how long an error notification stays visible (default: 3s).
	ErrorTimeout time.Duration `yaml:"error_timeout" json:"error_timeout" mapstructure:"error_timeout"`
	// DefaultFilter is the filter selected at startup (default: all).
	DefaultFilter todo.Filter `yaml:"default_filter" json:"default_filter" mapstructure:"default_filter"`
	// AltScreen runs the TUI in the terminal's alternate screen (default: true).
	AltScreen bool `yaml:"alt_screen" json:"alt_screen" mapstructure:"alt_screen"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	// Dir is where log files are written (default: .todos/logs).
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"`
	// JSON switches the log format from text to JSON.
	JSON bool `yaml:"json" json:"json" mapstructure:"json"`
}

// Default values.
const (
	DefaultBaseURL        = "https://mate.academy/students-api"
	DefaultUserID         = 1
	DefaultTimeout        = 10 * time.Second
	DefaultRetries        = 2
	DefaultRateLimit      = 20.0
	DefaultBurst          = 10
	DefaultMaxConcurrency = 8
	DefaultErrorTimeout   = 3 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogDir         = ".todos/logs"
)

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			UserID:         DefaultUserID,
			Timeout:        DefaultTimeout,
			Retries:        DefaultRetries,
			RateLimit:      DefaultRateLimit,
			Burst:          DefaultBurst,
			MaxConcurrency: DefaultMaxConcurrency,
		},
		UI: UIConfig{
			ErrorTimeout:  DefaultErrorTimeout,
			DefaultFilter: todo.FilterAll,
			AltScreen:     true,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
			Dir:   DefaultLogDir,
		},
	}
}

// ApplyDefaults applies default values to any unset fields.
// This is used after loading config from file to fill in missing values.
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.UserID == 0 {
		c.API.UserID = defaults.API.UserID
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.API.Burst == 0 {
		c.API.Burst = defaults.API.Burst
	}
	if c.API.MaxConcurrency == 0 {
		c.API.MaxConcurrency = defaults.API.MaxConcurrency
	}
	// Retries and RateLimit keep an explicit zero: it means "off".

	if c.UI.ErrorTimeout == 0 {
		c.UI.ErrorTimeout = defaults.UI.ErrorTimeout
	}
	if c.UI.DefaultFilter == "" {
		c.UI.DefaultFilter = defaults.UI.DefaultFilter
	}

	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = defaults.Logging.Dir
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, &ValidationError{Field: "api.base_url", Message: "must be an absolute http(s) URL"})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, &ValidationError{Field: "api.base_url", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)})
	}
	if c.API.UserID <= 0 {
		errs = append(errs, &ValidationError{Field: "api.user_id", Message: "must be positive"})
	}
	if c.API.Timeout < 0 {
		errs = append(errs, &ValidationError{Field: "api.timeout", Message: "must be non-negative"})
	}
	if c.API.Retries < 0 {
		errs = append(errs, &ValidationError{Field: "api.retries", Message: "must be non-negative"})
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, &ValidationError{Field: "api.rate_limit", Message: "must be non-negative"})
	}
	if c.API.Burst < 0 {
		errs = append(errs, &ValidationError{Field: "api.burst", Message: "must be non-negative"})
	}
	if c.API.MaxConcurrency < 0 {
		errs = append(errs, &ValidationError{Field: "api.max_concurrency", Message: "must be non-negative"})
	}

	if c.UI.ErrorTimeout < 0 {
		errs = append(errs, &ValidationError{Field: "ui.error_timeout", Message: "must be non-negative"})
	}
	if c.UI.DefaultFilter != "" && !c.UI.DefaultFilter.IsValid() {
		errs = append(errs, &ValidationError{
			Field:   "ui.default_filter",
			Message: "must be 'all', 'active', or 'completed'",
		})
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		errs = append(errs, &ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
