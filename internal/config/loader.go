// Package config provides configuration loading and management for todos.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/wexinc/todos/internal/todo"
)

const (
	// DefaultConfigPath is the default path to the config file relative to the working directory.
	DefaultConfigPath = ".todos/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "TODOS"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from the specified path, applies defaults,
// merges environment variables, and validates the result.
// If path is empty, it uses DefaultConfigPath relative to the working directory.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{
			Path:    path,
			Message: "config file not found",
			Err:     err,
		}
	}

	l.v.SetConfigFile(path)

	if err := l.v.ReadInConfig(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read config file",
			Err:     err,
		}
	}

	return l.decode(path)
}

// LoadConfigOrDefault behaves like LoadConfig but falls back to defaults (plus
// environment overrides) when the file does not exist.
func (l *Loader) LoadConfigOrDefault(path string) (*Config, error) {
	cfg, err := l.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg = NewConfig()
	l.applyEnvOverrides(cfg)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    "environment",
			Message: "configuration validation failed",
			Err:     err,
		}
	}
	return cfg, nil
}

// LoadConfigFromDir loads configuration from .todos/config.yaml in the specified directory.
func (l *Loader) LoadConfigFromDir(dir string) (*Config, error) {
	return l.LoadConfig(filepath.Join(dir, DefaultConfigPath))
}

// Watch calls fn with the re-decoded configuration every time the loaded file
// changes on disk. It must be called after a successful LoadConfig.
func (l *Loader) Watch(fn func(*Config, error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(l.decode(e.Name))
	})
	l.v.WatchConfig()
}

// decode unmarshals the values viper currently holds on top of the defaults.
func (l *Loader) decode(path string) (*Config, error) {
	cfg := NewConfig()

	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to parse config file",
			Err:     err,
		}
	}

	l.applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	// API settings
	if v := os.Getenv(EnvPrefix + "_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvPrefix + "_API_USER_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.UserID = n
		}
	}
	if v := os.Getenv(EnvPrefix + "_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv(EnvPrefix + "_API_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.Retries = n
		}
	}
	if v := os.Getenv(EnvPrefix + "_API_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.API.RateLimit = f
		}
	}
	if v := os.Getenv(EnvPrefix + "_API_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.Burst = n
		}
	}
	if v := os.Getenv(EnvPrefix + "_API_MAX_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.MaxConcurrency = n
		}
	}

	// UI settings
	if v := os.Getenv(EnvPrefix + "_UI_ERROR_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.UI.ErrorTimeout = d
		}
	}
	if v := os.Getenv(EnvPrefix + "_UI_DEFAULT_FILTER"); v != "" {
		cfg.UI.DefaultFilter = todo.Filter(strings.ToLower(v))
	}
	if v := os.Getenv(EnvPrefix + "_UI_ALT_SCREEN"); v != "" {
		cfg.UI.AltScreen = parseBool(v)
	}

	// Logging settings
	if v := os.Getenv(EnvPrefix + "_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvPrefix + "_LOGGING_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := os.Getenv(EnvPrefix + "_LOGGING_JSON"); v != "" {
		cfg.Logging.JSON = parseBool(v)
	}
}

// parseBool parses a string as a boolean value.
// Returns true for "true", "1", "yes" (case-insensitive).
// Returns false for anything else.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// viperDecodeHook provides custom decoding for viper unmarshaling.
// It composes the standard mapstructure hooks with our custom ones.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToCustomTypeHookFunc(),
	)
}

// stringToCustomTypeHookFunc creates a decode hook for our custom types.
func stringToCustomTypeHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		switch to {
		case reflect.TypeOf(todo.Filter("")):
			return todo.Filter(strings.ToLower(data.(string))), nil
		}

		return data, nil
	}
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience function that creates a new Loader and loads configuration.
// If path is empty, it uses DefaultConfigPath.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}

// LoadOrDefault is a convenience function for Loader.LoadConfigOrDefault.
func LoadOrDefault(path string) (*Config, error) {
	return NewLoader().LoadConfigOrDefault(path)
}

// LoadFromDir is a convenience function that loads configuration from a directory.
func LoadFromDir(dir string) (*Config, error) {
	return NewLoader().LoadConfigFromDir(dir)
}
