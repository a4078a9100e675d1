package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// header is written above a generated config file.
const header = `# todos configuration.
# Every key can be overridden with an environment variable, e.g.
# TODOS_API_BASE_URL or TODOS_UI_ERROR_TIMEOUT.
`

// Marshal renders the configuration as YAML. Durations are written in their
// human-readable form ("3s") so the file round-trips through Load.
func (c *Config) Marshal() ([]byte, error) {
	doc := map[string]any{
		"api": map[string]any{
			"base_url":        c.API.BaseURL,
			"user_id":         c.API.UserID,
			"timeout":         c.API.Timeout.String(),
			"retries":         c.API.Retries,
			"rate_limit":      c.API.RateLimit,
			"burst":           c.API.Burst,
			"max_concurrency": c.API.MaxConcurrency,
		},
		"ui": map[string]any{
			"error_timeout":  c.UI.ErrorTimeout.String(),
			"default_filter": string(c.UI.DefaultFilter),
			"alt_screen":     c.UI.AltScreen,
		},
		"logging": map[string]any{
			"level": c.Logging.Level,
			"dir":   c.Logging.Dir,
			"json":  c.Logging.JSON,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the configuration to path, creating parent directories.
// An existing file is only replaced when overwrite is true.
func (c *Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
