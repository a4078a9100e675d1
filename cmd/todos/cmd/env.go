package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wexinc/todos/internal/api"
	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/config"
	"github.com/wexinc/todos/internal/errors"
	"github.com/wexinc/todos/internal/logging"
	"github.com/wexinc/todos/internal/version"
)

// env is what a command needs to talk to the todo list.
type env struct {
	cfg       *config.Config
	loader    *config.Loader
	watchable bool
	session   *app.Session
	logging   bool
}

// newClient builds the API client. Tests replace it.
var newClient = func(cfg *config.Config, offline bool) (api.Client, error) {
	if offline {
		return api.NewMemory(cfg.API.UserID, api.DemoTasks(cfg.API.UserID)...), nil
	}
	info := version.NewInfo(Version, Commit, Date)
	return api.NewHTTP(api.OptionsFromConfig(cfg.API, info.UserAgent()))
}

// loadConfig reads the config file (or defaults) and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, *config.Loader, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}

	loader := config.NewLoader()
	cfg, err := loader.LoadConfigOrDefault(path)
	if err != nil {
		var verrs config.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return nil, nil, path, errors.ConfigValidationError(verrs[0].Field, verrs[0].Message, nil)
		}
		return nil, nil, path, errors.ConfigParseError(path, err)
	}

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if cmd.Flags().Changed("user-id") {
		cfg.API.UserID, _ = cmd.Flags().GetInt("user-id")
	}
	if err := cfg.Validate(); err != nil {
		var verrs config.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return nil, nil, path, errors.ConfigValidationError(verrs[0].Field, verrs[0].Message, nil)
		}
		return nil, nil, path, errors.Wrap(err, errors.ErrConfig, "invalid configuration")
	}
	return cfg, loader, path, nil
}

// newEnv loads config, starts file logging and builds the session.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, loader, path, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(path)

	e := &env{
		cfg:       cfg,
		loader:    loader,
		watchable: statErr == nil,
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := logging.ParseLevel(cfg.Logging.Level)
	if verbose {
		level = logging.LevelDebug
	}
	logConfig := &logging.Config{
		Level:       level,
		LogDir:      cfg.Logging.Dir,
		MaxLogFiles: 10,
		MaxLogAge:   7 * 24 * time.Hour,
		Console:     false, // stdout and stderr belong to the TUI and headless output
		JSONFormat:  cfg.Logging.JSON,
	}
	if err := logging.InitGlobal(logConfig); err != nil {
		// Non-fatal: warn but continue without file logging
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to initialize logging: %v\n", err)
	} else {
		e.logging = true
		logging.Info("todos starting", "version", Version, "command", cmd.Name(), "base_url", cfg.API.BaseURL)
	}

	offline, _ := cmd.Flags().GetBool("offline")
	client, err := newClient(cfg, offline)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.session = app.NewSession(app.Options{
		Client:         client,
		Owner:          cfg.API.UserID,
		Filter:         cfg.UI.DefaultFilter,
		NoticeDelay:    cfg.UI.ErrorTimeout,
		MaxConcurrency: cfg.API.MaxConcurrency,
		Logger:         logging.Global(),
	})
	return e, nil
}

// Close stops the session and flushes the log file.
func (e *env) Close() {
	if e.session != nil {
		e.session.Close()
	}
	if e.logging {
		_ = logging.CloseGlobal()
	}
}

// signalContext returns the command context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}
