// Package cmd provides the CLI commands for todos.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wexinc/todos/internal/errors"
	"github.com/wexinc/todos/internal/tui"
)

// Version information - set via ldflags at build time in main.go.
// These are exported so main.go can set them before Execute().
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "todos",
	Short: "A terminal client for your todo list",
	Long: `todos manages a todo list stored behind a REST API.

Run without a subcommand to open the interactive interface. When stdout is
not a terminal the list is printed instead, so todos can be piped.

Examples:
  todos                        # Open the TUI
  todos list --filter active   # Print the open todos
  todos add "Buy milk"         # Add a todo
  todos --offline              # Try it without a server`,
	RunE:          runRoot,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	addPersistentFlags(rootCmd)
}

// addPersistentFlags registers the flags every command shares.
func addPersistentFlags(c *cobra.Command) {
	flags := c.PersistentFlags()
	flags.String("config", "", "Path to the config file (default: .todos/config.yaml)")
	flags.String("base-url", "", "Base URL of the todos API")
	flags.Int("user-id", 0, "User id whose todos are shown")
	flags.Bool("offline", false, "Use an in-memory demo list instead of the API")
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.StringP("output", "o", "text", "Output format for non-interactive commands: text or json")
}

// stdoutIsTerminal reports whether the TUI can take over stdout.
var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runRoot opens the TUI, or prints the list when stdout is not a terminal.
func runRoot(cmd *cobra.Command, args []string) error {
	if !stdoutIsTerminal() {
		return runList(cmd, args)
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	opts := tui.Options{AltScreen: e.cfg.UI.AltScreen}
	if e.watchable {
		opts.Loader = e.loader
	}
	return tui.Run(ctx, e.session, opts)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("todos {{.Version}}\n")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprint(os.Stderr, errors.FormatAny(err))
		os.Exit(1)
	}
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}
