package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wexinc/todos/internal/config"
	"github.com/wexinc/todos/internal/errors"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default configuration to .todos/config.yaml (or --config).

--base-url and --user-id are written into the file. Use --force to
overwrite an existing configuration.

Examples:
  todos init --user-id 42     # Initialize for user 42
  todos init --force          # Reset the configuration`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing configuration")
}

// runInit is the main entry point for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}

	cfg := config.NewConfig()
	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if cmd.Flags().Changed("user-id") {
		cfg.API.UserID, _ = cmd.Flags().GetInt("user-id")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrConfig, "invalid configuration")
	}

	if err := cfg.Save(path, force); err != nil {
		return errors.WithSuggestion(errors.ErrConfig, err.Error(),
			"Use --force to overwrite the existing configuration.")
	}

	cmd.Printf("Created %s\n", path)
	cmd.Println("Edit it to point todos at your API, then run 'todos'.")
	return nil
}
