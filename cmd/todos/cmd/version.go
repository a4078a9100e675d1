package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/version"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show detailed version information for todos.

Displays the current version, commit hash, build date,
and Go/platform information.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// runVersion handles the version command.
func runVersion(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	info := version.NewInfo(Version, Commit, Date)
	if format == app.OutputFormatJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	cmd.Println(info.FullString())
	return nil
}
