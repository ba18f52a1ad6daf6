package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EdoardoTosin/tools/internal/config"
	"github.com/EdoardoTosin/tools/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Site generation hooks for the script catalog",
	Long: `Sitegen runs the build hooks behind the downloadable-scripts site:

  • catalog — scan the scripts directory and regenerate the data file
    and Markdown listing when anything changed
  • sri     — hash the built site's scripts and write the Subresource
    Integrity lookup table for the templates

Both commands are best-effort: a failed generation logs why and leaves
the previous output in place instead of failing the site build.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(sriCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads settings and wires the logger, shared by every
// subcommand.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Setup(cfg.LogLevel)
	return cfg, nil
}
