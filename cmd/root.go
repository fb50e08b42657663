// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/config"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/gateway"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "healthdash",
	Short: "A health dashboard for open source GitHub repositories.",
	Long: `healthdash builds repository health snapshots (commit and PR
activity, contributors, languages, DORA metrics, issue-triage pressure)
and serves them over an HTTP API with a side-by-side comparison view and
a persisted watchlist.

Snapshots come from the live GitHub API or from a built-in sample
provider that needs no token; select one with the PROVIDER setting.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// setup loads the configuration and builds the logger every command
// starts from. The --verbose flag forces debug console logging; quiet
// raises the floor to warnings for commands whose stdout is the payload.
func setup(cmd *cobra.Command, quiet bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	if verbose {
		cfg.LogLevel = "debug"
		cfg.LogFormat = "console"
	} else if quiet {
		cfg.LogLevel = "warn"
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// buildProvider picks the snapshot source the configuration asks for.
func buildProvider(cfg *config.Config, log *zap.Logger) (gateway.Provider, error) {
	if cfg.Provider == config.ProviderLive {
		return gateway.NewGitHubGateway(cfg.GitHubToken, log)
	}
	return gateway.NewSampleProvider(log), nil
}
