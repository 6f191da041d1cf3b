package cli

import (
	"context"

	"github.com/crewwatch-io/crewwatch/internal/config"
	"github.com/crewwatch-io/crewwatch/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "crewwatch",
	Short: "Track the people currently in space",
	Long: `Crewwatch fetches the roster of people currently in space from the
Open Notify feed and keeps it in a reducer-driven state store.

It provides:
  • A one-shot fetch with human or JSON output
  • A web view with live loading indicator
  • Snapshot persistence to local files or S3
  • A SQLite journal of completed fetches`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logLevel)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a Pkl config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(crewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration for a command invocation.
func loadConfig(ctx context.Context) (config.Config, error) {
	cfg, err := config.Load(ctx, cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if cmdChangedLogLevel() {
		cfg.LogLevel = logLevel
	}
	logging.Init(cfg.LogLevel)
	return cfg, nil
}

func cmdChangedLogLevel() bool {
	flag := rootCmd.PersistentFlags().Lookup("log-level")
	return flag != nil && flag.Changed
}
