package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmeter/taskmeter/packages/config"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	statusFlag  string
	debugFlag   bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "taskmeter",
	Short: "Measure a task service from the outside.",
	Long: `taskmeter drives integration and performance tests against a remote
task-processing HTTP service: it polls tasks to completion, downloads
published content, and reports timing statistics. Collected status data
is kept in a JSON file between runs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debugFlag {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the discovered config file with the persistent flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Discover(".")
	if err != nil {
		return nil, err
	}
	if rootCmd.PersistentFlags().Changed("status") || cfg.StatusPath == "" {
		cfg.StatusPath = statusFlag
	}
	if debugFlag {
		cfg.Debug = true
	}
	if cfg.Debug && !debugFlag {
		// debug came from the config file, after logging was already set up
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&statusFlag, "status", config.DefaultStatusPath,
		"file from where to load and to which to dump status data")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "show debug output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(versionCmd)
}
