// Package cli contains all gather commands.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/feedgather/gather/internal/config"
	"github.com/feedgather/gather/internal/logging"
)

var (
	cfgFile string
	quiet   bool
	cfg     config.Config
	logger  *slog.Logger
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "gather",
	Short: "A command-line feed aggregator",
	Long: `gather pulls content from configured RSS and Atom feeds into a
unified feed.

Sources are fetched in parallel, each bounded by a timeout; a failing
source is reported without stopping the others. Fetched items can be
persisted to Postgres (set DATABASE_URL) for the list and open commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.gather/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all non-error output")
}

func initConfig() error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}

	if quiet {
		cfg.Logging.Level = slog.LevelError
	}

	logger, err = logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		"path", path,
		"sources", len(cfg.Sources),
		"timeout", cfg.Fetch.Timeout,
	)

	return nil
}
