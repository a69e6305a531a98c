// Package cli is the jpsentiment command line: the dashboard server plus
// one-shot aggregate, rank and predict commands.
package cli

import (
	"sentiment-analysis/aggregator"
	"sentiment-analysis/config"
	"sentiment-analysis/logging"

	"github.com/spf13/cobra"
)

var Version = "dev"

type globalFlags struct {
	dataDir  string
	manifest string
	snapshot string
	logLevel string
}

// NewRootCmd builds a fresh command tree, so flag state never leaks between runs.
func NewRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:     "jpsentiment",
		Version: Version,
		Short:   "Sentiment dashboard for Japanese-learning apps",
		Long: `jpsentiment aggregates per-application review sentiment, ranks the
applications over selected feature categories and classifies new reviews
with a trained model.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory holding the per-application JSON documents (DATA_DIR)")
	root.PersistentFlags().StringVar(&flags.manifest, "manifest", "", "YAML sources manifest (SOURCES_MANIFEST)")
	root.PersistentFlags().StringVar(&flags.snapshot, "snapshot", "", "aggregated snapshot path (SNAPSHOT_PATH)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(&flags),
		newAggregateCmd(&flags),
		newRankCmd(&flags),
		newPredictCmd(&flags),
	)
	return root
}

// Execute runs the command tree. It is called by main.main.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the environment, applies flag overrides and initializes logging.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.manifest != "" {
		cfg.SourcesManifest = flags.manifest
	}
	if flags.snapshot != "" {
		cfg.SnapshotPath = flags.snapshot
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func loadManifest(cfg *config.Config) (aggregator.Manifest, error) {
	m, err := aggregator.LoadManifest(cfg.SourcesManifest)
	if err != nil {
		return aggregator.Manifest{}, err
	}
	return m, m.Validate()
}
