package cli

import (
	"fmt"
	"sentiment-analysis/aggregator"
	"sentiment-analysis/report"
	"time"

	"github.com/spf13/cobra"
)

func newAggregateCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Build the aggregated snapshot from the source documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			m, err := loadManifest(cfg)
			if err != nil {
				return err
			}

			if !force {
				stale, err := aggregator.SourcesNewerThan(cfg.SnapshotPath, cfg.DataDir, m)
				if err != nil {
					return err
				}
				if !stale {
					fmt.Fprintf(cmd.OutOrStdout(), "Snapshot %s is up to date\n", cfg.SnapshotPath)
					return nil
				}
			}

			table, err := aggregator.Build(cmd.Context(), cfg.DataDir, m, cfg.UseFallbackData)
			if err != nil {
				return err
			}
			if err := aggregator.WriteSnapshot(cfg.SnapshotPath, table, time.Now().UTC()); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			o := report.Summarize(table)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d applications, %d reviews, features %v\n",
				cfg.SnapshotPath, o.Applications, o.TotalReviews, o.Features)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "rebuild even if the snapshot is newer than every source")
	return cmd
}
