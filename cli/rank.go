package cli

import (
	"fmt"
	"sentiment-analysis/aggregator"
	"sentiment-analysis/models"
	"sentiment-analysis/ranker"
	"sentiment-analysis/report"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRankCmd(flags *globalFlags) *cobra.Command {
	var (
		features []string
		metric   string
		asCSV    bool
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank applications over the selected feature categories",
		Example: `  jpsentiment rank --features kanji,kotoba
  jpsentiment rank --features bunpou --metric net_score --csv > ranking.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			m, err := loadManifest(cfg)
			if err != nil {
				return err
			}
			parsed, err := models.ParseMetric(metric)
			if err != nil {
				return err
			}

			table, err := aggregator.Build(cmd.Context(), cfg.DataDir, m, cfg.UseFallbackData)
			if err != nil {
				return err
			}
			result, err := ranker.Rank(table, features, parsed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asCSV {
				return report.WriteRankingCSV(out, result)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "RANK\tAPPLICATION\t%s\tPOS\tNEG\tNEU\tTOTAL\n", result.Metric)
			for _, e := range result.Entries {
				score := "n/a"
				if e.HasData {
					score = fmt.Sprintf("%.3f", e.Score)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n", e.Rank, e.App, score, e.Positive, e.Negative, e.Neutral, e.Total)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringSliceVar(&features, "features", nil, "feature categories to rank over (comma separated)")
	cmd.Flags().StringVar(&metric, "metric", string(models.MetricPercentPositive), "percent_positive or net_score")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV instead of a table")
	_ = cmd.MarkFlagRequired("features")
	return cmd
}
