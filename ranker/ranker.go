// Package ranker orders applications by a sentiment metric over a selection of
// feature categories.
package ranker

import (
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"sort"
	"strings"
)

// NoDataScore is assigned to applications whose combined total for the
// selection is zero. Those entries have HasData=false and always rank after
// every entry with data, whatever the metric.
const NoDataScore = -1.0

// NormalizeSelection canonicalises and de-duplicates feature names, keeping
// first-seen order.
func NormalizeSelection(features []string) []string {
	seen := make(map[string]struct{}, len(features))
	out := make([]string, 0, len(features))
	for _, f := range features {
		f = models.CanonicalFeature(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// ParseSelection splits a comma-separated feature list.
func ParseSelection(raw string) []string {
	return NormalizeSelection(strings.Split(raw, ","))
}

// Rank scores every application in table over the selected features.
// The table is not modified.
func Rank(table *models.AggregatedTable, features []string, metric models.Metric) (models.RankingResult, error) {
	selection := NormalizeSelection(features)
	if len(selection) == 0 {
		return models.RankingResult{}, apperrors.InvalidSelection("select at least one feature")
	}
	for _, f := range selection {
		if !table.HasFeature(f) {
			return models.RankingResult{}, apperrors.InvalidSelection("feature %q has no data for any application", f).
				WithContext("feature", f)
		}
	}
	if metric != models.MetricPercentPositive && metric != models.MetricNetScore {
		return models.RankingResult{}, apperrors.InvalidSelection("unknown metric %q", metric)
	}

	entries := make([]models.RankingEntry, 0, len(table.Apps))
	for _, app := range table.Applications() {
		var counts models.SentimentCounts
		for _, f := range selection {
			if stats, ok := table.Lookup(app, f); ok {
				counts = counts.Add(stats.Counts())
			}
		}
		score, ok := Score(counts, metric)
		entries = append(entries, models.RankingEntry{
			App:      app,
			Score:    score,
			HasData:  ok,
			Positive: counts.Positive,
			Negative: counts.Negative,
			Neutral:  counts.Neutral,
			Total:    counts.Total(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return Less(entries[i], entries[j]) })
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return models.RankingResult{Metric: metric, Features: selection, Entries: entries}, nil
}

// Score computes metric over counts. It returns NoDataScore and false when the
// total is zero.
func Score(counts models.SentimentCounts, metric models.Metric) (float64, bool) {
	total := counts.Total()
	if total == 0 {
		return NoDataScore, false
	}
	switch metric {
	case models.MetricNetScore:
		return float64(counts.Positive-counts.Negative) / float64(total), true
	default:
		return float64(counts.Positive) / float64(total), true
	}
}

// Less orders entries with data first, then by score descending, then by
// application name ascending.
func Less(a, b models.RankingEntry) bool {
	if a.HasData != b.HasData {
		return a.HasData
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.App < b.App
}
