package report

import (
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"sentiment-analysis/ranker"
)

// Overview holds the headline numbers shown at the top of the dashboard.
type Overview struct {
	Applications  int      `json:"applications"`
	TotalReviews  int      `json:"total_reviews"`
	PositiveCount int      `json:"positive_reviews"`
	NegativeCount int      `json:"negative_reviews"`
	NeutralCount  int      `json:"neutral_reviews"`
	PositiveRate  float64  `json:"positive_rate"`
	Features      []string `json:"features"`
}

func Summarize(table *models.AggregatedTable) Overview {
	var counts models.SentimentCounts
	for _, features := range table.Apps {
		for _, stats := range features {
			counts = counts.Add(stats.Counts())
		}
	}
	o := Overview{
		Applications:  len(table.Apps),
		TotalReviews:  counts.Total(),
		PositiveCount: counts.Positive,
		NegativeCount: counts.Negative,
		NeutralCount:  counts.Neutral,
		Features:      table.Features(),
	}
	if o.TotalReviews > 0 {
		o.PositiveRate = float64(o.PositiveCount) / float64(o.TotalReviews)
	}
	return o
}

// FeatureCell is one application/feature cell of the comparison table.
// Present=false means the application's document has no such category.
type FeatureCell struct {
	Present         bool    `json:"present"`
	PercentPositive float64 `json:"percent_positive"`
	Total           int     `json:"total"`
}

type ComparisonRow struct {
	App   models.AppName         `json:"app"`
	Cells map[string]FeatureCell `json:"cells"`
}

type Comparison struct {
	Features []string        `json:"features"`
	Rows     []ComparisonRow `json:"rows"`
}

// Compare builds one row per application over features. An empty features
// list compares every category in the table.
func Compare(table *models.AggregatedTable, features []string) (Comparison, error) {
	selection := ranker.NormalizeSelection(features)
	if len(selection) == 0 {
		selection = table.Features()
	}
	for _, f := range selection {
		if !table.HasFeature(f) {
			return Comparison{}, apperrors.InvalidSelection("feature %q has no data for any application", f).
				WithContext("feature", f)
		}
	}

	c := Comparison{Features: selection}
	for _, app := range table.Applications() {
		row := ComparisonRow{App: app, Cells: make(map[string]FeatureCell, len(selection))}
		for _, f := range selection {
			stats, ok := table.Lookup(app, f)
			if !ok {
				row.Cells[f] = FeatureCell{}
				continue
			}
			cell := FeatureCell{Present: true, Total: stats.Total}
			if stats.Total > 0 {
				cell.PercentPositive = float64(stats.Positive) / float64(stats.Total)
			}
			row.Cells[f] = cell
		}
		c.Rows = append(c.Rows, row)
	}
	return c, nil
}
