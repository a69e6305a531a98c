package ranker

import (
	"sentiment-analysis/aggregator"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table() *models.AggregatedTable {
	t := models.NewAggregatedTable()
	t.Apps[models.Mazii] = map[string]models.FeatureStats{
		"kanji":  {Positive: 10, Negative: 2, Neutral: 1, Total: 13},
		"kotoba": {Positive: 4, Total: 4},
	}
	t.Apps[models.Obenkyo] = map[string]models.FeatureStats{
		"kanji": {Positive: 5, Negative: 5, Total: 10},
	}
	t.Apps[models.HeyJapan] = map[string]models.FeatureStats{
		"kotoba": {Positive: 66, Total: 66},
	}
	t.Apps[models.JASensei] = map[string]models.FeatureStats{
		"kanji": {Positive: 1, Negative: 1, Total: 2},
	}
	t.Apps[models.MigiiJLPT] = map[string]models.FeatureStats{
		"kanji": {Total: 0},
	}
	t.Apps[models.KanjiStudy] = map[string]models.FeatureStats{
		"kanji": {Positive: 1, Negative: 1, Total: 2},
	}
	return t
}

func TestRank_PercentPositive(t *testing.T) {
	result, err := Rank(table(), []string{"kanji"}, models.MetricPercentPositive)
	require.NoError(t, err)

	require.Len(t, result.Entries, 6)
	first := result.Entries[0]
	assert.Equal(t, models.Mazii, first.App)
	assert.InDelta(t, 10.0/13.0, first.Score, 1e-9)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, 13, first.Total)

	var apps []models.AppName
	for _, e := range result.Entries {
		apps = append(apps, e.App)
	}
	assert.Equal(t, []models.AppName{
		models.Mazii,
		models.JASensei, // 0.5, tie broken by name
		models.KanjiStudy,
		models.Obenkyo,
		models.HeyJapan, // no kanji data
		models.MigiiJLPT,
	}, apps)
}

func TestRank_TieBreakIsLexicographic(t *testing.T) {
	result, err := Rank(table(), []string{"kanji"}, models.MetricNetScore)
	require.NoError(t, err)

	for i := 1; i < len(result.Entries); i++ {
		prev, cur := result.Entries[i-1], result.Entries[i]
		if prev.HasData == cur.HasData && prev.Score == cur.Score {
			assert.Less(t, string(prev.App), string(cur.App))
		}
	}
}

func TestRank_ZeroTotalGetsSentinel(t *testing.T) {
	result, err := Rank(table(), []string{"kanji"}, models.MetricNetScore)
	require.NoError(t, err)

	last := result.Entries[len(result.Entries)-1]
	assert.Equal(t, models.MigiiJLPT, last.App)
	assert.False(t, last.HasData)
	assert.Equal(t, NoDataScore, last.Score)
	assert.Equal(t, 0, last.Total)
}

func TestRank_SentinelBelowNegativeScores(t *testing.T) {
	tbl := models.NewAggregatedTable()
	tbl.Apps[models.Mazii] = map[string]models.FeatureStats{"kanji": {Negative: 3, Total: 3}}
	tbl.Apps[models.Obenkyo] = map[string]models.FeatureStats{}

	result, err := Rank(tbl, []string{"kanji"}, models.MetricNetScore)
	require.NoError(t, err)

	assert.Equal(t, models.Mazii, result.Entries[0].App)
	assert.Equal(t, -1.0, result.Entries[0].Score)
	assert.True(t, result.Entries[0].HasData)
	assert.False(t, result.Entries[1].HasData)
}

func TestRank_SumsAcrossSelection(t *testing.T) {
	result, err := Rank(table(), []string{"Kanji", " kotoba ", "kanji"}, models.MetricPercentPositive)
	require.NoError(t, err)

	assert.Equal(t, []string{"kanji", "kotoba"}, result.Features)
	assert.Equal(t, models.HeyJapan, result.Entries[0].App)
	for _, e := range result.Entries {
		if e.App == models.Mazii {
			assert.Equal(t, 17, e.Total)
			assert.InDelta(t, 14.0/17.0, e.Score, 1e-9)
		}
	}
}

func TestRank_InvalidSelection(t *testing.T) {
	tests := []struct {
		name     string
		features []string
		metric   models.Metric
	}{
		{"empty", nil, models.MetricPercentPositive},
		{"blank", []string{" ", ""}, models.MetricPercentPositive},
		{"unknown feature", []string{"nonexistent_feature"}, models.MetricPercentPositive},
		{"one unknown among known", []string{"kanji", "nonexistent_feature"}, models.MetricPercentPositive},
		{"unknown metric", []string{"kanji"}, "median"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rank(table(), tt.features, tt.metric)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidSelection)
		})
	}
}

func TestRank_MixedCaseCategory(t *testing.T) {
	doc, err := aggregator.ParseDocument(models.Mazii, []byte(`{"Grammar": {"positive": 3, "negative": 1}}`))
	require.NoError(t, err)
	tbl, err := aggregator.Aggregate([]models.AppDocument{doc})
	require.NoError(t, err)

	for _, features := range [][]string{tbl.Features(), {"Grammar"}, {"grammar"}} {
		result, err := Rank(tbl, features, models.MetricPercentPositive)
		require.NoError(t, err, "features=%v", features)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, []string{"grammar"}, result.Features)
		assert.InDelta(t, 0.75, result.Entries[0].Score, 1e-9)
		assert.True(t, result.Entries[0].HasData)
	}
}

func TestRank_DoesNotMutateTable(t *testing.T) {
	tbl := table()
	before := table()

	_, err := Rank(tbl, []string{"kanji", "kotoba"}, models.MetricNetScore)
	require.NoError(t, err)
	assert.Equal(t, before, tbl)
}

func TestRank_TotalOrder(t *testing.T) {
	result, err := Rank(table(), []string{"kanji", "kotoba"}, models.MetricPercentPositive)
	require.NoError(t, err)

	assert.True(t, sort.SliceIsSorted(result.Entries, func(i, j int) bool {
		return Less(result.Entries[i], result.Entries[j])
	}))
	for i, e := range result.Entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestParseSelection(t *testing.T) {
	assert.Equal(t, []string{"kanji", "bunpou"}, ParseSelection("kanji, Bunpou,,kanji"))
	assert.Empty(t, ParseSelection(""))
}
