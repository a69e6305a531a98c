package report

import (
	"bytes"
	"encoding/csv"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"sentiment-analysis/ranker"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *models.AggregatedTable {
	t := models.NewAggregatedTable()
	t.Apps[models.Mazii] = map[string]models.FeatureStats{
		"kanji":  {Positive: 10, Negative: 2, Neutral: 1, Total: 13},
		"bunpou": {Positive: 3, Total: 3},
	}
	t.Apps[models.Obenkyo] = map[string]models.FeatureStats{
		"kanji": {Positive: 1, Negative: 2, Total: 3},
	}
	t.Apps[models.JASensei] = map[string]models.FeatureStats{
		"kanji": {},
	}
	return t
}

func TestSummarize(t *testing.T) {
	o := Summarize(sampleTable())

	assert.Equal(t, 3, o.Applications)
	assert.Equal(t, 19, o.TotalReviews)
	assert.Equal(t, 14, o.PositiveCount)
	assert.Equal(t, 4, o.NegativeCount)
	assert.Equal(t, 1, o.NeutralCount)
	assert.InDelta(t, 14.0/19.0, o.PositiveRate, 1e-9)
	assert.Equal(t, []string{"bunpou", "kanji"}, o.Features)
}

func TestSummarize_EmptyTable(t *testing.T) {
	o := Summarize(models.NewAggregatedTable())
	assert.Zero(t, o.TotalReviews)
	assert.Zero(t, o.PositiveRate)
}

func TestCompare_MissingIsDistinctFromZero(t *testing.T) {
	c, err := Compare(sampleTable(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"bunpou", "kanji"}, c.Features)
	require.Len(t, c.Rows, 3)

	byApp := make(map[models.AppName]ComparisonRow)
	for _, r := range c.Rows {
		byApp[r.App] = r
	}
	assert.False(t, byApp[models.Obenkyo].Cells["bunpou"].Present)
	assert.True(t, byApp[models.JASensei].Cells["kanji"].Present)
	assert.Zero(t, byApp[models.JASensei].Cells["kanji"].Total)
	assert.InDelta(t, 10.0/13.0, byApp[models.Mazii].Cells["kanji"].PercentPositive, 1e-9)
}

func TestCompare_UnknownFeature(t *testing.T) {
	_, err := Compare(sampleTable(), []string{"nonexistent_feature"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSelection)
}

func TestRankingCSVRoundTrip(t *testing.T) {
	result, err := ranker.Rank(sampleTable(), []string{"kanji", "bunpou"}, models.MetricNetScore)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteRankingCSV(&buf, result))

	entries, err := ReadRankingCSV(&buf)
	require.NoError(t, err)
	require.Len(t, entries, len(result.Entries))
	for i := range entries {
		assert.Equal(t, result.Entries[i].App, entries[i].App)
		assert.Equal(t, result.Entries[i].Score, entries[i].Score)
	}
	assert.Equal(t, result.Entries, entries)
}

func TestReadRankingCSV_Errors(t *testing.T) {
	_, err := ReadRankingCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadRankingCSV(strings.NewReader("a,b,c,d,e,f,g,h\n"))
	assert.ErrorContains(t, err, "unexpected column")

	_, err = ReadRankingCSV(strings.NewReader(
		"rank,application,score,positive,negative,neutral,total,has_data\n1,Mazii,high,1,0,0,1,true\n"))
	assert.ErrorContains(t, err, "score")
}

func TestWriteComparisonCSV(t *testing.T) {
	c, err := Compare(sampleTable(), []string{"kanji", "bunpou"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteComparisonCSV(&buf, c))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"application", "kanji_percent_positive", "kanji_total", "bunpou_percent_positive", "bunpou_total"}, records[0])
	assert.Equal(t, []string{"JA Sensei", "0.0", "0", "", ""}, records[1])
	assert.Equal(t, []string{"Mazii", "76.9", "13", "100.0", "3"}, records[2])
}
