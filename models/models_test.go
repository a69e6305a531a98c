package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSentiment(t *testing.T) {
	s, err := ParseSentiment(" Positive ")
	require.NoError(t, err)
	assert.Equal(t, Positive, s)

	_, err = ParseSentiment("mixed")
	assert.Error(t, err)
	assert.False(t, Sentiment("mixed").Valid())
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, MetricPercentPositive, m)

	m, err = ParseMetric("net_score")
	require.NoError(t, err)
	assert.Equal(t, MetricNetScore, m)

	_, err = ParseMetric("median")
	assert.Error(t, err)
}

func TestKnownApps(t *testing.T) {
	apps := KnownApps()
	assert.Equal(t, []AppName{HeyJapan, JASensei, KanjiStudy, Mazii, MigiiJLPT, Obenkyo}, apps)
	assert.True(t, IsKnownApp(Mazii))
	assert.False(t, IsKnownApp("Duolingo"))
}

func TestSentimentCounts(t *testing.T) {
	c := SentimentCounts{Positive: 3, Negative: 1}.Add(SentimentCounts{Neutral: 2, Positive: 1})
	assert.Equal(t, 7, c.Total())
	assert.Equal(t, 4, c.Get(Positive))
	assert.Equal(t, 2, c.Get(Neutral))
	assert.Equal(t, 0, c.Get("mixed"))

	stats := NewFeatureStats(c)
	assert.True(t, stats.Consistent())
	assert.Equal(t, c, stats.Counts())
	assert.False(t, FeatureStats{Positive: 1, Total: 2}.Consistent())
	assert.False(t, FeatureStats{Positive: -1, Neutral: 1, Total: 0}.Consistent())
}

func TestAppDocumentRecords(t *testing.T) {
	doc := AppDocument{App: Mazii, Features: map[string]map[Sentiment]int{
		"kotoba": {Negative: 2},
		"kanji":  {Positive: 5, Neutral: 0},
		"bunpou": {},
	}}

	assert.Equal(t, []FeatureSentimentRecord{
		{App: Mazii, Feature: "kanji", Label: Positive, Count: 5},
		{App: Mazii, Feature: "kanji", Label: Neutral, Count: 0},
		{App: Mazii, Feature: "kotoba", Label: Negative, Count: 2},
	}, doc.Records())
}

func TestAggregatedTableAccessors(t *testing.T) {
	table := NewAggregatedTable()
	table.Apps[Obenkyo] = map[string]FeatureStats{"kanji": {Positive: 1, Total: 1}}
	table.Apps[HeyJapan] = map[string]FeatureStats{"bunpou": {}}

	assert.Equal(t, []AppName{HeyJapan, Obenkyo}, table.Applications())
	assert.Equal(t, []string{"bunpou", "kanji"}, table.Features())
	assert.True(t, table.HasFeature("bunpou"))
	assert.False(t, table.HasFeature("kotoba"))

	stats, ok := table.Lookup(Obenkyo, "kanji")
	assert.True(t, ok)
	assert.Equal(t, 1, stats.Total)
	_, ok = table.Lookup(HeyJapan, "kanji")
	assert.False(t, ok)

	var nilTable *AggregatedTable
	assert.Nil(t, nilTable.Applications())
	assert.False(t, nilTable.HasFeature("kanji"))
}
