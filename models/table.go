package models

import (
	"sort"
	"strings"
)

// CanonicalFeature is the key a feature category is stored and selected under.
func CanonicalFeature(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FeatureStats is the per-(application, feature) entry of an AggregatedTable.
// Total always equals Positive + Negative + Neutral.
type FeatureStats struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
	Total    int `json:"total"`
}

func NewFeatureStats(c SentimentCounts) FeatureStats {
	return FeatureStats{
		Positive: c.Positive,
		Negative: c.Negative,
		Neutral:  c.Neutral,
		Total:    c.Total(),
	}
}

func (s FeatureStats) Counts() SentimentCounts {
	return SentimentCounts{Positive: s.Positive, Negative: s.Negative, Neutral: s.Neutral}
}

// Consistent reports whether Total matches the label counts and nothing is negative.
func (s FeatureStats) Consistent() bool {
	if s.Positive < 0 || s.Negative < 0 || s.Neutral < 0 {
		return false
	}
	return s.Total == s.Positive+s.Negative+s.Neutral
}

// AggregatedTable maps application -> feature category -> stats.
type AggregatedTable struct {
	Apps map[AppName]map[string]FeatureStats `json:"apps"`
}

func NewAggregatedTable() *AggregatedTable {
	return &AggregatedTable{Apps: make(map[AppName]map[string]FeatureStats)}
}

// Applications returns every application in the table, sorted.
func (t *AggregatedTable) Applications() []AppName {
	if t == nil {
		return nil
	}
	out := make([]AppName, 0, len(t.Apps))
	for app := range t.Apps {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Features returns the sorted union of feature categories across all applications.
func (t *AggregatedTable) Features() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, features := range t.Apps {
		for f := range features {
			seen[f] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// HasFeature reports whether any application has data for feature.
func (t *AggregatedTable) HasFeature(feature string) bool {
	if t == nil {
		return false
	}
	for _, features := range t.Apps {
		if _, ok := features[feature]; ok {
			return true
		}
	}
	return false
}

func (t *AggregatedTable) Lookup(app AppName, feature string) (FeatureStats, bool) {
	if t == nil {
		return FeatureStats{}, false
	}
	stats, ok := t.Apps[app][feature]
	return stats, ok
}

// Records flattens the table into one record per (application, feature, label),
// ordered by application, feature, then label.
func (t *AggregatedTable) Records() []FeatureSentimentRecord {
	var out []FeatureSentimentRecord
	for _, app := range t.Applications() {
		features := make([]string, 0, len(t.Apps[app]))
		for f := range t.Apps[app] {
			features = append(features, f)
		}
		sort.Strings(features)
		for _, f := range features {
			counts := t.Apps[app][f].Counts()
			for _, label := range Sentiments {
				out = append(out, FeatureSentimentRecord{App: app, Feature: f, Label: label, Count: counts.Get(label)})
			}
		}
	}
	return out
}

// RankingEntry is one row of a RankingResult.
type RankingEntry struct {
	Rank     int     `json:"rank"`
	App      AppName `json:"app"`
	Score    float64 `json:"score"`
	HasData  bool    `json:"has_data"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Neutral  int     `json:"neutral"`
	Total    int     `json:"total"`
}

type RankingResult struct {
	Metric   Metric         `json:"metric"`
	Features []string       `json:"features"`
	Entries  []RankingEntry `json:"entries"`
}
