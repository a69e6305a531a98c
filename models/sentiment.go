package models

import (
	"fmt"
	"sort"
	"strings"
)

type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Sentiments lists every valid label in display order.
var Sentiments = []Sentiment{Positive, Negative, Neutral}

func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case Positive:
		return Positive, nil
	case Negative:
		return Negative, nil
	case Neutral:
		return Neutral, nil
	}
	return "", fmt.Errorf("unknown sentiment label %q", s)
}

func (s Sentiment) Valid() bool {
	return s == Positive || s == Negative || s == Neutral
}

type AppName string

const (
	Mazii      AppName = "Mazii"
	Obenkyo    AppName = "Obenkyo"
	HeyJapan   AppName = "Hey Japan"
	JASensei   AppName = "JA Sensei"
	MigiiJLPT  AppName = "Migii JLPT"
	KanjiStudy AppName = "Kanji Study"
)

var knownApps = map[AppName]struct{}{
	Mazii:      {},
	Obenkyo:    {},
	HeyJapan:   {},
	JASensei:   {},
	MigiiJLPT:  {},
	KanjiStudy: {},
}

// KnownApps returns the six reviewed applications sorted by name.
func KnownApps() []AppName {
	out := make([]AppName, 0, len(knownApps))
	for app := range knownApps {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func IsKnownApp(app AppName) bool {
	_, ok := knownApps[app]
	return ok
}

// SentimentCounts holds the number of reviews per label.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

func (c SentimentCounts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}

func (c SentimentCounts) Add(o SentimentCounts) SentimentCounts {
	return SentimentCounts{
		Positive: c.Positive + o.Positive,
		Negative: c.Negative + o.Negative,
		Neutral:  c.Neutral + o.Neutral,
	}
}

func (c SentimentCounts) Get(label Sentiment) int {
	switch label {
	case Positive:
		return c.Positive
	case Negative:
		return c.Negative
	case Neutral:
		return c.Neutral
	}
	return 0
}

// FeatureSentimentRecord is one (application, feature, label, count) tuple.
type FeatureSentimentRecord struct {
	App     AppName   `json:"app"`
	Feature string    `json:"feature"`
	Label   Sentiment `json:"label"`
	Count   int       `json:"count"`
}

// AppDocument is one parsed per-application source document. A category
// absent from Features has no data; a category present with zero counts does.
type AppDocument struct {
	App      AppName
	Features map[string]map[Sentiment]int
}

// Records flattens the document in feature, then label order.
func (d AppDocument) Records() []FeatureSentimentRecord {
	features := make([]string, 0, len(d.Features))
	for f := range d.Features {
		features = append(features, f)
	}
	sort.Strings(features)

	var out []FeatureSentimentRecord
	for _, f := range features {
		for _, label := range Sentiments {
			count, ok := d.Features[f][label]
			if !ok {
				continue
			}
			out = append(out, FeatureSentimentRecord{App: d.App, Feature: f, Label: label, Count: count})
		}
	}
	return out
}

type Metric string

const (
	// MetricPercentPositive is positive / total.
	MetricPercentPositive Metric = "percent_positive"
	// MetricNetScore is (positive - negative) / total.
	MetricNetScore Metric = "net_score"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.TrimSpace(s)) {
	case MetricPercentPositive, "":
		return MetricPercentPositive, nil
	case MetricNetScore:
		return MetricNetScore, nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}
