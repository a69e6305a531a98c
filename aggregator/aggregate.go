// Package aggregator turns the per-application sentiment documents into one
// AggregatedTable keyed by application and feature category.
//
// Aggregation is all-or-nothing: one bad document fails the whole batch.
package aggregator

import (
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"strings"
)

// Aggregate merges docs into a new table. Documents naming the same application
// are summed, so the result does not depend on the order of docs. Feature keys
// are stored under models.CanonicalFeature and spellings that collide are
// summed too. Inputs are not modified.
func Aggregate(docs []models.AppDocument) (*models.AggregatedTable, error) {
	merged := make(map[models.AppName]map[string]models.SentimentCounts, len(docs))

	for _, doc := range docs {
		if err := validate(doc); err != nil {
			return nil, err
		}

		features, ok := merged[doc.App]
		if !ok {
			features = make(map[string]models.SentimentCounts, len(doc.Features))
			merged[doc.App] = features
		}
		for feature, labels := range doc.Features {
			var counts models.SentimentCounts
			for label, n := range labels {
				switch label {
				case models.Positive:
					counts.Positive = n
				case models.Negative:
					counts.Negative = n
				case models.Neutral:
					counts.Neutral = n
				}
			}
			key := models.CanonicalFeature(feature)
			features[key] = features[key].Add(counts)
		}
	}

	table := models.NewAggregatedTable()
	for app, features := range merged {
		row := make(map[string]models.FeatureStats, len(features))
		for feature, counts := range features {
			row[feature] = models.NewFeatureStats(counts)
		}
		table.Apps[app] = row
	}
	return table, nil
}

func validate(doc models.AppDocument) error {
	if !models.IsKnownApp(doc.App) {
		return apperrors.MalformedInput("unknown application %q", doc.App)
	}
	if doc.Features == nil {
		return apperrors.MalformedInput("document for %s is not a mapping", doc.App).
			WithContext("app", string(doc.App))
	}
	for feature, labels := range doc.Features {
		if strings.TrimSpace(feature) == "" {
			return apperrors.MalformedInput("document for %s has an empty feature name", doc.App).
				WithContext("app", string(doc.App))
		}
		if labels == nil {
			return apperrors.MalformedInput("feature %q of %s is not a mapping", feature, doc.App).
				WithContext("app", string(doc.App)).
				WithContext("feature", feature)
		}
		for label, n := range labels {
			if !label.Valid() {
				return apperrors.MalformedInput("feature %q of %s has unknown label %q", feature, doc.App, label).
					WithContext("app", string(doc.App)).
					WithContext("feature", feature)
			}
			if n < 0 {
				return apperrors.MalformedInput("feature %q of %s has negative %s count %d", feature, doc.App, label, n).
					WithContext("app", string(doc.App)).
					WithContext("feature", feature)
			}
		}
	}
	return nil
}
