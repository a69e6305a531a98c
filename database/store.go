package database

import (
	"fmt"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

const maxRecentPredictions = 200

// Store persists aggregated snapshots and prediction history.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ReplaceSnapshot swaps the stored table for table in one transaction.
func (s *Store) ReplaceSnapshot(table *models.AggregatedTable, at time.Time) error {
	rows := make([]models.FeatureSentimentRow, 0)
	for _, app := range table.Applications() {
		for feature, stats := range table.Apps[app] {
			rows = append(rows, models.FeatureSentimentRow{
				App:        string(app),
				Feature:    feature,
				Positive:   stats.Positive,
				Negative:   stats.Negative,
				Neutral:    stats.Neutral,
				Total:      stats.Total,
				SnapshotAt: at.UTC(),
			})
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.FeatureSentimentRow{}).Error; err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		return nil
	})
}

// LoadSnapshot rebuilds the table from stored rows and re-checks every entry.
// Applications with no feature rows are not stored and so do not come back.
func (s *Store) LoadSnapshot() (*models.AggregatedTable, error) {
	var rows []models.FeatureSentimentRow
	if err := s.db.Order("app, feature").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	table := models.NewAggregatedTable()
	for _, r := range rows {
		app := models.AppName(r.App)
		if !models.IsKnownApp(app) {
			return nil, apperrors.MalformedInput("stored snapshot lists unknown application %q", r.App)
		}
		feature := models.CanonicalFeature(r.Feature)
		if feature == "" {
			return nil, apperrors.MalformedInput("stored snapshot has an empty feature name for %s", r.App)
		}
		stats := models.FeatureStats{
			Positive: r.Positive,
			Negative: r.Negative,
			Neutral:  r.Neutral,
			Total:    r.Total,
		}
		if !stats.Consistent() {
			return nil, apperrors.MalformedInput("stored snapshot entry %s/%s is inconsistent", r.App, r.Feature).
				WithContext("app", r.App).
				WithContext("feature", r.Feature)
		}
		if table.Apps[app] == nil {
			table.Apps[app] = make(map[string]models.FeatureStats)
		}
		table.Apps[app][feature] = models.NewFeatureStats(table.Apps[app][feature].Counts().Add(stats.Counts()))
	}
	return table, nil
}

func (s *Store) SavePrediction(p models.Prediction) error {
	record := models.PredictionRecord{
		ID:         p.ID,
		Text:       p.Text,
		Label:      string(p.Label),
		Confidence: p.Confidence,
		Features:   strings.Join(p.Features, ","),
		CreatedAt:  p.CreatedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("save prediction: %w", err)
	}
	return nil
}

// RecentPredictions returns up to limit predictions, newest first.
func (s *Store) RecentPredictions(limit int) ([]models.Prediction, error) {
	if limit <= 0 || limit > maxRecentPredictions {
		limit = maxRecentPredictions
	}

	var records []models.PredictionRecord
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load predictions: %w", err)
	}

	out := make([]models.Prediction, 0, len(records))
	for _, r := range records {
		var features []string
		if r.Features != "" {
			features = strings.Split(r.Features, ",")
		}
		out = append(out, models.Prediction{
			ID:         r.ID,
			Text:       r.Text,
			Label:      models.Sentiment(r.Label),
			Confidence: r.Confidence,
			Features:   features,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out, nil
}
