package models

import "time"

// FeatureSentimentRow is the persisted form of one AggregatedTable entry.
type FeatureSentimentRow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	App        string    `json:"app" gorm:"index:idx_app_feature,unique"`
	Feature    string    `json:"feature" gorm:"index:idx_app_feature,unique"`
	Positive   int       `json:"positive"`
	Negative   int       `json:"negative"`
	Neutral    int       `json:"neutral"`
	Total      int       `json:"total"`
	SnapshotAt time.Time `json:"snapshot_at"`
}

// PredictionRecord is one stored live prediction.
type PredictionRecord struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Text       string    `json:"text"`
	Label      string    `json:"label" gorm:"index"`
	Confidence float64   `json:"confidence"`
	Features   string    `json:"features"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

type Prediction struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Label      Sentiment `json:"label"`
	Confidence float64   `json:"confidence"`
	Features   []string  `json:"features"`
	CreatedAt  time.Time `json:"created_at"`
}
