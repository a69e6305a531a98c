// Package service ties aggregation, ranking and prediction together behind
// the operations the HTTP layer and CLI call.
package service

import (
	"context"
	"errors"
	"io/fs"
	"sentiment-analysis/aggregator"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/database"
	"sentiment-analysis/logging"
	"sentiment-analysis/metrics"
	"sentiment-analysis/models"
	"sentiment-analysis/predictor"
	"sentiment-analysis/ranker"
	"sentiment-analysis/report"
	"sync"
	"sync/atomic"
	"time"
)

type Options struct {
	DataDir      string
	Manifest     aggregator.Manifest
	Fallback     bool
	SnapshotPath string

	// Store is optional; without it snapshots and predictions are not persisted.
	Store *database.Store

	// Predictor is optional; without it Predict reports ArtifactLoad.
	Predictor *predictor.Predictor

	// OnReload, if set, is called after every successful Reload.
	OnReload func(at time.Time, overview report.Overview)
}

type Service struct {
	opts Options

	table     atomic.Pointer[models.AggregatedTable]
	updatedAt atomic.Pointer[time.Time]
	reloadMu  sync.Mutex
	now       func() time.Time
}

func New(opts Options) *Service {
	return &Service{opts: opts, now: time.Now}
}

// Reload rebuilds the table from the source documents. On failure the
// previous table stays in place.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	table, err := aggregator.Build(ctx, s.opts.DataDir, s.opts.Manifest, s.opts.Fallback)
	if err != nil {
		metrics.ReloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	at := s.now().UTC()
	if s.opts.SnapshotPath != "" {
		if err := aggregator.WriteSnapshot(s.opts.SnapshotPath, table, at); err != nil {
			metrics.ReloadsTotal.WithLabelValues("error").Inc()
			return apperrors.Internal("write snapshot", err)
		}
	}
	if s.opts.Store != nil {
		if err := s.opts.Store.ReplaceSnapshot(table, at); err != nil {
			metrics.ReloadsTotal.WithLabelValues("error").Inc()
			return apperrors.Internal("persist snapshot", err)
		}
	}

	s.swap(table, at)
	metrics.ReloadsTotal.WithLabelValues("success").Inc()
	logging.Logger.Info("Aggregated table rebuilt", "applications", len(table.Apps), "features", len(table.Features()))
	if s.opts.OnReload != nil {
		s.opts.OnReload(at, report.Summarize(table))
	}
	return nil
}

// Start loads the initial table. If the sources cannot be aggregated it falls
// back to the last snapshot file, then to the database.
func (s *Service) Start(ctx context.Context) error {
	reloadErr := s.Reload(ctx)
	if reloadErr == nil {
		return nil
	}
	logging.WithError(reloadErr).Warn("Initial aggregation failed, trying stored snapshot")

	if s.opts.SnapshotPath != "" {
		table, at, err := aggregator.ReadSnapshot(s.opts.SnapshotPath)
		if err == nil {
			s.swap(table, at)
			logging.Logger.Info("Loaded snapshot file", "path", s.opts.SnapshotPath, "generated_at", at)
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			logging.WithError(err).Warn("Snapshot file unusable")
		}
	}

	if s.opts.Store != nil {
		table, err := s.opts.Store.LoadSnapshot()
		switch {
		case err != nil:
			logging.WithError(err).Warn("Stored snapshot unusable")
		case len(table.Apps) > 0:
			s.swap(table, s.now().UTC())
			logging.Logger.Info("Loaded snapshot from database", "applications", len(table.Apps))
			return nil
		}
	}
	return reloadErr
}

func (s *Service) swap(table *models.AggregatedTable, at time.Time) {
	s.table.Store(table)
	s.updatedAt.Store(&at)
	metrics.AggregatedApplications.Set(float64(len(table.Apps)))
}

// Table returns the current aggregated table, or an empty one before the first load.
func (s *Service) Table() *models.AggregatedTable {
	if t := s.table.Load(); t != nil {
		return t
	}
	return models.NewAggregatedTable()
}

// UpdatedAt reports when the current table was built; zero before the first load.
func (s *Service) UpdatedAt() time.Time {
	if at := s.updatedAt.Load(); at != nil {
		return *at
	}
	return time.Time{}
}

func (s *Service) Ready() bool {
	return s.table.Load() != nil
}

func (s *Service) Rank(features []string, metric models.Metric) (models.RankingResult, error) {
	result, err := ranker.Rank(s.Table(), features, metric)
	if err != nil {
		return models.RankingResult{}, err
	}
	metrics.RankingsTotal.WithLabelValues(string(metric)).Inc()
	return result, nil
}

func (s *Service) Overview() report.Overview {
	return report.Summarize(s.Table())
}

func (s *Service) Compare(features []string) (report.Comparison, error) {
	return report.Compare(s.Table(), features)
}

func (s *Service) PredictionEnabled() bool {
	return s.opts.Predictor != nil
}

// Predict classifies text and records it in the prediction history.
func (s *Service) Predict(text string) (models.Prediction, error) {
	if s.opts.Predictor == nil {
		return models.Prediction{}, apperrors.ArtifactLoad("prediction model is not loaded", nil)
	}
	p, err := s.opts.Predictor.Predict(text)
	if err != nil {
		return models.Prediction{}, err
	}
	if s.opts.Store != nil {
		if err := s.opts.Store.SavePrediction(p); err != nil {
			// The caller still gets the prediction.
			logging.WithError(err).Error("Failed to save prediction", "id", p.ID)
		}
	}
	return p, nil
}

func (s *Service) RecentPredictions(limit int) ([]models.Prediction, error) {
	if s.opts.Store == nil {
		return []models.Prediction{}, nil
	}
	preds, err := s.opts.Store.RecentPredictions(limit)
	if err != nil {
		return nil, apperrors.Internal("load prediction history", err)
	}
	return preds, nil
}

// SourcePaths lists the files Reload reads, for the watcher.
func (s *Service) SourcePaths() []string {
	return s.opts.Manifest.Paths(s.opts.DataDir)
}

// OnSourceChange is the watcher callback: it reloads and logs the outcome.
func (s *Service) OnSourceChange(ctx context.Context, path string) {
	if err := s.Reload(ctx); err != nil {
		logging.WithError(err).Error("Reload after source change failed", "path", path)
		return
	}
	logging.Logger.Info("Reloaded after source change", "path", path)
}
