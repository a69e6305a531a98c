package aggregator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"time"
)

// Snapshot is the processed JSON document cached next to the raw sources.
type Snapshot struct {
	GeneratedAt time.Time                                         `json:"generated_at"`
	Apps        map[models.AppName]map[string]models.FeatureStats `json:"apps"`
}

// WriteSnapshot persists table to path via a temp file and rename.
func WriteSnapshot(path string, table *models.AggregatedTable, generatedAt time.Time) error {
	if table == nil {
		return errors.New("write snapshot: nil table")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	data, err := json.MarshalIndent(Snapshot{GeneratedAt: generatedAt.UTC(), Apps: table.Apps}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot and re-checks every entry.
func ReadSnapshot(path string) (*models.AggregatedTable, time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		e := apperrors.MalformedInput("decode snapshot %s", path)
		e.Cause = err
		return nil, time.Time{}, e
	}

	table := models.NewAggregatedTable()
	for app, features := range snap.Apps {
		if !models.IsKnownApp(app) {
			return nil, time.Time{}, apperrors.MalformedInput("snapshot lists unknown application %q", app)
		}
		row := make(map[string]models.FeatureStats, len(features))
		for feature, stats := range features {
			if !stats.Consistent() {
				return nil, time.Time{}, apperrors.MalformedInput("snapshot entry %s/%s is inconsistent", app, feature)
			}
			key := models.CanonicalFeature(feature)
			if key == "" {
				return nil, time.Time{}, apperrors.MalformedInput("snapshot entry for %s has an empty feature name", app)
			}
			row[key] = models.NewFeatureStats(row[key].Counts().Add(stats.Counts()))
		}
		table.Apps[app] = row
	}
	return table, snap.GeneratedAt, nil
}

// SourcesNewerThan reports whether the snapshot is missing or older than any
// source file listed in the manifest.
func SourcesNewerThan(snapshotPath, dir string, m Manifest) (bool, error) {
	snapInfo, err := os.Stat(snapshotPath)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat snapshot: %w", err)
	}
	for _, path := range m.Paths(dir) {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("stat source: %w", err)
		}
		if info.ModTime().After(snapInfo.ModTime()) {
			return true, nil
		}
	}
	return false, nil
}
