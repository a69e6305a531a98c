package aggregator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/logging"
	"sentiment-analysis/metrics"
	"sentiment-analysis/models"

	"gopkg.in/yaml.v3"
)

// Source maps one application to its aggregate document on disk.
type Source struct {
	App  models.AppName `yaml:"app"`
	File string         `yaml:"file"`
}

type Manifest struct {
	Sources []Source `yaml:"sources"`
}

// DefaultManifest is the file layout produced by the sentiment notebook.
func DefaultManifest() Manifest {
	return Manifest{Sources: []Source{
		{App: models.Mazii, File: "hasil_sentimen_mazii_agregat.json"},
		{App: models.Obenkyo, File: "hasil_sentimen_obenkyo_agregat.json"},
		{App: models.HeyJapan, File: "hasil_sentimen_heyjapan_agregat.json"},
		{App: models.JASensei, File: "hasil_sentimen_jasensei_agregat.json"},
		{App: models.MigiiJLPT, File: "hasil_sentimen_migiijlpt_agregat.json"},
		{App: models.KanjiStudy, File: "hasil_sentimen_kanjistudy_agregat.json"},
	}}
}

// LoadManifest reads a YAML manifest. An empty path yields DefaultManifest.
func LoadManifest(path string) (Manifest, error) {
	if path == "" {
		return DefaultManifest(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read sources manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		e := apperrors.MalformedInput("decode sources manifest %s", path)
		e.Cause = err
		return Manifest{}, e
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func (m Manifest) Validate() error {
	if len(m.Sources) == 0 {
		return apperrors.MalformedInput("sources manifest lists no files")
	}
	for i, s := range m.Sources {
		if !models.IsKnownApp(s.App) {
			return apperrors.MalformedInput("sources[%d]: unknown application %q", i, s.App)
		}
		if s.File == "" {
			return apperrors.MalformedInput("sources[%d]: file is required for %s", i, s.App)
		}
	}
	return nil
}

// Paths resolves every source file against dir.
func (m Manifest) Paths(dir string) []string {
	out := make([]string, 0, len(m.Sources))
	for _, s := range m.Sources {
		out = append(out, resolve(dir, s.File))
	}
	return out
}

func resolve(dir, file string) string {
	if filepath.IsAbs(file) || dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

// LoadSources reads and parses every document in the manifest. A missing file is
// replaced by the built-in fallback document when fallback is set; any other
// read or parse error fails the whole batch.
func LoadSources(ctx context.Context, dir string, m Manifest, fallback bool) ([]models.AppDocument, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	docs := make([]models.AppDocument, 0, len(m.Sources))
	for _, s := range m.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := resolve(dir, s.File)
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			if !fallback {
				return nil, apperrors.MalformedInput("source file for %s not found: %s", s.App, path)
			}
			logging.WithApp(string(s.App)).Warn("Source file missing, using fallback data", "path", path)
			metrics.FallbackDocumentsTotal.WithLabelValues(string(s.App)).Inc()
			docs = append(docs, FallbackDocument(s.App))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read source for %s: %w", s.App, err)
		}

		doc, err := ParseDocument(s.App, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Build loads every source and aggregates them in one step.
func Build(ctx context.Context, dir string, m Manifest, fallback bool) (*models.AggregatedTable, error) {
	docs, err := LoadSources(ctx, dir, m, fallback)
	if err != nil {
		return nil, err
	}
	return Aggregate(docs)
}

// fallbackCounts are the last published aggregates, used when a source file is absent.
var fallbackCounts = map[models.AppName]map[string][2]int{
	models.Mazii:      {"kanji": {57, 0}, "kotoba": {32, 0}, "bunpou": {26, 0}},
	models.Obenkyo:    {"bunpou": {5, 0}, "kanji": {29, 0}, "kotoba": {14, 0}},
	models.HeyJapan:   {"kotoba": {66, 0}, "kanji": {45, 0}, "bunpou": {12, 0}},
	models.JASensei:   {"kanji": {8, 0}, "kotoba": {3, 0}, "bunpou": {6, 0}},
	models.MigiiJLPT:  {"kotoba": {10, 0}, "bunpou": {6, 0}, "kanji": {18, 0}},
	models.KanjiStudy: {"kanji": {187, 0}, "bunpou": {12, 0}, "kotoba": {33, 1}},
}

// FallbackDocument returns a fresh copy of the built-in document for app.
// Only positive and negative labels are present, as in the published data.
func FallbackDocument(app models.AppName) models.AppDocument {
	doc := models.AppDocument{App: app, Features: make(map[string]map[models.Sentiment]int)}
	for feature, pn := range fallbackCounts[app] {
		doc.Features[feature] = map[models.Sentiment]int{
			models.Positive: pn[0],
			models.Negative: pn[1],
		}
	}
	return doc
}
