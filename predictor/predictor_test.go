package predictor

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVectorizerArtifact() VectorizerArtifact {
	return VectorizerArtifact{
		Type:       "tfidf",
		NgramRange: [2]int{1, 2},
		Vocabulary: map[string]int{"bagus": 0, "jelek": 1, "kanji": 2, "sangat bagus": 3},
		IDF:        []float64{1, 1, 1, 1},
	}
}

func testClassifierArtifact() ClassifierArtifact {
	return ClassifierArtifact{
		Type:      "logistic_regression",
		Classes:   []string{"negative", "positive"},
		Coef:      [][]float64{{2, -2, 0, 1}},
		Intercept: []float64{0},
	}
}

func newTestPredictor(t *testing.T) *Predictor {
	t.Helper()
	vec, err := NewTfidfVectorizer(testVectorizerArtifact())
	require.NoError(t, err)
	clf, err := NewLinearClassifier(testClassifierArtifact())
	require.NoError(t, err)
	p, err := New(vec, clf)
	require.NoError(t, err)
	p.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	return p
}

func TestPredict_Positive(t *testing.T) {
	p := newTestPredictor(t)

	got, err := p.Predict("Aplikasi ini sangat bagus untuk belajar Kanji!")
	require.NoError(t, err)

	assert.Equal(t, models.Positive, got.Label)
	assert.InDelta(t, sigmoid(3/math.Sqrt(3)), got.Confidence, 1e-9)
	assert.Equal(t, []string{"kanji"}, got.Features)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, 2026, got.CreatedAt.Year())
}

func TestPredict_Negative(t *testing.T) {
	p := newTestPredictor(t)

	got, err := p.Predict("jelek")
	require.NoError(t, err)

	assert.Equal(t, models.Negative, got.Label)
	assert.InDelta(t, sigmoid(2), got.Confidence, 1e-9)
}

func TestPredict_OutOfVocabularyIgnored(t *testing.T) {
	p := newTestPredictor(t)

	got, err := p.Predict("qwerty zxcv")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.Confidence, 1e-9)
}

func TestPredict_BlankTextIsInvalidInput(t *testing.T) {
	p := newTestPredictor(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := p.Predict(text)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
}

func TestNew_RequiresMatchingPair(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrArtifactLoad)

	vec, err := NewTfidfVectorizer(testVectorizerArtifact())
	require.NoError(t, err)
	a := testClassifierArtifact()
	a.Coef = [][]float64{{1, 2}}
	clf, err := NewLinearClassifier(a)
	require.NoError(t, err)

	_, err = New(vec, clf)
	assert.ErrorIs(t, err, apperrors.ErrArtifactLoad)
}

func TestDetectFeatures(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Bagus untuk belajar kanji dan kosakata", []string{"kanji", "kotoba"}},
		{"Penjelasan tata bahasa sangat jelas", []string{"bunpou"}},
		{"文法の説明が分かりやすい、漢字も", []string{"bunpou", "kanji"}},
		{"ＫＡＮＪＩ practice", []string{"kanji"}},
		{"kanjiku tidak ada", nil},
		{"aplikasi yang bagus", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFeatures(tt.text))
		})
	}
}

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()
	vecPath := writeJSON(t, dir, "vectorizer.json", testVectorizerArtifact())
	clfPath := writeJSON(t, dir, "classifier.json", testClassifierArtifact())

	vec, clf, err := LoadArtifacts(vecPath, clfPath)
	require.NoError(t, err)
	assert.Equal(t, 4, vec.NumFeatures())
	assert.Equal(t, []models.Sentiment{models.Negative, models.Positive}, clf.Classes())
}

func TestLoadArtifacts_Failures(t *testing.T) {
	dir := t.TempDir()
	vecPath := writeJSON(t, dir, "vectorizer.json", testVectorizerArtifact())
	clfPath := writeJSON(t, dir, "classifier.json", testClassifierArtifact())

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("\x80\x04\x95pickle"), 0o644))

	badLabels := testClassifierArtifact()
	badLabels.Classes = []string{"bad", "good"}
	badLabelsPath := writeJSON(t, dir, "bad_labels.json", badLabels)

	narrow := testClassifierArtifact()
	narrow.Coef = [][]float64{{1, 2, 3}}
	narrowPath := writeJSON(t, dir, "narrow.json", narrow)

	tests := []struct {
		name     string
		vec, clf string
	}{
		{"missing vectorizer", filepath.Join(dir, "nope.json"), clfPath},
		{"missing classifier", vecPath, filepath.Join(dir, "nope.json")},
		{"corrupt vectorizer", corrupt, clfPath},
		{"unknown class label", vecPath, badLabelsPath},
		{"feature space mismatch", vecPath, narrowPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadArtifacts(tt.vec, tt.clf)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrArtifactLoad)
		})
	}
}
