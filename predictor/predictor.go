// Package predictor classifies a single review with a vectorizer and
// classifier fitted by the training notebook.
//
// The pair is loaded once by the caller and injected into New; nothing in this
// package holds a global model.
package predictor

import (
	"fmt"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/metrics"
	"sentiment-analysis/models"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

type Predictor struct {
	vectorizer Vectorizer
	classifier Classifier
	now        func() time.Time
}

func New(v Vectorizer, c Classifier) (*Predictor, error) {
	if v == nil || c == nil {
		return nil, apperrors.ArtifactLoad("predictor needs both a vectorizer and a classifier", nil)
	}
	if v.NumFeatures() != c.NumFeatures() {
		return nil, apperrors.ArtifactLoad("feature space mismatch",
			fmt.Errorf("vectorizer has %d features, classifier expects %d", v.NumFeatures(), c.NumFeatures()))
	}
	return &Predictor{vectorizer: v, classifier: c, now: time.Now}, nil
}

// Predict classifies text. Blank text is rejected with InvalidInput.
func (p *Predictor) Predict(text string) (models.Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return models.Prediction{}, apperrors.InvalidInput("review text is empty")
	}

	start := time.Now()
	label, confidence, err := p.classifier.Predict(p.vectorizer.Transform(text))
	if err != nil {
		return models.Prediction{}, apperrors.Internal("classify review", err)
	}
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues(string(label)).Inc()

	return models.Prediction{
		ID:         uuid.NewString(),
		Text:       text,
		Label:      label,
		Confidence: confidence,
		Features:   DetectFeatures(text),
		CreatedAt:  p.now().UTC(),
	}, nil
}

// featureKeywords lists words that mark a review as talking about a feature
// category. Single ASCII words match whole tokens; anything else is a substring.
var featureKeywords = map[string][]string{
	"kanji":  {"kanji", "漢字"},
	"kotoba": {"kotoba", "kosakata", "vocabulary", "vocab", "言葉", "単語", "語彙"},
	"bunpou": {"bunpou", "bunpo", "grammar", "tata bahasa", "文法"},
}

// DetectFeatures returns the sorted feature categories mentioned in text.
func DetectFeatures(text string) []string {
	normalized := strings.ToLower(norm.NFKC.String(text))
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(normalized, isSeparator) {
		words[w] = struct{}{}
	}

	var out []string
	for feature, keywords := range featureKeywords {
		for _, kw := range keywords {
			if matchKeyword(normalized, words, kw) {
				out = append(out, feature)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

func matchKeyword(text string, words map[string]struct{}, kw string) bool {
	if isASCIIWord(kw) {
		_, ok := words[kw]
		return ok
	}
	return strings.Contains(text, kw)
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || isSeparator(r) {
			return false
		}
	}
	return true
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
