package predictor

import (
	"fmt"
	"math"
	"sentiment-analysis/models"
)

// Classifier maps a feature vector to a sentiment label and the probability
// of that label.
type Classifier interface {
	Predict(x SparseVector) (models.Sentiment, float64, error)
	Classes() []models.Sentiment
	NumFeatures() int
}

// ClassifierArtifact is the JSON export of a fitted LogisticRegression or MultinomialNB.
type ClassifierArtifact struct {
	Type           string      `json:"type"`
	Classes        []string    `json:"classes"`
	Coef           [][]float64 `json:"coef"`
	Intercept      []float64   `json:"intercept"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
	ClassLogPrior  []float64   `json:"class_log_prior"`
}

// LinearClassifier scores each class as w·x + b. Binary logistic regression
// (one weight row) uses a sigmoid; everything else a softmax over the scores.
type LinearClassifier struct {
	classes []models.Sentiment
	weights [][]float64
	bias    []float64
	binary  bool
}

func NewLinearClassifier(a ClassifierArtifact) (*LinearClassifier, error) {
	classes, err := parseClasses(a.Classes)
	if err != nil {
		return nil, err
	}

	var weights [][]float64
	var bias []float64
	switch a.Type {
	case "logistic_regression":
		weights, bias = a.Coef, a.Intercept
	case "multinomial_nb":
		weights, bias = a.FeatureLogProb, a.ClassLogPrior
	default:
		return nil, fmt.Errorf("unsupported classifier type %q", a.Type)
	}

	binary := a.Type == "logistic_regression" && len(classes) == 2 && len(weights) == 1
	rows := len(classes)
	if binary {
		rows = 1
	}
	if len(weights) != rows || len(bias) != rows {
		return nil, fmt.Errorf("%s: expected %d weight rows and intercepts for %d classes, got %d and %d",
			a.Type, rows, len(classes), len(weights), len(bias))
	}
	for i, row := range weights {
		if len(row) != len(weights[0]) {
			return nil, fmt.Errorf("%s: weight row %d has %d features, want %d", a.Type, i, len(row), len(weights[0]))
		}
	}

	return &LinearClassifier{classes: classes, weights: weights, bias: bias, binary: binary}, nil
}

func parseClasses(raw []string) ([]models.Sentiment, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("classifier needs at least two classes, got %d", len(raw))
	}
	out := make([]models.Sentiment, len(raw))
	for i, c := range raw {
		s, err := models.ParseSentiment(c)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

func (c *LinearClassifier) Classes() []models.Sentiment {
	return c.classes
}

func (c *LinearClassifier) NumFeatures() int {
	return len(c.weights[0])
}

func (c *LinearClassifier) Predict(x SparseVector) (models.Sentiment, float64, error) {
	scores := make([]float64, len(c.weights))
	for k, row := range c.weights {
		s := c.bias[k]
		for idx, w := range x {
			if idx < 0 || idx >= len(row) {
				return "", 0, fmt.Errorf("feature index %d outside model with %d features", idx, len(row))
			}
			s += row[idx] * w
		}
		scores[k] = s
	}

	var probs []float64
	if c.binary {
		p := sigmoid(scores[0])
		probs = []float64{1 - p, p}
	} else {
		probs = softmax(scores)
	}

	best := 0
	for k := 1; k < len(probs); k++ {
		if probs[k] > probs[best] {
			best = k
		}
	}
	return c.classes[best], probs[best], nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func softmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		maxScore = math.Max(maxScore, s)
	}
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - maxScore)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
