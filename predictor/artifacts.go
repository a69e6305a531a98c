package predictor

import (
	"encoding/json"
	"fmt"
	"os"
	"sentiment-analysis/apperrors"
)

// LoadArtifacts reads the exported vectorizer and classifier and checks that
// they share one feature space. Every failure is an ArtifactLoad error; a
// corrupt artifact is not retried.
func LoadArtifacts(vectorizerPath, classifierPath string) (*TfidfVectorizer, *LinearClassifier, error) {
	var va VectorizerArtifact
	if err := readJSON(vectorizerPath, &va); err != nil {
		return nil, nil, apperrors.ArtifactLoad("load vectorizer", err).WithContext("path", vectorizerPath)
	}
	vec, err := NewTfidfVectorizer(va)
	if err != nil {
		return nil, nil, apperrors.ArtifactLoad("invalid vectorizer", err).WithContext("path", vectorizerPath)
	}

	var ca ClassifierArtifact
	if err := readJSON(classifierPath, &ca); err != nil {
		return nil, nil, apperrors.ArtifactLoad("load classifier", err).WithContext("path", classifierPath)
	}
	clf, err := NewLinearClassifier(ca)
	if err != nil {
		return nil, nil, apperrors.ArtifactLoad("invalid classifier", err).WithContext("path", classifierPath)
	}

	if vec.NumFeatures() != clf.NumFeatures() {
		return nil, nil, apperrors.ArtifactLoad("feature space mismatch",
			fmt.Errorf("vectorizer has %d features, classifier expects %d", vec.NumFeatures(), clf.NumFeatures()))
	}
	return vec, clf, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
