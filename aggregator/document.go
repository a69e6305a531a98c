package aggregator

import (
	"encoding/json"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes one per-application aggregate document:
// {"<feature>": {"positive": n, "negative": n, "neutral": n}, ...}
const documentSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "properties": {
      "positive": {"type": "integer", "minimum": 0},
      "negative": {"type": "integer", "minimum": 0},
      "neutral":  {"type": "integer", "minimum": 0}
    },
    "additionalProperties": false
  }
}`

const maxReportedSchemaErrors = 3

var schema = mustCompileSchema(documentSchema)

func mustCompileSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic("aggregator: invalid document schema: " + err.Error())
	}
	return s
}

// ParseDocument validates raw JSON for app and converts it into an AppDocument.
// Label keys present in the source are kept even when their count is zero.
func ParseDocument(app models.AppName, raw []byte) (models.AppDocument, error) {
	if !models.IsKnownApp(app) {
		return models.AppDocument{}, apperrors.MalformedInput("unknown application %q", app)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		e := apperrors.MalformedInput("document for %s is not valid JSON", app)
		e.Cause = err
		return models.AppDocument{}, e.WithContext("app", string(app))
	}
	if !result.Valid() {
		return models.AppDocument{}, apperrors.MalformedInput("document for %s: %s", app, describe(result.Errors())).
			WithContext("app", string(app))
	}

	var decoded map[string]map[string]int
	if err := json.Unmarshal(raw, &decoded); err != nil {
		e := apperrors.MalformedInput("decode document for %s", app)
		e.Cause = err
		return models.AppDocument{}, e
	}

	doc := models.AppDocument{App: app, Features: make(map[string]map[models.Sentiment]int, len(decoded))}
	for feature, counts := range decoded {
		labels := make(map[models.Sentiment]int, len(counts))
		for label, n := range counts {
			labels[models.Sentiment(label)] = n
		}
		doc.Features[feature] = labels
	}
	return doc, nil
}

func describe(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, maxReportedSchemaErrors)
	for i, e := range errs {
		if i == maxReportedSchemaErrors {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, e.Field()+": "+e.Description())
	}
	return strings.Join(parts, "; ")
}
