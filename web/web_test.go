package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup("dashboard.html"))
	assert.NotNil(t, tmpl.Lookup("error.html"))
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "id", Language(" ID "))
	assert.Equal(t, "en", Language("ru"))
	assert.Equal(t, "en", Language(""))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Peringkat", Label("id", "ranking"))
	assert.Equal(t, "Ranking", Label("xx", "ranking"))
	assert.Equal(t, "missing_key", Label("en", "missing_key"))
}

func TestEveryLanguageHasTheSameKeys(t *testing.T) {
	for key := range labels["en"] {
		for _, lang := range Languages {
			assert.Contains(t, labels[lang], key, "language %s", lang)
		}
	}
}
