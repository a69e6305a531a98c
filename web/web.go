// Package web holds the dashboard templates, embedded into the binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Languages the dashboard can be rendered in. The first is the default.
var Languages = []string{"en", "id"}

var labels = map[string]map[string]string{
	"en": {
		"title":        "Japanese Learning App Sentiment",
		"applications": "Applications",
		"reviews":      "Reviews",
		"positive":     "Positive",
		"negative":     "Negative",
		"neutral":      "Neutral",
		"positive_pct": "% Positive",
		"features":     "Features",
		"metric":       "Metric",
		"apply":        "Apply",
		"ranking":      "Ranking",
		"rank":         "Rank",
		"application":  "Application",
		"score":        "Score",
		"total":        "Total",
		"comparison":   "Feature comparison",
		"no_data":      "no data",
		"predict":      "Try a review",
		"classify":     "Classify",
		"history":      "Recent predictions",
		"label":        "Label",
		"confidence":   "Confidence",
		"text":         "Review",
		"disabled":     "Prediction is unavailable: model artifacts are not loaded.",
		"updated":      "Updated",
		"export":       "Download CSV",
	},
	"id": {
		"title":        "Sentimen Aplikasi Belajar Bahasa Jepang",
		"applications": "Aplikasi",
		"reviews":      "Ulasan",
		"positive":     "Positif",
		"negative":     "Negatif",
		"neutral":      "Netral",
		"positive_pct": "% Positif",
		"features":     "Fitur",
		"metric":       "Metrik",
		"apply":        "Terapkan",
		"ranking":      "Peringkat",
		"rank":         "Peringkat",
		"application":  "Aplikasi",
		"score":        "Skor",
		"total":        "Total",
		"comparison":   "Perbandingan fitur",
		"no_data":      "tidak ada data",
		"predict":      "Coba ulasan",
		"classify":     "Klasifikasi",
		"history":      "Prediksi terbaru",
		"label":        "Label",
		"confidence":   "Keyakinan",
		"text":         "Ulasan",
		"disabled":     "Prediksi tidak tersedia: artefak model belum dimuat.",
		"updated":      "Diperbarui",
		"export":       "Unduh CSV",
	},
}

// Language returns lang if supported, otherwise the default.
func Language(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := labels[lang]; ok {
		return lang
	}
	return Languages[0]
}

// Label looks up a UI string; unknown keys render as the key itself.
func Label(lang, key string) string {
	if s, ok := labels[Language(lang)][key]; ok {
		return s
	}
	return key
}

var funcs = template.FuncMap{
	"t": Label,
	"percent": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f*100)
	},
	"score": func(f float64) string {
		return fmt.Sprintf("%.3f", f)
	},
	"join": strings.Join,
	"contains": func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	},
}

// Templates parses every embedded template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
