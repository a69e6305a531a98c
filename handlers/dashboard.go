package handlers

import (
	"net/http"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/logging"
	"sentiment-analysis/models"
	"sentiment-analysis/report"
	"sentiment-analysis/web"
	"time"

	"github.com/gin-gonic/gin"
)

const dashboardHistory = 10

type DashboardData struct {
	Language          string
	Languages         []string
	Filters           FilterParams
	Metrics           []models.Metric
	Overview          report.Overview
	Ranking           *models.RankingResult
	Comparison        *report.Comparison
	Predictions       []models.Prediction
	PredictionEnabled bool
	UpdatedAt         time.Time
	Error             string
}

type FilterParams struct {
	Features []string
	Metric   models.Metric
}

func (h *Handlers) Dashboard(c *gin.Context) {
	language := web.Language(c.Query("lang"))

	data := DashboardData{
		Language:          language,
		Languages:         web.Languages,
		Metrics:           []models.Metric{models.MetricPercentPositive, models.MetricNetScore},
		Overview:          h.svc.Overview(),
		PredictionEnabled: h.svc.PredictionEnabled(),
		UpdatedAt:         h.svc.UpdatedAt(),
	}

	// No feature filter means every category in the table.
	features := selection(c)
	if len(features) == 0 {
		features = data.Overview.Features
	}
	metric, err := models.ParseMetric(c.Query("metric"))
	if err != nil {
		metric = models.MetricPercentPositive
		data.Error = err.Error()
	}
	data.Filters = FilterParams{Features: features, Metric: metric}

	if len(features) > 0 {
		if ranking, err := h.svc.Rank(features, metric); err == nil {
			data.Ranking = &ranking
		} else {
			data.Error = apperrors.As(err).Message
		}
		if cmp, err := h.svc.Compare(features); err == nil {
			data.Comparison = &cmp
		}
	}

	if preds, err := h.svc.RecentPredictions(dashboardHistory); err == nil {
		data.Predictions = preds
	} else {
		logging.WithError(err).Warn("Failed to load prediction history")
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}
