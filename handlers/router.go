package handlers

import (
	"fmt"
	"net/http"
	"sentiment-analysis/logging"
	"sentiment-analysis/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers the dashboard, the API and the operational endpoints.
func NewRouter(h *Handlers) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinMiddleware())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	r.GET("/dashboard", h.Dashboard)
	r.POST("/dashboard/predict", h.PredictForm)

	api := r.Group("/api", ErrorHandler())
	{
		api.GET("/overview", h.GetOverview)
		api.GET("/apps", h.GetApps)
		api.GET("/ranking", h.GetRanking)
		api.GET("/ranking/export", h.ExportRanking)
		api.GET("/comparison", h.GetComparison)
		api.GET("/comparison/export", h.ExportComparison)
		api.POST("/predict", h.Predict)
		api.GET("/predictions", h.GetPredictions)
		api.POST("/reload", h.Reload)
	}

	r.GET("/live", h.Live)
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}
