package handlers

import (
	"net/http"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/logging"
	"sentiment-analysis/metrics"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns the last error attached with c.Error into a JSON response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := apperrors.As(c.Errors.Last().Err)
		metrics.HTTPErrorsTotal.WithLabelValues(string(appErr.Kind)).Inc()

		status := appErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			logging.WithError(appErr).Error("Request failed", "path", c.Request.URL.Path)
		} else {
			logging.Logger.Debug("Request rejected", "path", c.Request.URL.Path, "error", appErr.Error())
		}
		c.JSON(status, appErr.ToResponse())
	}
}
