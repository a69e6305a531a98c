package handlers

import (
	"net/http"
	"net/url"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/web"

	"github.com/gin-gonic/gin"
)

type PredictRequest struct {
	Text string `json:"text"`
}

// Predict classifies one review posted as JSON.
func (h *Handlers) Predict(c *gin.Context) {
	var request PredictRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(apperrors.InvalidInput("invalid request body"))
		return
	}

	prediction, err := h.svc.Predict(request.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, prediction)
}

// PredictForm handles the dashboard form and redirects back to the dashboard,
// where the new prediction shows up in the history table.
func (h *Handlers) PredictForm(c *gin.Context) {
	language := web.Language(c.Query("lang"))

	if _, err := h.svc.Predict(c.PostForm("text")); err != nil {
		appErr := apperrors.As(err)
		c.HTML(appErr.HTTPStatus(), "error.html", gin.H{"error": appErr.Message})
		return
	}

	c.Redirect(http.StatusSeeOther, "/dashboard?lang="+url.QueryEscape(language))
}
