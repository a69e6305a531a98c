package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"sentiment-analysis/apperrors"
	"sentiment-analysis/models"
	"sentiment-analysis/ranker"
	"sentiment-analysis/report"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"overview":   h.svc.Overview(),
		"updated_at": h.svc.UpdatedAt(),
	})
}

// GetApps returns the full aggregated table.
func (h *Handlers) GetApps(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Table())
}

func (h *Handlers) GetRanking(c *gin.Context) {
	result, err := h.rank(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) ExportRanking(c *gin.Context) {
	result, err := h.rank(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteRankingCSV(&buf, result); err != nil {
		_ = c.Error(apperrors.Internal("write ranking csv", err))
		return
	}
	attachment(c, "ranking_"+strings.Join(result.Features, "_")+".csv", buf.Bytes())
}

func (h *Handlers) GetComparison(c *gin.Context) {
	cmp, err := h.svc.Compare(selection(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (h *Handlers) ExportComparison(c *gin.Context) {
	cmp, err := h.svc.Compare(selection(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteComparisonCSV(&buf, cmp); err != nil {
		_ = c.Error(apperrors.Internal("write comparison csv", err))
		return
	}
	attachment(c, "comparison.csv", buf.Bytes())
}

func (h *Handlers) GetPredictions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		_ = c.Error(apperrors.InvalidInput("limit must be a non-negative integer"))
		return
	}
	preds, err := h.svc.RecentPredictions(limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, preds)
}

func (h *Handlers) Reload(c *gin.Context) {
	if err := h.svc.Reload(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "reloaded",
		"applications": len(h.svc.Table().Apps),
		"updated_at":   h.svc.UpdatedAt(),
	})
}

func (h *Handlers) Health(c *gin.Context) {
	status := http.StatusOK
	state := "ok"
	if !h.svc.Ready() {
		status = http.StatusServiceUnavailable
		state = "loading"
	}
	c.JSON(status, gin.H{
		"status":     state,
		"prediction": h.svc.PredictionEnabled(),
	})
}

func (h *Handlers) rank(c *gin.Context) (models.RankingResult, error) {
	metric, err := models.ParseMetric(c.Query("metric"))
	if err != nil {
		return models.RankingResult{}, apperrors.InvalidSelection("%s", err.Error())
	}
	return h.svc.Rank(selection(c), metric)
}

// selection accepts both features=a,b and repeated features=a&features=b.
func selection(c *gin.Context) []string {
	var raw []string
	for _, v := range c.QueryArray("features") {
		raw = append(raw, strings.Split(v, ",")...)
	}
	return ranker.NormalizeSelection(raw)
}

// attachment sends data as a CSV download. Feature names come from the
// source documents, so the filename is quoted by mime.FormatMediaType.
func attachment(c *gin.Context, filename string, data []byte) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
