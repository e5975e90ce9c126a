package handlers

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solarcast/solarcast/pkg/config"
	"github.com/solarcast/solarcast/pkg/models"
)

// HistoryStore is the slice of the prediction repository the history
// endpoints need.
type HistoryStore interface {
	List(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	ExportAll(ctx context.Context) ([]models.PredictionRecord, error)
}

type HistoryHandler struct {
	store  HistoryStore
	config *config.APIConfig
}

func NewHistoryHandler(store HistoryStore, cfg *config.APIConfig) *HistoryHandler {
	return &HistoryHandler{
		store:  store,
		config: cfg,
	}
}

func (h *HistoryHandler) defaultLimit() int {
	if h.config != nil && h.config.DefaultLimit > 0 {
		return h.config.DefaultLimit
	}
	return 100
}

func (h *HistoryHandler) maxLimit() int {
	if h.config != nil && h.config.MaxLimit > 0 {
		return h.config.MaxLimit
	}
	return 1000
}

// History serves GET /history: the N most recent records.
func (h *HistoryHandler) History(c *gin.Context) {
	limit := h.defaultLimit()
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > h.maxLimit() {
		limit = h.maxLimit()
	}

	records, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}
	if records == nil {
		records = []models.PredictionRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(records),
		"data":  records,
	})
}

// Export serves GET /export: the full table as CSV in insertion order.
func (h *HistoryHandler) Export(c *gin.Context) {
	records, err := h.store.ExportAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export history"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="prediction_history.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"timestamp", "city", "temperature", "irradiance", "hour", "model", "prediction"})

	for _, rec := range records {
		w.Write([]string{
			rec.CreatedAt.UTC().Format(time.RFC3339),
			rec.City,
			formatOptional(rec.Temperature),
			formatOptional(rec.Irradiance),
			strconv.Itoa(rec.Hour),
			rec.Model,
			strconv.FormatFloat(rec.Prediction, 'f', 2, 64),
		})
	}

	w.Flush()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
