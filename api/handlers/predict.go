package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solarcast/solarcast/api/websocket"
	"github.com/solarcast/solarcast/internal/predictor"
	"github.com/solarcast/solarcast/pkg/models"
)

type PredictHandler struct {
	service *predictor.Service
	hub     *websocket.Hub
}

func NewPredictHandler(service *predictor.Service, hub *websocket.Hub) *PredictHandler {
	return &PredictHandler{
		service: service,
		hub:     hub,
	}
}

// Predict serves POST /predict. Malformed payloads (unparseable hour, wrong
// field types) are the only caller-visible validation failure; everything
// else degrades inside the service.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input",
			"message": err.Error(),
		})
		return
	}

	result, recordID, err := h.service.Predict(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, predictor.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid input",
				"message": err.Error(),
			})
			return
		}
		// A computed-but-unpersisted prediction is a failed request:
		// the history contract promises every answer is recorded.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to record prediction",
		})
		return
	}

	websocket.BroadcastPrediction(h.hub, recordID, result)

	c.JSON(http.StatusOK, result)
}
