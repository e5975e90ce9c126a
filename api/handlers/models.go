package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solarcast/solarcast/internal/model"
	"github.com/solarcast/solarcast/pkg/models"
)

type ModelsHandler struct {
	registry *model.Registry
}

func NewModelsHandler(registry *model.Registry) *ModelsHandler {
	return &ModelsHandler{registry: registry}
}

// List serves GET /models: the registered strategies a request may name.
func (h *ModelsHandler) List(c *gin.Context) {
	names := h.registry.Names()
	if names == nil {
		names = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"models":   names,
		"count":    len(names),
		"fallback": models.FallbackModelName,
	})
}
