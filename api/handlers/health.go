package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solarcast/solarcast/internal/model"
	"github.com/solarcast/solarcast/internal/weather"
	"github.com/solarcast/solarcast/pkg/database"
)

type HealthHandler struct {
	db       *database.DB
	resolver weather.Resolver // nil when no provider is configured
	registry *model.Registry
}

func NewHealthHandler(db *database.DB, resolver weather.Resolver, registry *model.Registry) *HealthHandler {
	return &HealthHandler{
		db:       db,
		resolver: resolver,
		registry: registry,
	}
}

type HealthResponse struct {
	Status           string            `json:"status"`
	WeatherAvailable bool              `json:"weather_available"`
	MLModel          bool              `json:"ml_model"`
	Timestamp        string            `json:"timestamp"`
	Checks           map[string]string `json:"checks,omitempty"`
}

// Health reports whether the collaborators are currently usable. A degraded
// weather provider or empty registry is reported but not unhealthy: the
// fallback keeps the service answering.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	status := "ok"

	if err := h.db.HealthCheck(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	weatherAvailable := false
	if h.resolver != nil {
		if err := h.resolver.HealthCheck(ctx); err != nil {
			checks["weather"] = "unavailable: " + err.Error()
		} else {
			checks["weather"] = "healthy"
			weatherAvailable = true
		}
	} else {
		checks["weather"] = "not configured"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:           status,
		WeatherAvailable: weatherAvailable,
		MLModel:          h.registry.Len() > 0,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Checks:           checks,
	})
}

// Live is the liveness probe: the process is up.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
