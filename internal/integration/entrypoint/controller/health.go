package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	database Pinger
	cache    Pinger
	timeout  time.Duration
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// Either pinger may be nil.
func NewHealthController(database, cache Pinger) *HealthController {
	return &HealthController{
		database: database,
		cache:    cache,
		timeout:  2 * time.Second,
	}
}

// Check handles GET /health requests.
// A missing database answers 503; a missing cache only degrades the status.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  probe(ctx, h.database),
		Cache:     probe(ctx, h.cache),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	switch {
	case response.Database != "connected":
		response.Status = "unavailable"
		status = http.StatusServiceUnavailable
	case response.Cache != "connected":
		response.Status = "degraded"
	}

	c.JSON(status, response)
}

func probe(ctx context.Context, ping Pinger) string {
	if ping == nil || ping(ctx) != nil {
		return "disconnected"
	}
	return "connected"
}
