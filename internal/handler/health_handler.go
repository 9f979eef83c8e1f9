package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker is implemented by the Postgres and Redis clients
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// WorkerStatsFunc returns a background worker's current statistics
type WorkerStatsFunc func() interface{}

// HealthHandler handles status and probe endpoints
type HealthHandler struct {
	db HealthChecker
	// redis is optional; the service runs without cache when it is down at startup
	redis   HealthChecker
	workers map[string]WorkerStatsFunc
}

// NewHealthHandler creates a new HealthHandler. Pass a nil interface for a
// component that is not configured.
func NewHealthHandler(db, redis HealthChecker) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redis,
		workers: make(map[string]WorkerStatsFunc),
	}
}

// AddWorker reports the worker's stats under name in the readiness response.
// Workers are informational and never fail readiness.
func (h *HealthHandler) AddWorker(name string, stats WorkerStatsFunc) {
	h.workers[name] = stats
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadyResponse represents readiness check response
type ReadyResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Components map[string]string      `json:"components"`
	Workers    map[string]interface{} `json:"workers,omitempty"`
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Event Booking API running"})
}

// Health is the liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready is the readiness probe. Postgres must answer; Redis only counts
// against readiness when it was configured.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]string)
	allHealthy := true

	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			components["database"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			components["database"] = "healthy"
		}
	} else {
		components["database"] = "not configured"
		allHealthy = false
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(ctx); err != nil {
			components["redis"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			components["redis"] = "healthy"
		}
	} else {
		components["redis"] = "not configured"
	}

	resp := ReadyResponse{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	}
	if len(h.workers) > 0 {
		resp.Workers = make(map[string]interface{}, len(h.workers))
		for name, stats := range h.workers {
			resp.Workers[name] = stats()
		}
	}

	if allHealthy {
		resp.Status = "ready"
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Status = "not ready"
	c.JSON(http.StatusServiceUnavailable, resp)
}
