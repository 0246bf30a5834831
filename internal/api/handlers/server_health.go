package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"incidentlens.io/lens/internal/store"
)

// Health statuses.
const (
	HealthStatusOk       = "ok"
	HealthStatusDegraded = "degraded"
)

// Health is the body of the health endpoints.
type Health struct {
	Status string         `json:"status"`
	Checks map[string]any `json:"checks,omitempty"`
}

// GetRoot handles GET / with a service banner.
func (s *Server) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Incident Lens API",
		"status":  "running",
		"version": s.version,
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, Health{
		Status: HealthStatusOk,
		Checks: map[string]any{
			"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		},
	})
}

// GetLiveness handles GET /health/live, the liveness check used by Kubernetes.
func (s *Server) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, Health{Status: HealthStatusOk})
}

// GetReadiness handles GET /health/ready, the readiness check used by Kubernetes.
// The service is degraded while the event table is empty; every other
// dataset may be missing without affecting readiness.
func (s *Server) GetReadiness(c *gin.Context) {
	snap := s.store.Snapshot()
	rows := make(map[string]int)
	for d, n := range snap.RowCounts() {
		rows[d.String()] = n
	}

	status := HealthStatusOk
	httpStatus := http.StatusOK
	if snap.Rows(store.EventDetails) == 0 {
		status = HealthStatusDegraded
		httpStatus = http.StatusServiceUnavailable
	}

	checks := map[string]any{"rows": rows}
	if loaded := snap.LoadedAt(); !loaded.IsZero() {
		checks["loaded_at"] = loaded.UTC().Format(time.RFC3339)
	}
	c.JSON(httpStatus, Health{Status: status, Checks: checks})
}
