package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// BackendChecker reports whether the meme backend is reachable.
type BackendChecker interface {
	IsHealthy(ctx context.Context) bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	backend BackendChecker
	version string
}

// NewHealthHandler creates a new health handler. backend may be nil.
func NewHealthHandler(backend BackendChecker, version string) *HealthHandler {
	return &HealthHandler{backend: backend, version: version}
}

// Health returns the status of this server and, on request with
// ?backend=true, of the meme backend behind it.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"version": h.version,
	}
	if h.backend != nil && c.Query("backend") == "true" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if h.backend.IsHealthy(ctx) {
			resp["backend"] = "healthy"
		} else {
			resp["backend"] = "unreachable"
		}
	}
	c.JSON(http.StatusOK, resp)
}
