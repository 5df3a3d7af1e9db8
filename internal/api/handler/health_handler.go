package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthHandler reports liveness and store connectivity.
type HealthHandler struct {
	db     Pinger
	logger *zap.Logger
	now    func() time.Time
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger, now: time.Now}
}

// Health answers 200 while the store is reachable and 503 otherwise.
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	status, database, code := "healthy", "connected", http.StatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check: database unreachable", zap.Error(err))
			status, database, code = "degraded", "unreachable", http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"success":   code == http.StatusOK,
		"status":    status,
		"message":   "FWFPS API is running",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"version":   Version,
		"database":  database,
	})
}
