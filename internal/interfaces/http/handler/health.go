package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tlsy/handicrafts/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Pinger checks a backing dependency
type Pinger interface {
	Ping() error
}

// HealthHandler reports whether the server and its database are reachable
type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, now: time.Now}
}

// Health responds 200 when the database answers and 503 otherwise
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"time":     h.now().Format(time.RFC3339),
			"database": "error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"time":     h.now().Format(time.RFC3339),
		"database": "ok",
	})
}
