package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smeops/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      Pinger
	cache   Pinger
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db, cache Pinger, version string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{BaseHandler: NewBaseHandler(logger), db: db, cache: cache, version: version}
}

// Health handles GET /health. The cache being down degrades the status
// without failing it; the database being down fails it.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	checks := map[string]string{"database": "ok", "cache": "ok"}
	code := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = err.Error()
		if status == "ok" {
			status = "degraded"
		}
	}

	c.JSON(code, dto.NewSuccessResponse(gin.H{
		"status":  status,
		"version": h.version,
		"checks":  checks,
	}))
}
