package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smeops/backend/internal/application/audit"
	"go.uber.org/zap"
)

// AuditHandler serves the audit trail endpoints
type AuditHandler struct {
	BaseHandler
	recorder *audit.Recorder
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(recorder *audit.Recorder, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{BaseHandler: NewBaseHandler(logger), recorder: recorder}
}

// List handles GET /audit-logs
func (h *AuditHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		filter.Filters["entity_type"] = entityType
	}
	if action := c.Query("action"); action != "" {
		filter.Filters["action"] = action
	}
	logs, total, err := h.recorder.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, logs, total, filter.Page, filter.PageSize)
}

// ListByEntity handles GET /audit-logs/:entityType/:id
func (h *AuditHandler) ListByEntity(c *gin.Context) {
	entityID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	logs, err := h.recorder.ListByEntity(c.Request.Context(), c.Param("entityType"), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, logs)
}
