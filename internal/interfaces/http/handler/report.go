package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smeops/backend/internal/application/report"
	"go.uber.org/zap"
)

// ReportHandler serves the read-side report endpoints
type ReportHandler struct {
	BaseHandler
	service *report.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *report.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

// Dashboard handles GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	metrics, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, metrics)
}

// Revenue handles GET /reports/revenue
func (h *ReportHandler) Revenue(c *gin.Context) {
	var req report.RevenueRequest
	if !h.bindQuery(c, &req) {
		return
	}
	points, err := h.service.Revenue(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, points)
}

// TopProducts handles GET /reports/top-products
func (h *ReportHandler) TopProducts(c *gin.Context) {
	from, ok := h.dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.dateQuery(c, "to")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.service.TopProducts(c.Request.Context(), from, to, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, rows)
}

// dateQuery parses an optional YYYY-MM-DD query parameter
func (h *ReportHandler) dateQuery(c *gin.Context, name string) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+", expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}
