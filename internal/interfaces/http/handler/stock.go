package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smeops/backend/internal/application/inventory"
	"go.uber.org/zap"
)

// StockHandler serves the stock movement endpoints
type StockHandler struct {
	BaseHandler
	service *inventory.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(service *inventory.StockService, logger *zap.Logger) *StockHandler {
	return &StockHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

// StockIn handles POST /stock/in
func (h *StockHandler) StockIn(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req inventory.StockInRequest
	if !h.bindJSON(c, &req) {
		return
	}
	movement, err := h.service.StockIn(c.Request.Context(), actorID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, movement)
}

// StockOut handles POST /stock/out
func (h *StockHandler) StockOut(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req inventory.StockOutRequest
	if !h.bindJSON(c, &req) {
		return
	}
	movement, err := h.service.StockOut(c.Request.Context(), actorID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, movement)
}

// Adjust handles POST /stock/adjust
func (h *StockHandler) Adjust(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req inventory.AdjustRequest
	if !h.bindJSON(c, &req) {
		return
	}
	movement, err := h.service.Adjust(c.Request.Context(), actorID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, movement)
}

// ListMovements handles GET /stock/movements
func (h *StockHandler) ListMovements(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	if movementType := c.Query("type"); movementType != "" {
		filter.Filters["type"] = movementType
	}
	movements, total, err := h.service.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// ListByProduct handles GET /products/:id/movements
func (h *StockHandler) ListByProduct(c *gin.Context) {
	productID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	movements, total, err := h.service.ListByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}
