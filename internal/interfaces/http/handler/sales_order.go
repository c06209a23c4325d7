package handler

import (
	"github.com/gin-gonic/gin"
	apptrade "github.com/smeops/backend/internal/application/trade"
	"github.com/smeops/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// SalesOrderHandler serves the sales order endpoints
type SalesOrderHandler struct {
	BaseHandler
	service *apptrade.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(service *apptrade.SalesOrderService, logger *zap.Logger) *SalesOrderHandler {
	return &SalesOrderHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

// Create handles POST /orders
func (h *SalesOrderHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req apptrade.CreateSalesOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, order)
}

// Get handles GET /orders/:id
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	order, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, order)
}

// GetByNumber handles GET /orders/number/:number
func (h *SalesOrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.service.GetByOrderNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, order)
}

// List handles GET /orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	if status := c.Query("status"); status != "" {
		if !trade.OrderStatus(status).IsValid() {
			h.BadRequest(c, "Invalid status")
			return
		}
		filter.Filters["status"] = status
	}
	orders, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// StatusCounts handles GET /orders/status-counts
func (h *SalesOrderHandler) StatusCounts(c *gin.Context) {
	counts, err := h.service.StatusCounts(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, counts)
}

// Update handles PUT /orders/:id
func (h *SalesOrderHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apptrade.UpdateSalesOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.service.Update(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /orders/:id
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorID, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem handles POST /orders/:id/items
func (h *SalesOrderHandler) AddItem(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apptrade.AddItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.service.AddItem(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateItem handles PUT /orders/:id/items/:itemId
func (h *SalesOrderHandler) UpdateItem(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.uuidParam(c, "itemId")
	if !ok {
		return
	}
	var req apptrade.UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.service.UpdateItem(c.Request.Context(), actorID, id, itemID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, order)
}

// RemoveItem handles DELETE /orders/:id/items/:itemId
func (h *SalesOrderHandler) RemoveItem(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.uuidParam(c, "itemId")
	if !ok {
		return
	}
	order, err := h.service.RemoveItem(c.Request.Context(), actorID, id, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, order)
}

// Transition handles POST /orders/:id/transition
func (h *SalesOrderHandler) Transition(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apptrade.TransitionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.service.Transition(c.Request.Context(), actorID, id, trade.OrderStatus(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, order)
}
