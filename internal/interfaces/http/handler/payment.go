package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smeops/backend/internal/application/finance"
	"go.uber.org/zap"
)

// PaymentHandler serves the payment and balance endpoints
type PaymentHandler struct {
	BaseHandler
	service *finance.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service *finance.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

// Create handles POST /payments
func (h *PaymentHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req finance.CreatePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	payment, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, payment)
}

// Get handles GET /payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	payment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, payment)
}

// GetByNumber handles GET /payments/number/:number
func (h *PaymentHandler) GetByNumber(c *gin.Context) {
	payment, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, payment)
}

// List handles GET /payments
func (h *PaymentHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	if paymentType := c.Query("type"); paymentType != "" {
		filter.Filters["type"] = paymentType
	}
	payments, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// ListByOrder handles GET /orders/:id/payments
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	orderID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	payments, err := h.service.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, payments)
}

// Delete handles DELETE /payments/:id. The payment's balance effects
// are reversed before the row is removed.
func (h *PaymentHandler) Delete(c *gin.Context) {
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

// Summary handles GET /payments/summary
func (h *PaymentHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, summary)
}
