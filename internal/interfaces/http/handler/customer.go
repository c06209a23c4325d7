package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smeops/backend/internal/application/partner"
	apptrade "github.com/smeops/backend/internal/application/trade"
	"go.uber.org/zap"
)

// CustomerHandler serves the customer endpoints
type CustomerHandler struct {
	BaseHandler
	service      *partner.CustomerService
	orderService *apptrade.SalesOrderService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(service *partner.CustomerService, orderService *apptrade.SalesOrderService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{BaseHandler: NewBaseHandler(logger), service: service, orderService: orderService}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req partner.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, customer)
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	customers, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req partner.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.service.Update(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, customer)
}

// ListOrders handles GET /customers/:id/orders
func (h *CustomerHandler) ListOrders(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	orders, total, err := h.orderService.ListByCustomer(c.Request.Context(), id, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}
