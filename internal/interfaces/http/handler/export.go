package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smeops/backend/internal/application/catalog"
	"github.com/smeops/backend/internal/application/finance"
	"github.com/smeops/backend/internal/application/inventory"
	apptrade "github.com/smeops/backend/internal/application/trade"
	"github.com/smeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// exportPageSize is the page size used when draining a listing for export
const exportPageSize = 100

// ExportHandler streams CSV exports of the transactional listings
type ExportHandler struct {
	BaseHandler
	products  *catalog.ProductService
	orders    *apptrade.SalesOrderService
	movements *inventory.StockService
	payments  *finance.PaymentService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(products *catalog.ProductService, orders *apptrade.SalesOrderService, movements *inventory.StockService, payments *finance.PaymentService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		products:    products,
		orders:      orders,
		movements:   movements,
		payments:    payments,
	}
}

func (h *ExportHandler) beginCSV(c *gin.Context, filename string, header []string) (*csv.Writer, error) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	w := csv.NewWriter(c.Writer)
	return w, w.Write(header)
}

// Products handles GET /export/products
func (h *ExportHandler) Products(c *gin.Context) {
	w, err := h.beginCSV(c, "products.csv", []string{
		"sku", "name", "category", "unit", "cost_price", "sell_price",
		"current_stock", "min_stock", "is_active",
	})
	if err != nil {
		h.logger.Error("export write failed", zap.Error(err))
		return
	}

	filter := shared.DefaultFilter()
	filter.PageSize = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		rows, total, err := h.products.List(c.Request.Context(), filter)
		if err != nil {
			h.logger.Error("export query failed", zap.Error(err))
			return
		}
		for _, p := range rows {
			record := []string{
				p.SKU,
				p.Name,
				p.Category,
				p.Unit,
				strconv.FormatInt(p.CostPrice, 10),
				strconv.FormatInt(p.SellPrice, 10),
				strconv.Itoa(p.CurrentStock),
				strconv.Itoa(p.MinStock),
				strconv.FormatBool(p.IsActive),
			}
			if err := w.Write(record); err != nil {
				h.logger.Error("export write failed", zap.Error(err))
				return
			}
		}
		if int64(page*exportPageSize) >= total {
			break
		}
	}
	w.Flush()
}

// Orders handles GET /export/orders
func (h *ExportHandler) Orders(c *gin.Context) {
	w, err := h.beginCSV(c, "orders.csv", []string{
		"order_number", "customer_id", "status", "subtotal", "discount",
		"total", "paid_amount", "remaining_amount", "order_date", "created_at",
	})
	if err != nil {
		h.logger.Error("export write failed", zap.Error(err))
		return
	}

	filter := shared.DefaultFilter()
	filter.PageSize = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		rows, total, err := h.orders.List(c.Request.Context(), filter)
		if err != nil {
			h.logger.Error("export query failed", zap.Error(err))
			return
		}
		for _, o := range rows {
			record := []string{
				o.OrderNumber,
				o.CustomerID.String(),
				o.Status,
				strconv.FormatInt(o.Subtotal, 10),
				strconv.FormatInt(o.Discount, 10),
				strconv.FormatInt(o.Total, 10),
				strconv.FormatInt(o.PaidAmount, 10),
				strconv.FormatInt(o.RemainingAmount, 10),
				o.OrderDate.Format(time.RFC3339),
				o.CreatedAt.Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				h.logger.Error("export write failed", zap.Error(err))
				return
			}
		}
		if int64(page*exportPageSize) >= total {
			break
		}
	}
	w.Flush()
}

// Movements handles GET /export/movements
func (h *ExportHandler) Movements(c *gin.Context) {
	w, err := h.beginCSV(c, "movements.csv", []string{
		"id", "product_id", "type", "quantity", "stock_before",
		"stock_after", "reason", "supplier_id", "order_id", "created_at",
	})
	if err != nil {
		h.logger.Error("export write failed", zap.Error(err))
		return
	}

	filter := shared.DefaultFilter()
	filter.PageSize = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		rows, total, err := h.movements.ListMovements(c.Request.Context(), filter)
		if err != nil {
			h.logger.Error("export query failed", zap.Error(err))
			return
		}
		for _, m := range rows {
			record := []string{
				m.ID.String(),
				m.ProductID.String(),
				m.Type,
				strconv.Itoa(m.Quantity),
				strconv.Itoa(m.StockBefore),
				strconv.Itoa(m.StockAfter),
				m.Reason,
				uuidOrEmpty(m.SupplierID),
				uuidOrEmpty(m.OrderID),
				m.CreatedAt.Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				h.logger.Error("export write failed", zap.Error(err))
				return
			}
		}
		if int64(page*exportPageSize) >= total {
			break
		}
	}
	w.Flush()
}

// Payments handles GET /export/payments
func (h *ExportHandler) Payments(c *gin.Context) {
	w, err := h.beginCSV(c, "payments.csv", []string{
		"payment_number", "type", "method", "amount",
		"customer_id", "supplier_id", "order_id", "payment_date",
	})
	if err != nil {
		h.logger.Error("export write failed", zap.Error(err))
		return
	}

	filter := shared.DefaultFilter()
	filter.PageSize = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		rows, total, err := h.payments.List(c.Request.Context(), filter)
		if err != nil {
			h.logger.Error("export query failed", zap.Error(err))
			return
		}
		for _, p := range rows {
			record := []string{
				p.PaymentNumber,
				p.Type,
				p.Method,
				strconv.FormatInt(p.Amount, 10),
				uuidOrEmpty(p.CustomerID),
				uuidOrEmpty(p.SupplierID),
				uuidOrEmpty(p.OrderID),
				p.PaymentDate.Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				h.logger.Error("export write failed", zap.Error(err))
				return
			}
		}
		if int64(page*exportPageSize) >= total {
			break
		}
	}
	w.Flush()
}

func uuidOrEmpty(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
