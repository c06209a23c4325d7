package router

import (
	"github.com/gin-gonic/gin"
	"github.com/smeops/backend/internal/infrastructure/config"
	"github.com/smeops/backend/internal/interfaces/http/handler"
	"github.com/smeops/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Product    *handler.ProductHandler
	Customer   *handler.CustomerHandler
	Supplier   *handler.SupplierHandler
	Stock      *handler.StockHandler
	SalesOrder *handler.SalesOrderHandler
	Payment    *handler.PaymentHandler
	Report     *handler.ReportHandler
	Audit      *handler.AuditHandler
	Export     *handler.ExportHandler
	System     *handler.SystemHandler
}

// New builds the gin engine with all routes and middleware mounted
func New(cfg *config.Config, logger *zap.Logger, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))

	r.GET("/health", h.System.Health)

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(&cfg.JWT))

	manager := middleware.RequireRole(middleware.RoleManager)
	admin := middleware.RequireRole(middleware.RoleAdmin)

	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.ListLowStock)
		products.GET("/sku/:sku", h.Product.GetBySKU)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/movements", h.Stock.ListByProduct)
		products.POST("", manager, h.Product.Create)
		products.PUT("/:id", manager, h.Product.Update)
		products.POST("/:id/deactivate", manager, h.Product.Deactivate)
		products.POST("/:id/reactivate", manager, h.Product.Reactivate)
	}

	customers := api.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.GET("/:id/orders", h.Customer.ListOrders)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.POST("", h.Supplier.Create)
		suppliers.PUT("/:id", h.Supplier.Update)
	}

	stock := api.Group("/stock")
	{
		stock.GET("/movements", h.Stock.ListMovements)
		stock.POST("/in", manager, h.Stock.StockIn)
		stock.POST("/out", manager, h.Stock.StockOut)
		stock.POST("/adjust", manager, h.Stock.Adjust)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", h.SalesOrder.List)
		orders.GET("/status-counts", h.SalesOrder.StatusCounts)
		orders.GET("/number/:number", h.SalesOrder.GetByNumber)
		orders.GET("/:id", h.SalesOrder.Get)
		orders.GET("/:id/payments", h.Payment.ListByOrder)
		orders.POST("", h.SalesOrder.Create)
		orders.PUT("/:id", h.SalesOrder.Update)
		orders.DELETE("/:id", h.SalesOrder.Delete)
		orders.POST("/:id/items", h.SalesOrder.AddItem)
		orders.PUT("/:id/items/:itemId", h.SalesOrder.UpdateItem)
		orders.DELETE("/:id/items/:itemId", h.SalesOrder.RemoveItem)
		orders.POST("/:id/transition", manager, h.SalesOrder.Transition)
	}

	payments := api.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.GET("/summary", h.Payment.Summary)
		payments.GET("/number/:number", h.Payment.GetByNumber)
		payments.GET("/:id", h.Payment.Get)
		payments.POST("", h.Payment.Create)
		payments.DELETE("/:id", manager, h.Payment.Delete)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/dashboard", h.Report.Dashboard)
		reports.GET("/revenue", h.Report.Revenue)
		reports.GET("/top-products", h.Report.TopProducts)
	}

	export := api.Group("/export", manager)
	{
		export.GET("/products", h.Export.Products)
		export.GET("/orders", h.Export.Orders)
		export.GET("/movements", h.Export.Movements)
		export.GET("/payments", h.Export.Payments)
	}

	auditLogs := api.Group("/audit-logs", admin)
	{
		auditLogs.GET("", h.Audit.List)
		auditLogs.GET("/:entityType/:id", h.Audit.ListByEntity)
	}

	return r
}
