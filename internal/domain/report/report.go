package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DashboardMetrics aggregates the numbers shown on the landing screen.
// Amounts are in minor currency units; ratios are rendered by the
// application layer.
type DashboardMetrics struct {
	OrdersToday        int64 `json:"orders_today"`
	RevenueToday       int64 `json:"revenue_today"`
	RevenueThisMonth   int64 `json:"revenue_this_month"`
	ProfitThisMonth    int64 `json:"profit_this_month"`
	OpenOrders         int64 `json:"open_orders"`
	LowStockProducts   int64 `json:"low_stock_products"`
	TotalReceivable    int64 `json:"total_receivable"`
	ReceivableCount    int64 `json:"receivable_count"`
	TotalPayable       int64 `json:"total_payable"`
	PayableCount       int64 `json:"payable_count"`
	CollectedThisMonth int64 `json:"collected_this_month"`
}

// RevenuePoint is one bucket in a revenue-over-time series
type RevenuePoint struct {
	Period     string `json:"period"`
	OrderCount int64  `json:"order_count"`
	Revenue    int64  `json:"revenue"`
	Collected  int64  `json:"collected"`
}

// TopProduct is one row of the best-sellers ranking
type TopProduct struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductSKU   string    `json:"product_sku"`
	ProductName  string    `json:"product_name"`
	QuantitySold int64     `json:"quantity_sold"`
	Revenue      int64     `json:"revenue"`
}

// Repository defines the read-side aggregation queries. Completed and
// shipped orders count as revenue; cancelled orders never do.
type Repository interface {
	DashboardMetrics(ctx context.Context, now time.Time) (*DashboardMetrics, error)
	RevenueByPeriod(ctx context.Context, from, to time.Time, bucket string) ([]RevenuePoint, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
}
