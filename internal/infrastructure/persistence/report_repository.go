package persistence

import (
	"context"
	"time"

	"github.com/smeops/backend/internal/domain/report"
	"gorm.io/gorm"
)

// revenueStatuses are the order statuses counted as realized revenue.
// Cancelled orders never count; draft and confirmed orders are not yet
// revenue.
var revenueStatuses = []string{"shipped", "completed"}

// GormReportRepository implements the read-side aggregations with raw
// SQL over the operational tables.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// DashboardMetrics aggregates the landing-screen numbers
func (r *GormReportRepository) DashboardMetrics(ctx context.Context, now time.Time) (*report.DashboardMetrics, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	metrics := &report.DashboardMetrics{}
	db := r.db.WithContext(ctx)

	if err := db.Raw(
		`SELECT COUNT(*) FROM sales_orders
		 WHERE deleted_at IS NULL AND order_date >= ? AND status <> 'cancelled'`,
		dayStart).Scan(&metrics.OrdersToday).Error; err != nil {
		return nil, err
	}

	if err := db.Raw(
		`SELECT COALESCE(SUM(total), 0) FROM sales_orders
		 WHERE deleted_at IS NULL AND order_date >= ? AND status IN ?`,
		dayStart, revenueStatuses).Scan(&metrics.RevenueToday).Error; err != nil {
		return nil, err
	}

	if err := db.Raw(
		`SELECT COALESCE(SUM(total), 0) FROM sales_orders
		 WHERE deleted_at IS NULL AND order_date >= ? AND status IN ?`,
		monthStart, revenueStatuses).Scan(&metrics.RevenueThisMonth).Error; err != nil {
		return nil, err
	}

	// Profit approximates margin from the current catalog cost price;
	// items snapshot the sell price but not the cost.
	if err := db.Raw(
		`SELECT COALESCE(SUM(i.line_total) - SUM(i.quantity * p.cost_price), 0)
		 FROM sales_order_items i
		 JOIN sales_orders o ON o.id = i.order_id
		 JOIN products p ON p.id = i.product_id
		 WHERE o.deleted_at IS NULL AND o.order_date >= ? AND o.status IN ?`,
		monthStart, revenueStatuses).Scan(&metrics.ProfitThisMonth).Error; err != nil {
		return nil, err
	}

	if err := db.Raw(
		`SELECT COUNT(*) FROM sales_orders
		 WHERE deleted_at IS NULL AND status IN ('confirmed', 'shipped')`).
		Scan(&metrics.OpenOrders).Error; err != nil {
		return nil, err
	}

	if err := db.Raw(
		`SELECT COUNT(*) FROM products
		 WHERE is_active = TRUE AND current_stock <= min_stock`).
		Scan(&metrics.LowStockProducts).Error; err != nil {
		return nil, err
	}

	var receivable struct {
		Total int64
		Count int64
	}
	if err := db.Raw(
		`SELECT COALESCE(SUM(total_debt), 0) AS total, COUNT(*) AS count
		 FROM customers WHERE total_debt > 0`).Scan(&receivable).Error; err != nil {
		return nil, err
	}
	metrics.TotalReceivable = receivable.Total
	metrics.ReceivableCount = receivable.Count

	var payable struct {
		Total int64
		Count int64
	}
	if err := db.Raw(
		`SELECT COALESCE(SUM(total_payable), 0) AS total, COUNT(*) AS count
		 FROM suppliers WHERE total_payable > 0`).Scan(&payable).Error; err != nil {
		return nil, err
	}
	metrics.TotalPayable = payable.Total
	metrics.PayableCount = payable.Count

	if err := db.Raw(
		`SELECT COALESCE(SUM(amount), 0) FROM payments
		 WHERE type = 'incoming' AND payment_date >= ?`,
		monthStart).Scan(&metrics.CollectedThisMonth).Error; err != nil {
		return nil, err
	}

	return metrics, nil
}

// RevenueByPeriod buckets realized revenue over the window
func (r *GormReportRepository) RevenueByPeriod(ctx context.Context, from, to time.Time, bucket string) ([]report.RevenuePoint, error) {
	trunc := "day"
	switch bucket {
	case "week", "month":
		trunc = bucket
	}

	var points []report.RevenuePoint
	if err := r.db.WithContext(ctx).Raw(
		`SELECT to_char(date_trunc(?, order_date), 'YYYY-MM-DD') AS period,
		        COUNT(*) AS order_count,
		        COALESCE(SUM(total), 0) AS revenue,
		        COALESCE(SUM(paid_amount), 0) AS collected
		 FROM sales_orders
		 WHERE deleted_at IS NULL
		   AND status IN ?
		   AND order_date >= ? AND order_date < ?
		 GROUP BY 1
		 ORDER BY 1`,
		trunc, revenueStatuses, from, to).Scan(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

// TopProducts ranks products by realized revenue over the window
func (r *GormReportRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]report.TopProduct, error) {
	var products []report.TopProduct
	if err := r.db.WithContext(ctx).Raw(
		`SELECT i.product_id,
		        i.product_sku,
		        p.name AS product_name,
		        SUM(i.quantity) AS quantity_sold,
		        SUM(i.line_total) AS revenue
		 FROM sales_order_items i
		 JOIN sales_orders o ON o.id = i.order_id
		 JOIN products p ON p.id = i.product_id
		 WHERE o.deleted_at IS NULL
		   AND o.status IN ?
		   AND o.order_date >= ? AND o.order_date < ?
		 GROUP BY i.product_id, i.product_sku, p.name
		 ORDER BY revenue DESC
		 LIMIT ?`,
		revenueStatuses, from, to, limit).Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
