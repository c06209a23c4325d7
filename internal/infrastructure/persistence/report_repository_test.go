package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormReportRepository_RevenueByPeriod(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormReportRepository(db)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"period", "order_count", "revenue", "collected"}).
		AddRow("2026-08-01", 3, 450000, 200000).
		AddRow("2026-08-02", 1, 120000, 120000)
	mock.ExpectQuery(`SELECT to_char\(date_trunc\(`).
		WithArgs("day", "shipped", "completed", from, to).
		WillReturnRows(rows)

	points, err := repo.RevenueByPeriod(context.Background(), from, to, "day")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2026-08-01", points[0].Period)
	assert.Equal(t, int64(3), points[0].OrderCount)
	assert.Equal(t, int64(450000), points[0].Revenue)
	assert.Equal(t, int64(200000), points[0].Collected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormReportRepository_RevenueByPeriod_UnknownBucketFallsBackToDay(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormReportRepository(db)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT to_char\(date_trunc\(`).
		WithArgs("day", "shipped", "completed", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"period", "order_count", "revenue", "collected"}))

	points, err := repo.RevenueByPeriod(context.Background(), from, to, "hour")
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormReportRepository_TopProducts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormReportRepository(db)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"product_id", "product_sku", "product_name", "quantity_sold", "revenue"}).
		AddRow("0b6a4f3e-98a2-4a3f-9f67-2f0c8f4d1a11", "WID-1", "Widget", 12, 960000).
		AddRow("4f2a9c7d-11e4-4d2b-8c55-9a8b7c6d5e44", "GAD-2", "Gadget", 5, 350000)
	mock.ExpectQuery(`FROM sales_order_items i`).
		WithArgs("shipped", "completed", from, to, 10).
		WillReturnRows(rows)

	products, err := repo.TopProducts(context.Background(), from, to, 10)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "WID-1", products[0].ProductSKU)
	assert.Equal(t, int64(960000), products[0].Revenue)
	assert.Equal(t, int64(12), products[0].QuantitySold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormReportRepository_DashboardMetrics(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormReportRepository(db)

	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sales_orders`).
		WithArgs(dayStart).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) FROM sales_orders`).
		WithArgs(dayStart, "shipped", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(250000))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) FROM sales_orders`).
		WithArgs(monthStart, "shipped", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(4800000))
	mock.ExpectQuery(`SUM\(i\.quantity \* p\.cost_price\)`).
		WithArgs(monthStart, "shipped", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1200000))
	mock.ExpectQuery(`status IN \('confirmed', 'shipped'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`current_stock <= min_stock`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`FROM customers WHERE total_debt > 0`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "count"}).AddRow(900000, 3))
	mock.ExpectQuery(`FROM suppliers WHERE total_payable > 0`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "count"}).AddRow(400000, 1))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments`).
		WithArgs(monthStart).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(3600000))

	metrics, err := repo.DashboardMetrics(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), metrics.OrdersToday)
	assert.Equal(t, int64(250000), metrics.RevenueToday)
	assert.Equal(t, int64(4800000), metrics.RevenueThisMonth)
	assert.Equal(t, int64(1200000), metrics.ProfitThisMonth)
	assert.Equal(t, int64(7), metrics.OpenOrders)
	assert.Equal(t, int64(2), metrics.LowStockProducts)
	assert.Equal(t, int64(900000), metrics.TotalReceivable)
	assert.Equal(t, int64(3), metrics.ReceivableCount)
	assert.Equal(t, int64(400000), metrics.TotalPayable)
	assert.Equal(t, int64(1), metrics.PayableCount)
	assert.Equal(t, int64(3600000), metrics.CollectedThisMonth)
	assert.NoError(t, mock.ExpectationsWereMet())
}
