package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/smeops/backend/internal/domain/report"
	"github.com/smeops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) DashboardMetrics(ctx context.Context, now time.Time) (*report.DashboardMetrics, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DashboardMetrics), args.Error(1)
}

func (m *mockReportRepo) RevenueByPeriod(ctx context.Context, from, to time.Time, bucket string) ([]report.RevenuePoint, error) {
	args := m.Called(ctx, from, to, bucket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.RevenuePoint), args.Error(1)
}

func (m *mockReportRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]report.TopProduct, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.TopProduct), args.Error(1)
}

// memoryCache is an in-process Cache for tests
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func TestReportService_Dashboard_ComputesCollectionRate(t *testing.T) {
	repo := new(mockReportRepo)
	service := NewReportService(repo, newMemoryCache(), zap.NewNop())

	repo.On("DashboardMetrics", mock.Anything, mock.Anything).Return(&report.DashboardMetrics{
		RevenueThisMonth:   400000,
		ProfitThisMonth:    100000,
		CollectedThisMonth: 300000,
	}, nil).Once()

	resp, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "75.00", resp.CollectionRate)
	assert.Equal(t, "25.00", resp.MarginRate)
	repo.AssertExpectations(t)
}

func TestReportService_Dashboard_ZeroRevenue(t *testing.T) {
	repo := new(mockReportRepo)
	service := NewReportService(repo, newMemoryCache(), zap.NewNop())

	repo.On("DashboardMetrics", mock.Anything, mock.Anything).
		Return(&report.DashboardMetrics{}, nil).Once()

	resp, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.CollectionRate)
}

func TestReportService_Dashboard_SecondCallServedFromCache(t *testing.T) {
	repo := new(mockReportRepo)
	service := NewReportService(repo, newMemoryCache(), zap.NewNop())

	repo.On("DashboardMetrics", mock.Anything, mock.Anything).Return(&report.DashboardMetrics{
		OrdersToday: 5,
	}, nil).Once()

	first, err := service.Dashboard(context.Background())
	require.NoError(t, err)

	second, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.OrdersToday, second.OrdersToday)

	repo.AssertNumberOfCalls(t, "DashboardMetrics", 1)
}

func TestReportService_Revenue_RejectsInvertedWindow(t *testing.T) {
	repo := new(mockReportRepo)
	service := NewReportService(repo, newMemoryCache(), zap.NewNop())

	_, err := service.Revenue(context.Background(), RevenueRequest{
		From: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	repo.AssertNotCalled(t, "RevenueByPeriod")
}

func TestReportService_TopProducts_RevenueShares(t *testing.T) {
	repo := new(mockReportRepo)
	service := NewReportService(repo, newMemoryCache(), zap.NewNop())

	repo.On("TopProducts", mock.Anything, mock.Anything, mock.Anything, 10).Return([]report.TopProduct{
		{ProductSKU: "WID-1", Revenue: 750000},
		{ProductSKU: "GAD-2", Revenue: 250000},
	}, nil).Once()

	rows, err := service.TopProducts(context.Background(), time.Time{}, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "75.00", rows[0].RevenueShare)
	assert.Equal(t, "25.00", rows[1].RevenueShare)
}

func TestReportService_TopProducts_ClampsLimit(t *testing.T) {
	repo := new(mockReportRepo)
	service := NewReportService(repo, newMemoryCache(), zap.NewNop())

	repo.On("TopProducts", mock.Anything, mock.Anything, mock.Anything, 10).
		Return([]report.TopProduct{}, nil).Once()

	_, err := service.TopProducts(context.Background(), time.Time{}, time.Time{}, 500)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
