package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smeops/backend/internal/domain/report"
	"github.com/smeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Cache stores rendered report payloads for a short TTL. Lookups and
// writes are best-effort: a cache failure falls through to the database.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ReportService serves the read-side aggregations. Ratios are computed
// with decimal arithmetic so large totals in minor units do not lose
// precision when divided.
type ReportService struct {
	repo   report.Repository
	cache  Cache
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(repo report.Repository, cache Cache, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

const dashboardCacheTTL = 60 * time.Second

// DashboardResponse augments the raw metrics with derived ratios
type DashboardResponse struct {
	report.DashboardMetrics
	// CollectionRate is collected / revenue this month, in percent with
	// two decimals.
	CollectionRate string `json:"collection_rate"`
	// MarginRate is profit / revenue this month, in percent with two
	// decimals.
	MarginRate string `json:"margin_rate"`
}

// Dashboard returns the landing-screen metrics, cached for one minute
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	const cacheKey = "report:dashboard"

	var cached DashboardResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.logger.Warn("report cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	metrics, err := s.repo.DashboardMetrics(ctx, s.now())
	if err != nil {
		return nil, err
	}

	resp := DashboardResponse{
		DashboardMetrics: *metrics,
		CollectionRate:   ratioPercent(metrics.CollectedThisMonth, metrics.RevenueThisMonth),
		MarginRate:       ratioPercent(metrics.ProfitThisMonth, metrics.RevenueThisMonth),
	}

	if err := s.cache.Set(ctx, cacheKey, resp, dashboardCacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.Error(err))
	}
	return &resp, nil
}

// RevenueRequest selects the revenue series window
type RevenueRequest struct {
	From   time.Time `form:"from" time_format:"2006-01-02"`
	To     time.Time `form:"to" time_format:"2006-01-02"`
	Bucket string    `form:"bucket" binding:"omitempty,oneof=day week month"`
}

// Revenue returns the revenue series for the window
func (s *ReportService) Revenue(ctx context.Context, req RevenueRequest) ([]report.RevenuePoint, error) {
	if req.Bucket == "" {
		req.Bucket = "day"
	}
	if req.To.IsZero() {
		req.To = s.now()
	}
	if req.From.IsZero() {
		req.From = req.To.AddDate(0, -1, 0)
	}
	if req.From.After(req.To) {
		return nil, shared.NewValidationError("Window start must be before its end")
	}
	return s.repo.RevenueByPeriod(ctx, req.From, req.To, req.Bucket)
}

// TopProductRow is a ranked best-seller with its revenue share
type TopProductRow struct {
	report.TopProduct
	RevenueShare string `json:"revenue_share"`
}

// TopProducts returns the best sellers for the window with each row's
// share of the total
func (s *ReportService) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductRow, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}

	products, err := s.repo.TopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, p := range products {
		total += p.Revenue
	}

	rows := make([]TopProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, TopProductRow{
			TopProduct:   p,
			RevenueShare: ratioPercent(p.Revenue, total),
		})
	}
	return rows, nil
}

// ratioPercent renders part/whole as a percentage with two decimals,
// "0.00" when the whole is zero.
func ratioPercent(part, whole int64) string {
	if whole == 0 {
		return "0.00"
	}
	return decimal.NewFromInt(part).
		Div(decimal.NewFromInt(whole)).
		Mul(decimal.NewFromInt(100)).
		StringFixed(2)
}
