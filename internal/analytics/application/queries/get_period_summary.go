package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
)

// GetPeriodSummaryQuery requests an aggregate over a date range, inclusive
// on both ends.
type GetPeriodSummaryQuery struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// GetPeriodSummaryHandler aggregates persisted daily metrics over a range.
// Period entries tolerate short cache staleness.
type GetPeriodSummaryHandler struct {
	metricsRepo domain.MetricsRepository
	cache       domain.MetricsCache
}

// NewGetPeriodSummaryHandler creates a new get period summary handler.
func NewGetPeriodSummaryHandler(metricsRepo domain.MetricsRepository, cache domain.MetricsCache) *GetPeriodSummaryHandler {
	return &GetPeriodSummaryHandler{
		metricsRepo: metricsRepo,
		cache:       cache,
	}
}

// Handle executes the get period summary query.
func (h *GetPeriodSummaryHandler) Handle(ctx context.Context, query GetPeriodSummaryQuery) (*domain.PeriodSummary, error) {
	start := domain.NormalizeDate(query.StartDate)
	end := domain.NormalizeDate(query.EndDate)

	if cached, err := h.cache.GetPeriod(ctx, query.UserID, start, end); err == nil {
		return cached, nil
	}

	metrics, err := h.metricsRepo.FindRange(ctx, query.UserID, start, end)
	if err != nil {
		return nil, err
	}

	summary := domain.Summarize(query.UserID, start, end, metrics)
	_ = h.cache.SetPeriod(ctx, &summary)

	return &summary, nil
}
