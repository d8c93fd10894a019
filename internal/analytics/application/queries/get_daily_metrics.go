// Package queries contains the read-side handlers of the analytics context.
// All of them serve from the cache when possible and fall back to the
// persisted daily metrics.
package queries

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/application/commands"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
)

// GetDailyMetricsQuery requests the metrics row for one user and day.
type GetDailyMetricsQuery struct {
	UserID uuid.UUID
	Date   time.Time
}

// GetDailyMetricsHandler serves daily metrics: cache first, then the
// repository, and computes on demand when no row exists yet.
type GetDailyMetricsHandler struct {
	metricsRepo domain.MetricsRepository
	cache       domain.MetricsCache
	compute     *commands.ComputeDailyMetricsHandler
}

// NewGetDailyMetricsHandler creates a new get daily metrics handler.
func NewGetDailyMetricsHandler(
	metricsRepo domain.MetricsRepository,
	cache domain.MetricsCache,
	compute *commands.ComputeDailyMetricsHandler,
) *GetDailyMetricsHandler {
	return &GetDailyMetricsHandler{
		metricsRepo: metricsRepo,
		cache:       cache,
		compute:     compute,
	}
}

// Handle executes the get daily metrics query.
func (h *GetDailyMetricsHandler) Handle(ctx context.Context, query GetDailyMetricsQuery) (*domain.DailyMetrics, error) {
	date := domain.NormalizeDate(query.Date)

	if cached, err := h.cache.GetDaily(ctx, query.UserID, date); err == nil {
		return cached, nil
	}

	metrics, err := h.metricsRepo.FindByDate(ctx, query.UserID, date)
	if err == nil {
		_ = h.cache.SetDaily(ctx, metrics)
		return metrics, nil
	}
	if !errors.Is(err, domain.ErrMetricsNotFound) {
		return nil, err
	}

	return h.compute.Handle(ctx, commands.ComputeDailyMetricsCommand{
		UserID: query.UserID,
		Date:   date,
	})
}
