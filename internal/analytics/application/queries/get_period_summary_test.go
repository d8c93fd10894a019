package queries

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetPeriodSummaryHandler_Handle(t *testing.T) {
	userID := uuid.New()
	start := day("2026-03-08")
	end := day("2026-03-14")

	t.Run("aggregates persisted rows and caches the result", func(t *testing.T) {
		metricsRepo := new(mockMetricsRepo)
		cache := new(mockMetricsCache)
		handler := NewGetPeriodSummaryHandler(metricsRepo, cache)

		ctx := context.Background()

		m1 := domain.NewDailyMetrics(userID, day("2026-03-09"))
		m1.TasksCompleted = 3
		m1.FocusMinutes = 120
		m1.ProductivityScore = 60
		m2 := domain.NewDailyMetrics(userID, day("2026-03-10"))
		m2.TasksCompleted = 5
		m2.FocusMinutes = 180
		m2.ProductivityScore = 80

		cache.On("GetPeriod", ctx, userID, start, end).Return(nil, domain.ErrCacheMiss)
		metricsRepo.On("FindRange", ctx, userID, start, end).Return([]*domain.DailyMetrics{m1, m2}, nil)
		cache.On("SetPeriod", ctx, mock.AnythingOfType("*domain.PeriodSummary")).Return(nil)

		summary, err := handler.Handle(ctx, GetPeriodSummaryQuery{UserID: userID, StartDate: start, EndDate: end})

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Days)
		assert.Equal(t, 8, summary.TasksCompleted)
		assert.Equal(t, 300, summary.FocusMinutes)
		assert.InDelta(t, 70.0, summary.AvgProductivityScore, 0.001)
		cache.AssertExpectations(t)
	})

	t.Run("serves from cache", func(t *testing.T) {
		metricsRepo := new(mockMetricsRepo)
		cache := new(mockMetricsCache)
		handler := NewGetPeriodSummaryHandler(metricsRepo, cache)

		ctx := context.Background()
		cached := &domain.PeriodSummary{UserID: userID, Days: 7}
		cache.On("GetPeriod", ctx, userID, start, end).Return(cached, nil)

		summary, err := handler.Handle(ctx, GetPeriodSummaryQuery{UserID: userID, StartDate: start, EndDate: end})

		require.NoError(t, err)
		assert.Equal(t, 7, summary.Days)
		metricsRepo.AssertNotCalled(t, "FindRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestComparePeriodsHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("defaults the previous window to the same length", func(t *testing.T) {
		metricsRepo := new(mockMetricsRepo)
		cache := new(mockMetricsCache)
		summary := NewGetPeriodSummaryHandler(metricsRepo, cache)
		handler := NewComparePeriodsHandler(summary)

		ctx := context.Background()
		start := day("2026-03-08")
		end := day("2026-03-14")
		prevStart := day("2026-03-01")
		prevEnd := day("2026-03-07")

		current := domain.NewDailyMetrics(userID, day("2026-03-09"))
		current.TasksCompleted = 6
		previous := domain.NewDailyMetrics(userID, day("2026-03-02"))
		previous.TasksCompleted = 4

		cache.On("GetPeriod", ctx, userID, start, end).Return(nil, domain.ErrCacheMiss)
		cache.On("GetPeriod", ctx, userID, prevStart, prevEnd).Return(nil, domain.ErrCacheMiss)
		metricsRepo.On("FindRange", ctx, userID, start, end).Return([]*domain.DailyMetrics{current}, nil)
		metricsRepo.On("FindRange", ctx, userID, prevStart, prevEnd).Return([]*domain.DailyMetrics{previous}, nil)
		cache.On("SetPeriod", ctx, mock.AnythingOfType("*domain.PeriodSummary")).Return(nil)

		comparison, err := handler.Handle(ctx, ComparePeriodsQuery{UserID: userID, StartDate: start, EndDate: end})

		require.NoError(t, err)
		assert.InDelta(t, 50.0, comparison.TasksCompleted.Change, 0.001)
		assert.Equal(t, domain.TrendUp, comparison.TasksCompleted.Trend)
		metricsRepo.AssertExpectations(t)
	})
}
