package cache

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMetricsCache_Daily(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryMetricsCache(0)
	userID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("miss before set", func(t *testing.T) {
		_, err := cache.GetDaily(ctx, userID, date)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("set then get", func(t *testing.T) {
		metrics := domain.NewDailyMetrics(userID, date)
		metrics.FocusMinutes = 150
		require.NoError(t, cache.SetDaily(ctx, metrics))

		got, err := cache.GetDaily(ctx, userID, date)
		require.NoError(t, err)
		assert.Equal(t, 150, got.FocusMinutes)
	})

	t.Run("returned copy does not alias the cached value", func(t *testing.T) {
		got, err := cache.GetDaily(ctx, userID, date)
		require.NoError(t, err)
		got.FocusMinutes = 999

		again, err := cache.GetDaily(ctx, userID, date)
		require.NoError(t, err)
		assert.Equal(t, 150, again.FocusMinutes)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		require.NoError(t, cache.InvalidateDaily(ctx, userID, date))

		_, err := cache.GetDaily(ctx, userID, date)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})
}

func TestMemoryMetricsCache_Period(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryMetricsCache(time.Minute)
	userID := uuid.New()
	start := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	_, err := cache.GetPeriod(ctx, userID, start, end)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	summary := &domain.PeriodSummary{UserID: userID, StartDate: start, EndDate: end, Days: 7}
	require.NoError(t, cache.SetPeriod(ctx, summary))

	got, err := cache.GetPeriod(ctx, userID, start, end)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Days)
}
