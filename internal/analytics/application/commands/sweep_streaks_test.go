package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweepStreakHandler_Handle(t *testing.T) {
	userID := uuid.New()
	today := day("2026-03-10")

	t.Run("resets a stale streak", func(t *testing.T) {
		streakRepo := new(mockStreakRepo)
		handler := NewSweepStreakHandler(streakRepo)

		ctx := context.Background()
		last := day("2026-03-07")
		streakRepo.On("Get", ctx, userID).
			Return(&domain.StreakState{Current: 12, Longest: 12, LastActivityDate: &last}, nil)
		streakRepo.On("Save", ctx, userID, mock.MatchedBy(func(s *domain.StreakState) bool {
			return s.Current == 0 && s.Longest == 12
		})).Return(nil)

		reset, err := handler.Handle(ctx, SweepStreakCommand{UserID: userID, Today: today})

		require.NoError(t, err)
		assert.True(t, reset)
		streakRepo.AssertExpectations(t)
	})

	t.Run("active streak is untouched", func(t *testing.T) {
		streakRepo := new(mockStreakRepo)
		handler := NewSweepStreakHandler(streakRepo)

		ctx := context.Background()
		last := day("2026-03-09")
		streakRepo.On("Get", ctx, userID).
			Return(&domain.StreakState{Current: 5, Longest: 8, LastActivityDate: &last}, nil)

		reset, err := handler.Handle(ctx, SweepStreakCommand{UserID: userID, Today: today})

		require.NoError(t, err)
		assert.False(t, reset)
		streakRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNightlyBatchHandler_Run(t *testing.T) {
	t.Run("one failing user does not block the rest", func(t *testing.T) {
		failingUser := uuid.New()
		healthyUser := uuid.New()
		now := day("2026-03-11").Add(15 * time.Minute)
		yesterday := day("2026-03-10")

		metricsRepo := new(mockMetricsRepo)
		streakRepo := new(mockStreakRepo)
		activity := new(mockActivitySource)
		cache := new(mockMetricsCache)

		compute := NewComputeDailyMetricsHandler(metricsRepo, streakRepo, activity, cache)
		sweep := NewSweepStreakHandler(streakRepo)
		handler := NewNightlyBatchHandler(compute, sweep, streakRepo, nil)

		ctx := context.Background()
		streakRepo.On("ListUserIDs", ctx).Return([]uuid.UUID{failingUser, healthyUser}, nil)

		activity.On("GetTaskStats", ctx, failingUser, yesterday).
			Return(domain.TaskStats{}, errors.New("database error"))

		activity.On("GetTaskStats", ctx, healthyUser, yesterday).Return(domain.TaskStats{}, nil)
		activity.On("GetSessionStats", ctx, healthyUser, yesterday).Return(domain.SessionStats{}, nil)
		activity.On("GetQuadrantCounts", ctx, healthyUser).Return(domain.EisenhowerDistribution{}, nil)
		metricsRepo.On("Save", ctx, mock.AnythingOfType("*domain.DailyMetrics")).Return(nil)
		cache.On("SetDaily", ctx, mock.AnythingOfType("*domain.DailyMetrics")).Return(nil)
		streakRepo.On("Get", ctx, healthyUser).Return(&domain.StreakState{}, nil)

		err := handler.Run(ctx, now)

		require.NoError(t, err)
		streakRepo.AssertExpectations(t)
		activity.AssertExpectations(t)
	})
}
