// Package commands contains the write-side handlers of the analytics
// context: daily metrics computation and the nightly streak sweep.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
)

// ComputeDailyMetricsCommand requests (re)computation of one user-day.
type ComputeDailyMetricsCommand struct {
	UserID uuid.UUID
	Date   time.Time
}

// ComputeDailyMetricsHandler recomputes the metrics row for a user and day
// from raw tracking activity, advances the streak, and refreshes the cache.
// Recomputation is idempotent for unchanged activity.
type ComputeDailyMetricsHandler struct {
	metricsRepo domain.MetricsRepository
	streakRepo  domain.StreakRepository
	activity    domain.ActivitySource
	cache       domain.MetricsCache
}

// NewComputeDailyMetricsHandler creates a new compute daily metrics handler.
func NewComputeDailyMetricsHandler(
	metricsRepo domain.MetricsRepository,
	streakRepo domain.StreakRepository,
	activity domain.ActivitySource,
	cache domain.MetricsCache,
) *ComputeDailyMetricsHandler {
	return &ComputeDailyMetricsHandler{
		metricsRepo: metricsRepo,
		streakRepo:  streakRepo,
		activity:    activity,
		cache:       cache,
	}
}

// Handle executes the compute daily metrics command.
func (h *ComputeDailyMetricsHandler) Handle(ctx context.Context, cmd ComputeDailyMetricsCommand) (*domain.DailyMetrics, error) {
	date := domain.NormalizeDate(cmd.Date)
	metrics := domain.NewDailyMetrics(cmd.UserID, date)

	taskStats, err := h.activity.GetTaskStats(ctx, cmd.UserID, date)
	if err != nil {
		return nil, fmt.Errorf("get task stats: %w", err)
	}
	metrics.SetTaskMetrics(taskStats.Created, taskStats.Completed, taskStats.CompletedSameDay)

	sessionStats, err := h.activity.GetSessionStats(ctx, cmd.UserID, date)
	if err != nil {
		return nil, fmt.Errorf("get session stats: %w", err)
	}
	metrics.SetSessionMetrics(
		sessionStats.PomodorosCompleted,
		sessionStats.FocusMinutes,
		sessionStats.BreakMinutes,
		sessionStats.InterruptedSessions,
		sessionStats.LateNightSessions,
	)

	quadrants, err := h.activity.GetQuadrantCounts(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("get quadrant counts: %w", err)
	}
	metrics.Quadrants = quadrants

	if metrics.IsProductive() {
		if err := h.advanceStreak(ctx, cmd.UserID, date); err != nil {
			return nil, err
		}
	}

	consecutive, err := h.consecutiveWorkDays(ctx, cmd.UserID, date, metrics.IsProductive())
	if err != nil {
		return nil, err
	}
	metrics.ConsecutiveWorkDays = consecutive

	metrics.CalculateScores()

	if err := h.metricsRepo.Save(ctx, metrics); err != nil {
		return nil, fmt.Errorf("save daily metrics: %w", err)
	}

	// Cache write is best-effort; the persisted row is the truth.
	_ = h.cache.SetDaily(ctx, metrics)

	return metrics, nil
}

func (h *ComputeDailyMetricsHandler) advanceStreak(ctx context.Context, userID uuid.UUID, date time.Time) error {
	state, err := h.streakRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get streak: %w", err)
	}

	state.RecordProductiveDay(date)

	if err := h.streakRepo.Save(ctx, userID, state); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

// consecutiveWorkDays counts today (when productive) plus the unbroken run
// of productive days walking backwards through persisted metrics, capped at
// the lookback window.
func (h *ComputeDailyMetricsHandler) consecutiveWorkDays(ctx context.Context, userID uuid.UUID, date time.Time, todayProductive bool) (int, error) {
	if !todayProductive {
		return 0, nil
	}

	count := 1
	for i := 1; i <= domain.StreakLookbackDays; i++ {
		prior, err := h.metricsRepo.FindByDate(ctx, userID, date.AddDate(0, 0, -i))
		if errors.Is(err, domain.ErrMetricsNotFound) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("find prior metrics: %w", err)
		}
		if !prior.IsProductive() {
			break
		}
		count++
	}

	return count, nil
}
