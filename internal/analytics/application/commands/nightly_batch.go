package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

// NightlyBatchHandler runs the scheduled metrics pass: for every known user
// it recomputes the previous day's metrics and sweeps stale streaks. One
// failing user never blocks the rest of the batch.
type NightlyBatchHandler struct {
	compute    *ComputeDailyMetricsHandler
	sweep      *SweepStreakHandler
	streakRepo domain.StreakRepository
	logger     *slog.Logger
}

// NewNightlyBatchHandler creates a new nightly batch handler.
func NewNightlyBatchHandler(
	compute *ComputeDailyMetricsHandler,
	sweep *SweepStreakHandler,
	streakRepo domain.StreakRepository,
	logger *slog.Logger,
) *NightlyBatchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NightlyBatchHandler{
		compute:    compute,
		sweep:      sweep,
		streakRepo: streakRepo,
		logger:     logger,
	}
}

// Run processes all users for the day that just ended. now is the batch
// trigger time, shortly after midnight.
func (h *NightlyBatchHandler) Run(ctx context.Context, now time.Time) error {
	today := domain.NormalizeDate(now)
	yesterday := today.AddDate(0, 0, -1)

	userIDs, err := h.streakRepo.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var failed int
	for _, userID := range userIDs {
		if _, err := h.compute.Handle(ctx, ComputeDailyMetricsCommand{UserID: userID, Date: yesterday}); err != nil {
			failed++
			h.logger.Error("nightly metrics computation failed",
				"user_id", userID,
				"date", yesterday.Format("2006-01-02"),
				"error", err)
			continue
		}

		reset, err := h.sweep.Handle(ctx, SweepStreakCommand{UserID: userID, Today: today})
		if err != nil {
			failed++
			h.logger.Error("streak sweep failed", "user_id", userID, "error", err)
			continue
		}
		if reset {
			h.logger.Info("streak reset by nightly sweep", "user_id", userID)
		}
	}

	h.logger.Info("nightly batch finished",
		"users", len(userIDs),
		"failed", failed,
		"date", yesterday.Format("2006-01-02"))

	return nil
}
