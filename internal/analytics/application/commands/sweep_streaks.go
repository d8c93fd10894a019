package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
)

// SweepStreakCommand resets one user's streak when it has gone stale.
type SweepStreakCommand struct {
	UserID uuid.UUID
	Today  time.Time
}

// SweepStreakHandler applies the day-boundary streak reset. Users whose last
// productive day is before yesterday lose their current streak; the longest
// streak is preserved.
type SweepStreakHandler struct {
	streakRepo domain.StreakRepository
}

// NewSweepStreakHandler creates a new sweep streak handler.
func NewSweepStreakHandler(streakRepo domain.StreakRepository) *SweepStreakHandler {
	return &SweepStreakHandler{streakRepo: streakRepo}
}

// Handle executes the sweep streak command. Returns true when the streak
// was reset.
func (h *SweepStreakHandler) Handle(ctx context.Context, cmd SweepStreakCommand) (bool, error) {
	state, err := h.streakRepo.Get(ctx, cmd.UserID)
	if err != nil {
		return false, fmt.Errorf("get streak: %w", err)
	}

	if !state.Sweep(cmd.Today) {
		return false, nil
	}

	if err := h.streakRepo.Save(ctx, cmd.UserID, state); err != nil {
		return false, fmt.Errorf("save streak: %w", err)
	}
	return true, nil
}
