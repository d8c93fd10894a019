// Package queries contains the read-side handlers of the goals context.
package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cadence/internal/goals/domain"
	"github.com/google/uuid"
)

// ListGoalsQuery requests a user's goals.
type ListGoalsQuery struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// GoalProgress is the goal progress read model.
type GoalProgress struct {
	GoalID              uuid.UUID
	Title               string
	PeriodType          string
	TargetTasks         int
	TargetPomodoros     int
	TargetFocusMinutes  int
	CurrentTasks        int
	CurrentPomodoros    int
	CurrentFocusMinutes int
	StartDate           time.Time
	EndDate             time.Time
	ProgressPercentage  float64
	Completed           bool
	CompletedDate       *time.Time
}

// ListGoalsHandler handles list goals queries.
type ListGoalsHandler struct {
	goalRepo domain.Repository
}

// NewListGoalsHandler creates a new list goals handler.
func NewListGoalsHandler(goalRepo domain.Repository) *ListGoalsHandler {
	return &ListGoalsHandler{goalRepo: goalRepo}
}

// Handle executes the list goals query.
func (h *ListGoalsHandler) Handle(ctx context.Context, query ListGoalsQuery) ([]GoalProgress, error) {
	goals, err := h.goalRepo.FindByUser(ctx, query.UserID, query.ActiveOnly)
	if err != nil {
		return nil, err
	}

	progress := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, GoalProgress{
			GoalID:              g.ID(),
			Title:               g.Title(),
			PeriodType:          g.PeriodType().String(),
			TargetTasks:         g.TargetTasks(),
			TargetPomodoros:     g.TargetPomodoros(),
			TargetFocusMinutes:  g.TargetFocusMinutes(),
			CurrentTasks:        g.CurrentTasks(),
			CurrentPomodoros:    g.CurrentPomodoros(),
			CurrentFocusMinutes: g.CurrentFocusMinutes(),
			StartDate:           g.StartDate(),
			EndDate:             g.EndDate(),
			ProgressPercentage:  g.ProgressPercentage(),
			Completed:           g.IsCompleted(),
			CompletedDate:       g.CompletedDate(),
		})
	}
	return progress, nil
}
