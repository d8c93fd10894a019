package domain

import (
	"time"

	"github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	GoalAggregateType = "Goal"

	RoutingKeyGoalCompleted = "goals.goal.completed"
)

// GoalCompleted is emitted exactly once when a goal reaches 100% progress.
type GoalCompleted struct {
	domain.BaseEvent
	Title         string    `json:"title"`
	CompletedDate time.Time `json:"completed_date"`
}

// NewGoalCompleted creates a GoalCompleted event.
func NewGoalCompleted(goalID uuid.UUID, title string, completedDate time.Time) GoalCompleted {
	return GoalCompleted{
		BaseEvent:     domain.NewBaseEvent(goalID, GoalAggregateType, RoutingKeyGoalCompleted),
		Title:         title,
		CompletedDate: completedDate,
	}
}
