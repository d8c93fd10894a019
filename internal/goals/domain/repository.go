package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrGoalNotFound is returned when a goal does not exist.
var ErrGoalNotFound = errors.New("goal not found")

// Repository persists goals.
type Repository interface {
	Save(ctx context.Context, goal *Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*Goal, error)
	CountCompleted(ctx context.Context, userID uuid.UUID) (int, error)
}
