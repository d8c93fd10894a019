package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists badge awards. Save must be idempotent for the same
// (user, badge type) pair.
type Repository interface {
	Save(ctx context.Context, badge *Badge) error
	Exists(ctx context.Context, userID uuid.UUID, badgeType string) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Badge, error)
}

// ProgressSource reads the lifetime counts the badge thresholds are checked
// against.
type ProgressSource interface {
	CountCompletedTasks(ctx context.Context, userID uuid.UUID) (int, error)
	CountCompletedWorkSessions(ctx context.Context, userID uuid.UUID) (int, error)
	CountCompletedGoals(ctx context.Context, userID uuid.UUID) (int, error)
}
