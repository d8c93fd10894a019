package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSessionNotFound = errors.New("focus session not found")
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Task, error)
	ListCompletedInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*Task, error)
}

// SessionRepository defines persistence operations for focus sessions.
type SessionRepository interface {
	Save(ctx context.Context, session *FocusSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*FocusSession, error)
	FindActive(ctx context.Context, userID uuid.UUID) (*FocusSession, error)
	ListInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*FocusSession, error)
}
