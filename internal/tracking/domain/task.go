// Package domain contains the task and focus session model for the
// tracking bounded context.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errors.New("task title cannot be empty")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrTaskArchived        = errors.New("task is archived")
	ErrTaskNotOwned        = errors.New("task does not belong to user")
)

// TaskStatus represents the task lifecycle state.
type TaskStatus int

const (
	TaskStatusPending TaskStatus = iota
	TaskStatusInProgress
	TaskStatusCompleted
	TaskStatusArchived
)

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusPending:
		return "pending"
	case TaskStatusInProgress:
		return "in_progress"
	case TaskStatusCompleted:
		return "completed"
	case TaskStatusArchived:
		return "archived"
	default:
		return "unknown"
	}
}

// ParseTaskStatus parses a status string as stored in the database.
func ParseTaskStatus(s string) TaskStatus {
	switch s {
	case "in_progress":
		return TaskStatusInProgress
	case "completed":
		return TaskStatusCompleted
	case "archived":
		return TaskStatusArchived
	default:
		return TaskStatusPending
	}
}

// Task represents a unit of work to be done.
type Task struct {
	domain.BaseAggregateRoot
	userID          uuid.UUID
	title           string
	description     string
	status          TaskStatus
	urgent          bool
	important       bool
	statusChangedAt time.Time
	completedAt     *time.Time
}

// NewTask creates a new task with the given title.
func NewTask(userID uuid.UUID, title string, urgent, important bool) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		status:            TaskStatusPending,
		urgent:            urgent,
		important:         important,
		statusChangedAt:   time.Now().UTC(),
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.title))

	return t, nil
}

// RehydrateTask recreates a task from persisted state.
func RehydrateTask(
	base domain.BaseEntity,
	userID uuid.UUID,
	title, description string,
	status TaskStatus,
	urgent, important bool,
	statusChangedAt time.Time,
	completedAt *time.Time,
) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(base),
		userID:            userID,
		title:             title,
		description:       description,
		status:            status,
		urgent:            urgent,
		important:         important,
		statusChangedAt:   statusChangedAt,
		completedAt:       completedAt,
	}
}

func (t *Task) UserID() uuid.UUID         { return t.userID }
func (t *Task) Title() string             { return t.title }
func (t *Task) Description() string       { return t.description }
func (t *Task) Status() TaskStatus        { return t.status }
func (t *Task) Urgent() bool              { return t.urgent }
func (t *Task) Important() bool           { return t.important }
func (t *Task) StatusChangedAt() time.Time { return t.statusChangedAt }
func (t *Task) CompletedAt() *time.Time   { return t.completedAt }
func (t *Task) IsCompleted() bool         { return t.status == TaskStatusCompleted }
func (t *Task) IsArchived() bool          { return t.status == TaskStatusArchived }

// SetDescription updates the task description.
func (t *Task) SetDescription(description string) error {
	if t.IsArchived() {
		return ErrTaskArchived
	}
	t.description = strings.TrimSpace(description)
	t.Touch()
	return nil
}

// SetQuadrant updates the urgent/important classification.
func (t *Task) SetQuadrant(urgent, important bool) error {
	if t.IsArchived() {
		return ErrTaskArchived
	}
	t.urgent = urgent
	t.important = important
	t.Touch()
	return nil
}

// Start marks the task as in progress.
func (t *Task) Start() error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}
	if t.IsArchived() {
		return ErrTaskArchived
	}
	if t.status == TaskStatusInProgress {
		return nil // Idempotent
	}
	t.status = TaskStatusInProgress
	t.statusChangedAt = time.Now().UTC()
	t.Touch()
	return nil
}

// Complete marks the task as completed.
func (t *Task) Complete() error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}
	if t.IsArchived() {
		return ErrTaskArchived
	}

	now := time.Now().UTC()
	t.status = TaskStatusCompleted
	t.statusChangedAt = now
	t.completedAt = &now
	t.Touch()

	t.AddDomainEvent(NewTaskCompleted(t.ID(), t.CreatedAt(), now))

	return nil
}

// Archive marks the task as archived.
func (t *Task) Archive() error {
	if t.IsArchived() {
		return nil // Idempotent
	}

	t.status = TaskStatusArchived
	t.statusChangedAt = time.Now().UTC()
	t.Touch()

	return nil
}
