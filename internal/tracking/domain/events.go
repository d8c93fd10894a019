package domain

import (
	"time"

	"github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	TaskAggregateType    = "Task"
	SessionAggregateType = "FocusSession"

	RoutingKeyTaskCreated      = "tracking.task.created"
	RoutingKeyTaskCompleted    = "tracking.task.completed"
	RoutingKeySessionCompleted = "tracking.session.completed"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Title string `json:"title"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID uuid.UUID, title string) TaskCreated {
	return TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, TaskAggregateType, RoutingKeyTaskCreated),
		Title:     title,
	}
}

// TaskCompleted is emitted when a task is completed.
type TaskCompleted struct {
	domain.BaseEvent
	TaskCreatedAt time.Time `json:"task_created_at"`
	CompletedAt   time.Time `json:"completed_at"`
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(taskID uuid.UUID, taskCreatedAt, completedAt time.Time) TaskCompleted {
	return TaskCompleted{
		BaseEvent:     domain.NewBaseEvent(taskID, TaskAggregateType, RoutingKeyTaskCompleted),
		TaskCreatedAt: taskCreatedAt,
		CompletedAt:   completedAt,
	}
}

// SessionCompleted is emitted when a focus session ends, whether or not it
// ran its full planned duration.
type SessionCompleted struct {
	domain.BaseEvent
	SessionType string    `json:"session_type"`
	Minutes     int       `json:"minutes"`
	Completed   bool      `json:"completed"`
	StartedAt   time.Time `json:"started_at"`
}

// NewSessionCompleted creates a SessionCompleted event.
func NewSessionCompleted(sessionID uuid.UUID, sessionType SessionType, minutes int, completed bool, startedAt time.Time) SessionCompleted {
	return SessionCompleted{
		BaseEvent:   domain.NewBaseEvent(sessionID, SessionAggregateType, RoutingKeySessionCompleted),
		SessionType: sessionType.String(),
		Minutes:     minutes,
		Completed:   completed,
		StartedAt:   startedAt,
	}
}
