package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	userID := uuid.New()

	t.Run("creates task with trimmed title", func(t *testing.T) {
		task, err := domain.NewTask(userID, "  Write report  ", true, false)

		require.NoError(t, err)
		assert.Equal(t, "Write report", task.Title())
		assert.Equal(t, domain.TaskStatusPending, task.Status())
		assert.True(t, task.Urgent())
		assert.False(t, task.Important())
		assert.Nil(t, task.CompletedAt())
	})

	t.Run("emits created event", func(t *testing.T) {
		task, err := domain.NewTask(userID, "Write report", false, false)

		require.NoError(t, err)
		events := task.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, domain.RoutingKeyTaskCreated, events[0].RoutingKey())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := domain.NewTask(userID, "   ", false, false)
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})
}

func TestTask_Complete(t *testing.T) {
	userID := uuid.New()

	t.Run("records completion time and emits event", func(t *testing.T) {
		task, _ := domain.NewTask(userID, "Write report", false, false)
		task.ClearDomainEvents()

		err := task.Complete()

		require.NoError(t, err)
		assert.True(t, task.IsCompleted())
		require.NotNil(t, task.CompletedAt())

		events := task.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, domain.RoutingKeyTaskCompleted, events[0].RoutingKey())
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		task, _ := domain.NewTask(userID, "Write report", false, false)
		require.NoError(t, task.Complete())

		err := task.Complete()
		assert.ErrorIs(t, err, domain.ErrTaskAlreadyComplete)
	})

	t.Run("cannot complete archived task", func(t *testing.T) {
		task, _ := domain.NewTask(userID, "Write report", false, false)
		require.NoError(t, task.Archive())

		err := task.Complete()
		assert.ErrorIs(t, err, domain.ErrTaskArchived)
	})
}

func TestTask_Start(t *testing.T) {
	task, _ := domain.NewTask(uuid.New(), "Write report", false, false)

	require.NoError(t, task.Start())
	assert.Equal(t, domain.TaskStatusInProgress, task.Status())

	// Idempotent
	require.NoError(t, task.Start())
	assert.Equal(t, domain.TaskStatusInProgress, task.Status())
}

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.TaskStatus
	}{
		{"pending", domain.TaskStatusPending},
		{"in_progress", domain.TaskStatusInProgress},
		{"completed", domain.TaskStatusCompleted},
		{"archived", domain.TaskStatusArchived},
		{"garbage", domain.TaskStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ParseTaskStatus(tt.input))
		})
	}
}
