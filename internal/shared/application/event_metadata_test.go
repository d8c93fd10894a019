package application

import (
	"testing"

	"github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stampableEvent struct {
	domain.BaseEvent
}

func TestNewEventMetadata(t *testing.T) {
	userID := uuid.New()

	first := NewEventMetadata(userID)
	second := NewEventMetadata(userID)

	assert.Equal(t, userID, first.UserID)
	assert.NotEqual(t, uuid.Nil, first.CorrelationID)
	assert.NotEqual(t, uuid.Nil, first.CausationID)

	// Each command execution gets its own trace identity.
	assert.NotEqual(t, first.CorrelationID, second.CorrelationID)
}

func TestApplyEventMetadata(t *testing.T) {
	userID := uuid.New()

	t.Run("stamps every event", func(t *testing.T) {
		e1 := &stampableEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "Task", "tracking.task.completed")}
		e2 := &stampableEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "Goal", "goals.goal.completed")}
		meta := NewEventMetadata(userID)

		ApplyEventMetadata([]domain.DomainEvent{e1, e2}, meta)

		require.Equal(t, meta, e1.Metadata())
		require.Equal(t, meta, e2.Metadata())
	})

	t.Run("tolerates empty and nil slices", func(t *testing.T) {
		meta := NewEventMetadata(userID)

		assert.NotPanics(t, func() {
			ApplyEventMetadata([]domain.DomainEvent{}, meta)
			ApplyEventMetadata(nil, meta)
		})
	})
}
