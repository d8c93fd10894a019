package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()

	event := NewBaseEvent(aggregateID, "FocusSession", "tracking.session.completed")

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "FocusSession", event.AggregateType())
	assert.Equal(t, "tracking.session.completed", event.RoutingKey())
	assert.WithinDuration(t, time.Now().UTC(), event.OccurredAt(), time.Second)
	assert.Equal(t, EventMetadata{}, event.Metadata())
}

func TestBaseEvent_SetMetadata(t *testing.T) {
	event := NewBaseEvent(uuid.New(), "Task", "tracking.task.completed")

	meta := EventMetadata{
		CorrelationID: uuid.New(),
		CausationID:   uuid.New(),
		UserID:        uuid.New(),
	}
	event.SetMetadata(meta)

	assert.Equal(t, meta, event.Metadata())
}
