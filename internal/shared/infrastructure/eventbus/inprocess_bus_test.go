package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeBytes(t *testing.T, event eventbus.ConsumedEvent) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body
}

func TestInProcessEventBus_Publish(t *testing.T) {
	t.Run("delivers to the registered consumer before returning", func(t *testing.T) {
		bus := eventbus.NewInProcessEventBus(testLogger())
		consumer := &recordingConsumer{eventTypes: []string{"tracking.session.completed"}}
		bus.RegisterConsumer(consumer)

		event := eventbus.ConsumedEvent{
			EventID:     uuid.New(),
			AggregateID: uuid.New(),
			RoutingKey:  "tracking.session.completed",
			OccurredAt:  time.Now().UTC(),
			Payload:     json.RawMessage(`{"minutes":25}`),
		}
		err := bus.Publish(context.Background(), event.RoutingKey, envelopeBytes(t, event))

		require.NoError(t, err)
		recorded := consumer.recorded()
		require.Len(t, recorded, 1)
		assert.Equal(t, event.EventID, recorded[0].EventID)
		assert.JSONEq(t, `{"minutes":25}`, string(recorded[0].Payload))
	})

	t.Run("fills a missing envelope routing key from the publish key", func(t *testing.T) {
		bus := eventbus.NewInProcessEventBus(testLogger())
		consumer := &recordingConsumer{eventTypes: []string{"goals.goal.completed"}}
		bus.RegisterConsumer(consumer)

		event := eventbus.ConsumedEvent{EventID: uuid.New()}
		err := bus.Publish(context.Background(), "goals.goal.completed", envelopeBytes(t, event))

		require.NoError(t, err)
		recorded := consumer.recorded()
		require.Len(t, recorded, 1)
		assert.Equal(t, "goals.goal.completed", recorded[0].RoutingKey)
	})

	t.Run("drops an undecodable payload without error", func(t *testing.T) {
		bus := eventbus.NewInProcessEventBus(testLogger())
		consumer := &recordingConsumer{eventTypes: []string{"tracking.task.created"}}
		bus.RegisterConsumer(consumer)

		err := bus.Publish(context.Background(), "tracking.task.created", []byte("not json"))

		require.NoError(t, err)
		assert.Empty(t, consumer.recorded())
	})

	t.Run("swallows consumer failures so the outbox keeps moving", func(t *testing.T) {
		bus := eventbus.NewInProcessEventBus(testLogger())
		bus.RegisterConsumer(&failingConsumer{
			eventTypes: []string{"tracking.task.completed"},
			err:        errors.New("reaction failed"),
		})

		event := eventbus.ConsumedEvent{
			EventID:    uuid.New(),
			RoutingKey: "tracking.task.completed",
		}
		err := bus.Publish(context.Background(), event.RoutingKey, envelopeBytes(t, event))

		assert.NoError(t, err)
	})
}

func TestInProcessPublisher(t *testing.T) {
	t.Run("forwards publishes to the bus", func(t *testing.T) {
		bus := eventbus.NewInProcessEventBus(testLogger())
		consumer := &recordingConsumer{eventTypes: []string{"tracking.session.completed"}}
		bus.RegisterConsumer(consumer)
		publisher := eventbus.NewInProcessPublisher(bus, nil)

		event := eventbus.ConsumedEvent{
			EventID:    uuid.New(),
			RoutingKey: "tracking.session.completed",
		}
		require.NoError(t, publisher.Publish(context.Background(), event.RoutingKey, envelopeBytes(t, event)))

		assert.Len(t, consumer.recorded(), 1)
	})

	t.Run("close releases nothing and never fails", func(t *testing.T) {
		bus := eventbus.NewInProcessEventBus(testLogger())
		publisher := eventbus.NewInProcessPublisher(bus, nil)

		assert.NoError(t, publisher.Close())
		assert.NoError(t, bus.Close())
	})
}
