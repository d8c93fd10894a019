package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventConsumer reacts to domain events. A consumer declares the routing
// keys it wants (e.g. "tracking.session.completed") and receives every
// matching event through Handle.
type EventConsumer interface {
	EventTypes() []string
	Handle(ctx context.Context, event *ConsumedEvent) error
}

// ConsumedEvent is the envelope events travel in between the outbox and the
// consumers. Payload stays raw so each consumer decodes its own event type.
type ConsumedEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
	Metadata      EventMetadata   `json:"metadata,omitempty"`
}

// EventMetadata is the tracing and ownership context carried alongside the
// payload. UserID drives the partitioned dispatcher's ordering.
type EventMetadata struct {
	UserID        uuid.UUID `json:"user_id,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	CausationID   string    `json:"causation_id,omitempty"`
}

// EventDispatcher routes a consumed event to its handlers. Both the
// ConsumerRegistry and the PartitionedDispatcher implement it.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event *ConsumedEvent) error
}

// Consumer is a broker-side event source. Start blocks until the context is
// cancelled or the consumer is closed.
type Consumer interface {
	Start(ctx context.Context) error
	RegisterConsumer(consumer EventConsumer)
	Close() error
}
