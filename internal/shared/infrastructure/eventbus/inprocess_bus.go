package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// InProcessEventBus delivers events synchronously to registered consumers.
// It is the local-mode stand-in for the broker: the CLI's outbox processor
// publishes into it and the goal, badge, and cache reactions run before
// Publish returns. Reaction failures are logged, never surfaced, so a bad
// consumer cannot wedge the outbox.
type InProcessEventBus struct {
	mu       sync.Mutex
	registry *ConsumerRegistry
	logger   *slog.Logger
}

// NewInProcessEventBus creates a bus with no consumers registered.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{
		registry: NewConsumerRegistry(logger),
		logger:   logger,
	}
}

// RegisterConsumer subscribes a consumer to its declared routing keys.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish decodes the consumed-event envelope and dispatches it inline.
// Implements Publisher, so the outbox processor can target the bus.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	event := &ConsumedEvent{}
	if err := json.Unmarshal(payload, event); err != nil {
		b.logger.Error("dropping undecodable event",
			"routing_key", routingKey,
			"error", err,
		)
		return nil
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}

	if err := b.registry.Dispatch(ctx, event); err != nil {
		b.logger.Error("local dispatch failed",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
			"error", err,
		)
	}
	return nil
}

// Close implements Publisher; the bus holds no resources.
func (b *InProcessEventBus) Close() error {
	return nil
}

// InProcessPublisher adapts the bus to the Publisher interface held by
// callers that must not know whether they talk to RabbitMQ or the local
// bus.
type InProcessPublisher struct {
	bus *InProcessEventBus
}

// NewInProcessPublisher wraps the bus. The logger parameter is kept for
// symmetry with the broker publisher constructor.
func NewInProcessPublisher(bus *InProcessEventBus, _ *slog.Logger) *InProcessPublisher {
	return &InProcessPublisher{bus: bus}
}

func (p *InProcessPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	return p.bus.Publish(ctx, routingKey, payload)
}

func (p *InProcessPublisher) Close() error {
	return nil
}
