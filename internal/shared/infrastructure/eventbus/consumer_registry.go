package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// ConsumerRegistry maps routing keys to the consumers that handle them and
// dispatches events in registration order. A failing consumer never blocks
// the others; Dispatch reports the last failure after all have run.
type ConsumerRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]EventConsumer
	logger   *slog.Logger
}

// NewConsumerRegistry creates an empty registry.
func NewConsumerRegistry(logger *slog.Logger) *ConsumerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsumerRegistry{
		handlers: make(map[string][]EventConsumer),
		logger:   logger,
	}
}

// Register subscribes the consumer to every routing key it declares.
func (r *ConsumerRegistry) Register(consumer EventConsumer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range consumer.EventTypes() {
		r.handlers[key] = append(r.handlers[key], consumer)
		r.logger.Debug("registered consumer", "routing_key", key)
	}
}

// Dispatch hands the event to every consumer subscribed to its routing key.
func (r *ConsumerRegistry) Dispatch(ctx context.Context, event *ConsumedEvent) error {
	r.mu.RLock()
	handlers := r.handlers[event.RoutingKey]
	r.mu.RUnlock()

	if len(handlers) == 0 {
		r.logger.Debug("no consumers for routing key", "routing_key", event.RoutingKey)
		return nil
	}

	var lastErr error
	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			r.logger.Error("consumer failed",
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				"error", err,
			)
			lastErr = err
		}
	}
	return lastErr
}
