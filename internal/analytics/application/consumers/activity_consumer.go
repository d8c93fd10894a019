// Package consumers contains the analytics event consumers.
package consumers

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	trackingDomain "github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// ActivityConsumer invalidates the cached "today" metrics whenever new
// activity lands for a user, so the next read recomputes fresh numbers.
type ActivityConsumer struct {
	cache  domain.MetricsCache
	logger *slog.Logger
}

// NewActivityConsumer creates a new activity consumer.
func NewActivityConsumer(cache domain.MetricsCache, logger *slog.Logger) *ActivityConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityConsumer{
		cache:  cache,
		logger: logger,
	}
}

// EventTypes returns the event types this consumer handles.
func (c *ActivityConsumer) EventTypes() []string {
	return []string{
		trackingDomain.RoutingKeyTaskCompleted,
		trackingDomain.RoutingKeySessionCompleted,
	}
}

// Handle processes an event.
func (c *ActivityConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	userID := event.Metadata.UserID
	if userID == uuid.Nil {
		c.logger.Warn("activity event without user metadata",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
		)
		return nil
	}

	date := domain.NormalizeDate(event.OccurredAt)
	if err := c.cache.InvalidateDaily(ctx, userID, date); err != nil {
		c.logger.Error("failed to invalidate daily metrics cache",
			"user_id", userID,
			"date", date.Format("2006-01-02"),
			"error", err,
		)
		return nil // Stale cache is tolerable, never fail the event
	}

	c.logger.Debug("invalidated daily metrics cache",
		"user_id", userID,
		"routing_key", event.RoutingKey,
	)
	return nil
}
