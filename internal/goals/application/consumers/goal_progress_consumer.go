// Package consumers contains the goals event consumers.
package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/cadence/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/cadence/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/outbox"
	trackingDomain "github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// GoalProgressConsumer applies completion events to the user's active goals.
// Increments are capped at the targets and stop entirely once a goal
// completes; completion emits a GoalCompleted event through the outbox.
type GoalProgressConsumer struct {
	goalRepo   domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	logger     *slog.Logger
}

// NewGoalProgressConsumer creates a new goal progress consumer.
func NewGoalProgressConsumer(
	goalRepo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *GoalProgressConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalProgressConsumer{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		logger:     logger,
	}
}

// EventTypes returns the event types this consumer handles.
func (c *GoalProgressConsumer) EventTypes() []string {
	return []string{
		trackingDomain.RoutingKeyTaskCompleted,
		trackingDomain.RoutingKeySessionCompleted,
	}
}

// sessionCompletedPayload mirrors the tracking SessionCompleted event body.
type sessionCompletedPayload struct {
	SessionType string `json:"session_type"`
	Minutes     int    `json:"minutes"`
	Completed   bool   `json:"completed"`
}

// Handle processes an event.
func (c *GoalProgressConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	userID := event.Metadata.UserID
	if userID == uuid.Nil {
		c.logger.Warn("completion event without user metadata",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
		)
		return nil
	}

	apply, ok := c.applier(event)
	if !ok {
		return nil
	}

	return sharedApplication.WithUnitOfWork(ctx, c.uow, func(txCtx context.Context) error {
		goals, err := c.goalRepo.FindByUser(txCtx, userID, true)
		if err != nil {
			return fmt.Errorf("find active goals: %w", err)
		}

		for _, goal := range goals {
			if !apply(goal) {
				continue
			}

			if err := c.goalRepo.Save(txCtx, goal); err != nil {
				return fmt.Errorf("save goal: %w", err)
			}

			if err := c.stageEvents(txCtx, goal.DomainEvents(), userID); err != nil {
				return err
			}

			if goal.IsCompleted() {
				c.logger.Info("goal completed",
					"goal_id", goal.ID(),
					"user_id", userID,
					"title", goal.Title(),
				)
			}
		}
		return nil
	})
}

// applier resolves the goal mutation for the event, or false when the event
// carries no goal progress.
func (c *GoalProgressConsumer) applier(event *eventbus.ConsumedEvent) (func(*domain.Goal) bool, bool) {
	date := event.OccurredAt

	switch event.RoutingKey {
	case trackingDomain.RoutingKeyTaskCompleted:
		return func(g *domain.Goal) bool { return g.RecordTaskCompletion(date) }, true

	case trackingDomain.RoutingKeySessionCompleted:
		var payload sessionCompletedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			c.logger.Error("failed to unmarshal session payload",
				"event_id", event.EventID,
				"error", err,
			)
			return nil, false
		}
		// Only completed work sessions count toward goals
		if payload.SessionType != "work" || !payload.Completed {
			return nil, false
		}
		return func(g *domain.Goal) bool { return g.RecordWorkSession(date, payload.Minutes) }, true

	default:
		return nil, false
	}
}

func (c *GoalProgressConsumer) stageEvents(ctx context.Context, events []sharedDomain.DomainEvent, userID uuid.UUID) error {
	if len(events) == 0 {
		return nil
	}

	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(userID))

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return c.outboxRepo.SaveBatch(ctx, msgs)
}
