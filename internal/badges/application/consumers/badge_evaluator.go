// Package consumers contains the badge evaluation consumer.
package consumers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/cadence/internal/badges/domain"
	goalsDomain "github.com/felixgeelhaar/cadence/internal/goals/domain"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	trackingDomain "github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// BadgeEvaluator is a stateless threshold check. On every completion event
// it recomputes the user's lifetime count for the relevant category and
// awards any badge whose requirement is met. Awards are strictly additive
// and idempotent, replaying an event never duplicates a badge.
type BadgeEvaluator struct {
	badgeRepo domain.Repository
	progress  domain.ProgressSource
	logger    *slog.Logger
}

// NewBadgeEvaluator creates a new badge evaluator.
func NewBadgeEvaluator(badgeRepo domain.Repository, progress domain.ProgressSource, logger *slog.Logger) *BadgeEvaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgeEvaluator{
		badgeRepo: badgeRepo,
		progress:  progress,
		logger:    logger,
	}
}

// EventTypes returns the event types this consumer handles.
func (e *BadgeEvaluator) EventTypes() []string {
	return []string{
		trackingDomain.RoutingKeyTaskCompleted,
		trackingDomain.RoutingKeySessionCompleted,
		goalsDomain.RoutingKeyGoalCompleted,
	}
}

// Handle processes an event.
func (e *BadgeEvaluator) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	userID := event.Metadata.UserID
	if userID == uuid.Nil {
		e.logger.Warn("completion event without user metadata",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
		)
		return nil
	}

	var category domain.Category
	switch event.RoutingKey {
	case trackingDomain.RoutingKeyTaskCompleted:
		category = domain.CategoryTask
	case trackingDomain.RoutingKeySessionCompleted:
		category = domain.CategoryPomodoro
	case goalsDomain.RoutingKeyGoalCompleted:
		category = domain.CategoryGoal
	default:
		return nil
	}

	awarded, err := e.Evaluate(ctx, userID, category)
	if err != nil {
		return err
	}

	for _, badge := range awarded {
		e.logger.Info("badge awarded",
			"user_id", userID,
			"badge_type", badge.BadgeType,
		)
	}
	return nil
}

// Evaluate checks one category's thresholds for a user and awards every
// badge whose requirement is met. Returns the newly awarded badges.
func (e *BadgeEvaluator) Evaluate(ctx context.Context, userID uuid.UUID, category domain.Category) ([]*domain.Badge, error) {
	count, err := e.lifetimeCount(ctx, userID, category)
	if err != nil {
		return nil, err
	}

	var awarded []*domain.Badge
	for _, def := range domain.DefinitionsFor(category) {
		if count < def.Requirement {
			break // catalog is sorted ascending by requirement
		}

		exists, err := e.badgeRepo.Exists(ctx, userID, def.Type)
		if err != nil {
			return nil, fmt.Errorf("check badge %s: %w", def.Type, err)
		}
		if exists {
			continue
		}

		badge := domain.NewBadge(userID, def.Type)
		if err := e.badgeRepo.Save(ctx, badge); err != nil {
			return nil, fmt.Errorf("award badge %s: %w", def.Type, err)
		}
		awarded = append(awarded, badge)
	}
	return awarded, nil
}

func (e *BadgeEvaluator) lifetimeCount(ctx context.Context, userID uuid.UUID, category domain.Category) (int, error) {
	switch category {
	case domain.CategoryTask:
		return e.progress.CountCompletedTasks(ctx, userID)
	case domain.CategoryPomodoro:
		return e.progress.CountCompletedWorkSessions(ctx, userID)
	case domain.CategoryGoal:
		return e.progress.CountCompletedGoals(ctx, userID)
	default:
		return 0, nil
	}
}
