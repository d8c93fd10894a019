package application

import (
	"github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
)

// NewEventMetadata mints the metadata one command execution stamps onto the
// events it raises. Correlation and causation start as fresh IDs; consumers
// that raise follow-up events carry the correlation forward.
func NewEventMetadata(userID uuid.UUID) domain.EventMetadata {
	return domain.EventMetadata{
		CorrelationID: uuid.New(),
		CausationID:   uuid.New(),
		UserID:        userID,
	}
}

// ApplyEventMetadata stamps metadata onto every event that accepts it.
// Events without a SetMetadata method pass through untouched.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	type setter interface {
		SetMetadata(metadata domain.EventMetadata)
	}
	for _, event := range events {
		if s, ok := event.(setter); ok {
			s.SetMetadata(metadata)
		}
	}
}
