// Package domain carries the building blocks shared by every bounded
// context: identified entities, aggregate roots that record domain events,
// and the event contract itself.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity gives a domain object identity and lifecycle timestamps.
// Embed it; the zero value is not usable.
type BaseEntity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewBaseEntity mints an identity with both timestamps set to now (UTC).
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{id: uuid.New(), createdAt: now, updatedAt: now}
}

// RehydrateBaseEntity restores identity and timestamps from a stored row.
func RehydrateBaseEntity(id uuid.UUID, createdAt, updatedAt time.Time) BaseEntity {
	return BaseEntity{id: id, createdAt: createdAt, updatedAt: updatedAt}
}

func (e BaseEntity) ID() uuid.UUID        { return e.id }
func (e BaseEntity) CreatedAt() time.Time { return e.createdAt }
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }

// Touch marks the entity as modified now. Mutating methods call it so the
// updated_at column tracks the last state change.
func (e *BaseEntity) Touch() {
	e.updatedAt = time.Now().UTC()
}

// BaseAggregateRoot is a BaseEntity that also buffers the domain events
// raised since it was loaded. Handlers read the buffer after a successful
// mutation, stage the events in the outbox, and clear it.
type BaseAggregateRoot struct {
	BaseEntity
	events []DomainEvent
}

// NewBaseAggregateRoot mints a fresh aggregate with an empty event buffer.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// RehydrateBaseAggregateRoot wraps a restored entity. Rehydration never
// replays events; the buffer starts empty.
func RehydrateBaseAggregateRoot(entity BaseEntity) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: entity}
}

// AddDomainEvent appends an event to the uncommitted buffer.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// DomainEvents returns the uncommitted events in the order they were raised.
func (a *BaseAggregateRoot) DomainEvents() []DomainEvent {
	return a.events
}

// ClearDomainEvents empties the buffer, typically right after staging.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.events = nil
}
