package domain

import (
	"errors"
	"time"

	"github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidPlannedMinutes = errors.New("planned minutes must be positive")
	ErrSessionAlreadyEnded   = errors.New("session has already ended")
	ErrSessionNotOwned       = errors.New("session does not belong to user")
)

// SessionType distinguishes focus work from recovery breaks.
type SessionType int

const (
	SessionTypeWork SessionType = iota
	SessionTypeBreak
)

func (s SessionType) String() string {
	if s == SessionTypeBreak {
		return "break"
	}
	return "work"
}

// ParseSessionType parses a session type string as stored in the database.
func ParseSessionType(s string) SessionType {
	if s == "break" {
		return SessionTypeBreak
	}
	return SessionTypeWork
}

// FocusSession represents a single timed work or break interval.
type FocusSession struct {
	domain.BaseAggregateRoot
	userID         uuid.UUID
	sessionType    SessionType
	plannedMinutes int
	actualMinutes  int
	completed      bool
	startedAt      time.Time
	endedAt        *time.Time
}

// StartSession begins a new focus session.
func StartSession(userID uuid.UUID, sessionType SessionType, plannedMinutes int) (*FocusSession, error) {
	if plannedMinutes <= 0 {
		return nil, ErrInvalidPlannedMinutes
	}

	return &FocusSession{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		sessionType:       sessionType,
		plannedMinutes:    plannedMinutes,
		startedAt:         time.Now().UTC(),
	}, nil
}

// RehydrateFocusSession recreates a session from persisted state.
func RehydrateFocusSession(
	base domain.BaseEntity,
	userID uuid.UUID,
	sessionType SessionType,
	plannedMinutes, actualMinutes int,
	completed bool,
	startedAt time.Time,
	endedAt *time.Time,
) *FocusSession {
	return &FocusSession{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(base),
		userID:            userID,
		sessionType:       sessionType,
		plannedMinutes:    plannedMinutes,
		actualMinutes:     actualMinutes,
		completed:         completed,
		startedAt:         startedAt,
		endedAt:           endedAt,
	}
}

func (s *FocusSession) UserID() uuid.UUID       { return s.userID }
func (s *FocusSession) Type() SessionType       { return s.sessionType }
func (s *FocusSession) PlannedMinutes() int     { return s.plannedMinutes }
func (s *FocusSession) ActualMinutes() int      { return s.actualMinutes }
func (s *FocusSession) Completed() bool         { return s.completed }
func (s *FocusSession) StartedAt() time.Time    { return s.startedAt }
func (s *FocusSession) EndedAt() *time.Time     { return s.endedAt }
func (s *FocusSession) IsEnded() bool           { return s.endedAt != nil }

// End finishes the session. A completed session ran its full planned
// duration; an incomplete work session counts as interrupted. The emitted
// event carries the recorded actual minutes only: a session that never
// recorded a duration contributes zero, never its plan.
func (s *FocusSession) End(actualMinutes int, completed bool) error {
	if s.IsEnded() {
		return ErrSessionAlreadyEnded
	}

	now := time.Now().UTC()
	if actualMinutes < 0 {
		actualMinutes = 0
	}
	s.actualMinutes = actualMinutes
	s.completed = completed
	s.endedAt = &now
	s.Touch()

	s.AddDomainEvent(NewSessionCompleted(s.ID(), s.sessionType, s.actualMinutes, completed, s.startedAt))

	return nil
}
