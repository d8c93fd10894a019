package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/cadence/internal/shared/application"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// EndSessionCommand contains the data needed to end a focus session.
type EndSessionCommand struct {
	SessionID     uuid.UUID
	UserID        uuid.UUID
	ActualMinutes int
	Completed     bool
}

// EndSessionHandler handles the EndSessionCommand.
type EndSessionHandler struct {
	sessionRepo domain.SessionRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
}

// NewEndSessionHandler creates a new EndSessionHandler.
func NewEndSessionHandler(sessionRepo domain.SessionRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *EndSessionHandler {
	return &EndSessionHandler{
		sessionRepo: sessionRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
	}
}

// Handle executes the EndSessionCommand.
func (h *EndSessionHandler) Handle(ctx context.Context, cmd EndSessionCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		s, err := h.sessionRepo.FindByID(txCtx, cmd.SessionID)
		if err != nil {
			return err
		}

		if s.UserID() != cmd.UserID {
			return domain.ErrSessionNotOwned
		}

		if err := s.End(cmd.ActualMinutes, cmd.Completed); err != nil {
			return err
		}

		if err := h.sessionRepo.Save(txCtx, s); err != nil {
			return err
		}

		return stageEvents(txCtx, h.outboxRepo, s.DomainEvents(), cmd.UserID)
	})
}
