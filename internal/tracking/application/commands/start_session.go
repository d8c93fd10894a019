package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/cadence/internal/shared/application"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// StartSessionCommand contains the data needed to start a focus session.
type StartSessionCommand struct {
	UserID         uuid.UUID
	SessionType    domain.SessionType
	PlannedMinutes int
}

// StartSessionResult contains the result of starting a session.
type StartSessionResult struct {
	SessionID uuid.UUID
}

// StartSessionHandler handles the StartSessionCommand.
type StartSessionHandler struct {
	sessionRepo domain.SessionRepository
	uow         sharedApplication.UnitOfWork
}

// NewStartSessionHandler creates a new StartSessionHandler.
func NewStartSessionHandler(sessionRepo domain.SessionRepository, uow sharedApplication.UnitOfWork) *StartSessionHandler {
	return &StartSessionHandler{
		sessionRepo: sessionRepo,
		uow:         uow,
	}
}

// Handle executes the StartSessionCommand.
func (h *StartSessionHandler) Handle(ctx context.Context, cmd StartSessionCommand) (*StartSessionResult, error) {
	var result *StartSessionResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		s, err := domain.StartSession(cmd.UserID, cmd.SessionType, cmd.PlannedMinutes)
		if err != nil {
			return err
		}

		if err := h.sessionRepo.Save(txCtx, s); err != nil {
			return err
		}

		result = &StartSessionResult{SessionID: s.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
