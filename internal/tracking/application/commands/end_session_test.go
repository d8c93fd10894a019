package commands

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEndSessionHandler_Handle(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	t.Run("successfully ends completed session", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewEndSessionHandler(sessionRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		session, _ := domain.StartSession(userID, domain.SessionTypeWork, 25)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		sessionRepo.On("FindByID", txCtx, sessionID).Return(session, nil)
		sessionRepo.On("Save", txCtx, mock.AnythingOfType("*domain.FocusSession")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		err := handler.Handle(ctx, EndSessionCommand{
			SessionID:     sessionID,
			UserID:        userID,
			ActualMinutes: 25,
			Completed:     true,
		})

		require.NoError(t, err)
		assert.True(t, session.IsEnded())
		assert.True(t, session.Completed())
		assert.Equal(t, 25, session.ActualMinutes())

		uow.AssertExpectations(t)
		sessionRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("interrupted session keeps completed false", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewEndSessionHandler(sessionRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		session, _ := domain.StartSession(userID, domain.SessionTypeWork, 25)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		sessionRepo.On("FindByID", txCtx, sessionID).Return(session, nil)
		sessionRepo.On("Save", txCtx, mock.AnythingOfType("*domain.FocusSession")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		err := handler.Handle(ctx, EndSessionCommand{
			SessionID:     sessionID,
			UserID:        userID,
			ActualMinutes: 12,
			Completed:     false,
		})

		require.NoError(t, err)
		assert.False(t, session.Completed())
		assert.Equal(t, 12, session.ActualMinutes())
	})

	t.Run("fails when session already ended", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewEndSessionHandler(sessionRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		session, _ := domain.StartSession(userID, domain.SessionTypeWork, 25)
		_ = session.End(25, true)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		sessionRepo.On("FindByID", txCtx, sessionID).Return(session, nil)

		err := handler.Handle(ctx, EndSessionCommand{
			SessionID: sessionID,
			UserID:    userID,
			Completed: true,
		})

		assert.ErrorIs(t, err, domain.ErrSessionAlreadyEnded)
	})

	t.Run("fails when user does not own session", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewEndSessionHandler(sessionRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		session, _ := domain.StartSession(uuid.New(), domain.SessionTypeWork, 25)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		sessionRepo.On("FindByID", txCtx, sessionID).Return(session, nil)

		err := handler.Handle(ctx, EndSessionCommand{
			SessionID: sessionID,
			UserID:    userID,
			Completed: true,
		})

		assert.ErrorIs(t, err, domain.ErrSessionNotOwned)
	})
}

func TestStartSessionHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("successfully starts session", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		uow := new(mockUnitOfWork)
		handler := NewStartSessionHandler(sessionRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		sessionRepo.On("Save", txCtx, mock.AnythingOfType("*domain.FocusSession")).Return(nil)

		result, err := handler.Handle(ctx, StartSessionCommand{
			UserID:         userID,
			SessionType:    domain.SessionTypeWork,
			PlannedMinutes: 25,
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEqual(t, uuid.Nil, result.SessionID)
	})

	t.Run("fails with non-positive planned minutes", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		uow := new(mockUnitOfWork)
		handler := NewStartSessionHandler(sessionRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)

		_, err := handler.Handle(ctx, StartSessionCommand{
			UserID:         userID,
			SessionType:    domain.SessionTypeWork,
			PlannedMinutes: 0,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidPlannedMinutes)
	})
}
