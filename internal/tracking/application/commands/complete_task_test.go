package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("successfully completes task", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		existingTask, _ := domain.NewTask(userID, "Test task", false, true)
		existingTask.ClearDomainEvents()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, taskID).Return(existingTask, nil)
		taskRepo.On("Save", txCtx, mock.AnythingOfType("*domain.Task")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID, UserID: userID})

		require.NoError(t, err)
		assert.True(t, existingTask.IsCompleted())
		require.NotNil(t, existingTask.CompletedAt())

		uow.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("fails when task not found", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, taskID).Return(nil, domain.ErrTaskNotFound)

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID, UserID: userID})

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)

		uow.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
	})

	t.Run("fails when user does not own task", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		existingTask, _ := domain.NewTask(uuid.New(), "Test task", false, false)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, taskID).Return(existingTask, nil)

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID, UserID: userID})

		assert.ErrorIs(t, err, domain.ErrTaskNotOwned)

		uow.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
	})

	t.Run("fails when task already completed", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		existingTask, _ := domain.NewTask(userID, "Test task", false, false)
		_ = existingTask.Complete()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, taskID).Return(existingTask, nil)

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID, UserID: userID})

		assert.ErrorIs(t, err, domain.ErrTaskAlreadyComplete)

		uow.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
	})

	t.Run("fails when outbox save fails", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxContext(ctx)

		existingTask, _ := domain.NewTask(userID, "Test task", false, false)
		existingTask.ClearDomainEvents()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, taskID).Return(existingTask, nil)
		taskRepo.On("Save", txCtx, mock.AnythingOfType("*domain.Task")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(errors.New("outbox error"))

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID, UserID: userID})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "outbox error")

		uow.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})
}
