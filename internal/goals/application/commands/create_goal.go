// Package commands contains the write-side handlers of the goals context.
package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cadence/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/cadence/internal/shared/application"
	"github.com/google/uuid"
)

// CreateGoalCommand contains the data needed to create a goal.
type CreateGoalCommand struct {
	UserID             uuid.UUID
	Title              string
	PeriodType         domain.PeriodType
	TargetTasks        int
	TargetPomodoros    int
	TargetFocusMinutes int
	StartDate          time.Time
	EndDate            time.Time
}

// CreateGoalResult is returned after a goal is created.
type CreateGoalResult struct {
	GoalID uuid.UUID
}

// CreateGoalHandler handles the CreateGoalCommand.
type CreateGoalHandler struct {
	goalRepo domain.Repository
	uow      sharedApplication.UnitOfWork
}

// NewCreateGoalHandler creates a new CreateGoalHandler.
func NewCreateGoalHandler(goalRepo domain.Repository, uow sharedApplication.UnitOfWork) *CreateGoalHandler {
	return &CreateGoalHandler{
		goalRepo: goalRepo,
		uow:      uow,
	}
}

// Handle executes the CreateGoalCommand.
func (h *CreateGoalHandler) Handle(ctx context.Context, cmd CreateGoalCommand) (*CreateGoalResult, error) {
	goal, err := domain.NewGoal(cmd.UserID, cmd.Title, cmd.PeriodType,
		cmd.TargetTasks, cmd.TargetPomodoros, cmd.TargetFocusMinutes,
		cmd.StartDate, cmd.EndDate)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.goalRepo.Save(txCtx, goal)
	})
	if err != nil {
		return nil, err
	}

	return &CreateGoalResult{GoalID: goal.ID()}, nil
}
