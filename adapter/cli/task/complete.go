package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/tracking/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Complete a task",
	Long: `Mark a task as completed. Accepts a full task ID or an
unambiguous prefix.

Examples:
  cadence task complete 4f8a2c1d
  cadence task complete 4f8a2c1d-90ab-4cde-8123-456789abcdef`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := resolveTaskID(cmd, args[0])
		if err != nil {
			return err
		}

		completeCmd := commands.CompleteTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		}

		if err := app.CompleteTaskHandler.Handle(cmd.Context(), completeCmd); err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Printf("Task completed: %s\n", taskID.String()[:8])
		return nil
	},
}

// resolveTaskID accepts a full UUID or an ID prefix.
func resolveTaskID(cmd *cobra.Command, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	app := cli.GetApp()
	tasks, err := app.TaskRepo.ListByUser(cmd.Context(), app.CurrentUserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up task: %w", err)
	}

	var match uuid.UUID
	for _, t := range tasks {
		if strings.HasPrefix(t.ID().String(), arg) {
			if match != uuid.Nil {
				return uuid.Nil, fmt.Errorf("task id prefix %q is ambiguous", arg)
			}
			match = t.ID()
		}
	}
	if match == uuid.Nil {
		return uuid.Nil, fmt.Errorf("no task matching %q", arg)
	}
	return match, nil
}
