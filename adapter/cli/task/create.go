package task

import (
	"fmt"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/tracking/application/commands"
	"github.com/spf13/cobra"
)

var (
	description string
	urgent      bool
	important   bool
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a new task with a title and optional Eisenhower quadrant.

Examples:
  cadence task create "Complete project report"
  cadence task create "Fix production bug" --urgent --important
  cadence task create "Read paper" --important`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		title := args[0]

		createCmd := commands.CreateTaskCommand{
			UserID:      app.CurrentUserID,
			Title:       title,
			Description: description,
			Urgent:      urgent,
			Important:   important,
		}

		ctx := cmd.Context()
		result, err := app.CreateTaskHandler.Handle(ctx, createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("Task created: %s\n", result.TaskID)
		fmt.Printf("  title: %s\n", title)
		if urgent || important {
			fmt.Printf("  quadrant: urgent=%t important=%t\n", urgent, important)
		}

		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&description, "description", "", "task description")
	createCmd.Flags().BoolVarP(&urgent, "urgent", "u", false, "mark the task urgent")
	createCmd.Flags().BoolVarP(&important, "important", "i", false, "mark the task important")
}
