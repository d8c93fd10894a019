package task

import (
	"fmt"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/spf13/cobra"
)

var showCompleted bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `Display your tasks with status and Eisenhower quadrant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.TaskRepo == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		tasks, err := app.TaskRepo.ListByUser(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		shown := 0
		for _, t := range tasks {
			if t.IsArchived() {
				continue
			}
			if t.IsCompleted() && !showCompleted {
				continue
			}

			quadrant := ""
			switch {
			case t.Urgent() && t.Important():
				quadrant = " [do first]"
			case t.Urgent():
				quadrant = " [delegate]"
			case t.Important():
				quadrant = " [schedule]"
			}

			fmt.Printf("%s  %-10s %s%s\n", t.ID().String()[:8], t.Status(), t.Title(), quadrant)
			shown++
		}

		if shown == 0 {
			fmt.Println("No tasks. Create one with: cadence task create \"...\"")
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&showCompleted, "all", "a", false, "include completed tasks")
}
