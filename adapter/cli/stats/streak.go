package stats

import (
	"fmt"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "View your productive-day streak",
	Long: `Display your current and longest streak of productive days.

A day is productive with at least 30 focus minutes or one
completed task.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.StreakRepo == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		state, err := app.StreakRepo.Get(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return fmt.Errorf("failed to get streak: %w", err)
		}

		fmt.Println()
		fmt.Printf("  Current Streak: %d days\n", state.Current)
		fmt.Printf("  Longest Streak: %d days\n", state.Longest)
		if state.LastActivityDate != nil {
			fmt.Printf("  Last Productive Day: %s\n", state.LastActivityDate.Format("Mon, Jan 2"))
		}
		fmt.Println()
		return nil
	},
}
