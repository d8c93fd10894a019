// Package goal contains the goal CLI commands.
package goal

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/goals/application/commands"
	"github.com/felixgeelhaar/cadence/internal/goals/application/queries"
	"github.com/felixgeelhaar/cadence/internal/goals/domain"
	"github.com/spf13/cobra"
)

var (
	goalPeriod       string
	goalTasks        int
	goalPomodoros    int
	goalFocusMinutes int
	goalStart        string
	goalShowAll      bool
)

// Cmd is the goal command group
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage productivity goals",
	Long: `Create and track productivity goals.

Goals set targets for completed tasks, pomodoros, and focus
minutes over a daily, weekly, or monthly window. Progress
advances automatically as you complete work.

Examples:
  cadence goal create "Ship the feature" --tasks 10 --period weekly
  cadence goal create "Deep work week" --focus-minutes 600 --pomodoros 20
  cadence goal list`,
}

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a productivity goal",
	Long: `Create a goal with at least one target.

The goal window starts today (or --start) and spans one day,
week, or month depending on --period.

Examples:
  cadence goal create "Daily five" --tasks 5 --period daily
  cadence goal create "Focus month" --focus-minutes 2400 --period monthly`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateGoalHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		periodType, err := domain.ParsePeriodType(goalPeriod)
		if err != nil {
			return err
		}

		start := time.Now()
		if goalStart != "" {
			parsed, err := time.Parse("2006-01-02", goalStart)
			if err != nil {
				return fmt.Errorf("invalid start date (use YYYY-MM-DD): %w", err)
			}
			start = parsed
		}
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

		var end time.Time
		switch periodType {
		case domain.PeriodDaily:
			end = start
		case domain.PeriodWeekly:
			end = start.AddDate(0, 0, 6)
		case domain.PeriodMonthly:
			end = start.AddDate(0, 1, -1)
		}

		result, err := app.CreateGoalHandler.Handle(cmd.Context(), commands.CreateGoalCommand{
			UserID:             app.CurrentUserID,
			Title:              args[0],
			PeriodType:         periodType,
			TargetTasks:        goalTasks,
			TargetPomodoros:    goalPomodoros,
			TargetFocusMinutes: goalFocusMinutes,
			StartDate:          start,
			EndDate:            end,
		})
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		fmt.Printf("Goal created: %s\n", result.GoalID.String()[:8])
		fmt.Printf("  title: %s\n", args[0])
		fmt.Printf("  window: %s to %s\n", start.Format("Jan 2"), end.Format("Jan 2 2006"))
		fmt.Println("Track progress with: cadence goal list")
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	Long:  `Display your active goals with progress. Use --all to include completed ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListGoalsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		goals, err := app.ListGoalsHandler.Handle(cmd.Context(), queries.ListGoalsQuery{
			UserID:     app.CurrentUserID,
			ActiveOnly: !goalShowAll,
		})
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}

		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("  GOALS")
		fmt.Println(strings.Repeat("=", 60))

		if len(goals) == 0 {
			fmt.Println()
			fmt.Println("  No goals.")
			fmt.Println("  Create one with: cadence goal create")
			fmt.Println()
			return nil
		}

		for _, g := range goals {
			fmt.Println()
			fmt.Printf("  %s (%s)\n", g.Title, g.PeriodType)
			fmt.Printf("  Progress: [%s] %.0f%%\n", progressBar(g.ProgressPercentage, 20), g.ProgressPercentage)
			if g.TargetTasks > 0 {
				fmt.Printf("    tasks: %d/%d\n", g.CurrentTasks, g.TargetTasks)
			}
			if g.TargetPomodoros > 0 {
				fmt.Printf("    pomodoros: %d/%d\n", g.CurrentPomodoros, g.TargetPomodoros)
			}
			if g.TargetFocusMinutes > 0 {
				fmt.Printf("    focus: %dm/%dm\n", g.CurrentFocusMinutes, g.TargetFocusMinutes)
			}
			if g.Completed && g.CompletedDate != nil {
				fmt.Printf("    completed on %s\n", g.CompletedDate.Format("Mon, Jan 2"))
			} else {
				fmt.Printf("    window: %s to %s\n", g.StartDate.Format("Jan 2"), g.EndDate.Format("Jan 2"))
			}
		}

		fmt.Println()
		return nil
	},
}

func progressBar(pct float64, width int) string {
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return strings.Repeat("=", filled) + strings.Repeat("-", width-filled)
}

func init() {
	createCmd.Flags().StringVarP(&goalPeriod, "period", "p", "weekly", "period type (daily, weekly, monthly)")
	createCmd.Flags().IntVar(&goalTasks, "tasks", 0, "target completed tasks")
	createCmd.Flags().IntVar(&goalPomodoros, "pomodoros", 0, "target completed pomodoros")
	createCmd.Flags().IntVar(&goalFocusMinutes, "focus-minutes", 0, "target focus minutes")
	createCmd.Flags().StringVar(&goalStart, "start", "", "start date (YYYY-MM-DD), defaults to today")

	listCmd.Flags().BoolVarP(&goalShowAll, "all", "a", false, "include completed goals")

	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
}
