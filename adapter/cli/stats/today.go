package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "View today's metrics",
	Long: `Display the computed metrics for today, or another day with --date.

Metrics are computed on demand from your tracked activity.

Examples:
  cadence stats today
  cadence stats today --date 2026-08-30`,
	Aliases: []string{"day"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetDailyMetricsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		date := time.Now()
		if todayDate != "" {
			parsed, err := time.Parse("2006-01-02", todayDate)
			if err != nil {
				return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
			}
			date = parsed
		}

		metrics, err := app.GetDailyMetricsHandler.Handle(cmd.Context(), queries.GetDailyMetricsQuery{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to get daily metrics: %w", err)
		}

		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("  DAILY METRICS  %s\n", metrics.Date.Format("Mon, Jan 2 2006"))
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println()
		fmt.Printf("  Productivity Score: %.0f/100 [%s]\n",
			metrics.ProductivityScore, progressBar(metrics.ProductivityScore, 20))
		fmt.Printf("  Focus Score:        %.0f/100 [%s]\n",
			metrics.FocusScore, progressBar(metrics.FocusScore, 20))
		fmt.Printf("  Burnout Risk:       %.0f/100 [%s]\n",
			metrics.BurnoutRiskScore, progressBar(metrics.BurnoutRiskScore, 20))
		fmt.Println()
		fmt.Printf("  Tasks: %d created | %d completed | %d same-day\n",
			metrics.TasksCreated, metrics.TasksCompleted, metrics.TasksCompletedSameDay)
		fmt.Printf("  Completion Rate: %.1f%%\n", metrics.CompletionRate)
		fmt.Println()
		fmt.Printf("  Focus: %dm in %d pomodoros | %dm breaks\n",
			metrics.FocusMinutes, metrics.PomodorosCompleted, metrics.BreakMinutes)
		if metrics.InterruptedSessions > 0 {
			fmt.Printf("  Interrupted Sessions: %d\n", metrics.InterruptedSessions)
		}
		if metrics.LateNightSessions > 0 {
			fmt.Printf("  Late Night Sessions: %d\n", metrics.LateNightSessions)
		}
		if metrics.OverworkMinutes > 0 {
			fmt.Printf("  Overwork: %dm beyond the healthy ceiling\n", metrics.OverworkMinutes)
		}
		if metrics.ConsecutiveWorkDays > 0 {
			fmt.Printf("  Consecutive Work Days: %d\n", metrics.ConsecutiveWorkDays)
		}

		q := metrics.Quadrants
		if q.UrgentImportant+q.UrgentNotImportant+q.NotUrgentImportant+q.NotUrgentNotImportant > 0 {
			fmt.Println()
			fmt.Println("  OPEN TASKS BY QUADRANT")
			fmt.Println(strings.Repeat("-", 60))
			fmt.Printf("    do first: %d | delegate: %d | schedule: %d | eliminate: %d\n",
				q.UrgentImportant, q.UrgentNotImportant, q.NotUrgentImportant, q.NotUrgentNotImportant)
		}

		fmt.Println()
		return nil
	},
}

func init() {
	todayCmd.Flags().StringVarP(&todayDate, "date", "d", "", "day to show (YYYY-MM-DD)")
}
