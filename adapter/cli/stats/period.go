package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	"github.com/spf13/cobra"
)

var (
	periodDays int
	periodFrom string
	periodTo   string
)

// periodRange resolves the --from/--to or --days flags into a date window
// ending today.
func periodRange(days int, from, to string) (time.Time, time.Time, error) {
	if from != "" || to != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date (use YYYY-MM-DD): %w", err)
		}
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date (use YYYY-MM-DD): %w", err)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("--to must not precede --from")
		}
		return start, end, nil
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))
	return start, end, nil
}

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Summarize a date range",
	Long: `Aggregate your daily metrics over a period.

Counts are summed, scores are averaged over the days that have
data, and the best day is the one with the highest productivity
score.

Examples:
  cadence stats period --days 7
  cadence stats period --from 2026-08-01 --to 2026-08-31`,
	Aliases: []string{"week"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetPeriodSummaryHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		start, end, err := periodRange(periodDays, periodFrom, periodTo)
		if err != nil {
			return err
		}

		summary, err := app.GetPeriodSummaryHandler.Handle(cmd.Context(), queries.GetPeriodSummaryQuery{
			UserID:    app.CurrentUserID,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			return fmt.Errorf("failed to get period summary: %w", err)
		}

		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("  PERIOD SUMMARY  %s to %s\n",
			summary.StartDate.Format("Jan 2"), summary.EndDate.Format("Jan 2 2006"))
		fmt.Println(strings.Repeat("=", 60))

		if summary.Days == 0 {
			fmt.Println()
			fmt.Println("  No activity recorded in this period.")
			fmt.Println()
			return nil
		}

		fmt.Println()
		fmt.Printf("  Days with data: %d (%d productive)\n", summary.Days, summary.ProductiveDays)
		fmt.Println()
		fmt.Printf("  Tasks: %d created | %d completed\n", summary.TasksCreated, summary.TasksCompleted)
		fmt.Printf("  Focus: %dm in %d pomodoros | %dm breaks\n",
			summary.FocusMinutes, summary.PomodorosCompleted, summary.BreakMinutes)
		fmt.Println()
		fmt.Printf("  Avg Productivity Score: %.1f\n", summary.AvgProductivityScore)
		fmt.Printf("  Avg Focus Score:        %.1f\n", summary.AvgFocusScore)
		fmt.Printf("  Avg Completion Rate:    %.1f%%\n", summary.AvgCompletionRate)
		fmt.Printf("  Avg Burnout Risk:       %.1f\n", summary.AvgBurnoutRiskScore)
		if summary.BestDay != nil {
			fmt.Println()
			fmt.Printf("  Best Day: %s\n", summary.BestDay.Format("Mon, Jan 2"))
		}

		fmt.Println()
		return nil
	},
}

func init() {
	periodCmd.Flags().IntVarP(&periodDays, "days", "d", 7, "number of days ending today")
	periodCmd.Flags().StringVar(&periodFrom, "from", "", "start date (YYYY-MM-DD)")
	periodCmd.Flags().StringVar(&periodTo, "to", "", "end date (YYYY-MM-DD)")
}
