package stats

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/spf13/cobra"
)

var (
	compareDays int
	compareFrom string
	compareTo   string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two periods",
	Long: `Compare the current period against the window of the same length
immediately before it.

Changes within 5% count as stable.

Examples:
  cadence stats compare --days 7
  cadence stats compare --from 2026-08-01 --to 2026-08-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ComparePeriodsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		start, end, err := periodRange(compareDays, compareFrom, compareTo)
		if err != nil {
			return err
		}

		comparison, err := app.ComparePeriodsHandler.Handle(cmd.Context(), queries.ComparePeriodsQuery{
			UserID:    app.CurrentUserID,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			return fmt.Errorf("failed to compare periods: %w", err)
		}

		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("  PERIOD COMPARISON  %s-%s vs %s-%s\n",
			comparison.Current.StartDate.Format("Jan 2"),
			comparison.Current.EndDate.Format("Jan 2"),
			comparison.Previous.StartDate.Format("Jan 2"),
			comparison.Previous.EndDate.Format("Jan 2"))
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println()

		printChange("Tasks Completed", comparison.TasksCompleted, "%.0f")
		printChange("Focus Minutes", comparison.FocusMinutes, "%.0f")
		printChange("Pomodoros", comparison.PomodorosCompleted, "%.0f")
		printChange("Productivity Score", comparison.ProductivityScore, "%.1f")
		printChange("Focus Score", comparison.FocusScore, "%.1f")
		printChange("Completion Rate", comparison.CompletionRate, "%.1f")
		printChange("Burnout Risk", comparison.BurnoutRiskScore, "%.1f")

		fmt.Println()
		return nil
	},
}

func printChange(label string, change domain.MetricChange, valueFormat string) {
	current := fmt.Sprintf(valueFormat, change.Current)
	previous := fmt.Sprintf(valueFormat, change.Previous)
	fmt.Printf("  %-20s %8s -> %-8s %s %+.1f%%\n",
		label, previous, current, trendArrow(change.Trend), change.Change)
}

func init() {
	compareCmd.Flags().IntVarP(&compareDays, "days", "d", 7, "number of days ending today")
	compareCmd.Flags().StringVar(&compareFrom, "from", "", "start date (YYYY-MM-DD)")
	compareCmd.Flags().StringVar(&compareTo, "to", "", "end date (YYYY-MM-DD)")
}
