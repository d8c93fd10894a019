// Package stats contains the analytics CLI commands.
package stats

import (
	"strings"

	"github.com/spf13/cobra"
)

// Cmd is the stats command group
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Productivity analytics",
	Long: `View your daily metrics, period summaries, streaks, and
period-over-period trends.

Examples:
  cadence stats today            # Today's scores
  cadence stats period --days 7  # Last week's summary
  cadence stats compare --days 7 # This week vs last week
  cadence stats streak           # Current and longest streak`,
}

func init() {
	Cmd.AddCommand(todayCmd)
	Cmd.AddCommand(periodCmd)
	Cmd.AddCommand(compareCmd)
	Cmd.AddCommand(streakCmd)
}

func progressBar(pct float64, width int) string {
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	filled := int(pct / 100 * float64(width))
	return strings.Repeat("=", filled) + strings.Repeat("-", width-filled)
}

func trendArrow(trend string) string {
	switch trend {
	case "up":
		return "^"
	case "down":
		return "v"
	default:
		return "="
	}
}
