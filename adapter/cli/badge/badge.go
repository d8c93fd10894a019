// Package badge contains the badge CLI commands.
package badge

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/badges/domain"
	"github.com/spf13/cobra"
)

// Cmd is the badge command group
var Cmd = &cobra.Command{
	Use:   "badge",
	Short: "View earned badges",
	Long: `Display the badges you have earned and the catalog of badges
still ahead of you.

Badges are awarded automatically when your lifetime counts of
completed tasks, pomodoros, and goals cross their thresholds.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List badges",
	Long:  `Display earned badges with award dates, and locked ones with their requirement.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.BadgeRepo == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		badges, err := app.BadgeRepo.ListByUser(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return fmt.Errorf("failed to list badges: %w", err)
		}

		earned := make(map[string]*domain.Badge, len(badges))
		for _, b := range badges {
			earned[b.BadgeType] = b
		}

		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("  BADGES  %d of %d earned\n", len(earned), len(domain.Catalog))
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println()

		for _, def := range domain.Catalog {
			if b, ok := earned[def.Type]; ok {
				fmt.Printf("  [x] %-20s earned %s\n", def.Title, b.AwardedAt.Format("Jan 2, 2006"))
			} else {
				fmt.Printf("  [ ] %-20s requires %d %s completions\n", def.Title, def.Requirement, def.Category)
			}
		}

		fmt.Println()
		return nil
	},
}

func init() {
	Cmd.AddCommand(listCmd)
}
