// Package focus contains the pomodoro session CLI commands.
package focus

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/internal/tracking/application/commands"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/spf13/cobra"
)

var (
	sessionType    string
	plannedMinutes int
	actualMinutes  int
	interrupted    bool
)

// Cmd is the focus command group
var Cmd = &cobra.Command{
	Use:   "focus",
	Short: "Manage focus sessions",
	Long: `Track pomodoro-style focus and break sessions.

Sessions feed your daily analytics: completed work sessions count
as pomodoros and focus minutes, interrupted ones raise your
burnout risk.

Examples:
  cadence focus start --minutes 25
  cadence focus start --type break --minutes 5
  cadence focus end
  cadence focus end --interrupted --minutes 12`,
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a focus session",
	Long: `Start a new work or break session.

Examples:
  cadence focus start --minutes 25
  cadence focus start --type break --minutes 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.StartSessionHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		startCmd := commands.StartSessionCommand{
			UserID:         app.CurrentUserID,
			SessionType:    domain.ParseSessionType(sessionType),
			PlannedMinutes: plannedMinutes,
		}

		result, err := app.StartSessionHandler.Handle(cmd.Context(), startCmd)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}

		fmt.Printf("Session started: %s\n", result.SessionID.String()[:8])
		fmt.Printf("  type: %s\n", sessionType)
		fmt.Printf("  planned: %dm\n", plannedMinutes)
		fmt.Println("End it with: cadence focus end")
		return nil
	},
}

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active session",
	Long: `End the currently active session.

Without flags the session counts as completed at its planned
duration. Use --interrupted when you stopped early; pass
--minutes to record the actual time worked.

Examples:
  cadence focus end
  cadence focus end --interrupted --minutes 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.EndSessionHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		active, err := app.SessionRepo.FindActive(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return fmt.Errorf("no active session: %w", err)
		}

		minutes := actualMinutes
		if minutes <= 0 {
			if interrupted {
				minutes = int(time.Since(active.StartedAt()).Minutes())
			} else {
				minutes = active.PlannedMinutes()
			}
		}

		endCmd := commands.EndSessionCommand{
			SessionID:     active.ID(),
			UserID:        app.CurrentUserID,
			ActualMinutes: minutes,
			Completed:     !interrupted,
		}

		if err := app.EndSessionHandler.Handle(cmd.Context(), endCmd); err != nil {
			return fmt.Errorf("failed to end session: %w", err)
		}

		if interrupted {
			fmt.Printf("Session interrupted after %dm.\n", minutes)
		} else {
			fmt.Printf("Session completed: %dm of %s.\n", minutes, active.Type())
		}
		return nil
	},
}

func init() {
	startCmd.Flags().StringVarP(&sessionType, "type", "t", "work", "session type (work, break)")
	startCmd.Flags().IntVarP(&plannedMinutes, "minutes", "m", 25, "planned duration in minutes")

	endCmd.Flags().BoolVar(&interrupted, "interrupted", false, "the session was cut short")
	endCmd.Flags().IntVarP(&actualMinutes, "minutes", "m", 0, "actual minutes worked")

	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(endCmd)
}
