package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/cadence/adapter/cli"
	"github.com/felixgeelhaar/cadence/adapter/cli/badge"
	"github.com/felixgeelhaar/cadence/adapter/cli/focus"
	"github.com/felixgeelhaar/cadence/adapter/cli/goal"
	"github.com/felixgeelhaar/cadence/adapter/cli/stats"
	"github.com/felixgeelhaar/cadence/adapter/cli/task"
	"github.com/felixgeelhaar/cadence/internal/app"
	"github.com/felixgeelhaar/cadence/pkg/config"
	"github.com/google/uuid"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// The in-process outbox processor delivers staged events (task and
	// session completions) to the goal, badge, and cache consumers.
	if cfg.OutboxProcessorEnabled {
		if err := container.OutboxProcessor.Start(ctx); err != nil {
			logger.Error("failed to start outbox processor", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("outbox processor disabled in CLI")
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		logger.Error("invalid CADENCE_USER_ID", "error", err)
		os.Exit(1)
	}

	cliApp := &cli.App{
		CreateTaskHandler:          container.CreateTaskHandler,
		CompleteTaskHandler:        container.CompleteTaskHandler,
		StartSessionHandler:        container.StartSessionHandler,
		EndSessionHandler:          container.EndSessionHandler,
		TaskRepo:                   container.TaskRepo,
		SessionRepo:                container.SessionRepo,
		CreateGoalHandler:          container.CreateGoalHandler,
		ListGoalsHandler:           container.ListGoalsHandler,
		ComputeDailyMetricsHandler: container.ComputeDailyMetricsHandler,
		GetDailyMetricsHandler:     container.GetDailyMetricsHandler,
		GetPeriodSummaryHandler:    container.GetPeriodSummaryHandler,
		ComparePeriodsHandler:      container.ComparePeriodsHandler,
		StreakRepo:                 container.StreakRepo,
		BadgeRepo:                  container.BadgeRepo,
	}
	cliApp.SetCurrentUserID(userID)
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(task.Cmd)
	cli.AddCommand(focus.Cmd)
	cli.AddCommand(stats.Cmd)
	cli.AddCommand(goal.Cmd)
	cli.AddCommand(badge.Cmd)

	// Execute CLI
	cli.Execute()

	// A one-shot invocation can finish before the processor's next poll.
	// Drain whatever the command staged so goals and badges update before
	// the process exits.
	if cfg.OutboxProcessorEnabled {
		if err := container.OutboxProcessor.Drain(ctx); err != nil {
			logger.Warn("failed to drain outbox", "error", err)
		}
	}
}
