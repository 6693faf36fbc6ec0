// Command dispatch runs a single alert email dispatch and exits.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"weathertracker.app/internal/adapters/infrastructure"
	"weathertracker.app/internal/app"
	"weathertracker.app/internal/config"
	"weathertracker.app/internal/core/notification"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	// The one-shot run must not start the periodic triggers.
	cfg.Scheduler.Enabled = false

	logger, logCloser, err := infrastructure.NewSlogLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		return 1
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(ctx, cfg, logger)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	result, err := application.Dispatcher().RunDispatchOnce(notification.WithTrigger(ctx, notification.TriggerManual))
	if err != nil {
		slog.Error("Dispatch failed", "error", err)
		return 1
	}

	slog.Info("Dispatch finished", "run_id", result.RunID, "sent", result.Sent, "failed", result.Failed)
	if result.Failed > 0 {
		return 2
	}
	return 0
}
