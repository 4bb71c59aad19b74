package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evgraf/culturebot/internal/app"
	"github.com/evgraf/culturebot/internal/config"
	"github.com/evgraf/culturebot/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot daemon",
	Long: `Run the CultureBot daemon that fetches a poem, matches it to an
artwork, and delivers the pairing on a schedule.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	slog.Info("starting CultureBot daemon",
		"delivery_interval", cfg.DeliveryInterval,
		"channels", len(a.Deliverers),
	)

	sched := scheduler.New(scheduler.Config{
		Runner:   a,
		Interval: cfg.DeliveryInterval,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- sched.Run(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("scheduler error: %w", err)
		}
	}

	slog.Info("shutting down...")
	cancel()

	return nil
}
