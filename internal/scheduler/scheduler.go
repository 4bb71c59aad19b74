// Package scheduler runs the daily delivery loop.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Runner executes one delivery cycle.
type Runner interface {
	RunDaily(ctx context.Context) error
}

// Scheduler triggers delivery cycles on a fixed interval.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	health   *Health

	lastDelivery time.Time
}

// Config holds scheduler configuration.
type Config struct {
	Runner Runner
	// Interval between delivery cycles. Zero means daily.
	Interval time.Duration
}

// New creates a new scheduler.
func New(cfg Config) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		runner:   cfg.Runner,
		interval: interval,
		health:   NewHealth(),
	}
}

// Run starts the scheduler main loop. The first cycle runs immediately;
// the loop exits when the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("starting scheduler", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	slog.Debug("running delivery cycle")

	if err := s.runner.RunDaily(ctx); err != nil {
		s.health.SetUnhealthy("delivery", err)
		slog.Error("delivery cycle failed", "error", err)
		return
	}

	s.lastDelivery = time.Now()
	s.health.SetHealthy("delivery", "pairing delivered")
	slog.Info("delivery cycle complete")
}

// Health returns the health tracker.
func (s *Scheduler) Health() *Health {
	return s.health
}
