// Package costguard enforces a daily USD budget for paid API calls.
// Spend is persisted through a Ledger so the budget survives restarts
// and is shared across processes.
package costguard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultDailyLimitUSD applies when no limit is configured.
const DefaultDailyLimitUSD = 2.0

// softLimitFraction triggers a one-shot warning as spend approaches
// the limit.
const softLimitFraction = 0.8

// Ledger persists per-day spend totals.
type Ledger interface {
	// SpendOn returns the recorded spend for the given day (UTC date,
	// formatted 2006-01-02). Missing days report zero.
	SpendOn(ctx context.Context, day string) (float64, error)
	// AddSpend adds usd to the given day's total.
	AddSpend(ctx context.Context, day string, usd float64) error
}

// Guard gates paid calls against a daily budget.
type Guard struct {
	ledger Ledger
	limit  float64
	logger *slog.Logger
	now    func() time.Time

	mu         sync.Mutex
	softWarned string // day the soft-limit warning last fired
}

// Config configures a Guard.
type Config struct {
	Ledger        Ledger
	DailyLimitUSD float64
	Logger        *slog.Logger
}

// New creates a Guard. A zero or negative limit falls back to
// DefaultDailyLimitUSD.
func New(cfg Config) (*Guard, error) {
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("costguard: ledger is required")
	}
	if cfg.DailyLimitUSD <= 0 {
		cfg.DailyLimitUSD = DefaultDailyLimitUSD
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Guard{
		ledger: cfg.Ledger,
		limit:  cfg.DailyLimitUSD,
		logger: cfg.Logger,
		now:    time.Now,
	}, nil
}

// Allow reports whether another paid call fits in today's budget.
// A false return is not an error: callers degrade to their free path.
func (g *Guard) Allow(ctx context.Context) (bool, error) {
	day := g.day()
	spend, err := g.ledger.SpendOn(ctx, day)
	if err != nil {
		return false, fmt.Errorf("read daily spend: %w", err)
	}
	if spend >= g.limit {
		g.logger.Warn("daily budget exhausted",
			"spend_usd", spend, "limit_usd", g.limit)
		return false, nil
	}
	if spend >= softLimitFraction*g.limit {
		g.warnSoftLimit(day, spend)
	}
	return true, nil
}

// Record adds the cost of a completed call to today's total.
func (g *Guard) Record(ctx context.Context, usd float64) error {
	if usd <= 0 {
		return nil
	}
	day := g.day()
	if err := g.ledger.AddSpend(ctx, day, usd); err != nil {
		return fmt.Errorf("record spend: %w", err)
	}
	g.logger.Debug("spend recorded", "cost_usd", usd, "day", day)
	return nil
}

// Remaining returns today's unused budget, never negative.
func (g *Guard) Remaining(ctx context.Context) (float64, error) {
	spend, err := g.ledger.SpendOn(ctx, g.day())
	if err != nil {
		return 0, fmt.Errorf("read daily spend: %w", err)
	}
	if spend >= g.limit {
		return 0, nil
	}
	return g.limit - spend, nil
}

func (g *Guard) day() string {
	return g.now().UTC().Format("2006-01-02")
}

func (g *Guard) warnSoftLimit(day string, spend float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.softWarned == day {
		return
	}
	g.softWarned = day
	g.logger.Warn("approaching daily budget",
		"spend_usd", spend, "limit_usd", g.limit)
}
