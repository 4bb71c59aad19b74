package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evgraf/culturebot/internal/config"
	"github.com/evgraf/culturebot/internal/costguard"
	"github.com/evgraf/culturebot/internal/db"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent pairings and today's API spend",
	RunE:  runStats,
}

var statsCount int

func init() {
	statsCmd.Flags().IntVar(&statsCount, "count", 10, "number of recent pairings to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	records, err := store.RecentMatches(ctx, statsCount)
	if err != nil {
		return fmt.Errorf("load recent matches: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("no pairings recorded yet")
	} else {
		fmt.Printf("Recent pairings (%d):\n", len(records))
		for _, rec := range records {
			fmt.Printf("  %s  %-16s %.2f  %q -> %q\n",
				rec.CreatedAt.Format("2006-01-02"), rec.Status, rec.Score,
				rec.PoemTitle, rec.ArtworkTitle)
		}
	}

	guard, err := costguard.New(costguard.Config{Ledger: store, DailyLimitUSD: cfg.DailyLimitUSD})
	if err != nil {
		return err
	}
	remaining, err := guard.Remaining(ctx)
	if err != nil {
		return fmt.Errorf("read budget: %w", err)
	}
	fmt.Printf("\nRemaining daily budget: $%.4f of $%.2f\n", remaining, cfg.DailyLimitUSD)

	return nil
}
