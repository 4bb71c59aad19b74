package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/evgraf/culturebot/internal/app"
	"github.com/evgraf/culturebot/internal/config"
	"github.com/evgraf/culturebot/internal/delivery"
	"github.com/evgraf/culturebot/internal/poem"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Run one daily delivery cycle",
	Long: `Fetch a random poem, match it to an artwork, and deliver the
pairing through the configured channels.`,
	RunE: runDaily,
}

var (
	dailyCount   int
	dailyFast    bool
	dailyConsole bool
	dailyOutput  string
	dailyEmail   string
)

func init() {
	dailyCmd.Flags().IntVar(&dailyCount, "count", 1, "number of pairings to produce")
	dailyCmd.Flags().BoolVar(&dailyFast, "fast", false, "use bundled poems and artworks, no remote calls")
	dailyCmd.Flags().BoolVar(&dailyConsole, "console", false, "also print pairings to the console")
	dailyCmd.Flags().StringVar(&dailyOutput, "output", "", "override the JSON output directory")
	dailyCmd.Flags().StringVar(&dailyEmail, "email", "", "override the recipient address")
	addMatchFlags(dailyCmd)
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyConfigFlags(cmd, cfg)
	if dailyOutput != "" {
		cfg.OutputDir = dailyOutput
	}
	if dailyEmail != "" {
		cfg.EmailTo = dailyEmail
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	if dailyConsole {
		a.Deliverers = append(a.Deliverers, delivery.NewConsoleWriter())
	}

	opts := matchOptions(cmd, a)
	opts.Fast = dailyFast

	var poems []poem.Poem
	if dailyFast {
		poems = poem.SamplePoems(dailyCount)
	} else {
		poems, err = a.Poems.FetchRandomBatch(ctx, dailyCount)
		if err != nil {
			slog.Warn("poem fetch failed, using bundled poems", "error", err)
			poems = poem.SamplePoems(dailyCount)
		}
	}

	for _, p := range poems {
		pairing, err := a.Match(ctx, p, opts)
		if err != nil {
			return fmt.Errorf("match %q: %w", p.Title, err)
		}
		if err := a.Deliver(ctx, pairing, time.Now()); err != nil {
			return fmt.Errorf("deliver %q: %w", p.Title, err)
		}
	}

	return nil
}
