package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evgraf/culturebot/internal/config"
	"github.com/evgraf/culturebot/internal/poem"
)

var poemsCmd = &cobra.Command{
	Use:   "poems",
	Short: "Fetch random poems from PoetryDB",
	RunE:  runPoems,
}

var (
	poemsCount int
	poemsFast  bool
)

func init() {
	poemsCmd.Flags().IntVar(&poemsCount, "count", 1, "number of poems to fetch")
	poemsCmd.Flags().BoolVar(&poemsFast, "fast", false, "use bundled poems, no remote calls")
	rootCmd.AddCommand(poemsCmd)
}

func runPoems(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var poems []poem.Poem
	if poemsFast {
		poems = poem.SamplePoems(poemsCount)
	} else {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		fetcher := poem.NewFetcher(poem.Config{BaseURL: cfg.PoetryDBEndpoint})
		poems, err = fetcher.FetchRandomBatch(ctx, poemsCount)
		if err != nil {
			return fmt.Errorf("fetch poems: %w", err)
		}
	}

	for i, p := range poems {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s\nby %s  (%d lines, %d words)\n\n%s\n",
			p.Title, p.Author, p.LineCount, p.WordCount, p.Text)
	}
	return nil
}
