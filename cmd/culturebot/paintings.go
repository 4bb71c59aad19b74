package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evgraf/culturebot/internal/config"
	"github.com/evgraf/culturebot/internal/wikidata"
)

var paintingsCmd = &cobra.Command{
	Use:   "paintings [qcode...]",
	Short: "Fetch candidate artworks from Wikidata",
	Long: `Query Wikidata for artworks depicting the given Q-codes and print
the candidates.

Example:
  culturebot paintings Q10884 Q4022 --limit 10`,
	RunE: runPaintings,
}

var (
	paintingsLimit int
	paintingsFame  int
	paintingsFast  bool
)

func init() {
	paintingsCmd.Flags().IntVar(&paintingsLimit, "limit", 10, "maximum candidates to fetch")
	paintingsCmd.Flags().IntVar(&paintingsFame, "max-fame-level", 0, "maximum Wikipedia sitelinks")
	paintingsCmd.Flags().BoolVar(&paintingsFast, "fast", false, "use bundled artworks, no remote calls")
	rootCmd.AddCommand(paintingsCmd)
}

func runPaintings(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var candidates []wikidata.Candidate
	if paintingsFast {
		candidates = wikidata.SampleCandidates(paintingsLimit)
	} else {
		if len(args) == 0 {
			return fmt.Errorf("at least one Q-code is required (or use --fast)")
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		maxFame := paintingsFame
		if maxFame == 0 {
			maxFame = cfg.MaxFameLevel
		}
		client := wikidata.NewClient(wikidata.Config{
			Endpoint:     cfg.WikidataEndpoint,
			MaxSitelinks: maxFame,
		})
		candidates = client.FetchCandidates(ctx, args, paintingsLimit)
	}

	if len(candidates) == 0 {
		fmt.Println("no candidates found")
		return nil
	}

	for _, c := range candidates {
		fmt.Printf("%s  %s", c.ID, c.Title)
		if c.Artist != "" {
			fmt.Printf(" — %s", c.Artist)
		}
		if c.Year != 0 {
			fmt.Printf(" (%d)", c.Year)
		}
		fmt.Println()
		if c.ImageURL != "" {
			fmt.Printf("    %s\n", wikidata.HighResImageURL(c.ImageURL))
		}
	}
	return nil
}
