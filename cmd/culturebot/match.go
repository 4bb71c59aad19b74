package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evgraf/culturebot/internal/app"
	"github.com/evgraf/culturebot/internal/config"
	"github.com/evgraf/culturebot/internal/delivery"
	"github.com/evgraf/culturebot/internal/explain"
	"github.com/evgraf/culturebot/internal/poem"
	"github.com/evgraf/culturebot/internal/wikidata"
)

var matchCmd = &cobra.Command{
	Use:   "match [poem-file]",
	Short: "Match a poem to an artwork",
	Long: `Run the matching pipeline for a single poem read from a text file
and print the chosen artwork.

Example:
  culturebot match daffodils.txt --title "Daffodils" --author "William Wordsworth"`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

var (
	matchTitle  string
	matchAuthor string
	matchFast   bool
)

func init() {
	matchCmd.Flags().StringVar(&matchTitle, "title", "", "poem title")
	matchCmd.Flags().StringVar(&matchAuthor, "author", "", "poem author, used for era ordering")
	matchCmd.Flags().BoolVar(&matchFast, "fast", false, "match against bundled artworks, no remote calls")
	addMatchFlags(matchCmd)
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read poem: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyConfigFlags(cmd, cfg)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	title := matchTitle
	if title == "" {
		title = "Untitled"
	}
	body := strings.TrimSpace(string(text))
	p := poem.Poem{
		Title:     title,
		Author:    matchAuthor,
		Text:      body,
		LineCount: len(strings.Split(body, "\n")),
		WordCount: len(strings.Fields(body)),
		Source:    "file",
	}

	opts := matchOptions(cmd, a)
	opts.Fast = matchFast
	opts.EnableExplanations = true

	pairing, err := a.Match(ctx, p, opts)
	if err != nil {
		return fmt.Errorf("match poem: %w", err)
	}

	return delivery.NewConsoleWriter().Deliver(ctx, pairingPayload(pairing))
}

func pairingPayload(pairing *app.Pairing) delivery.Payload {
	payload := delivery.Payload{
		RunID:  pairing.RunID,
		Poem:   pairing.Poem,
		Result: pairing.Result,
	}
	if pairing.Explanation != nil {
		payload.Explanation = explain.Render(*pairing.Explanation)
	}
	if url := wikidata.HighResImageURL(pairing.Result.Candidate.ImageURL); url != "" {
		payload.Result.Candidate.ImageURL = url
	}
	return payload
}
