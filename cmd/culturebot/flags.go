package main

import (
	"github.com/spf13/cobra"

	"github.com/evgraf/culturebot/internal/app"
	"github.com/evgraf/culturebot/internal/config"
)

// Matching flags shared by the daily and match commands. Unset flags
// fall back to the configured defaults.
func addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-match-score", 0, "qualification threshold in [0,1] (default from config)")
	cmd.Flags().Int("max-fame-level", 0, "maximum Wikipedia sitelinks for candidate artworks")
	cmd.Flags().Int("candidate-pool", 0, "number of candidate artworks to retrieve")
	cmd.Flags().Int("vision-candidates", 0, "number of top candidates to enrich with vision")
	cmd.Flags().Bool("no-vision", false, "disable vision re-ranking")
	cmd.Flags().Bool("no-poet-dates", false, "skip the poet lifetime lookup")
	cmd.Flags().Bool("explain-matches", false, "include a rationale with each pairing")
}

// applyConfigFlags folds flags that shape dependency construction into
// the config before the app is built.
func applyConfigFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetInt("max-fame-level"); v != 0 {
		cfg.MaxFameLevel = v
	}
	if v, _ := cmd.Flags().GetFloat64("min-match-score"); v != 0 {
		cfg.MinMatchScore = v
	}
}

func matchOptions(cmd *cobra.Command, a *app.App) app.MatchOptions {
	opts := a.DefaultMatchOptions()

	if v, _ := cmd.Flags().GetInt("candidate-pool"); v != 0 {
		opts.CandidatePoolSize = v
	}
	if v, _ := cmd.Flags().GetInt("vision-candidates"); v != 0 {
		opts.VisionCandidateCount = v
	}
	if v, _ := cmd.Flags().GetBool("no-vision"); v {
		opts.EnableVision = false
	}
	if v, _ := cmd.Flags().GetBool("no-poet-dates"); v {
		opts.SkipPoetDates = true
	}
	if v, _ := cmd.Flags().GetBool("explain-matches"); v {
		opts.EnableExplanations = true
	}
	return opts
}
