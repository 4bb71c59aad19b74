package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evgraf/culturebot/internal/analyzer"
	"github.com/evgraf/culturebot/internal/concepts"
	"github.com/evgraf/culturebot/internal/config"
	"github.com/evgraf/culturebot/internal/costguard"
	"github.com/evgraf/culturebot/internal/db"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [poem-file]",
	Short: "Analyze a poem's themes and emotions",
	Long: `Run poem analysis on a text file and print the structured result
as JSON, including the Wikidata Q-codes the analysis maps to.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeTitle string
	analyzeNoAI  bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "poem title")
	analyzeCmd.Flags().BoolVar(&analyzeNoAI, "no-ai", false, "keyword analysis only, no API calls")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	var strategies []analyzer.Strategy
	if !analyzeNoAI && cfg.OpenAIAPIKey != "" {
		store, err := db.NewStore(ctx, cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		guard, err := costguard.New(costguard.Config{Ledger: store, DailyLimitUSD: cfg.DailyLimitUSD})
		if err != nil {
			return err
		}
		ai, err := analyzer.NewOpenAIStrategy(analyzer.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.AnalysisModel,
			Guard:  guard,
		})
		if err != nil {
			return err
		}
		strategies = append(strategies, ai)
	}

	a := analyzer.New(analyzer.Config{Strategies: strategies})
	analysis := a.Analyze(ctx, analyzeTitle, strings.TrimSpace(string(text)))

	qcodes := concepts.MapToQCodes(
		analysis.ConcreteElements.Objects(), analysis.Themes, analysis.PrimaryEmotions)

	out := struct {
		Analysis interface{} `json:"analysis"`
		QCodes   []string    `json:"qcodes"`
	}{Analysis: analysis, QCodes: qcodes}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
