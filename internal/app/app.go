// Package app wires the pipeline together and exposes the match
// invocation surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evgraf/culturebot/internal/analyzer"
	"github.com/evgraf/culturebot/internal/concepts"
	"github.com/evgraf/culturebot/internal/config"
	"github.com/evgraf/culturebot/internal/costguard"
	"github.com/evgraf/culturebot/internal/db"
	"github.com/evgraf/culturebot/internal/delivery"
	"github.com/evgraf/culturebot/internal/explain"
	"github.com/evgraf/culturebot/internal/matcher"
	"github.com/evgraf/culturebot/internal/poem"
	"github.com/evgraf/culturebot/internal/vision"
	"github.com/evgraf/culturebot/internal/wikidata"
)

// App is the main application container holding all dependencies.
type App struct {
	Config     *config.Config
	Store      *db.Store
	Guard      *costguard.Guard
	Poems      *poem.Fetcher
	Analyzer   *analyzer.Analyzer
	Wikidata   *wikidata.Client
	Vision     *vision.Analyzer // nil when no API key is configured
	Scorer     *matcher.Scorer
	Deliverers []delivery.Deliverer
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	guard, err := costguard.New(costguard.Config{
		Ledger:        store,
		DailyLimitUSD: cfg.DailyLimitUSD,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	var strategies []analyzer.Strategy
	var visionAnalyzer *vision.Analyzer
	if cfg.OpenAIAPIKey != "" {
		ai, err := analyzer.NewOpenAIStrategy(analyzer.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.AnalysisModel,
			Guard:  guard,
		})
		if err != nil {
			store.Close()
			return nil, err
		}
		strategies = append(strategies, ai)

		visionAnalyzer, err = vision.New(vision.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.VisionModel,
			Store:  store,
			Guard:  guard,
		})
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	app := &App{
		Config: cfg,
		Store:  store,
		Guard:  guard,
		Poems:  poem.NewFetcher(poem.Config{BaseURL: cfg.PoetryDBEndpoint}),
		Analyzer: analyzer.New(analyzer.Config{
			Strategies: strategies,
		}),
		Wikidata: wikidata.NewClient(wikidata.Config{
			Endpoint:     cfg.WikidataEndpoint,
			MaxSitelinks: cfg.MaxFameLevel,
		}),
		Vision: visionAnalyzer,
		Scorer: &matcher.Scorer{},
	}

	if cfg.OutputDir != "" {
		writer, err := delivery.NewFileWriter(cfg.OutputDir)
		if err != nil {
			store.Close()
			return nil, err
		}
		app.Deliverers = append(app.Deliverers, writer)
	}
	if cfg.SMTPHost != "" {
		sender, err := delivery.NewEmailSender(delivery.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
			To:       cfg.EmailTo,
		})
		if err != nil {
			store.Close()
			return nil, err
		}
		app.Deliverers = append(app.Deliverers, sender)
	}

	return app, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// MatchOptions control one match invocation.
type MatchOptions struct {
	// MinMatchScore is the qualification threshold in [0,1]. Zero means
	// the selector default.
	MinMatchScore float64
	// CandidatePoolSize bounds the retrieved candidate set.
	CandidatePoolSize int
	// EnableVision re-ranks the top candidates with image analysis.
	EnableVision bool
	// VisionCandidateCount is how many top candidates to enrich.
	VisionCandidateCount int
	// EnableExplanations renders a rationale for the chosen pairing.
	EnableExplanations bool
	// SkipPoetDates disables the poet lifetime lookup, dropping era
	// ordering.
	SkipPoetDates bool
	// Fast skips remote retrieval and draws from the bundled artworks.
	Fast bool
}

// Validate fails fast on option misuse.
func (o MatchOptions) Validate() error {
	if o.MinMatchScore < 0 || o.MinMatchScore > 1 {
		return fmt.Errorf("min match score must be between 0 and 1, got %g", o.MinMatchScore)
	}
	if o.CandidatePoolSize < 0 {
		return fmt.Errorf("candidate pool size must be non-negative, got %d", o.CandidatePoolSize)
	}
	if o.VisionCandidateCount < 0 {
		return fmt.Errorf("vision candidate count must be non-negative, got %d", o.VisionCandidateCount)
	}
	return nil
}

// DefaultMatchOptions derives options from the loaded configuration.
func (a *App) DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		MinMatchScore:        a.Config.MinMatchScore,
		CandidatePoolSize:    a.Config.CandidatePoolSize,
		EnableVision:         a.Config.EnableVision,
		VisionCandidateCount: a.Config.VisionCandidateCount,
		EnableExplanations:   a.Config.EnableExplanations,
	}
}

// Pairing is the outcome of one match invocation.
type Pairing struct {
	RunID       string
	Poem        poem.Poem
	Result      matcher.MatchResult
	Explanation *explain.Explanation
}

// Match runs the full pipeline for one poem: analysis, concept mapping,
// retrieval, scoring, optional vision re-ranking, selection, and
// explanation. It always produces a pairing; degraded stages fall back
// rather than fail.
func (a *App) Match(ctx context.Context, p poem.Poem, opts MatchOptions) (*Pairing, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := slog.With("run_id", runID, "poem", p.Title)

	analysis := a.Analyzer.Analyze(ctx, p.Title, p.Text)
	log.Info("poem analyzed",
		"source", analysis.Source,
		"themes", analysis.Themes,
		"tone", analysis.EmotionalTone)

	qcodes := concepts.MapToQCodes(
		analysis.ConcreteElements.Objects(), analysis.Themes, analysis.PrimaryEmotions)

	var candidates []wikidata.Candidate
	if opts.Fast {
		candidates = wikidata.SampleCandidates(opts.CandidatePoolSize)
	} else {
		candidates = a.Wikidata.FetchCandidates(ctx, qcodes, opts.CandidatePoolSize)
	}
	log.Info("candidates retrieved", "count", len(candidates), "qcodes", len(qcodes))

	lifetime := a.poetLifetime(ctx, p.Author, opts.Fast || opts.SkipPoetDates)

	scored := a.Scorer.ScoreAll(ctx, analysis, candidates, nil, lifetime)

	if opts.EnableVision && a.Vision != nil && opts.VisionCandidateCount > 0 {
		visuals := a.enrichTopCandidates(ctx, scored, opts.VisionCandidateCount)
		if len(visuals) > 0 {
			scored = a.Scorer.ScoreAll(ctx, analysis, candidates, visuals, lifetime)
			log.Info("vision re-ranking applied", "enriched", len(visuals))
		}
	}

	selector := matcher.NewSelector(matcher.SelectorConfig{MinMatchScore: opts.MinMatchScore})
	result := selector.Select(analysis, scored)

	pairing := &Pairing{RunID: runID, Poem: p, Result: result}
	if opts.EnableExplanations {
		e := explain.Explain(result)
		pairing.Explanation = &e
	}

	if err := a.Store.LogMatch(ctx, db.MatchRecord{
		RunID:        runID,
		PoemTitle:    p.Title,
		PoemAuthor:   p.Author,
		ArtworkID:    result.Candidate.ID,
		ArtworkTitle: result.Candidate.Title,
		Status:       string(result.Status),
		Score:        result.Score.Value,
	}); err != nil {
		log.Warn("match log write failed", "error", err)
	}

	log.Info("pairing complete",
		"artwork", result.Candidate.Title,
		"status", result.Status,
		"score", result.Score.Value)
	return pairing, nil
}

// poetLifetime looks up the poet's birth and death years for era
// ordering. Unknown poets score an era of zero, which only affects
// tie-breaks.
func (a *App) poetLifetime(ctx context.Context, author string, skip bool) matcher.Lifetime {
	if skip || author == "" || author == "Unknown Author" {
		return matcher.Lifetime{}
	}
	birth, death, err := a.Wikidata.PoetDates(ctx, author)
	if err != nil {
		slog.Debug("poet dates unavailable", "author", author, "error", err)
		return matcher.Lifetime{}
	}
	return matcher.Lifetime{Birth: birth, Death: death}
}

// enrichTopCandidates runs vision analysis on the best-scoring
// candidates that have images. Failures are isolated per candidate.
func (a *App) enrichTopCandidates(ctx context.Context, scored []matcher.ScoredCandidate, count int) map[string]*vision.Attributes {
	top := make([]matcher.ScoredCandidate, 0, len(scored))
	for _, sc := range scored {
		if !sc.Score.Excluded && sc.Candidate.ImageURL != "" {
			top = append(top, sc)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score.Value > top[j].Score.Value
	})
	if len(top) > count {
		top = top[:count]
	}

	visuals := make(map[string]*vision.Attributes)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, sc := range top {
		wg.Add(1)
		go func(cand wikidata.Candidate) {
			defer wg.Done()
			attrs, err := a.Vision.Enrich(ctx, cand.ImageURL, cand.Title)
			if err != nil {
				if errors.Is(err, vision.ErrBudgetExhausted) {
					slog.Warn("vision budget exhausted", "artwork", cand.Title)
				} else {
					slog.Warn("vision enrichment failed", "artwork", cand.Title, "error", err)
				}
				return
			}
			mu.Lock()
			visuals[cand.ImageURL] = attrs
			mu.Unlock()
		}(sc.Candidate)
	}
	wg.Wait()

	return visuals
}

// Deliver sends a pairing through every configured delivery channel.
// Channel failures are collected, not fatal to each other.
func (a *App) Deliver(ctx context.Context, pairing *Pairing, date time.Time) error {
	payload := delivery.Payload{
		RunID:  pairing.RunID,
		Date:   date,
		Poem:   pairing.Poem,
		Result: pairing.Result,
	}
	if pairing.Explanation != nil {
		payload.Explanation = explain.Render(*pairing.Explanation)
	}

	var errs []error
	for _, d := range a.Deliverers {
		if err := d.Deliver(ctx, payload); err != nil {
			slog.Error("delivery failed", "channel", d.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
			continue
		}
		slog.Info("pairing delivered", "channel", d.Name())
	}
	return errors.Join(errs...)
}

// RunDaily executes one full daily cycle: fetch a poem, match it, and
// deliver the pairing.
func (a *App) RunDaily(ctx context.Context) error {
	p, err := a.Poems.FetchRandom(ctx)
	if err != nil {
		slog.Warn("poem fetch failed, using bundled poem", "error", err)
		samples := poem.SamplePoems(1)
		p = &samples[0]
	}

	pairing, err := a.Match(ctx, *p, a.DefaultMatchOptions())
	if err != nil {
		return fmt.Errorf("match poem: %w", err)
	}

	return a.Deliver(ctx, pairing, time.Now())
}
