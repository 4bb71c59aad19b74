// Package analyzer turns raw poem text into a structured analysis used by
// the artwork matching pipeline. Two strategies exist: an OpenAI-backed
// analysis and a local keyword scan. When both run, label sets are
// unioned; single-valued fields take the AI value when available.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoResult is the explicit "no result" marker returned by a strategy
// that could not produce an analysis. It is never surfaced to callers of
// Analyze.
var ErrNoResult = errors.New("analyzer: strategy produced no result")

// Narrative holds the structured narrative fields of a poem. Each value is
// a fixed enumeration or "ambiguous" ("timeless" for season).
type Narrative struct {
	HasProtagonist  bool   `json:"has_protagonist"`
	ProtagonistType string `json:"protagonist_type"`
	Setting         string `json:"setting"`
	TimeOfDay       string `json:"time_of_day"`
	Season          string `json:"season"`
	HumanPresence   string `json:"human_presence"`
	Weather         string `json:"weather"`
}

// ConcreteElements categorizes the concrete nouns found in a poem.
type ConcreteElements struct {
	NaturalObjects   []string `json:"natural_objects"`
	ManMadeObjects   []string `json:"man_made_objects"`
	LivingBeings     []string `json:"living_beings"`
	AbstractConcepts []string `json:"abstract_concepts"`
}

// Objects returns every visually verifiable noun: natural, man-made, and
// living. Abstract concepts are excluded since they cannot be depicted.
func (c ConcreteElements) Objects() []string {
	out := make([]string, 0, len(c.NaturalObjects)+len(c.ManMadeObjects)+len(c.LivingBeings))
	out = append(out, c.NaturalObjects...)
	out = append(out, c.ManMadeObjects...)
	out = append(out, c.LivingBeings...)
	return out
}

// PoemAnalysis is the immutable result of analyzing one poem.
// Themes and PrimaryEmotions are never empty: the fallback buckets
// "general" and "neutral" are substituted when detection yields nothing.
type PoemAnalysis struct {
	PrimaryEmotions   []string         `json:"primary_emotions"`
	SecondaryEmotions []string         `json:"secondary_emotions"`
	EmotionalTone     string           `json:"emotional_tone"`
	Themes            []string         `json:"themes"`
	Narrative         Narrative        `json:"narrative"`
	ConcreteElements  ConcreteElements `json:"concrete_elements"`
	SymbolicObjects   []string         `json:"symbolic_objects"`
	ColorReferences   []string         `json:"color_references"`
	SpatialQuality    string           `json:"spatial_quality"`
	Intensity         int              `json:"intensity"`
	Source            string           `json:"source"` // "keyword", "ai", or "combined"
}

// Strategy is one way of producing a PoemAnalysis. A strategy that cannot
// run (missing credential, parse failure, timeout) returns ErrNoResult or
// any other error; the caller falls through to the next strategy.
type Strategy interface {
	Name() string
	Analyze(ctx context.Context, title, text string) (*PoemAnalysis, error)
}

// Analyzer runs an ordered chain of strategies and merges their output.
type Analyzer struct {
	strategies []Strategy
}

// Config holds configuration for the Analyzer.
type Config struct {
	// Strategies are tried in order. When empty, the keyword strategy
	// alone is used.
	Strategies []Strategy
}

// New creates an Analyzer. The keyword strategy is always present as the
// final fallback so analysis can never fail.
func New(cfg Config) *Analyzer {
	strategies := cfg.Strategies
	hasKeyword := false
	for _, s := range strategies {
		if s.Name() == "keyword" {
			hasKeyword = true
		}
	}
	if !hasKeyword {
		strategies = append(strategies, NewKeywordStrategy())
	}
	return &Analyzer{strategies: strategies}
}

// Analyze produces a PoemAnalysis for the given poem. It never returns an
// error: every strategy failure falls through, and the keyword strategy
// always yields a result. Label sets from multiple successful strategies
// are unioned to improve recall.
func (a *Analyzer) Analyze(ctx context.Context, title, text string) PoemAnalysis {
	var merged *PoemAnalysis

	for _, s := range a.strategies {
		result, err := s.Analyze(ctx, title, text)
		if err != nil {
			if !errors.Is(err, ErrNoResult) {
				slog.Warn("analysis strategy failed", "strategy", s.Name(), "error", err)
			}
			continue
		}
		if merged == nil {
			merged = result
			continue
		}
		merged = merge(merged, result)
	}

	if merged == nil {
		// Unreachable in practice: the keyword strategy never errors.
		merged = &PoemAnalysis{Source: "keyword"}
	}

	applyFallbacks(merged)
	return *merged
}

// merge unions the label sets of two analyses. Single-valued fields keep
// the earlier (higher-priority) strategy's value; the AI strategy is
// ordered first, so AI wins on tone, narrative, and intensity.
func merge(primary, secondary *PoemAnalysis) *PoemAnalysis {
	out := *primary
	out.Themes = unionStrings(primary.Themes, secondary.Themes)
	out.PrimaryEmotions = unionStrings(primary.PrimaryEmotions, secondary.PrimaryEmotions)
	out.SecondaryEmotions = unionStrings(primary.SecondaryEmotions, secondary.SecondaryEmotions)
	out.SymbolicObjects = unionStrings(primary.SymbolicObjects, secondary.SymbolicObjects)
	out.ColorReferences = unionStrings(primary.ColorReferences, secondary.ColorReferences)
	out.ConcreteElements = ConcreteElements{
		NaturalObjects:   unionStrings(primary.ConcreteElements.NaturalObjects, secondary.ConcreteElements.NaturalObjects),
		ManMadeObjects:   unionStrings(primary.ConcreteElements.ManMadeObjects, secondary.ConcreteElements.ManMadeObjects),
		LivingBeings:     unionStrings(primary.ConcreteElements.LivingBeings, secondary.ConcreteElements.LivingBeings),
		AbstractConcepts: unionStrings(primary.ConcreteElements.AbstractConcepts, secondary.ConcreteElements.AbstractConcepts),
	}
	if out.EmotionalTone == "" {
		out.EmotionalTone = secondary.EmotionalTone
	}
	if out.SpatialQuality == "" {
		out.SpatialQuality = secondary.SpatialQuality
	}
	if out.Intensity == 0 {
		out.Intensity = secondary.Intensity
	}
	if narrativeEmpty(out.Narrative) {
		out.Narrative = secondary.Narrative
	}
	out.Source = "combined"
	return &out
}

// applyFallbacks guarantees the downstream invariants: theme and primary
// emotion sets are never empty, tone and intensity always have a value.
func applyFallbacks(a *PoemAnalysis) {
	if len(a.Themes) == 0 {
		a.Themes = []string{"general"}
	}
	if len(a.PrimaryEmotions) == 0 {
		a.PrimaryEmotions = []string{"neutral"}
	}
	if a.EmotionalTone == "" {
		a.EmotionalTone = "contemplative"
	}
	if a.Intensity < 1 {
		a.Intensity = 5
	}
	if a.Intensity > 10 {
		a.Intensity = 10
	}
}

func narrativeEmpty(n Narrative) bool {
	return n.Setting == "" && n.TimeOfDay == "" && n.Season == "" && n.HumanPresence == "" && n.Weather == ""
}

func unionStrings(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool)
	for _, s := range a {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
