package matcher

import (
	"log/slog"
	"sort"

	"github.com/evgraf/culturebot/internal/analyzer"
	"github.com/evgraf/culturebot/internal/wikidata"
)

// DefaultMinMatchScore is the selection threshold when none is configured.
const DefaultMinMatchScore = 0.4

// Selector picks the final candidate from a scored set.
type Selector struct {
	minScore float64
}

// SelectorConfig holds configuration for the Selector.
type SelectorConfig struct {
	// MinMatchScore is the qualification threshold in [0,1]. Zero means
	// the default of 0.4.
	MinMatchScore float64
}

// NewSelector creates a Selector. The threshold must already be validated
// at the configuration boundary.
func NewSelector(cfg SelectorConfig) *Selector {
	minScore := cfg.MinMatchScore
	if minScore == 0 {
		minScore = DefaultMinMatchScore
	}
	return &Selector{minScore: minScore}
}

// Select returns the best qualifying candidate, or a fallback when none
// qualifies. With an empty scored set it falls back to a bundled sample
// artwork, so a result is always produced.
func (s *Selector) Select(poem analyzer.PoemAnalysis, scored []ScoredCandidate) MatchResult {
	if len(scored) == 0 {
		return sampleResult(poem, "no candidates retrieved")
	}

	qualifying := make([]ScoredCandidate, 0, len(scored))
	for _, sc := range scored {
		if sc.Score.Excluded || sc.Score.Value < s.minScore {
			continue
		}
		qualifying = append(qualifying, sc)
	}

	if len(qualifying) > 0 {
		sortScored(qualifying)
		best := qualifying[0]
		slog.Info("selected matched artwork",
			"artwork", best.Candidate.Title,
			"score", best.Score.Value,
			"era", best.Score.Era)
		return MatchResult{
			Status:    StatusMatched,
			Candidate: best.Candidate,
			Analysis:  poem,
			Score:     best.Score,
		}
	}

	// Nothing qualified: draw from the unfiltered pool, still refusing
	// hard-excluded candidates.
	fallback := make([]ScoredCandidate, 0, len(scored))
	for _, sc := range scored {
		if !sc.Score.Excluded {
			fallback = append(fallback, sc)
		}
	}
	if len(fallback) == 0 {
		return sampleResult(poem, "every candidate excluded")
	}

	sortScored(fallback)
	chosen := fallback[0]
	slog.Warn("no candidate met minimum score, falling back",
		"artwork", chosen.Candidate.Title,
		"score", chosen.Score.Value,
		"min_score", s.minScore)
	return MatchResult{
		Status:    StatusFallbackRandom,
		Candidate: chosen.Candidate,
		Analysis:  poem,
		Score:     chosen.Score,
	}
}

func sampleResult(poem analyzer.PoemAnalysis, reason string) MatchResult {
	sample := wikidata.SampleCandidates(1)[0]
	slog.Warn("using bundled sample artwork", "reason", reason, "artwork", sample.Title)
	return MatchResult{
		Status:    StatusSample,
		Candidate: sample,
		Analysis:  poem,
		Score:     Score{},
	}
}

// sortScored orders best-first: clamped value, then era score, then
// pre-clamp raw score, then retrieval order. The era and raw keys
// disambiguate candidates tied at the clamp ceiling.
func sortScored(scored []ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score.Value != b.Score.Value {
			return a.Score.Value > b.Score.Value
		}
		if a.Score.Era != b.Score.Era {
			return a.Score.Era > b.Score.Era
		}
		if a.Score.Raw != b.Score.Raw {
			return a.Score.Raw > b.Score.Raw
		}
		return a.Index < b.Index
	})
}
