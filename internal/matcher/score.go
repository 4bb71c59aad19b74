// Package matcher scores artwork candidates against a poem analysis in two
// stages: hard-constraint exclusion, then a weighted sum over concrete,
// thematic, emotional, and genre alignment with specificity bonuses and
// soft-conflict penalties.
package matcher

import (
	"github.com/evgraf/culturebot/internal/analyzer"
	"github.com/evgraf/culturebot/internal/wikidata"
)

// Lifetime is a poet's birth and death years. Death 0 with Birth set means
// the poet is living; Birth 0 means unknown.
type Lifetime struct {
	Birth int
	Death int
}

// Known reports whether both bounds are usable for era scoring.
func (l Lifetime) Known() bool {
	return l.Birth > 0 && l.Death >= l.Birth
}

// Factor is one named bonus or penalty contribution.
type Factor struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Breakdown records the sub-scores behind a numeric match score. All
// fields are zero for excluded candidates.
type Breakdown struct {
	Concrete  float64  `json:"concrete"`
	Theme     float64  `json:"theme"`
	Emotion   float64  `json:"emotion"`
	Genre     float64  `json:"genre"`
	Visual    float64  `json:"visual"`
	HasVisual bool     `json:"has_visual"`
	Bonuses   []Factor `json:"bonuses,omitempty"`
	Penalties []Factor `json:"penalties,omitempty"`
}

// Score is a candidate's evaluation result. Exclusion is a terminal state
// distinct from scoring zero: an excluded score carries a reason and no
// breakdown.
type Score struct {
	Excluded        bool      `json:"excluded"`
	ExclusionReason string    `json:"exclusion_reason,omitempty"`
	Value           float64   `json:"value"` // clamped to [0,1]
	Raw             float64   `json:"raw"`   // pre-clamp, tie-break only
	Era             float64   `json:"era"`   // auxiliary sort key
	Breakdown       Breakdown `json:"breakdown"`
}

// ExcludedScore constructs the exclusion sentinel.
func ExcludedScore(reason string) Score {
	return Score{Excluded: true, ExclusionReason: reason}
}

// eraBufferYears is the decay window outside the poet's lifetime.
const eraBufferYears = 50

// EraScore rates temporal proximity between an artwork and a poet: 1.0
// inside the lifetime, linear decay to 0.0 across a ±50-year buffer, 0.0
// beyond it or when either date is unknown.
func EraScore(artworkYear int, lifetime Lifetime) float64 {
	if artworkYear == 0 || !lifetime.Known() {
		return 0.0
	}
	if lifetime.Birth <= artworkYear && artworkYear <= lifetime.Death {
		return 1.0
	}

	var distance int
	if artworkYear < lifetime.Birth {
		distance = lifetime.Birth - artworkYear
	} else {
		distance = artworkYear - lifetime.Death
	}
	if distance >= eraBufferYears {
		return 0.0
	}
	return 1.0 - float64(distance)/eraBufferYears
}

// ScoredCandidate pairs a candidate with its score and retrieval position.
type ScoredCandidate struct {
	Candidate wikidata.Candidate
	Score     Score
	Index     int // retrieval order, final tie-break
}

// Status tags how a MatchResult was produced.
type Status string

const (
	// StatusMatched means a candidate met the minimum score.
	StatusMatched Status = "matched"
	// StatusFallbackRandom means no candidate qualified and one was drawn
	// from the unfiltered pool.
	StatusFallbackRandom Status = "fallback-random"
	// StatusSample means retrieval produced nothing and a bundled sample
	// artwork was used.
	StatusSample Status = "sample"
)

// MatchResult is the final pairing. Immutable once constructed.
type MatchResult struct {
	Status    Status                `json:"status"`
	Candidate wikidata.Candidate    `json:"candidate"`
	Analysis  analyzer.PoemAnalysis `json:"analysis"`
	Score     Score                 `json:"score"`
}
