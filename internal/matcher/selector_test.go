package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgraf/culturebot/internal/wikidata"
)

func scoredCand(id string, value, era, raw float64, index int) ScoredCandidate {
	return ScoredCandidate{
		Candidate: wikidata.Candidate{ID: id, Title: id},
		Score:     Score{Value: value, Era: era, Raw: raw},
		Index:     index,
	}
}

func TestSelector_PicksHighestScore(t *testing.T) {
	s := NewSelector(SelectorConfig{})
	scored := []ScoredCandidate{
		scoredCand("Q1", 0.5, 0, 0.5, 0),
		scoredCand("Q2", 0.8, 0, 0.8, 1),
		scoredCand("Q3", 0.6, 0, 0.6, 2),
	}

	result := s.Select(naturePoem(), scored)

	assert.Equal(t, StatusMatched, result.Status)
	assert.Equal(t, "Q2", result.Candidate.ID)
}

func TestSelector_ExcludedNeverSelected(t *testing.T) {
	s := NewSelector(SelectorConfig{})
	excluded := ScoredCandidate{
		Candidate: wikidata.Candidate{ID: "Q1", Title: "Q1"},
		Score:     ExcludedScore("tone conflict"),
		Index:     0,
	}
	scored := []ScoredCandidate{excluded, scoredCand("Q2", 0.45, 0, 0.45, 1)}

	result := s.Select(naturePoem(), scored)

	assert.Equal(t, StatusMatched, result.Status)
	assert.Equal(t, "Q2", result.Candidate.ID)
}

func TestSelector_TieBreaks(t *testing.T) {
	t.Run("era breaks clamp ties", func(t *testing.T) {
		s := NewSelector(SelectorConfig{})
		scored := []ScoredCandidate{
			scoredCand("Q1", 1.0, 0.2, 1.3, 0),
			scoredCand("Q2", 1.0, 0.9, 1.1, 1),
		}
		result := s.Select(naturePoem(), scored)
		assert.Equal(t, "Q2", result.Candidate.ID)
	})

	t.Run("raw breaks era ties", func(t *testing.T) {
		s := NewSelector(SelectorConfig{})
		scored := []ScoredCandidate{
			scoredCand("Q1", 1.0, 0.5, 1.1, 0),
			scoredCand("Q2", 1.0, 0.5, 1.4, 1),
		}
		result := s.Select(naturePoem(), scored)
		assert.Equal(t, "Q2", result.Candidate.ID)
	})

	t.Run("retrieval order breaks full ties", func(t *testing.T) {
		s := NewSelector(SelectorConfig{})
		scored := []ScoredCandidate{
			scoredCand("Q1", 0.7, 0.5, 0.7, 0),
			scoredCand("Q2", 0.7, 0.5, 0.7, 1),
		}
		result := s.Select(naturePoem(), scored)
		assert.Equal(t, "Q1", result.Candidate.ID)
	})
}

func TestSelector_FallbackWhenBelowThreshold(t *testing.T) {
	s := NewSelector(SelectorConfig{MinMatchScore: 0.4})
	scored := []ScoredCandidate{
		scoredCand("Q1", 0.20, 0, 0.20, 0),
		scoredCand("Q2", 0.35, 0, 0.35, 1),
		scoredCand("Q3", 0.25, 0, 0.25, 2),
	}

	result := s.Select(naturePoem(), scored)

	assert.Equal(t, StatusFallbackRandom, result.Status)
	// Drawn from the unfiltered pool, best-first.
	assert.Equal(t, "Q2", result.Candidate.ID)
}

func TestSelector_EmptyPoolUsesSample(t *testing.T) {
	s := NewSelector(SelectorConfig{})

	result := s.Select(naturePoem(), nil)

	assert.Equal(t, StatusSample, result.Status)
	assert.NotEmpty(t, result.Candidate.Title)
	assert.Equal(t, "sample", result.Candidate.Source)
}

func TestSelector_AllExcludedUsesSample(t *testing.T) {
	s := NewSelector(SelectorConfig{})
	scored := []ScoredCandidate{
		{Candidate: wikidata.Candidate{ID: "Q1"}, Score: ExcludedScore("tone conflict"), Index: 0},
		{Candidate: wikidata.Candidate{ID: "Q2"}, Score: ExcludedScore("emotion conflict"), Index: 1},
	}

	result := s.Select(naturePoem(), scored)

	require.Equal(t, StatusSample, result.Status)
	assert.NotEqual(t, "Q1", result.Candidate.ID)
	assert.NotEqual(t, "Q2", result.Candidate.ID)
}

func TestNewSelector_DefaultThreshold(t *testing.T) {
	s := NewSelector(SelectorConfig{})
	assert.Equal(t, DefaultMinMatchScore, s.minScore)

	custom := NewSelector(SelectorConfig{MinMatchScore: 0.6})
	assert.Equal(t, 0.6, custom.minScore)
}
