package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name   string
	result *PoemAnalysis
	err    error
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Analyze(context.Context, string, string) (*PoemAnalysis, error) {
	return s.result, s.err
}

func TestAnalyze_AlwaysProducesResult(t *testing.T) {
	a := New(Config{})

	analysis := a.Analyze(context.Background(), "", "wordless hum")

	assert.NotEmpty(t, analysis.Themes)
	assert.NotEmpty(t, analysis.PrimaryEmotions)
	assert.NotEmpty(t, analysis.EmotionalTone)
	assert.GreaterOrEqual(t, analysis.Intensity, 1)
	assert.LessOrEqual(t, analysis.Intensity, 10)
}

func TestAnalyze_FallbackBuckets(t *testing.T) {
	a := New(Config{Strategies: []Strategy{
		&stubStrategy{name: "keyword", result: &PoemAnalysis{Source: "keyword"}},
	}})

	analysis := a.Analyze(context.Background(), "", "")

	assert.Equal(t, []string{"general"}, analysis.Themes)
	assert.Equal(t, []string{"neutral"}, analysis.PrimaryEmotions)
	assert.Equal(t, "contemplative", analysis.EmotionalTone)
	assert.Equal(t, 5, analysis.Intensity)
}

func TestAnalyze_AIWinsSingleValuedFields(t *testing.T) {
	ai := &stubStrategy{name: "ai", result: &PoemAnalysis{
		Themes:          []string{"love"},
		PrimaryEmotions: []string{"joy"},
		EmotionalTone:   "celebratory",
		Intensity:       8,
		Narrative:       Narrative{Setting: "seascape", TimeOfDay: "day", Season: "summer", HumanPresence: "central", Weather: "clear"},
		Source:          "ai",
	}}
	keyword := &stubStrategy{name: "keyword", result: &PoemAnalysis{
		Themes:          []string{"water"},
		PrimaryEmotions: []string{"peace"},
		EmotionalTone:   "contemplative",
		Intensity:       5,
		Narrative:       Narrative{Setting: "ambiguous", TimeOfDay: "ambiguous", Season: "timeless", HumanPresence: "absent", Weather: "ambiguous"},
		Source:          "keyword",
	}}

	a := New(Config{Strategies: []Strategy{ai, keyword}})
	analysis := a.Analyze(context.Background(), "", "")

	// Label sets union, single-valued fields keep the AI answer.
	assert.ElementsMatch(t, []string{"love", "water"}, analysis.Themes)
	assert.ElementsMatch(t, []string{"joy", "peace"}, analysis.PrimaryEmotions)
	assert.Equal(t, "celebratory", analysis.EmotionalTone)
	assert.Equal(t, 8, analysis.Intensity)
	assert.Equal(t, "seascape", analysis.Narrative.Setting)
	assert.Equal(t, "combined", analysis.Source)
}

func TestAnalyze_FailedStrategyFallsThrough(t *testing.T) {
	failing := &stubStrategy{name: "ai", err: errors.New("api unreachable")}

	a := New(Config{Strategies: []Strategy{failing}})
	analysis := a.Analyze(context.Background(), "Daffodils", "golden daffodils beside the lake")

	assert.Equal(t, "keyword", analysis.Source)
	assert.Contains(t, analysis.Themes, "flowers")
}

func TestAnalyze_BudgetExhaustedIsSilent(t *testing.T) {
	skipped := &stubStrategy{name: "ai", err: ErrNoResult}

	a := New(Config{Strategies: []Strategy{skipped}})
	analysis := a.Analyze(context.Background(), "", "the quiet sea")

	assert.Equal(t, "keyword", analysis.Source)
}

func TestConcreteElements_Objects(t *testing.T) {
	c := ConcreteElements{
		NaturalObjects:   []string{"tree", "river"},
		ManMadeObjects:   []string{"bridge"},
		LivingBeings:     []string{"heron"},
		AbstractConcepts: []string{"time"},
	}

	objects := c.Objects()

	require.Len(t, objects, 4)
	assert.NotContains(t, objects, "time")
}
