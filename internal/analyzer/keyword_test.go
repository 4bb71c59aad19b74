package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordStrategy_DetectsThemesAndEmotions(t *testing.T) {
	s := NewKeywordStrategy()

	analysis, err := s.Analyze(context.Background(), "The Lake", `
		Still water under the silver moon,
		grief settles on the shore like mist,
		and the sorrow of the waves goes on.
	`)
	require.NoError(t, err)

	assert.Contains(t, analysis.Themes, "water")
	assert.Contains(t, analysis.Themes, "night")
	require.NotEmpty(t, analysis.PrimaryEmotions)
	assert.Contains(t, analysis.PrimaryEmotions, "grief")
	assert.Equal(t, "keyword", analysis.Source)
}

func TestKeywordStrategy_ConcreteElements(t *testing.T) {
	s := NewKeywordStrategy()

	analysis, err := s.Analyze(context.Background(), "", `
		A rose grows by the old house,
		a bird sings from the tower,
		and children pass the bridge at dawn.
	`)
	require.NoError(t, err)

	assert.Contains(t, analysis.ConcreteElements.NaturalObjects, "rose")
	assert.Contains(t, analysis.ConcreteElements.ManMadeObjects, "house")
	assert.Contains(t, analysis.ConcreteElements.ManMadeObjects, "bridge")
	assert.Contains(t, analysis.ConcreteElements.LivingBeings, "bird")
	assert.Contains(t, analysis.ConcreteElements.LivingBeings, "children")
}

func TestKeywordStrategy_SingularizesKnownPlurals(t *testing.T) {
	s := NewKeywordStrategy()

	analysis, err := s.Analyze(context.Background(), "", "trees and trees and a tree")
	require.NoError(t, err)

	assert.Equal(t, []string{"tree"}, analysis.ConcreteElements.NaturalObjects)
}

func TestKeywordStrategy_Narrative(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		setting   string
		timeOfDay string
		season    string
		presence  string
	}{
		{
			name:      "first person at sea in winter",
			text:      "I sailed the frozen sea at midnight, snow on the rigging",
			setting:   "seascape",
			timeOfDay: "night",
			season:    "winter",
			presence:  "central",
		},
		{
			name:      "empty scene stays ambiguous",
			text:      "soft and slow, without a name",
			setting:   "ambiguous",
			timeOfDay: "ambiguous",
			season:    "timeless",
			presence:  "absent",
		},
		{
			name:      "mentioned figures imply presence",
			text:      "the women gather in the garden at sunrise",
			setting:   "outdoor",
			timeOfDay: "dawn",
			season:    "timeless",
			presence:  "implied",
		},
	}

	s := NewKeywordStrategy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := s.Analyze(context.Background(), "", tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.setting, analysis.Narrative.Setting)
			assert.Equal(t, tt.timeOfDay, analysis.Narrative.TimeOfDay)
			assert.Equal(t, tt.season, analysis.Narrative.Season)
			assert.Equal(t, tt.presence, analysis.Narrative.HumanPresence)
		})
	}
}

func TestKeywordStrategy_Colors(t *testing.T) {
	s := NewKeywordStrategy()

	analysis, err := s.Analyze(context.Background(), "", "golden fields under a grey sky, golden light")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"golden", "grey"}, analysis.ColorReferences)
}

func TestKeywordStrategy_Intensity(t *testing.T) {
	s := NewKeywordStrategy()

	calm, err := s.Analyze(context.Background(), "", "quiet rain on the window")
	require.NoError(t, err)
	assert.Equal(t, 5, calm.Intensity)

	wild, err := s.Analyze(context.Background(), "", "Rage! Fury! The burning wild scream!")
	require.NoError(t, err)
	assert.Equal(t, 10, wild.Intensity)
}
