package concepts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapToQCodes_Cap(t *testing.T) {
	elements := []string{"tree", "rose", "moon", "star", "house", "ship", "bird", "horse", "dog", "cat"}
	themes := []string{"nature", "night", "love"}
	emotions := []string{"melancholy", "joy"}

	set := MapToQCodes(elements, themes, emotions)
	assert.LessOrEqual(t, len(set), MaxQCodes)
}

func TestMapToQCodes_Precedence(t *testing.T) {
	// Enough concrete nouns to fill the cap: theme and emotion codes
	// must be the ones truncated away.
	elements := []string{"tree", "rose", "moon", "star", "house", "ship", "bird", "horse"}
	set := MapToQCodes(elements, []string{"war"}, []string{"grief"})

	assert.Len(t, set, MaxQCodes)
	assert.True(t, set.Contains("Q10884"), "tree should survive truncation")
	assert.False(t, set.Contains("Q198"), "war theme code should be truncated")
	assert.False(t, set.Contains("Q203"), "grief emotion code should be truncated")
}

func TestMapToQCodes_Deduplicates(t *testing.T) {
	set := MapToQCodes(nil, []string{"love"}, []string{"love"})

	seen := make(map[string]int)
	for _, code := range set {
		seen[code]++
	}
	for code, n := range seen {
		assert.Equal(t, 1, n, "duplicate code %s", code)
	}
}

func TestMapToQCodes_Idempotent(t *testing.T) {
	elements := []string{"tree", "moon"}
	themes := []string{"nature", "night"}
	emotions := []string{"melancholy"}

	first := MapToQCodes(elements, themes, emotions)
	second := MapToQCodes(elements, themes, emotions)
	assert.Equal(t, first, second)
}

func TestMapToQCodes_UnmappedTermsDropped(t *testing.T) {
	set := MapToQCodes([]string{"zeugma"}, []string{"cartography"}, []string{"ennui"})
	assert.Empty(t, set)
}

func TestObjectQCodes_FallsBackToThemeKeywords(t *testing.T) {
	// "daffodil" has no object entry but appears in the flowers keywords.
	codes := ObjectQCodes("daffodil")
	assert.Contains(t, codes, "Q506")
}

func TestEmotionGenres(t *testing.T) {
	genres := EmotionGenres([]string{"melancholy", "grief", "unknown"})
	assert.Contains(t, genres, "Q40446")
	assert.Contains(t, genres, "Q134307")
}

func TestFallbackBucketsExist(t *testing.T) {
	assert.NotEmpty(t, Themes["general"].QCodes)
	assert.NotEmpty(t, Emotions["neutral"].QCodes)
}
