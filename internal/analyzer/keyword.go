package analyzer

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/evgraf/culturebot/internal/concepts"
)

// KeywordStrategy scans poem text against static keyword tables. It is
// fast, local, and always produces a result.
type KeywordStrategy struct {
	themePatterns   map[string]*regexp.Regexp
	emotionPatterns map[string]*regexp.Regexp
}

// NewKeywordStrategy compiles the detection patterns from the concept
// tables.
func NewKeywordStrategy() *KeywordStrategy {
	s := &KeywordStrategy{
		themePatterns:   make(map[string]*regexp.Regexp),
		emotionPatterns: make(map[string]*regexp.Regexp),
	}
	for theme, mapping := range concepts.Themes {
		if len(mapping.Keywords) == 0 {
			continue
		}
		s.themePatterns[theme] = compileKeywords(mapping.Keywords)
	}
	for emotion, mapping := range concepts.Emotions {
		if len(mapping.Keywords) == 0 {
			continue
		}
		s.emotionPatterns[emotion] = compileKeywords(mapping.Keywords)
	}
	return s
}

// Name returns the strategy name.
func (s *KeywordStrategy) Name() string {
	return "keyword"
}

// Analyze scans the poem against the keyword tables. It never fails.
func (s *KeywordStrategy) Analyze(_ context.Context, title, text string) (*PoemAnalysis, error) {
	full := strings.TrimSpace(title + "\n" + text)
	lower := strings.ToLower(full)

	themes := s.detect(s.themePatterns, lower)
	emotions := s.detect(s.emotionPatterns, lower)

	var primary, secondary []string
	if len(emotions) > 0 {
		split := len(emotions)
		if split > 2 {
			split = 2
		}
		primary = emotions[:split]
		secondary = emotions[split:]
	}

	analysis := &PoemAnalysis{
		Themes:            themes,
		PrimaryEmotions:   primary,
		SecondaryEmotions: secondary,
		EmotionalTone:     toneForEmotions(primary),
		Narrative:         extractNarrative(lower),
		ConcreteElements:  extractConcreteElements(lower),
		ColorReferences:   extractColors(lower),
		Intensity:         estimateIntensity(lower),
		Source:            "keyword",
	}
	return analysis, nil
}

// detect returns matched labels ordered by match count descending, label
// ascending for determinism.
func (s *KeywordStrategy) detect(patterns map[string]*regexp.Regexp, text string) []string {
	type hit struct {
		label string
		count int
	}
	var hits []hit
	for label, pattern := range patterns {
		matches := pattern.FindAllString(text, -1)
		if len(matches) > 0 {
			hits = append(hits, hit{label: label, count: len(matches)})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].count != hits[j].count {
			return hits[i].count > hits[j].count
		}
		return hits[i].label < hits[j].label
	})
	labels := make([]string, len(hits))
	for i, h := range hits {
		labels[i] = h.label
	}
	return labels
}

// toneForEmotions derives an emotional tone from the dominant emotion.
var emotionTones = map[string]string{
	"joy":        "celebratory",
	"love":       "playful",
	"peace":      "contemplative",
	"hope":       "celebratory",
	"grief":      "melancholic",
	"melancholy": "melancholic",
	"despair":    "serious",
	"nostalgia":  "contemplative",
}

func toneForEmotions(primary []string) string {
	if len(primary) == 0 {
		return ""
	}
	return emotionTones[primary[0]]
}

var (
	naturalObjectPattern = regexp.MustCompile(`\b(tree|trees|forest|woods?|leaf|leaves|flowers?|roses?|daffodils?|grass|mountains?|hills?|rivers?|lakes?|oceans?|seas?|sky|skies|clouds?|stars?|moon|sun|wind|rain|snow|ice|earth|stones?|rocks?|waves?|fields?|meadows?)\b`)
	manMadePattern       = regexp.MustCompile(`\b(houses?|buildings?|church(es)?|castles?|bridges?|roads?|streets?|doors?|windows?|walls?|roofs?|towers?|ships?|boats?|books?|tables?|chairs?|beds?|bells?|swords?|lamps?|mirrors?|clocks?)\b`)
	livingBeingPattern   = regexp.MustCompile(`\b(man|men|woman|women|child|children|boys?|girls?|people|soldiers?|kings?|queens?|birds?|dogs?|cats?|horses?|cows?|sheep|lambs?|wolves|wolf|lions?|eagles?|swans?|butterfl(y|ies))\b`)
	colorPattern         = regexp.MustCompile(`\b(red|blue|green|yellow|gold|golden|silver|white|black|grey|gray|purple|violet|crimson|azure|scarlet|brown|pink|orange)\b`)
	exclamationPattern   = regexp.MustCompile(`[!]`)
)

// extractConcreteElements pulls and categorizes concrete nouns by pattern.
func extractConcreteElements(lower string) ConcreteElements {
	return ConcreteElements{
		NaturalObjects: singularize(dedupeMatches(naturalObjectPattern, lower)),
		ManMadeObjects: singularize(dedupeMatches(manMadePattern, lower)),
		LivingBeings:   singularize(dedupeMatches(livingBeingPattern, lower)),
	}
}

func extractColors(lower string) []string {
	return dedupeMatches(colorPattern, lower)
}

// narrative keyword tables; first match wins per field.
var (
	settingKeywords = []struct {
		label    string
		keywords []string
	}{
		{"indoor", []string{"room", "house", "home", "kitchen", "bedroom", "hall", "inside", "indoors", "hearth"}},
		{"seascape", []string{"ocean", "sea", "shore", "beach", "wave", "sail", "ship"}},
		{"urban", []string{"city", "town", "street", "building", "crowd"}},
		{"rural", []string{"countryside", "village", "farm", "meadow", "pastoral"}},
		{"outdoor", []string{"garden", "field", "forest", "mountain", "outside", "outdoors", "road", "hill"}},
		{"celestial", []string{"heaven", "celestial", "firmament"}},
	}
	timeKeywords = []struct {
		label    string
		keywords []string
	}{
		{"dawn", []string{"dawn", "sunrise", "morning"}},
		{"dusk", []string{"dusk", "sunset", "evening", "twilight"}},
		{"night", []string{"night", "midnight", "moonlight", "starlight", "moon", "stars"}},
		{"day", []string{"noon", "afternoon", "daylight", "sunny", "midday"}},
	}
	seasonKeywords = []struct {
		label    string
		keywords []string
	}{
		{"spring", []string{"spring", "blossom", "bloom", "bud"}},
		{"summer", []string{"summer", "august", "july"}},
		{"autumn", []string{"autumn", "fall", "harvest", "falling leaves"}},
		{"winter", []string{"winter", "snow", "frost", "ice"}},
	}
	weatherKeywords = []struct {
		label    string
		keywords []string
	}{
		{"stormy", []string{"storm", "thunder", "gale", "tempest"}},
		{"rainy", []string{"rain", "drizzle", "shower"}},
		{"snowy", []string{"snow", "blizzard"}},
		{"foggy", []string{"fog", "mist", "haze"}},
		{"clear", []string{"clear", "bright", "cloudless"}},
	}
)

// extractNarrative derives the structured narrative fields from keyword
// presence. Fields with no evidence stay "ambiguous" (season: "timeless").
func extractNarrative(lower string) Narrative {
	n := Narrative{
		Setting:       "ambiguous",
		TimeOfDay:     "ambiguous",
		Season:        "timeless",
		HumanPresence: "absent",
		Weather:       "ambiguous",
	}

	words := wordSet(lower)

	for _, entry := range settingKeywords {
		if containsAny(words, entry.keywords) {
			n.Setting = entry.label
			break
		}
	}
	for _, entry := range timeKeywords {
		if containsAny(words, entry.keywords) {
			n.TimeOfDay = entry.label
			break
		}
	}
	for _, entry := range seasonKeywords {
		if containsAny(words, entry.keywords) {
			n.Season = entry.label
			break
		}
	}
	for _, entry := range weatherKeywords {
		if containsAny(words, entry.keywords) {
			n.Weather = entry.label
			break
		}
	}

	firstPerson := words["i"] || words["me"] || words["my"] || words["myself"] || words["we"] || words["us"]
	humanNoun := containsAny(words, []string{"man", "men", "woman", "women", "child", "children", "people", "person"})
	switch {
	case firstPerson:
		n.HasProtagonist = true
		n.ProtagonistType = "human"
		n.HumanPresence = "central"
	case humanNoun:
		n.HasProtagonist = true
		n.ProtagonistType = "human"
		n.HumanPresence = "implied"
	default:
		n.ProtagonistType = "none"
	}

	return n
}

// estimateIntensity is a crude 1-10 heuristic: exclamation density and
// charged vocabulary push it up from a neutral 5.
func estimateIntensity(lower string) int {
	intensity := 5
	intensity += len(exclamationPattern.FindAllString(lower, -1))
	for _, w := range []string{"rage", "fury", "ecstasy", "agony", "scream", "burning", "wild"} {
		if strings.Contains(lower, w) {
			intensity++
		}
	}
	if intensity > 10 {
		intensity = 10
	}
	return intensity
}

func compileKeywords(keywords []string) *regexp.Regexp {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(escaped, "|") + `)\b`)
}

func dedupeMatches(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllString(text, -1)
	var out []string
	seen := make(map[string]bool)
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// singularize trims a plain plural "s" when the singular form is also a
// known object, so "trees" and "tree" collapse to one entry.
func singularize(nouns []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, noun := range nouns {
		singular := noun
		if strings.HasSuffix(noun, "s") && !strings.HasSuffix(noun, "ss") {
			trimmed := strings.TrimSuffix(noun, "s")
			if len(concepts.ObjectQCodes(trimmed)) > 0 {
				singular = trimmed
			}
		}
		if !seen[singular] {
			seen[singular] = true
			out = append(out, singular)
		}
	}
	return out
}

func wordSet(lower string) map[string]bool {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && r != '\''
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[strings.Trim(f, "'")] = true
	}
	return set
}

func containsAny(words map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			// Multi-word keywords need substring matching.
			continue
		}
		if words[kw] {
			return true
		}
	}
	return false
}
