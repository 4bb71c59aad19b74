package matcher

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/evgraf/culturebot/internal/analyzer"
	"github.com/evgraf/culturebot/internal/concepts"
	"github.com/evgraf/culturebot/internal/vision"
	"github.com/evgraf/culturebot/internal/wikidata"
)

// Base weights of the stage-2 sum. When a visual term is present the base
// weights scale by visualRescale so the visual term takes visualWeight.
const (
	concreteWeight = 0.35
	themeWeight    = 0.30
	emotionWeight  = 0.25
	genreWeight    = 0.10

	visualWeight  = 0.10
	visualRescale = 1.0 - visualWeight

	softConflictPenalty = 0.3

	nounBonus    = 0.20
	settingBonus = 0.15
	timeBonus    = 0.10
	seasonBonus  = 0.10
	colorBonus   = 0.05
	depictsBonus = 0.50
)

// Scorer evaluates candidates against one poem analysis. It is stateless
// and safe for concurrent use.
type Scorer struct{}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score evaluates one candidate. visual may be nil when no vision analysis
// ran for the candidate. The function is pure: same inputs, same score.
func (s *Scorer) Score(poem analyzer.PoemAnalysis, cand wikidata.Candidate, visual *vision.Attributes, lifetime Lifetime) Score {
	if reason, excluded := checkExclusions(poem, cand, visual); excluded {
		return ExcludedScore(reason)
	}

	breakdown := Breakdown{
		Concrete: scoreConcrete(poem, cand, visual),
		Theme:    scoreTheme(poem, cand),
		Emotion:  scoreEmotion(poem, cand),
		Genre:    scoreGenre(poem, cand),
	}

	raw := breakdown.Concrete*concreteWeight +
		breakdown.Theme*themeWeight +
		breakdown.Emotion*emotionWeight +
		breakdown.Genre*genreWeight

	if visual != nil {
		breakdown.HasVisual = true
		breakdown.Visual = scoreVisual(poem, visual)
		raw = raw*visualRescale + breakdown.Visual*visualWeight
	}

	breakdown.Bonuses = specificityBonuses(poem, cand, visual)
	for _, b := range breakdown.Bonuses {
		raw += b.Value
	}

	breakdown.Penalties = softConflicts(poem, visual)
	for _, p := range breakdown.Penalties {
		raw -= p.Value
	}

	value := raw
	if value > 1.0 {
		value = 1.0
	}
	if value < 0.0 {
		value = 0.0
	}

	return Score{
		Value:     value,
		Raw:       raw,
		Era:       EraScore(cand.Year, lifetime),
		Breakdown: breakdown,
	}
}

// checkExclusions runs the stage-1 hard constraints.
func checkExclusions(poem analyzer.PoemAnalysis, cand wikidata.Candidate, visual *vision.Attributes) (string, bool) {
	candidateCodes := append([]string(nil), cand.Subjects...)
	if cand.Genre != "" {
		candidateCodes = append(candidateCodes, cand.Genre)
	}

	if excluded := concepts.HardExclusions[poem.EmotionalTone]; len(excluded) > 0 {
		for _, code := range excluded {
			if containsString(candidateCodes, code) {
				return fmt.Sprintf("tone %q conflicts with subject %s", poem.EmotionalTone, code), true
			}
		}
	}

	for _, emotion := range poem.PrimaryEmotions {
		for _, code := range concepts.EmotionExclusions[emotion] {
			if containsString(candidateCodes, code) {
				return fmt.Sprintf("emotion %q conflicts with subject %s", emotion, code), true
			}
		}
	}

	if visual != nil {
		if poem.Narrative.HumanPresence == "central" && visual.HumanPresence == "absent" {
			return "poem centers a figure but the artwork shows none", true
		}
		poemTime, visionTime := poem.Narrative.TimeOfDay, visual.TimeOfDay
		if (poemTime == "dawn" && visionTime == "night") || (poemTime == "night" && visionTime == "dawn") {
			return fmt.Sprintf("time of day %q is irreconcilable with %q", poemTime, visionTime), true
		}
	}

	return "", false
}

// scoreConcrete rates concrete-element overlap in [0,1]. Direct noun
// matches dominate, narrative-field matches contribute less, spatial
// alignment least.
func scoreConcrete(poem analyzer.PoemAnalysis, cand wikidata.Candidate, visual *vision.Attributes) float64 {
	objects := poem.ConcreteElements.Objects()

	noun := 0.0
	if len(objects) > 0 {
		matches := 0
		for _, obj := range objects {
			if objectMatches(obj, cand, visual) {
				matches++
			}
		}
		noun = float64(matches) / 3.0
		if noun > 1.0 {
			noun = 1.0
		}
	}

	narrative := 0.0
	if visual != nil {
		fields := 0.0
		if poem.Narrative.Setting != "" && poem.Narrative.Setting != "ambiguous" && poem.Narrative.Setting == visual.Setting {
			fields += 1
		}
		if poem.Narrative.TimeOfDay != "" && poem.Narrative.TimeOfDay != "ambiguous" && poem.Narrative.TimeOfDay == visual.TimeOfDay {
			fields += 1
		}
		if poem.Narrative.Season != "" && poem.Narrative.Season != "timeless" && poem.Narrative.Season == visual.Season {
			fields += 1
		}
		narrative = fields / 3.0
	}

	spatial := 0.0
	if visual != nil && poem.SpatialQuality != "" {
		if concepts.SpatialCompositions[poem.SpatialQuality] == visual.Composition {
			spatial = 1.0
		}
	}

	return noun*0.55 + narrative*0.30 + spatial*0.15
}

// objectMatches reports whether a poem noun appears in the candidate's
// declared subjects (via Q-code mapping) or in the vision-detected
// objects.
func objectMatches(noun string, cand wikidata.Candidate, visual *vision.Attributes) bool {
	for _, code := range concepts.ObjectQCodes(noun) {
		if containsString(cand.Subjects, code) {
			return true
		}
	}
	if visual != nil {
		lowered := strings.ToLower(noun)
		for _, detected := range visual.DetectedObjects {
			d := strings.ToLower(detected)
			if d == lowered || strings.Contains(d, lowered) || strings.Contains(lowered, d) {
				return true
			}
		}
	}
	return false
}

// scoreTheme rates the fraction of poem themes present among candidate
// subjects, mapped through the theme Q-code tables.
func scoreTheme(poem analyzer.PoemAnalysis, cand wikidata.Candidate) float64 {
	if len(poem.Themes) == 0 || len(cand.Subjects) == 0 {
		return 0.0
	}

	matched := 0
	for _, theme := range poem.Themes {
		for _, code := range concepts.ThemeQCodes(theme) {
			if containsString(cand.Subjects, code) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(poem.Themes))
}

// scoreEmotion rates emotional alignment, weighting primary emotions 3:2
// against secondary.
func scoreEmotion(poem analyzer.PoemAnalysis, cand wikidata.Candidate) float64 {
	candidateCodes := append([]string(nil), cand.Subjects...)
	if cand.Genre != "" {
		candidateCodes = append(candidateCodes, cand.Genre)
	}

	score := 0.0
	if emotionsIntersect(poem.PrimaryEmotions, candidateCodes) {
		score += 0.6
	}
	if emotionsIntersect(poem.SecondaryEmotions, candidateCodes) {
		score += 0.4
	}
	return score
}

func emotionsIntersect(emotions, candidateCodes []string) bool {
	for _, emotion := range emotions {
		for _, code := range concepts.EmotionQCodes(emotion) {
			if containsString(candidateCodes, code) {
				return true
			}
		}
	}
	return false
}

// scoreGenre rates whether the candidate's genre suits the poem's tone.
// A genre outside the tone's set counts half; no genre at all counts
// nothing.
func scoreGenre(poem analyzer.PoemAnalysis, cand wikidata.Candidate) float64 {
	if cand.Genre == "" {
		return 0.0
	}
	if containsString(concepts.ToneGenres[poem.EmotionalTone], cand.Genre) {
		return 1.0
	}
	return 0.5
}

// scoreVisual rates the overlap between the poem's concrete vocabulary
// and what the vision pass actually saw.
func scoreVisual(poem analyzer.PoemAnalysis, visual *vision.Attributes) float64 {
	if len(visual.DetectedObjects) == 0 {
		return 0.0
	}

	shared := 0
	for _, obj := range poem.ConcreteElements.Objects() {
		lowered := strings.ToLower(obj)
		for _, detected := range visual.DetectedObjects {
			d := strings.ToLower(detected)
			if d == lowered || strings.Contains(d, lowered) || strings.Contains(lowered, d) {
				shared++
				break
			}
		}
	}

	score := float64(shared) / 3.0
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func specificityBonuses(poem analyzer.PoemAnalysis, cand wikidata.Candidate, visual *vision.Attributes) []Factor {
	var bonuses []Factor

	for _, obj := range poem.ConcreteElements.Objects() {
		if objectMatches(obj, cand, visual) {
			bonuses = append(bonuses, Factor{Name: "direct noun match: " + obj, Value: nounBonus})
			break
		}
	}

	if visual != nil {
		if poem.Narrative.Setting != "" && poem.Narrative.Setting != "ambiguous" && poem.Narrative.Setting == visual.Setting {
			bonuses = append(bonuses, Factor{Name: "setting match: " + visual.Setting, Value: settingBonus})
		}
		if poem.Narrative.TimeOfDay != "" && poem.Narrative.TimeOfDay != "ambiguous" && poem.Narrative.TimeOfDay == visual.TimeOfDay {
			bonuses = append(bonuses, Factor{Name: "time of day match: " + visual.TimeOfDay, Value: timeBonus})
		}
		if poem.Narrative.Season != "" && poem.Narrative.Season != "timeless" && poem.Narrative.Season == visual.Season {
			bonuses = append(bonuses, Factor{Name: "season match: " + visual.Season, Value: seasonBonus})
		}
		if color := sharedColor(poem.ColorReferences, visual.DominantColors); color != "" {
			bonuses = append(bonuses, Factor{Name: "color match: " + color, Value: colorBonus})
		}
	}

	if cand.DirectDepicts {
		bonuses = append(bonuses, Factor{Name: "directly depicts subject", Value: depictsBonus})
	}

	return bonuses
}

func sharedColor(poemColors, visionColors []string) string {
	for _, pc := range poemColors {
		for _, vc := range visionColors {
			if strings.EqualFold(pc, vc) {
				return strings.ToLower(pc)
			}
		}
	}
	return ""
}

// softConflicts penalizes narrative disagreements without excluding.
func softConflicts(poem analyzer.PoemAnalysis, visual *vision.Attributes) []Factor {
	if visual == nil {
		return nil
	}

	var penalties []Factor
	checks := []struct {
		label  string
		poem   string
		vision string
		skip   string
	}{
		{"setting", poem.Narrative.Setting, visual.Setting, "ambiguous"},
		{"time of day", poem.Narrative.TimeOfDay, visual.TimeOfDay, "ambiguous"},
		{"season", poem.Narrative.Season, visual.Season, "timeless"},
	}

	for _, c := range checks {
		if c.poem == "" || c.poem == c.skip || c.vision == "" || c.vision == "ambiguous" || c.vision == "none" {
			continue
		}
		if containsString(concepts.SoftConflicts[c.poem], c.vision) {
			penalties = append(penalties, Factor{
				Name:  fmt.Sprintf("%s conflict: %s vs %s", c.label, c.poem, c.vision),
				Value: softConflictPenalty,
			})
		}
	}
	return penalties
}

// ScoreAll scores every candidate on a bounded worker pool. visuals maps
// image URL to vision attributes for enriched candidates; missing entries
// score without a visual term. Result order follows retrieval order.
func (s *Scorer) ScoreAll(ctx context.Context, poem analyzer.PoemAnalysis, candidates []wikidata.Candidate, visuals map[string]*vision.Attributes, lifetime Lifetime) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(candidates))

	const maxWorkers = 8
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, cand := range candidates {
		wg.Add(1)
		go func(idx int, cand wikidata.Candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				scored[idx] = ScoredCandidate{Candidate: cand, Score: ExcludedScore("scoring cancelled"), Index: idx}
				return
			default:
			}

			scored[idx] = ScoredCandidate{
				Candidate: cand,
				Score:     s.Score(poem, cand, visuals[cand.ImageURL], lifetime),
				Index:     idx,
			}
		}(i, cand)
	}
	wg.Wait()

	return scored
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
