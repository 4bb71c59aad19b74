// Package explain renders a human-readable account of why a poem and an
// artwork were paired. It is pure presentation over the already-computed
// score breakdown: no new scoring, no I/O.
package explain

import (
	"fmt"
	"strings"

	"github.com/evgraf/culturebot/internal/matcher"
)

// maxConnections bounds the listed connections to the strongest few.
const maxConnections = 5

// Explanation is the structured account of one pairing.
type Explanation struct {
	Assessment  string   `json:"assessment"`
	Summary     string   `json:"summary"`
	Connections []string `json:"connections"`
	Tensions    []string `json:"tensions,omitempty"`
}

// Explain describes a match result. Excluded scores never reach here: the
// selector only emits non-excluded results.
func Explain(result matcher.MatchResult) Explanation {
	assessment := Assessment(result.Score.Value)

	e := Explanation{
		Assessment:  assessment,
		Connections: findConnections(result),
		Tensions:    findTensions(result),
	}
	e.Summary = buildSummary(result, assessment, e.Connections)
	return e
}

// Assessment buckets a score into a qualitative label, monotonic with the
// score.
func Assessment(score float64) string {
	switch {
	case score >= 0.8:
		return "excellent"
	case score >= 0.6:
		return "strong"
	case score >= 0.4:
		return "moderate"
	case score >= 0.2:
		return "weak"
	default:
		return "poor"
	}
}

func findConnections(result matcher.MatchResult) []string {
	var connections []string
	breakdown := result.Score.Breakdown

	// Named bonuses carry the most specific evidence; surface them first.
	for _, bonus := range breakdown.Bonuses {
		switch {
		case strings.HasPrefix(bonus.Name, "direct noun match: "):
			noun := strings.TrimPrefix(bonus.Name, "direct noun match: ")
			connections = append(connections, fmt.Sprintf("The poem's %q appears in the artwork itself", noun))
		case strings.HasPrefix(bonus.Name, "setting match: "):
			setting := strings.TrimPrefix(bonus.Name, "setting match: ")
			connections = append(connections, fmt.Sprintf("Both share the same setting: %s", setting))
		case strings.HasPrefix(bonus.Name, "time of day match: "):
			timeOfDay := strings.TrimPrefix(bonus.Name, "time of day match: ")
			connections = append(connections, fmt.Sprintf("Both are set at %s", timeOfDay))
		case strings.HasPrefix(bonus.Name, "season match: "):
			season := strings.TrimPrefix(bonus.Name, "season match: ")
			connections = append(connections, fmt.Sprintf("Both evoke %s", season))
		case strings.HasPrefix(bonus.Name, "color match: "):
			color := strings.TrimPrefix(bonus.Name, "color match: ")
			connections = append(connections, fmt.Sprintf("The poem's %s echoes the artwork's palette", color))
		case bonus.Name == "directly depicts subject":
			connections = append(connections, "The artwork directly depicts a subject the poem names")
		}
	}

	if breakdown.Theme > 0 && len(result.Analysis.Themes) > 0 {
		connections = append(connections, fmt.Sprintf(
			"Shared thematic ground: %s", strings.Join(result.Analysis.Themes, ", ")))
	}
	if breakdown.Emotion > 0 && len(result.Analysis.PrimaryEmotions) > 0 {
		connections = append(connections, fmt.Sprintf(
			"The artwork's subject resonates with the poem's %s", strings.Join(result.Analysis.PrimaryEmotions, " and ")))
	}
	if breakdown.Genre >= 1.0 && result.Candidate.Genre != "" {
		connections = append(connections, fmt.Sprintf(
			"The genre suits the poem's %s tone", result.Analysis.EmotionalTone))
	}

	if len(connections) > maxConnections {
		connections = connections[:maxConnections]
	}
	return connections
}

// findTensions carries the soft conflicts through from the breakdown
// without recomputing them.
func findTensions(result matcher.MatchResult) []string {
	var tensions []string
	for _, penalty := range result.Score.Breakdown.Penalties {
		tensions = append(tensions, penalty.Name)
	}
	return tensions
}

func buildSummary(result matcher.MatchResult, assessment string, connections []string) string {
	artwork := result.Candidate.Title
	if result.Candidate.Artist != "" {
		artwork = fmt.Sprintf("%s by %s", artwork, result.Candidate.Artist)
	}

	switch result.Status {
	case matcher.StatusSample:
		return fmt.Sprintf("No artwork could be retrieved, so %s was drawn from the bundled collection.", artwork)
	case matcher.StatusFallbackRandom:
		return fmt.Sprintf("No candidate met the match threshold; %s was the closest available (a %s pairing).", artwork, assessment)
	}

	if len(connections) == 0 {
		return fmt.Sprintf("%s is a %s pairing for this poem.", artwork, assessment)
	}
	return fmt.Sprintf("%s is a %s pairing: %s.", artwork, assessment, strings.ToLower(connections[0][:1])+connections[0][1:])
}

// Render formats an explanation as display text.
func Render(e Explanation) string {
	var b strings.Builder
	b.WriteString(e.Summary)
	if len(e.Connections) > 0 {
		b.WriteString("\n\nConnections:\n")
		for _, c := range e.Connections {
			b.WriteString("  - ")
			b.WriteString(c)
			b.WriteString("\n")
		}
	}
	if len(e.Tensions) > 0 {
		b.WriteString("\nTensions:\n")
		for _, t := range e.Tensions {
			b.WriteString("  - ")
			b.WriteString(t)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
