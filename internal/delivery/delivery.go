// Package delivery sends finished pairings to their destinations:
// email, local JSON files, or the console. It consumes the match
// result and explanation text only and never reaches back into the
// pipeline.
package delivery

import (
	"context"
	"time"

	"github.com/evgraf/culturebot/internal/matcher"
	"github.com/evgraf/culturebot/internal/poem"
)

// Payload is one finished pairing ready for delivery.
type Payload struct {
	RunID       string              `json:"run_id"`
	Date        time.Time           `json:"date"`
	Poem        poem.Poem           `json:"poem"`
	Result      matcher.MatchResult `json:"result"`
	Explanation string              `json:"explanation,omitempty"`
}

// Deliverer is the interface for delivering pairings.
type Deliverer interface {
	// Name returns the name of the delivery channel.
	Name() string

	// Deliver sends a pairing.
	Deliver(ctx context.Context, payload Payload) error
}
