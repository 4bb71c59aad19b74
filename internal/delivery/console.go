package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConsoleWriter renders pairings as readable text, for interactive use.
type ConsoleWriter struct {
	out io.Writer
}

// NewConsoleWriter writes to stdout.
func NewConsoleWriter() *ConsoleWriter {
	return &ConsoleWriter{out: os.Stdout}
}

// Name returns the name of the delivery channel.
func (c *ConsoleWriter) Name() string { return "console" }

// Deliver prints the pairing.
func (c *ConsoleWriter) Deliver(ctx context.Context, payload Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(c.out, FormatPairing(payload))
	return err
}

// FormatPairing renders a pairing as display text.
func FormatPairing(payload Payload) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%s\nby %s\n\n", payload.Poem.Title, payload.Poem.Author)
	b.WriteString(payload.Poem.Text)
	b.WriteString("\n\n" + rule + "\n")

	cand := payload.Result.Candidate
	fmt.Fprintf(&b, "Paired artwork: %s", cand.Title)
	if cand.Artist != "" {
		fmt.Fprintf(&b, " — %s", cand.Artist)
	}
	if cand.Year != 0 {
		fmt.Fprintf(&b, " (%d)", cand.Year)
	}
	b.WriteString("\n")
	if cand.ImageURL != "" {
		fmt.Fprintf(&b, "Image: %s\n", cand.ImageURL)
	}
	fmt.Fprintf(&b, "Status: %s  Score: %.2f\n", payload.Result.Status, payload.Result.Score.Value)

	if payload.Explanation != "" {
		b.WriteString("\n" + payload.Explanation + "\n")
	}
	return b.String()
}
