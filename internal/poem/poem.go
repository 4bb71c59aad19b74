// Package poem fetches public-domain poems from the PoetryDB API.
package poem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://poetrydb.org"
	defaultMaxWords = 200
	userAgent       = "culturebot/1.0 (+https://github.com/evgraf/culturebot)"
)

// Poem is one public-domain poem.
type Poem struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	LineCount int    `json:"line_count"`
	WordCount int    `json:"word_count"`
	Source    string `json:"source"`
}

// Fetcher retrieves random poems from PoetryDB.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	maxWords   int
}

// Config holds configuration for the Fetcher.
type Config struct {
	// BaseURL overrides the PoetryDB endpoint, mainly for tests.
	BaseURL string
	// MaxWords caps poem length; longer poems are skipped. Zero means the
	// default of 200.
	MaxWords int
}

// NewFetcher creates a PoetryDB fetcher.
func NewFetcher(cfg Config) *Fetcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxWords := cfg.MaxWords
	if maxWords <= 0 {
		maxWords = defaultMaxWords
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxWords: maxWords,
	}
}

// rawPoem is the PoetryDB wire format.
type rawPoem struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Lines  []string `json:"lines"`
}

// FetchRandom fetches one random poem within the word limit, retrying with
// fresh random batches until it finds one or exhausts its attempts.
func (f *Fetcher) FetchRandom(ctx context.Context) (*Poem, error) {
	poems, err := f.FetchRandomBatch(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(poems) == 0 {
		return nil, fmt.Errorf("no poem under %d words found", f.maxWords)
	}
	return &poems[0], nil
}

// FetchRandomBatch fetches count random poems within the word limit.
// Overlong poems are skipped and replaced by further random draws; fewer
// than count poems may be returned if the attempts run out.
func (f *Fetcher) FetchRandomBatch(ctx context.Context, count int) ([]Poem, error) {
	if count <= 0 {
		return nil, nil
	}

	const maxAttempts = 10
	batchSize := count * 2
	if batchSize > 10 {
		batchSize = 10
	}

	var valid []Poem
	for attempt := 1; attempt <= maxAttempts && len(valid) < count; attempt++ {
		n := count
		if attempt > 1 {
			n = batchSize
		}

		batch, err := f.fetchRandom(ctx, n)
		if err != nil {
			if attempt == maxAttempts && len(valid) == 0 {
				return nil, err
			}
			slog.Warn("poem fetch attempt failed", "attempt", attempt, "error", err)
			continue
		}

		for _, p := range batch {
			if len(valid) >= count {
				break
			}
			if p.WordCount > f.maxWords {
				slog.Debug("skipping overlong poem", "title", p.Title, "words", p.WordCount, "limit", f.maxWords)
				continue
			}
			valid = append(valid, p)
		}
	}

	if len(valid) < count {
		slog.Warn("fewer poems than requested within word limit", "requested", count, "found", len(valid), "limit", f.maxWords)
	}
	return valid, nil
}

func (f *Fetcher) fetchRandom(ctx context.Context, count int) ([]Poem, error) {
	url := fmt.Sprintf("%s/random/%d", f.baseURL, count)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch random poems: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PoetryDB returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var raw []rawPoem
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode PoetryDB response: %w", err)
	}

	poems := make([]Poem, 0, len(raw))
	for _, r := range raw {
		poems = append(poems, formatPoem(r))
	}
	return poems, nil
}

func formatPoem(r rawPoem) Poem {
	text := strings.Join(r.Lines, "\n")
	title := cleanText(r.Title)
	if title == "" {
		title = "Untitled"
	}
	author := cleanText(r.Author)
	if author == "" {
		author = "Unknown Author"
	}

	return Poem{
		Title:     title,
		Author:    author,
		Text:      text,
		LineCount: len(r.Lines),
		WordCount: len(strings.Fields(text)),
		Source:    "PoetryDB",
	}
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}
