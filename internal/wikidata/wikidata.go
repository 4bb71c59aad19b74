// Package wikidata retrieves artwork candidates from the Wikidata SPARQL
// endpoint. Retrieval prefers directly depicted subjects and progressively
// widens the search (broader subject property, more artwork types, looser
// fame filter) when earlier passes come back empty.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultEndpoint     = "https://query.wikidata.org/sparql"
	defaultTimeout      = 60 * time.Second
	defaultMaxSitelinks = 20
	defaultLimit        = 50
	maxQueryQCodes      = 10
	cacheMaxSize        = 50
	userAgent           = "culturebot/1.0 (+https://github.com/evgraf/culturebot)"
)

// Candidate is one retrieved artwork record. Fetched fresh per run, never
// persisted.
type Candidate struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Artist        string   `json:"artist"`
	Year          int      `json:"year"` // 0 when unknown
	Subjects      []string `json:"subjects"`
	Genre         string   `json:"genre"` // Q-code, "" when unknown
	Sitelinks     int      `json:"sitelinks"`
	ImageURL      string   `json:"image_url"`
	DirectDepicts bool     `json:"direct_depicts"`
	Medium        string   `json:"medium,omitempty"`
	Museum        string   `json:"museum,omitempty"`
	Source        string   `json:"source"`
}

// Client queries the Wikidata SPARQL endpoint.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	maxSitelinks int

	mu         sync.Mutex
	cache      map[string][]Candidate
	cacheOrder []string
}

// Config holds configuration for the Client.
type Config struct {
	// Endpoint overrides the SPARQL endpoint, mainly for tests.
	Endpoint string
	// Timeout bounds one SPARQL request. Zero means 60s.
	Timeout time.Duration
	// MaxSitelinks is the fame ceiling: artworks with this many Wikipedia
	// sitelinks or more are skipped so under-exposed work surfaces. Zero
	// means 20.
	MaxSitelinks int
}

// NewClient creates a Wikidata client.
func NewClient(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxSitelinks := cfg.MaxSitelinks
	if maxSitelinks <= 0 {
		maxSitelinks = defaultMaxSitelinks
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		endpoint:     endpoint,
		maxSitelinks: maxSitelinks,
		cache:        make(map[string][]Candidate),
	}
}

// defaultArtworkTypes are the most common depictive types: painting,
// photograph, sculpture.
var defaultArtworkTypes = []string{"Q3305213", "Q125191", "Q860861"}

// widenedArtworkTypes add drawings, prints, and illustrations for the last
// retrieval pass.
var widenedArtworkTypes = []string{"Q3305213", "Q125191", "Q860861", "Q42973", "Q93184", "Q1044167"}

// strategy is one retrieval pass. Passes run in order until one yields
// results.
type strategy struct {
	name          string
	property      string // subject property: P180 depicts, P921 main subject
	types         []string
	extraFame     int
	directDepicts bool
}

var strategies = []strategy{
	{name: "depicts", property: "P180", types: defaultArtworkTypes, extraFame: 0, directDepicts: true},
	{name: "main-subject", property: "P921", types: defaultArtworkTypes, extraFame: 10},
	{name: "widened", property: "P180", types: widenedArtworkTypes, extraFame: 20, directDepicts: true},
}

// FetchCandidates retrieves artworks whose subjects intersect qcodes. It
// never returns an error for service failures: exhausting every pass with
// nothing to show yields an empty slice so the caller's fallback path runs.
func (c *Client) FetchCandidates(ctx context.Context, qcodes []string, limit int) []Candidate {
	if len(qcodes) == 0 {
		return nil
	}
	if len(qcodes) > maxQueryQCodes {
		qcodes = qcodes[:maxQueryQCodes]
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	for _, strat := range strategies {
		key := cacheKey(strat.name, qcodes, limit)
		if cached, ok := c.cached(key); ok {
			slog.Debug("using cached candidate query", "strategy", strat.name)
			return cached
		}

		candidates, err := c.queryArtworks(ctx, strat, qcodes, limit)
		if err != nil {
			slog.Warn("candidate retrieval pass failed", "strategy", strat.name, "error", err)
			continue
		}
		if len(candidates) == 0 {
			slog.Debug("candidate retrieval pass empty, widening", "strategy", strat.name)
			continue
		}

		c.store(key, candidates)
		slog.Info("retrieved artwork candidates", "strategy", strat.name, "count", len(candidates))
		return candidates
	}

	slog.Warn("all candidate retrieval passes exhausted", "qcodes", len(qcodes))
	return nil
}

func (c *Client) queryArtworks(ctx context.Context, strat strategy, qcodes []string, limit int) ([]Candidate, error) {
	query := buildArtworkQuery(strat.property, strat.types, qcodes, c.maxSitelinks+strat.extraFame, limit)

	bindings, err := c.runQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	// One row per (artwork, subject); merge rows into candidates.
	byID := make(map[string]*Candidate)
	var order []string
	for _, row := range bindings {
		id := qIDFromURI(row["artwork"].Value)
		if id == "" {
			continue
		}

		cand, ok := byID[id]
		if !ok {
			cand = &Candidate{
				ID:            id,
				Title:         cleanText(row["artworkLabel"].Value),
				Artist:        cleanText(row["artistLabel"].Value),
				Genre:         qIDFromURI(row["genre"].Value),
				ImageURL:      HighResImageURL(row["image"].Value),
				DirectDepicts: strat.directDepicts,
				Source:        "wikidata",
			}
			if v := row["sitelinks"].Value; v != "" {
				cand.Sitelinks, _ = strconv.Atoi(v)
			}
			cand.Year = yearFromDate(row["inception"].Value)
			if cand.Title == "" || cand.Title == cand.ID {
				// Label service echoes the Q-id when no English label
				// exists; those records are useless downstream.
				continue
			}
			byID[id] = cand
			order = append(order, id)
		}

		if subject := qIDFromURI(row["subject"].Value); subject != "" && !containsString(cand.Subjects, subject) {
			cand.Subjects = append(cand.Subjects, subject)
		}
	}

	candidates := make([]Candidate, 0, len(order))
	for _, id := range order {
		candidates = append(candidates, *byID[id])
	}
	return candidates, nil
}

func buildArtworkQuery(property string, types, qcodes []string, maxSitelinks, limit int) string {
	return fmt.Sprintf(`SELECT ?artwork ?artworkLabel ?artistLabel ?image ?sitelinks ?subject ?genre ?inception WHERE {
  ?artwork wdt:P31 ?artworkType .
  FILTER(?artworkType IN (%s))
  ?artwork wdt:P18 ?image .
  ?artwork wikibase:sitelinks ?sitelinks .
  FILTER(?sitelinks < %d)
  ?artwork wdt:%s ?subject .
  FILTER(?subject IN (%s))
  OPTIONAL { ?artwork wdt:P136 ?genre . }
  OPTIONAL { ?artwork wdt:P571 ?inception . }
  OPTIONAL { ?artwork wdt:P170 ?artist . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}
ORDER BY RAND()
LIMIT %d`, wdList(types), maxSitelinks, property, wdList(qcodes), limit)
}

// PoetDates looks up a poet's birth and death years by exact English
// label. A living or undated poet reports death 0.
func (c *Client) PoetDates(ctx context.Context, name string) (birth, death int, err error) {
	query := fmt.Sprintf(`SELECT ?birth ?death WHERE {
  ?poet wdt:P31 wd:Q5 .
  ?poet rdfs:label %q@en .
  ?poet wdt:P569 ?birth .
  OPTIONAL { ?poet wdt:P570 ?death . }
}
LIMIT 1`, name)

	bindings, err := c.runQuery(ctx, query)
	if err != nil {
		return 0, 0, fmt.Errorf("poet dates for %q: %w", name, err)
	}
	if len(bindings) == 0 {
		return 0, 0, fmt.Errorf("poet %q not found", name)
	}

	row := bindings[0]
	birth = yearFromDate(row["birth"].Value)
	death = yearFromDate(row["death"].Value)
	if birth == 0 {
		return 0, 0, fmt.Errorf("poet %q has no usable birth date", name)
	}
	return birth, death, nil
}

// sparqlValue is one cell of a SPARQL JSON result row.
type sparqlValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlValue `json:"bindings"`
	} `json:"results"`
}

func (c *Client) runQuery(ctx context.Context, query string) ([]map[string]sparqlValue, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/sparql-results+json")

	const maxRetries = 2
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(1<<attempt) * time.Second):
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("SPARQL endpoint returned status %d", resp.StatusCode)
			continue
		}

		var parsed sparqlResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("decode SPARQL response: %w", err)
		}
		return parsed.Results.Bindings, nil
	}
	return nil, fmt.Errorf("SPARQL query failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *Client) cached(key string) ([]Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	candidates, ok := c.cache[key]
	return candidates, ok
}

func (c *Client) store(key string, candidates []Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[key]; !exists {
		c.cacheOrder = append(c.cacheOrder, key)
	}
	c.cache[key] = candidates

	// Evict the oldest quarter when full.
	if len(c.cache) > cacheMaxSize {
		evict := len(c.cacheOrder) / 4
		for _, old := range c.cacheOrder[:evict] {
			delete(c.cache, old)
		}
		c.cacheOrder = append([]string(nil), c.cacheOrder[evict:]...)
	}
}

func cacheKey(strategyName string, qcodes []string, limit int) string {
	sorted := append([]string(nil), qcodes...)
	sort.Strings(sorted)
	return strategyName + "|" + strings.Join(sorted, ",") + "|" + strconv.Itoa(limit)
}

var thumbPattern = regexp.MustCompile(`/thumb/([^/]+/[^/]+/[^/]+\.(?i:jpg|jpeg|png|gif))`)

// HighResImageURL converts a Wikimedia Commons thumbnail URL to the
// original upload; other URLs pass through unchanged.
func HighResImageURL(commonsURL string) string {
	if commonsURL == "" {
		return ""
	}
	if strings.Contains(commonsURL, "/thumb/") {
		if m := thumbPattern.FindStringSubmatch(commonsURL); m != nil {
			return "https://upload.wikimedia.org/wikipedia/commons/" + m[1]
		}
	}
	return commonsURL
}

func qIDFromURI(uri string) string {
	if uri == "" {
		return ""
	}
	idx := strings.LastIndexByte(uri, '/')
	if idx == -1 {
		return uri
	}
	return uri[idx+1:]
}

var yearPattern = regexp.MustCompile(`^[+-]?(\d{4})`)

func yearFromDate(value string) int {
	m := yearPattern.FindStringSubmatch(value)
	if m == nil {
		return 0
	}
	year, _ := strconv.Atoi(m[1])
	return year
}

func wdList(qcodes []string) string {
	parts := make([]string, len(qcodes))
	for i, q := range qcodes {
		parts[i] = "wd:" + q
	}
	return strings.Join(parts, ", ")
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
