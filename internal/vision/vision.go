// Package vision extracts visual attributes from artwork images with the
// OpenAI Responses API. Results are cached in-run by image URL, with an
// optional persistent cache behind the Store interface, so the same image
// is never paid for twice.
package vision

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/evgraf/culturebot/internal/llm"
)

const (
	defaultModel  = "gpt-4o"
	inRunCacheMax = 100
)

// Attributes are the structured visual properties of one artwork image.
type Attributes struct {
	DetectedObjects []string `json:"detected_objects"`
	DominantColors  []string `json:"dominant_colors"`
	ColorPalette    string   `json:"color_palette" jsonschema:"enum=warm,enum=cool,enum=muted,enum=vibrant,enum=monochrome"`
	Setting         string   `json:"setting" jsonschema:"enum=indoor,enum=outdoor,enum=abstract,enum=urban,enum=rural,enum=seascape,enum=celestial"`
	TimeOfDay       string   `json:"time_of_day" jsonschema:"enum=dawn,enum=day,enum=dusk,enum=night,enum=ambiguous"`
	Season          string   `json:"season" jsonschema:"enum=spring,enum=summer,enum=autumn,enum=winter,enum=none"`
	HumanPresence   string   `json:"human_presence" jsonschema:"enum=central,enum=peripheral,enum=absent"`
	Composition     string   `json:"composition" jsonschema:"enum=intimate,enum=expansive,enum=chaotic,enum=ordered"`
	Mood            string   `json:"mood" jsonschema:"enum=light,enum=dark,enum=dramatic,enum=serene,enum=turbulent,enum=joyful,enum=melancholic"`
	Style           string   `json:"style" jsonschema:"enum=realistic,enum=impressionistic,enum=abstract,enum=symbolic"`
}

var attributesSchema = llm.GenerateSchema[Attributes]()

// Store is a persistent vision-result cache. Implementations return
// found=false for a miss, not an error.
type Store interface {
	GetVision(ctx context.Context, imageURL string) (*Attributes, bool, error)
	PutVision(ctx context.Context, imageURL string, attrs *Attributes) error
}

// SpendGuard gates paid API calls against a daily budget.
type SpendGuard interface {
	Allow(ctx context.Context) (bool, error)
	Record(ctx context.Context, usd float64) error
}

// ErrBudgetExhausted is returned when the spend guard refuses a call.
var ErrBudgetExhausted = fmt.Errorf("vision: daily budget exhausted")

type inflightCall struct {
	done  chan struct{}
	attrs *Attributes
	err   error
}

// Analyzer performs vision analysis on artwork images.
type Analyzer struct {
	client *openai.Client
	model  string
	store  Store
	guard  SpendGuard

	mu         sync.Mutex
	cache      map[string]*Attributes
	cacheOrder []string
	inflight   map[string]*inflightCall
}

// Config holds configuration for the Analyzer.
type Config struct {
	APIKey string
	Model  string
	// Store is the optional persistent cache.
	Store Store
	// Guard is optional; when nil, calls are never budget-gated.
	Guard SpendGuard
}

// New creates a vision analyzer.
func New(cfg Config) (*Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vision: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Analyzer{
		client:   &client,
		model:    cfg.Model,
		store:    cfg.Store,
		guard:    cfg.Guard,
		cache:    make(map[string]*Attributes),
		inflight: make(map[string]*inflightCall),
	}, nil
}

// Enrich analyzes the artwork image at imageURL. Concurrent calls for the
// same URL share one API request.
func (a *Analyzer) Enrich(ctx context.Context, imageURL, title string) (*Attributes, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("vision: empty image URL")
	}

	a.mu.Lock()
	if attrs, ok := a.cache[imageURL]; ok {
		a.mu.Unlock()
		return attrs, nil
	}
	if call, ok := a.inflight[imageURL]; ok {
		a.mu.Unlock()
		select {
		case <-call.done:
			return call.attrs, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &inflightCall{done: make(chan struct{})}
	a.inflight[imageURL] = call
	a.mu.Unlock()

	attrs, err := a.analyze(ctx, imageURL, title)

	a.mu.Lock()
	delete(a.inflight, imageURL)
	if err == nil {
		a.storeInRun(imageURL, attrs)
	}
	a.mu.Unlock()

	call.attrs = attrs
	call.err = err
	close(call.done)
	return attrs, err
}

func (a *Analyzer) analyze(ctx context.Context, imageURL, title string) (*Attributes, error) {
	if a.store != nil {
		attrs, found, err := a.store.GetVision(ctx, imageURL)
		if err != nil {
			slog.Warn("vision cache lookup failed", "error", err)
		} else if found {
			slog.Debug("vision cache hit", "title", title)
			return attrs, nil
		}
	}

	if a.guard != nil {
		ok, err := a.guard.Allow(ctx)
		if err != nil {
			return nil, fmt.Errorf("check budget: %w", err)
		}
		if !ok {
			return nil, ErrBudgetExhausted
		}
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "VisualAttributes",
			Schema:      attributesSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Structured visual analysis of an artwork image"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           a.model,
		MaxOutputTokens: openai.Int(500),
		Instructions:    openai.String(VisionInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				{
					OfMessage: &responses.EasyInputMessageParam{
						Role: responses.EasyInputMessageRoleUser,
						Content: responses.EasyInputMessageContentUnionParam{
							OfInputItemContentList: responses.ResponseInputMessageContentListParam{
								{
									OfInputText: &responses.ResponseInputTextParam{
										Text: fmt.Sprintf(VisionPromptTemplate, title),
									},
								},
								{
									OfInputImage: &responses.ResponseInputImageParam{
										ImageURL: openai.String(imageURL),
										Detail:   responses.ResponseInputImageDetailHigh,
									},
								},
							},
						},
					},
				},
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := llm.CallWithRetry(ctx, a.client, params)
	if err != nil {
		return nil, fmt.Errorf("analyze image: %w", err)
	}

	if a.guard != nil {
		cost := llm.Cost(a.model, resp.Usage.InputTokens, resp.Usage.OutputTokens)
		if err := a.guard.Record(ctx, cost); err != nil {
			return nil, fmt.Errorf("record spend: %w", err)
		}
	}

	var attrs Attributes
	if err := llm.DecodeJSON(resp.OutputText(), &attrs); err != nil {
		return nil, fmt.Errorf("decode visual attributes: %w", err)
	}

	if a.store != nil {
		if err := a.store.PutVision(ctx, imageURL, &attrs); err != nil {
			slog.Warn("vision cache write failed", "error", err)
		}
	}
	return &attrs, nil
}

// storeInRun inserts into the bounded in-run cache, evicting oldest-first.
// Caller holds a.mu.
func (a *Analyzer) storeInRun(imageURL string, attrs *Attributes) {
	if _, exists := a.cache[imageURL]; !exists {
		a.cacheOrder = append(a.cacheOrder, imageURL)
	}
	a.cache[imageURL] = attrs

	if len(a.cache) > inRunCacheMax {
		oldest := a.cacheOrder[0]
		a.cacheOrder = a.cacheOrder[1:]
		delete(a.cache, oldest)
	}
}
