package analyzer

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/evgraf/culturebot/internal/llm"
)

// SpendGuard gates paid API calls against a daily budget.
type SpendGuard interface {
	// Allow reports whether another paid call fits the budget.
	Allow(ctx context.Context) (bool, error)
	// Record adds a completed call's cost to the ledger.
	Record(ctx context.Context, usd float64) error
}

// aiAnalysis mirrors PoemAnalysis for the structured-output schema. Source
// is set by the strategy, not the model.
type aiAnalysis struct {
	PrimaryEmotions   []string         `json:"primary_emotions"`
	SecondaryEmotions []string         `json:"secondary_emotions"`
	EmotionalTone     string           `json:"emotional_tone" jsonschema:"enum=playful,enum=serious,enum=ironic,enum=melancholic,enum=celebratory,enum=contemplative"`
	Themes            []string         `json:"themes"`
	Narrative         Narrative        `json:"narrative"`
	ConcreteElements  ConcreteElements `json:"concrete_elements"`
	SymbolicObjects   []string         `json:"symbolic_objects"`
	ColorReferences   []string         `json:"color_references"`
	SpatialQuality    string           `json:"spatial_quality" jsonschema:"enum=enclosed,enum=open,enum=centered,enum=dispersed,enum=ambiguous"`
	Intensity         int              `json:"intensity" jsonschema:"minimum=1,maximum=10"`
}

var analysisSchema = llm.GenerateSchema[aiAnalysis]()

// OpenAIStrategy analyzes poems with the OpenAI Responses API using strict
// structured outputs.
type OpenAIStrategy struct {
	client *openai.Client
	model  string
	guard  SpendGuard
}

// OpenAIConfig holds configuration for the OpenAI strategy.
type OpenAIConfig struct {
	APIKey string
	Model  string
	// Guard is optional; when nil, calls are never budget-gated.
	Guard SpendGuard
}

// NewOpenAIStrategy creates the AI analysis strategy.
func NewOpenAIStrategy(cfg OpenAIConfig) (*OpenAIStrategy, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai strategy: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &OpenAIStrategy{client: &client, model: cfg.Model, guard: cfg.Guard}, nil
}

// Name returns the strategy name.
func (s *OpenAIStrategy) Name() string {
	return "ai"
}

// Analyze sends the poem to the model and decodes the structured result.
// A budget-exhausted guard yields ErrNoResult so the caller falls through
// to the keyword strategy.
func (s *OpenAIStrategy) Analyze(ctx context.Context, title, text string) (*PoemAnalysis, error) {
	if s.guard != nil {
		ok, err := s.guard.Allow(ctx)
		if err != nil {
			return nil, fmt.Errorf("check budget: %w", err)
		}
		if !ok {
			return nil, ErrNoResult
		}
	}

	input := fmt.Sprintf(AnalysisPromptTemplate, title, text)
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "PoemAnalysis",
			Schema:      analysisSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Structured poem analysis for artwork pairing"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           s.model,
		MaxOutputTokens: openai.Int(900),
		Instructions:    openai.String(AnalysisInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := llm.CallWithRetry(ctx, s.client, params)
	if err != nil {
		return nil, fmt.Errorf("analyze poem: %w", err)
	}

	if s.guard != nil {
		cost := llm.Cost(s.model, resp.Usage.InputTokens, resp.Usage.OutputTokens)
		if err := s.guard.Record(ctx, cost); err != nil {
			return nil, fmt.Errorf("record spend: %w", err)
		}
	}

	var out aiAnalysis
	if err := llm.DecodeJSON(resp.OutputText(), &out); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	return &PoemAnalysis{
		PrimaryEmotions:   out.PrimaryEmotions,
		SecondaryEmotions: out.SecondaryEmotions,
		EmotionalTone:     out.EmotionalTone,
		Themes:            out.Themes,
		Narrative:         out.Narrative,
		ConcreteElements:  out.ConcreteElements,
		SymbolicObjects:   out.SymbolicObjects,
		ColorReferences:   out.ColorReferences,
		SpatialQuality:    out.SpatialQuality,
		Intensity:         out.Intensity,
		Source:            "ai",
	}, nil
}
