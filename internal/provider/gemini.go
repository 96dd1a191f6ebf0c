package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"glossa/internal/models"
)

// GeminiProvider implements the Provider contract against the Google Gemini
// API, prompting for the same JSON shapes as the OpenAI provider.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed provider. Falls back to the
// GEMINI_API_KEY environment variable when apiKey is empty.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not provided")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	log.Infof("Gemini provider initialized with model %s", model)
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Close() error { return p.client.Close() }

func (p *GeminiProvider) complete(ctx context.Context, system, user string) (string, error) {
	gm := p.client.GenerativeModel(p.model)
	gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	var temperature float32
	gm.Temperature = &temperature

	resp, err := gm.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}
	var reply string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply += string(text)
		}
	}
	return reply, nil
}

func (p *GeminiProvider) RecognizeLanguage(ctx context.Context, text string, hints map[models.LanguageCode]float64, constraints []models.LanguageCode) (*models.LanguageCode, map[models.LanguageCode]float64, error) {
	system := `Identify the dominant natural language of the user's text. Reply with JSON only: {"dominant": "<bcp47 or empty>", "hypotheses": {"<bcp47>": <confidence 0..1>, ...}} with at most 3 hypotheses.`
	if len(constraints) > 0 {
		system += fmt.Sprintf(" Only consider these languages: %v.", constraints)
	}
	if len(hints) > 0 {
		system += fmt.Sprintf(" Prior boosts by language: %v.", hints)
	}
	reply, err := p.complete(ctx, system, text)
	if err != nil {
		return nil, nil, err
	}
	return parseLanguageReply(reply)
}

func (p *GeminiProvider) AvailableSchemes(ctx context.Context, granularity models.TokenGranularity, language models.LanguageCode) (map[models.TagScheme]struct{}, error) {
	return allSchemes(), nil
}

func (p *GeminiProvider) RequestAsset(ctx context.Context, language models.LanguageCode, scheme models.TagScheme) (models.AssetOutcome, error) {
	return models.AssetOutcomeAvailable, nil
}

func (p *GeminiProvider) Tag(ctx context.Context, text string, granularity models.TokenGranularity, scheme models.TagScheme, opts models.TokenizeOptions) ([]TokenTag, error) {
	reply, err := p.complete(ctx, tagSystemPrompt(granularity, scheme, opts), text)
	if err != nil {
		return nil, err
	}
	var wire []wireTokenTag
	if err := decodeJSONBlock(reply, &wire); err != nil {
		return nil, err
	}
	return alignTokenTags(text, wire), nil
}

func (p *GeminiProvider) Hypotheses(ctx context.Context, text string, position int, granularity models.TokenGranularity, scheme models.TagScheme, maxK int) (map[models.Tag]float64, error) {
	word := wordAt(text, position)
	if word == "" {
		return map[models.Tag]float64{}, nil
	}
	system := fmt.Sprintf(`Rank up to %d candidate %s tags for the given token with confidences in [0,1]. Reply with JSON only: {"<tag>": <confidence>, ...}.`, maxK, scheme)
	reply, err := p.complete(ctx, system, fmt.Sprintf("Token: %q\nContext: %s", word, text))
	if err != nil {
		return nil, err
	}
	var wire map[string]float64
	if err := decodeJSONBlock(reply, &wire); err != nil {
		return nil, err
	}
	hyps := make(map[models.Tag]float64, len(wire))
	for tag, conf := range wire {
		if len(hyps) == maxK {
			break
		}
		hyps[models.Tag(tag)] = conf
	}
	return hyps, nil
}

var _ Provider = (*GeminiProvider)(nil)
