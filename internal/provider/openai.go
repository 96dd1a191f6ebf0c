package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"glossa/internal/models"
)

// OpenAIProvider implements the Provider contract by prompting an OpenAI
// chat model for structured JSON.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI-backed provider. Falls back to the
// OPENAI_API_KEY environment variable when apiKey is empty.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not provided")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	log.Infof("OpenAI provider initialized with model %s", model)
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) RecognizeLanguage(ctx context.Context, text string, hints map[models.LanguageCode]float64, constraints []models.LanguageCode) (*models.LanguageCode, map[models.LanguageCode]float64, error) {
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

func (p *OpenAIProvider) AvailableSchemes(ctx context.Context, granularity models.TokenGranularity, language models.LanguageCode) (map[models.TagScheme]struct{}, error) {
	return allSchemes(), nil
}

func (p *OpenAIProvider) RequestAsset(ctx context.Context, language models.LanguageCode, scheme models.TagScheme) (models.AssetOutcome, error) {
	// Server-side models carry their own assets; nothing to fetch.
	return models.AssetOutcomeAvailable, nil
}

func (p *OpenAIProvider) Tag(ctx context.Context, text string, granularity models.TokenGranularity, scheme models.TagScheme, opts models.TokenizeOptions) ([]TokenTag, error) {
	system := tagSystemPrompt(granularity, scheme, opts)
	reply, err := p.complete(ctx, system, text)
	if err != nil {
		return nil, err
	}
	var wire []wireTokenTag
	if err := decodeJSONBlock(reply, &wire); err != nil {
		return nil, err
	}
	return alignTokenTags(text, wire), nil
}

func (p *OpenAIProvider) Hypotheses(ctx context.Context, text string, position int, granularity models.TokenGranularity, scheme models.TagScheme, maxK int) (map[models.Tag]float64, error) {
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

func tagSystemPrompt(granularity models.TokenGranularity, scheme models.TagScheme, opts models.TokenizeOptions) string {
	unit := "word"
	if granularity == models.GranularitySentence {
		unit = "sentence"
	}
	rules := ""
	if opts.OmitPunctuation {
		rules += " Skip punctuation-only tokens."
	}
	if opts.OmitWhitespace {
		rules += " Skip whitespace-only tokens."
	}
	if opts.JoinNames {
		rules += " Merge adjacent tokens forming one named entity into a single token."
	}
	var tags string
	switch scheme {
	case models.SchemeNameType:
		tags = `"PersonalName", "PlaceName" or "OrganizationName"; use null for non-entities`
	case models.SchemeSentimentScore:
		tags = `the sentiment score in [-1,1] formatted as a decimal string`
	default:
		tags = `the lexical class ("Noun", "Verb", "Adjective", "Adverb", "Pronoun", "Determiner", "Preposition", "Conjunction", "Interjection", "Number")`
	}
	return fmt.Sprintf(`Split the user's text into %s tokens in order and tag each one.%s The tag is %s. Reply with a JSON array only: [{"token": "<verbatim token>", "tag": "<tag or null>"}, ...].`, unit, rules, tags)
}

var _ Provider = (*OpenAIProvider)(nil)
