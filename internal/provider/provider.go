// Package provider defines the language model provider contract the analysis
// services run against: language recognition, per-scheme tagging and
// hypothesis ranking, and model-asset negotiation.
package provider

import (
	"context"

	"glossa/internal/models"
)

// TokenTag is one tokenizer-and-tagger result: the half-open byte range
// [Start,End) of the token within the analyzed text and the ranker's single
// best tag for it, or nil when the ranker has no definite answer.
type TokenTag struct {
	Tag   *models.Tag
	Start int
	End   int
}

// Provider supplies the recognition, tagging and asset primitives. A Provider
// implementation is not required to be safe for concurrent use; callers own
// an instance per concurrent analysis or serialize access (see services).
type Provider interface {
	// RecognizeLanguage feeds text to the recognizer and returns the single
	// highest-confidence language (nil when undecidable) plus at most
	// models.MaxHypotheses ranked candidates. Hints boost the prior of
	// specific languages; a non-empty constraints slice restricts the
	// candidate set. Every call behaves as if the recognizer were freshly
	// constructed: no hint, constraint or input state survives between calls.
	RecognizeLanguage(ctx context.Context, text string, hints map[models.LanguageCode]float64, constraints []models.LanguageCode) (*models.LanguageCode, map[models.LanguageCode]float64, error)

	// AvailableSchemes reports which tag schemes can run right now for the
	// given granularity and language without fetching anything.
	AvailableSchemes(ctx context.Context, granularity models.TokenGranularity, language models.LanguageCode) (map[models.TagScheme]struct{}, error)

	// RequestAsset obtains the model asset for (language, scheme). It may
	// block for the duration of a download or load and must honor ctx
	// cancellation. The outcome is tri-state plus an unknown arm that
	// callers treat as success.
	RequestAsset(ctx context.Context, language models.LanguageCode, scheme models.TagScheme) (models.AssetOutcome, error)

	// Tag tokenizes text at the requested granularity and tags each token in
	// one left-to-right pass, honoring opts. Returned ranges are
	// non-overlapping and ordered by start offset.
	Tag(ctx context.Context, text string, granularity models.TokenGranularity, scheme models.TagScheme, opts models.TokenizeOptions) ([]TokenTag, error)

	// Hypotheses ranks up to maxK candidate tags for the token at the given
	// byte position.
	Hypotheses(ctx context.Context, text string, position int, granularity models.TokenGranularity, scheme models.TagScheme, maxK int) (map[models.Tag]float64, error)

	// Name identifies the provider ("local", "openai", "gemini").
	Name() string
}
