// Package services implements the annotation core: language identification,
// model-asset negotiation, and the tagging pipeline over a language model
// provider.
package services

import (
	"context"
	"sync"

	"glossa/internal/models"
	"glossa/internal/provider"
)

// Analyzer is the upward surface consumed by the CLI and HTTP handlers. It
// exposes exactly four operations, each taking raw text.
//
// Provider instances are not concurrency-safe, so the analyzer serializes
// every provider-touching call on a mutex. Callers that want the four
// analyses in parallel build one Analyzer per goroutine instead.
type Analyzer struct {
	mu         sync.Mutex
	identifier *LanguageIdentifier
	pipeline   *Pipeline
}

func NewAnalyzer(p provider.Provider, cfg IdentifierConfig) *Analyzer {
	identifier := NewLanguageIdentifier(p, cfg)
	return &Analyzer{
		identifier: identifier,
		pipeline:   NewPipeline(p, identifier),
	}
}

// IdentifyLanguage returns the dominant language and ranked hypotheses.
func (a *Analyzer) IdentifyLanguage(ctx context.Context, text string) (models.LanguageIdentificationResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identifier.Identify(ctx, text)
}

// IdentifyLexical tags each word with its lexical class. Punctuation and
// whitespace tokens are omitted.
func (a *Analyzer) IdentifyLexical(ctx context.Context, text string) ([]models.Span, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pipeline.Run(ctx, text, RunConfig{
		Scheme:      models.SchemeLexicalClass,
		Granularity: models.GranularityWord,
		Options:     models.TokenizeOptions{OmitPunctuation: true, OmitWhitespace: true},
	})
}

// IdentifyEntities tags named entities, joining adjacent tokens that form a
// single name into one span.
func (a *Analyzer) IdentifyEntities(ctx context.Context, text string) ([]models.Span, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pipeline.Run(ctx, text, RunConfig{
		Scheme:      models.SchemeNameType,
		Granularity: models.GranularityWord,
		Options:     models.TokenizeOptions{OmitPunctuation: true, OmitWhitespace: true, JoinNames: true},
	})
}

// EvaluateSentimentScore scores each sentence in [-1,1], represented as a
// single pseudo-tag per span.
func (a *Analyzer) EvaluateSentimentScore(ctx context.Context, text string) ([]models.Span, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pipeline.Run(ctx, text, RunConfig{
		Scheme:      models.SchemeSentimentScore,
		Granularity: models.GranularitySentence,
		Options:     models.TokenizeOptions{OmitWhitespace: true},
	})
}
