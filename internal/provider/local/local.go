// Package local is the in-process language model provider: deterministic
// script/lexicon models with asset availability backed by the catalog store.
package local

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"glossa/internal/models"
	"glossa/internal/provider"
	"glossa/internal/store"
)

// supportedLanguages lists, per scheme, the languages the built-in models
// cover. Requests outside this table come back AssetOutcomeNotAvailable.
var supportedLanguages = map[models.TagScheme]map[models.LanguageCode]struct{}{
	models.SchemeLexicalClass:   {"en": {}},
	models.SchemeNameType:       {"en": {}},
	models.SchemeSentimentScore: {"en": {}},
}

// Config configures the local provider.
type Config struct {
	// Catalog records which assets are installed. Required.
	Catalog store.AssetCatalog
	// FetchDelay simulates the load time of an asset fetch. Zero means
	// instant installs.
	FetchDelay time.Duration
}

type Provider struct {
	catalog    store.AssetCatalog
	fetchDelay time.Duration
}

func New(cfg Config) (*Provider, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("local provider requires an asset catalog")
	}
	return &Provider{catalog: cfg.Catalog, fetchDelay: cfg.FetchDelay}, nil
}

func (p *Provider) Name() string { return "local" }

// AvailableSchemes reports the schemes whose assets the catalog already holds
// for the given granularity and language.
func (p *Provider) AvailableSchemes(ctx context.Context, granularity models.TokenGranularity, language models.LanguageCode) (map[models.TagScheme]struct{}, error) {
	schemes, err := p.catalog.Installed(ctx, granularity, language)
	if err != nil {
		return nil, fmt.Errorf("query asset catalog: %w", err)
	}
	return schemes, nil
}

// RequestAsset installs the (language, scheme) asset into the catalog after a
// simulated fetch. It blocks for the configured delay and honors ctx
// cancellation while waiting.
func (p *Provider) RequestAsset(ctx context.Context, language models.LanguageCode, scheme models.TagScheme) (models.AssetOutcome, error) {
	langs, ok := supportedLanguages[scheme]
	if !ok {
		return models.AssetOutcomeNotAvailable, nil
	}
	if _, ok := langs[language]; !ok {
		log.Debugf("no %s model for language %q", scheme, language)
		return models.AssetOutcomeNotAvailable, nil
	}

	if p.fetchDelay > 0 {
		timer := time.NewTimer(p.fetchDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.AssetOutcomeFetchFailed, ctx.Err()
		case <-timer.C:
		}
	}

	if err := p.catalog.Install(ctx, language, scheme, scheme.DefaultGranularity()); err != nil {
		return models.AssetOutcomeFetchFailed, fmt.Errorf("record installed asset: %w", err)
	}
	log.Infof("installed %s asset for language %q", scheme, language)
	return models.AssetOutcomeAvailable, nil
}

// Tag tokenizes and tags in one pass. Spans come back ordered by start
// offset and never overlap.
func (p *Provider) Tag(ctx context.Context, text string, granularity models.TokenGranularity, scheme models.TagScheme, opts models.TokenizeOptions) ([]provider.TokenTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := tokenize(text, granularity, opts)

	switch scheme {
	case models.SchemeLexicalClass:
		return tagLexical(tokens), nil
	case models.SchemeNameType:
		return tagNames(tokens, opts.JoinNames), nil
	case models.SchemeSentimentScore:
		return tagSentiment(tokens), nil
	default:
		return nil, fmt.Errorf("%w: unknown scheme %q", models.ErrValidation, scheme)
	}
}

// Hypotheses ranks candidate tags for the token at position.
func (p *Provider) Hypotheses(ctx context.Context, text string, position int, granularity models.TokenGranularity, scheme models.TagScheme, maxK int) (map[models.Tag]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := tokenize(text, granularity, models.TokenizeOptions{})
	t, ok := tokenAt(tokens, position)
	if !ok {
		return map[models.Tag]float64{}, nil
	}

	var hyps map[models.Tag]float64
	switch scheme {
	case models.SchemeLexicalClass:
		hyps = lexicalHypotheses(t)
	case models.SchemeNameType:
		hyps = nameHypotheses(t)
	case models.SchemeSentimentScore:
		hyps = sentimentHypotheses(t)
	default:
		return nil, fmt.Errorf("%w: unknown scheme %q", models.ErrValidation, scheme)
	}
	return capHypotheses(hyps, maxK), nil
}

// capHypotheses keeps the maxK highest-weighted entries.
func capHypotheses(hyps map[models.Tag]float64, maxK int) map[models.Tag]float64 {
	if maxK <= 0 || len(hyps) <= maxK {
		return hyps
	}
	for len(hyps) > maxK {
		var lowest models.Tag
		first := true
		for tag, p := range hyps {
			if first || p < hyps[lowest] || (p == hyps[lowest] && tag > lowest) {
				lowest = tag
				first = false
			}
		}
		delete(hyps, lowest)
	}
	return hyps
}

var _ provider.Provider = (*Provider)(nil)
