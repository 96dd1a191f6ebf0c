package services

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"glossa/internal/models"
	"glossa/internal/provider"
)

// RunConfig parameterizes one tagging run.
type RunConfig struct {
	Scheme      models.TagScheme
	Granularity models.TokenGranularity
	Options     models.TokenizeOptions
	// MaxHypotheses caps each span's hypothesis set; zero means
	// models.MaxHypotheses. The merged set may hold one extra entry when the
	// ranker's best tag fell outside its own top-K.
	MaxHypotheses int
}

// Pipeline orchestrates a tagging run: language detection, the asset gate,
// tokenize-and-tag, hypothesis merging, and span assembly. Steps run in
// strict order with no automatic retries; a gate failure aborts before any
// span is produced (no partial results).
type Pipeline struct {
	identifier *LanguageIdentifier
	gate       *AssetGate
	provider   provider.Provider
}

func NewPipeline(p provider.Provider, identifier *LanguageIdentifier) *Pipeline {
	return &Pipeline{
		identifier: identifier,
		gate:       NewAssetGate(p),
		provider:   p,
	}
}

// Run annotates text under cfg and returns spans in left-to-right text
// order. Empty input yields an empty sequence without touching the gate.
func (pl *Pipeline) Run(ctx context.Context, text string, cfg RunConfig) ([]models.Span, error) {
	if !cfg.Scheme.Valid() {
		return nil, fmt.Errorf("%w: unknown scheme %q", models.ErrValidation, cfg.Scheme)
	}
	if cfg.Granularity == "" {
		cfg.Granularity = cfg.Scheme.DefaultGranularity()
	}
	if cfg.MaxHypotheses <= 0 {
		cfg.MaxHypotheses = models.MaxHypotheses
	}
	if strings.TrimSpace(text) == "" {
		return []models.Span{}, nil
	}

	ident, err := pl.identifier.Identify(ctx, text)
	if err != nil {
		return nil, err
	}
	// The dominant language feeds the gate only; spans never carry it.
	if err := pl.gate.Ensure(ctx, ident.Dominant, cfg.Scheme, cfg.Granularity); err != nil {
		return nil, err
	}

	tokens, err := pl.provider.Tag(ctx, text, cfg.Granularity, cfg.Scheme, cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}

	spans := make([]models.Span, 0, len(tokens))
	prevEnd := -1
	for _, tok := range tokens {
		if tok.Start < prevEnd || tok.End <= tok.Start || tok.End > len(text) {
			return nil, fmt.Errorf("%w: span [%d,%d) out of order or out of range",
				models.ErrRankerInconsistency, tok.Start, tok.End)
		}
		prevEnd = tok.End

		hyps, err := pl.provider.Hypotheses(ctx, text, tok.Start, cfg.Granularity, cfg.Scheme, cfg.MaxHypotheses)
		if err != nil {
			return nil, fmt.Errorf("rank hypotheses at %d: %w", tok.Start, err)
		}
		if len(hyps) > cfg.MaxHypotheses {
			return nil, fmt.Errorf("%w: %d hypotheses at %d exceed limit %d",
				models.ErrRankerInconsistency, len(hyps), tok.Start, cfg.MaxHypotheses)
		}

		spans = append(spans, models.Span{
			ID:            tok.Start,
			Text:          strings.Clone(text[tok.Start:tok.End]),
			TagHypotheses: MergeHypotheses(tok.Tag, hyps),
		})
	}

	log.Debugf("%s run produced %d spans (%s granularity)", cfg.Scheme, len(spans), cfg.Granularity)
	return spans, nil
}
