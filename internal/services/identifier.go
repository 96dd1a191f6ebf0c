package services

import (
	"context"
	"fmt"
	"strings"

	"glossa/internal/models"
	"glossa/internal/provider"
)

// IdentifierConfig is the immutable recognizer configuration. It is built
// once and reused; each Identify call passes it to the provider afresh, so
// no hint, constraint or input state can leak between calls.
type IdentifierConfig struct {
	// Hints are additive prior boosts for specific languages.
	Hints map[models.LanguageCode]float64
	// Constraints restricts candidates to the listed languages; empty means
	// unrestricted.
	Constraints []models.LanguageCode
	// MaxHypotheses caps the hypothesis set; zero means models.MaxHypotheses.
	MaxHypotheses int
}

// LanguageIdentifier determines the dominant language of a text plus a
// bounded hypothesis distribution.
type LanguageIdentifier struct {
	provider provider.Provider
	cfg      IdentifierConfig
}

func NewLanguageIdentifier(p provider.Provider, cfg IdentifierConfig) *LanguageIdentifier {
	if cfg.MaxHypotheses <= 0 {
		cfg.MaxHypotheses = models.MaxHypotheses
	}
	return &LanguageIdentifier{provider: p, cfg: cfg}
}

// Identify runs language recognition over text. Empty or whitespace-only
// text is a valid empty result, not an error, and never reaches the
// provider. Callers must expect a non-empty hypothesis set alongside a nil
// dominant language for short or ambiguous input.
func (li *LanguageIdentifier) Identify(ctx context.Context, text string) (models.LanguageIdentificationResult, error) {
	if strings.TrimSpace(text) == "" {
		return models.LanguageIdentificationResult{Hypotheses: map[models.LanguageCode]float64{}}, nil
	}

	dominant, hypotheses, err := li.provider.RecognizeLanguage(ctx, text, li.cfg.Hints, li.cfg.Constraints)
	if err != nil {
		return models.LanguageIdentificationResult{}, fmt.Errorf("recognize language: %w", err)
	}
	if hypotheses == nil {
		hypotheses = map[models.LanguageCode]float64{}
	}
	if len(hypotheses) > li.cfg.MaxHypotheses {
		return models.LanguageIdentificationResult{}, fmt.Errorf("%w: %d language hypotheses exceed limit %d",
			models.ErrRankerInconsistency, len(hypotheses), li.cfg.MaxHypotheses)
	}
	return models.LanguageIdentificationResult{Dominant: dominant, Hypotheses: hypotheses}, nil
}
