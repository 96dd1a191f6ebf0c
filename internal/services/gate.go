package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"glossa/internal/models"
	"glossa/internal/provider"
)

// AssetGate checks whether the model asset a tagging run needs is present
// and fetches it on demand. The fetch is the pipeline's only suspension
// point; cancelling ctx aborts it.
type AssetGate struct {
	provider provider.Provider
}

func NewAssetGate(p provider.Provider) *AssetGate {
	return &AssetGate{provider: p}
}

// Ensure succeeds once the (language, scheme) asset is usable. A nil
// language skips the gate entirely: identification could not decide, so the
// tagger runs with its language-agnostic default and no asset check applies.
func (g *AssetGate) Ensure(ctx context.Context, language *models.LanguageCode, scheme models.TagScheme, granularity models.TokenGranularity) error {
	if language == nil {
		log.Debug("no dominant language; skipping asset gate")
		return nil
	}

	available, err := g.provider.AvailableSchemes(ctx, granularity, *language)
	if err != nil {
		return fmt.Errorf("query available schemes: %w", err)
	}
	if _, ok := available[scheme]; ok {
		return nil
	}

	outcome, err := g.provider.RequestAsset(ctx, *language, scheme)
	if err != nil {
		return fmt.Errorf("request %s asset for %q: %w", scheme, *language, err)
	}
	switch outcome {
	case models.AssetOutcomeNotAvailable:
		return fmt.Errorf("%w: %s for language %q", models.ErrAssetUnavailable, scheme, *language)
	case models.AssetOutcomeFetchFailed:
		return fmt.Errorf("%w: %s for language %q", models.ErrAssetFetchFailed, scheme, *language)
	default:
		// Available, plus any outcome this version does not know. Unknown
		// provider states must not block analysis.
		return nil
	}
}
