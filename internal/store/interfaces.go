// Package store holds the asset catalog: bookkeeping of which model assets
// are installed locally. Analysis results are never persisted.
package store

import (
	"context"

	"glossa/internal/models"
)

// AssetCatalog records installed model assets per (language, scheme,
// granularity). The local provider consults it for availability and writes to
// it when an asset request completes.
type AssetCatalog interface {
	// Installed returns the schemes whose assets are present for the given
	// granularity and language.
	Installed(ctx context.Context, granularity models.TokenGranularity, language models.LanguageCode) (map[models.TagScheme]struct{}, error)
	// Install marks an asset as present. Installing an already-present asset
	// is a no-op.
	Install(ctx context.Context, language models.LanguageCode, scheme models.TagScheme, granularity models.TokenGranularity) error
	// List returns every installed asset, ordered by language then scheme.
	List(ctx context.Context) ([]models.AssetRecord, error)

	Ping(ctx context.Context) error
	Close() error
}
