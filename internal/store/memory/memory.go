// Package memory is an in-process AssetCatalog used for tests and
// zero-config runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"glossa/internal/models"
	"glossa/internal/store"
)

type catalogKey struct {
	language    models.LanguageCode
	scheme      models.TagScheme
	granularity models.TokenGranularity
}

type Catalog struct {
	mu        sync.RWMutex
	installed map[catalogKey]struct{}
}

func New() *Catalog {
	return &Catalog{installed: make(map[catalogKey]struct{})}
}

// NewSeeded returns a catalog with the given assets pre-installed.
func NewSeeded(records ...models.AssetRecord) *Catalog {
	c := New()
	for _, r := range records {
		c.installed[catalogKey{r.Language, r.Scheme, r.Granularity}] = struct{}{}
	}
	return c
}

func (c *Catalog) Installed(ctx context.Context, granularity models.TokenGranularity, language models.LanguageCode) (map[models.TagScheme]struct{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	schemes := make(map[models.TagScheme]struct{})
	for k := range c.installed {
		if k.granularity == granularity && k.language == language {
			schemes[k.scheme] = struct{}{}
		}
	}
	return schemes, nil
}

func (c *Catalog) Install(ctx context.Context, language models.LanguageCode, scheme models.TagScheme, granularity models.TokenGranularity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.installed[catalogKey{language, scheme, granularity}] = struct{}{}
	return nil
}

func (c *Catalog) List(ctx context.Context) ([]models.AssetRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records := make([]models.AssetRecord, 0, len(c.installed))
	for k := range c.installed {
		records = append(records, models.AssetRecord{Language: k.language, Scheme: k.scheme, Granularity: k.granularity})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Language != records[j].Language {
			return records[i].Language < records[j].Language
		}
		return records[i].Scheme < records[j].Scheme
	})
	return records, nil
}

func (c *Catalog) Ping(ctx context.Context) error { return nil }

func (c *Catalog) Close() error { return nil }

var _ store.AssetCatalog = (*Catalog)(nil)
