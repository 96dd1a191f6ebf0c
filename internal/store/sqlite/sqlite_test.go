package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/models"
)

func openTestCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assets.db")
	c, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, path
}

func TestInstallAndQuery(t *testing.T) {
	c, _ := openTestCatalog(t)
	ctx := context.Background()

	schemes, err := c.Installed(ctx, models.GranularityWord, "en")
	require.NoError(t, err)
	assert.Empty(t, schemes)

	require.NoError(t, c.Install(ctx, "en", models.SchemeLexicalClass, models.GranularityWord))
	require.NoError(t, c.Install(ctx, "en", models.SchemeSentimentScore, models.GranularitySentence))

	schemes, err = c.Installed(ctx, models.GranularityWord, "en")
	require.NoError(t, err)
	assert.Equal(t, map[models.TagScheme]struct{}{models.SchemeLexicalClass: {}}, schemes)

	schemes, err = c.Installed(ctx, models.GranularitySentence, "en")
	require.NoError(t, err)
	assert.Equal(t, map[models.TagScheme]struct{}{models.SchemeSentimentScore: {}}, schemes)
}

func TestInstallIdempotent(t *testing.T) {
	c, _ := openTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Install(ctx, "en", models.SchemeNameType, models.GranularityWord))
	require.NoError(t, c.Install(ctx, "en", models.SchemeNameType, models.GranularityWord))

	records, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCatalogSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	c, path := openTestCatalog(t)

	require.NoError(t, c.Install(ctx, "en", models.SchemeLexicalClass, models.GranularityWord))
	require.NoError(t, c.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	schemes, err := reopened.Installed(ctx, models.GranularityWord, "en")
	require.NoError(t, err)
	assert.Contains(t, schemes, models.SchemeLexicalClass)
}

func TestListOrdered(t *testing.T) {
	c, _ := openTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Install(ctx, "fr", models.SchemeLexicalClass, models.GranularityWord))
	require.NoError(t, c.Install(ctx, "en", models.SchemeNameType, models.GranularityWord))
	require.NoError(t, c.Install(ctx, "en", models.SchemeLexicalClass, models.GranularityWord))

	records, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, models.LanguageCode("en"), records[0].Language)
	assert.Equal(t, models.SchemeLexicalClass, records[0].Scheme)
	assert.Equal(t, models.LanguageCode("fr"), records[2].Language)
}

func TestPing(t *testing.T) {
	c, _ := openTestCatalog(t)
	assert.NoError(t, c.Ping(context.Background()))
}
