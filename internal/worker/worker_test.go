package worker

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/models"
	"glossa/internal/provider/local"
	"glossa/internal/services"
	"glossa/internal/store/memory"
	"glossa/internal/tasks"
)

func newTestDeps(t *testing.T) (PrefetchDeps, *memory.Catalog) {
	t.Helper()
	catalog := memory.New()
	p, err := local.New(local.Config{Catalog: catalog})
	require.NoError(t, err)
	return PrefetchDeps{Gate: services.NewAssetGate(p)}, catalog
}

func TestRegisterHandlers(t *testing.T) {
	deps, catalog := newTestDeps(t)
	mux := asynq.NewServeMux()

	RegisterHandlers(mux, deps)

	// Dispatching through the mux proves the prefetch handler is mounted
	// under its task type.
	task, err := tasks.NewAssetPrefetchTask("en", models.SchemeNameType, models.GranularityWord)
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), task))

	schemes, err := catalog.Installed(context.Background(), models.GranularityWord, "en")
	require.NoError(t, err)
	assert.Contains(t, schemes, models.SchemeNameType)
}

func TestHandleAssetPrefetchInstallsAsset(t *testing.T) {
	deps, catalog := newTestDeps(t)
	ctx := context.Background()

	task, err := tasks.NewAssetPrefetchTask("en", models.SchemeLexicalClass, "")
	require.NoError(t, err)

	require.NoError(t, HandleAssetPrefetch(deps)(ctx, task))

	schemes, err := catalog.Installed(ctx, models.GranularityWord, "en")
	require.NoError(t, err)
	assert.Contains(t, schemes, models.SchemeLexicalClass)
}

func TestHandleAssetPrefetchUnsupportedLanguageSkipsRetry(t *testing.T) {
	deps, _ := newTestDeps(t)

	task, err := tasks.NewAssetPrefetchTask("ja", models.SchemeNameType, models.GranularityWord)
	require.NoError(t, err)

	err = HandleAssetPrefetch(deps)(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleAssetPrefetchBadPayload(t *testing.T) {
	deps, _ := newTestDeps(t)

	err := HandleAssetPrefetch(deps)(context.Background(),
		asynq.NewTask(tasks.TypeAssetPrefetch, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleAssetPrefetchUnknownScheme(t *testing.T) {
	deps, _ := newTestDeps(t)

	err := HandleAssetPrefetch(deps)(context.Background(),
		asynq.NewTask(tasks.TypeAssetPrefetch, []byte(`{"language":"en","scheme":"bogus"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
