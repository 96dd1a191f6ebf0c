// Package worker registers the Asynq handlers that run asset prefetch jobs.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"glossa/internal/models"
	"glossa/internal/services"
	"glossa/internal/tasks"
)

// PrefetchDeps carries what the prefetch handler needs.
type PrefetchDeps struct {
	Gate *services.AssetGate
}

// RegisterHandlers wires all task handlers onto mux.
func RegisterHandlers(mux *asynq.ServeMux, deps PrefetchDeps) {
	mux.HandleFunc(tasks.TypeAssetPrefetch, HandleAssetPrefetch(deps))
}

// HandleAssetPrefetch drives the availability gate for the payload's
// (language, scheme) so the asset is installed before interactive use.
func HandleAssetPrefetch(deps PrefetchDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.AssetPrefetchPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal prefetch payload: %v: %w", err, asynq.SkipRetry)
		}
		if !payload.Scheme.Valid() {
			return fmt.Errorf("unknown scheme %q: %w", payload.Scheme, asynq.SkipRetry)
		}
		granularity := payload.Granularity
		if granularity == "" {
			granularity = payload.Scheme.DefaultGranularity()
		}

		log.Infof("prefetching %s asset for language %q (job %s)", payload.Scheme, payload.Language, payload.JobID)
		language := payload.Language
		if err := deps.Gate.Ensure(ctx, &language, payload.Scheme, granularity); err != nil {
			// Unavailable assets will not appear on retry either.
			if errors.Is(err, models.ErrAssetUnavailable) {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			return err
		}
		return nil
	}
}
