// Package tasks defines the Asynq task types and payloads used by the
// background worker.
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"glossa/internal/models"
)

const (
	// TypeAssetPrefetch warms the model asset for a (language, scheme) pair
	// before interactive use.
	TypeAssetPrefetch = "asset:prefetch"
)

// AssetPrefetchPayload is the JSON payload of a TypeAssetPrefetch task.
type AssetPrefetchPayload struct {
	JobID       uuid.UUID               `json:"job_id"`
	Language    models.LanguageCode     `json:"language"`
	Scheme      models.TagScheme        `json:"scheme"`
	Granularity models.TokenGranularity `json:"granularity"`
}

// NewAssetPrefetchTask builds a prefetch task with a fresh job ID.
func NewAssetPrefetchTask(language models.LanguageCode, scheme models.TagScheme, granularity models.TokenGranularity) (*asynq.Task, error) {
	payload := AssetPrefetchPayload{
		JobID:       uuid.New(),
		Language:    language,
		Scheme:      scheme,
		Granularity: granularity,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal prefetch payload: %w", err)
	}
	return asynq.NewTask(TypeAssetPrefetch, data), nil
}
