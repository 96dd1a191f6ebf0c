package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/models"
)

func TestGateSkipsWhenLanguageUnknown(t *testing.T) {
	fake := &fakeProvider{}
	gate := NewAssetGate(fake)

	err := gate.Ensure(context.Background(), nil, models.SchemeLexicalClass, models.GranularityWord)
	require.NoError(t, err)
	assert.Zero(t, fake.availableCalls)
	assert.Zero(t, fake.requestCalls)
}

func TestGateNoFetchWhenSchemeAvailable(t *testing.T) {
	fake := &fakeProvider{}
	gate := NewAssetGate(fake)

	err := gate.Ensure(context.Background(), langPtr("en"), models.SchemeLexicalClass, models.GranularityWord)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.availableCalls)
	assert.Zero(t, fake.requestCalls, "installed asset must not be re-fetched")
}

func TestGateFetchesMissingAsset(t *testing.T) {
	fake := &fakeProvider{
		availableFunc: func(context.Context, models.TokenGranularity, models.LanguageCode) (map[models.TagScheme]struct{}, error) {
			return map[models.TagScheme]struct{}{}, nil
		},
	}
	gate := NewAssetGate(fake)

	err := gate.Ensure(context.Background(), langPtr("en"), models.SchemeNameType, models.GranularityWord)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.requestCalls)
}

func TestGateOutcomeMapping(t *testing.T) {
	cases := []struct {
		name    string
		outcome models.AssetOutcome
		wantErr error
	}{
		{"available", models.AssetOutcomeAvailable, nil},
		{"not available", models.AssetOutcomeNotAvailable, models.ErrAssetUnavailable},
		{"fetch failed", models.AssetOutcomeFetchFailed, models.ErrAssetFetchFailed},
		{"unknown treated as success", models.AssetOutcomeUnknown, nil},
		{"future outcome treated as success", models.AssetOutcome(42), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeProvider{
				availableFunc: func(context.Context, models.TokenGranularity, models.LanguageCode) (map[models.TagScheme]struct{}, error) {
					return nil, nil
				},
				requestFunc: func(context.Context, models.LanguageCode, models.TagScheme) (models.AssetOutcome, error) {
					return tc.outcome, nil
				},
			}
			gate := NewAssetGate(fake)

			err := gate.Ensure(context.Background(), langPtr("en"), models.SchemeSentimentScore, models.GranularitySentence)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
