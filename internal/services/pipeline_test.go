package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/models"
	"glossa/internal/provider"
)

func newTestPipeline(p provider.Provider) *Pipeline {
	return NewPipeline(p, NewLanguageIdentifier(p, IdentifierConfig{}))
}

func TestRunRejectsUnknownScheme(t *testing.T) {
	pl := newTestPipeline(&fakeProvider{})

	_, err := pl.Run(context.Background(), "hello", RunConfig{Scheme: "partOfSpeech"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRunEmptyTextYieldsEmptySpans(t *testing.T) {
	fake := &fakeProvider{}
	pl := newTestPipeline(fake)

	spans, err := pl.Run(context.Background(), "  \n ", RunConfig{Scheme: models.SchemeLexicalClass})
	require.NoError(t, err)
	assert.NotNil(t, spans)
	assert.Empty(t, spans)
	assert.Zero(t, fake.recognizeCalls)
	assert.Zero(t, fake.tagCalls)
}

func TestRunProducesOrderedSpansWithMergedHypotheses(t *testing.T) {
	text := "Big dog"
	fake := &fakeProvider{
		tagFunc: func(context.Context, string, models.TokenGranularity, models.TagScheme, models.TokenizeOptions) ([]provider.TokenTag, error) {
			return []provider.TokenTag{
				{Tag: tagPtr("Adjective"), Start: 0, End: 3},
				{Tag: tagPtr("Noun"), Start: 4, End: 7},
			}, nil
		},
		hypothesesFunc: func(_ context.Context, _ string, position int, _ models.TokenGranularity, _ models.TagScheme, _ int) (map[models.Tag]float64, error) {
			if position == 0 {
				// Best tag missing from the ranked set; the merge must add it
				// at full confidence.
				return map[models.Tag]float64{"Noun": 0.4, "Verb": 0.2}, nil
			}
			return map[models.Tag]float64{"Noun": 0.8}, nil
		},
	}
	pl := newTestPipeline(fake)

	spans, err := pl.Run(context.Background(), text, RunConfig{Scheme: models.SchemeLexicalClass})
	require.NoError(t, err)
	require.Len(t, spans, 2)

	assert.Equal(t, 0, spans[0].ID)
	assert.Equal(t, "Big", spans[0].Text)
	assert.Equal(t, map[models.Tag]float64{
		"Adjective": 1.0,
		"Noun":      0.4,
		"Verb":      0.2,
	}, spans[0].TagHypotheses)

	best, prob, ok := spans[0].BestTag()
	require.True(t, ok)
	assert.Equal(t, models.Tag("Adjective"), best)
	assert.Equal(t, 1.0, prob)

	assert.Equal(t, 4, spans[1].ID)
	assert.Equal(t, "dog", spans[1].Text)
	assert.Equal(t, map[models.Tag]float64{"Noun": 0.8}, spans[1].TagHypotheses)
}

func TestRunGateFailureProducesNoSpans(t *testing.T) {
	fake := &fakeProvider{
		availableFunc: func(context.Context, models.TokenGranularity, models.LanguageCode) (map[models.TagScheme]struct{}, error) {
			return nil, nil
		},
		requestFunc: func(context.Context, models.LanguageCode, models.TagScheme) (models.AssetOutcome, error) {
			return models.AssetOutcomeNotAvailable, nil
		},
	}
	pl := newTestPipeline(fake)

	spans, err := pl.Run(context.Background(), "hello", RunConfig{Scheme: models.SchemeLexicalClass})
	assert.ErrorIs(t, err, models.ErrAssetUnavailable)
	assert.Nil(t, spans)
	assert.Zero(t, fake.tagCalls, "gate failure must abort before tagging")
}

func TestRunNilDominantSkipsGate(t *testing.T) {
	fake := &fakeProvider{
		recognizeFunc: func(context.Context, string, map[models.LanguageCode]float64, []models.LanguageCode) (*models.LanguageCode, map[models.LanguageCode]float64, error) {
			return nil, map[models.LanguageCode]float64{}, nil
		},
		tagFunc: func(context.Context, string, models.TokenGranularity, models.TagScheme, models.TokenizeOptions) ([]provider.TokenTag, error) {
			return []provider.TokenTag{{Tag: tagPtr("Noun"), Start: 0, End: 5}}, nil
		},
	}
	pl := newTestPipeline(fake)

	spans, err := pl.Run(context.Background(), "hello", RunConfig{Scheme: models.SchemeLexicalClass})
	require.NoError(t, err)
	assert.Len(t, spans, 1)
	assert.Zero(t, fake.availableCalls)
	assert.Zero(t, fake.requestCalls)
}

func TestRunOverlappingSpansRejected(t *testing.T) {
	fake := &fakeProvider{
		tagFunc: func(context.Context, string, models.TokenGranularity, models.TagScheme, models.TokenizeOptions) ([]provider.TokenTag, error) {
			return []provider.TokenTag{
				{Tag: tagPtr("Noun"), Start: 0, End: 4},
				{Tag: tagPtr("Noun"), Start: 2, End: 6},
			}, nil
		},
	}
	pl := newTestPipeline(fake)

	_, err := pl.Run(context.Background(), "hello world", RunConfig{Scheme: models.SchemeLexicalClass})
	assert.ErrorIs(t, err, models.ErrRankerInconsistency)
}

func TestRunOutOfRangeSpanRejected(t *testing.T) {
	fake := &fakeProvider{
		tagFunc: func(context.Context, string, models.TokenGranularity, models.TagScheme, models.TokenizeOptions) ([]provider.TokenTag, error) {
			return []provider.TokenTag{{Tag: tagPtr("Noun"), Start: 0, End: 99}}, nil
		},
	}
	pl := newTestPipeline(fake)

	_, err := pl.Run(context.Background(), "hello", RunConfig{Scheme: models.SchemeLexicalClass})
	assert.ErrorIs(t, err, models.ErrRankerInconsistency)
}

func TestRunTooManyHypothesesRejected(t *testing.T) {
	fake := &fakeProvider{
		tagFunc: func(context.Context, string, models.TokenGranularity, models.TagScheme, models.TokenizeOptions) ([]provider.TokenTag, error) {
			return []provider.TokenTag{{Tag: tagPtr("Noun"), Start: 0, End: 5}}, nil
		},
		hypothesesFunc: func(context.Context, string, int, models.TokenGranularity, models.TagScheme, int) (map[models.Tag]float64, error) {
			return map[models.Tag]float64{"a": 0.4, "b": 0.3, "c": 0.2, "d": 0.1}, nil
		},
	}
	pl := newTestPipeline(fake)

	_, err := pl.Run(context.Background(), "hello", RunConfig{Scheme: models.SchemeLexicalClass, MaxHypotheses: 3})
	assert.ErrorIs(t, err, models.ErrRankerInconsistency)
}

func TestRunDefaultsGranularityPerScheme(t *testing.T) {
	var gotGranularity models.TokenGranularity
	fake := &fakeProvider{
		tagFunc: func(_ context.Context, _ string, granularity models.TokenGranularity, _ models.TagScheme, _ models.TokenizeOptions) ([]provider.TokenTag, error) {
			gotGranularity = granularity
			return nil, nil
		},
	}
	pl := newTestPipeline(fake)

	_, err := pl.Run(context.Background(), "Nice day.", RunConfig{Scheme: models.SchemeSentimentScore})
	require.NoError(t, err)
	assert.Equal(t, models.GranularitySentence, gotGranularity)

	_, err = pl.Run(context.Background(), "Nice day.", RunConfig{Scheme: models.SchemeNameType})
	require.NoError(t, err)
	assert.Equal(t, models.GranularityWord, gotGranularity)
}

func TestRunSpanTextIsOwnedCopy(t *testing.T) {
	text := "hello"
	fake := &fakeProvider{
		tagFunc: func(context.Context, string, models.TokenGranularity, models.TagScheme, models.TokenizeOptions) ([]provider.TokenTag, error) {
			return []provider.TokenTag{{Tag: tagPtr("Interjection"), Start: 0, End: 5}}, nil
		},
	}
	pl := newTestPipeline(fake)

	spans, err := pl.Run(context.Background(), text, RunConfig{Scheme: models.SchemeLexicalClass})
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, "hello", spans[0].Text)
}
