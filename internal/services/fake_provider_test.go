package services

import (
	"context"

	"glossa/internal/models"
	"glossa/internal/provider"
)

// fakeProvider is a function-field Provider test double. Nil funcs fall back
// to benign defaults; call counters let tests assert which primitives ran.
type fakeProvider struct {
	recognizeFunc  func(ctx context.Context, text string, hints map[models.LanguageCode]float64, constraints []models.LanguageCode) (*models.LanguageCode, map[models.LanguageCode]float64, error)
	availableFunc  func(ctx context.Context, granularity models.TokenGranularity, language models.LanguageCode) (map[models.TagScheme]struct{}, error)
	requestFunc    func(ctx context.Context, language models.LanguageCode, scheme models.TagScheme) (models.AssetOutcome, error)
	tagFunc        func(ctx context.Context, text string, granularity models.TokenGranularity, scheme models.TagScheme, opts models.TokenizeOptions) ([]provider.TokenTag, error)
	hypothesesFunc func(ctx context.Context, text string, position int, granularity models.TokenGranularity, scheme models.TagScheme, maxK int) (map[models.Tag]float64, error)

	recognizeCalls  int
	availableCalls  int
	requestCalls    int
	tagCalls        int
	hypothesesCalls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) RecognizeLanguage(ctx context.Context, text string, hints map[models.LanguageCode]float64, constraints []models.LanguageCode) (*models.LanguageCode, map[models.LanguageCode]float64, error) {
	f.recognizeCalls++
	if f.recognizeFunc != nil {
		return f.recognizeFunc(ctx, text, hints, constraints)
	}
	lang := models.LanguageCode("en")
	return &lang, map[models.LanguageCode]float64{"en": 0.9}, nil
}

func (f *fakeProvider) AvailableSchemes(ctx context.Context, granularity models.TokenGranularity, language models.LanguageCode) (map[models.TagScheme]struct{}, error) {
	f.availableCalls++
	if f.availableFunc != nil {
		return f.availableFunc(ctx, granularity, language)
	}
	return map[models.TagScheme]struct{}{
		models.SchemeLexicalClass:   {},
		models.SchemeNameType:       {},
		models.SchemeSentimentScore: {},
	}, nil
}

func (f *fakeProvider) RequestAsset(ctx context.Context, language models.LanguageCode, scheme models.TagScheme) (models.AssetOutcome, error) {
	f.requestCalls++
	if f.requestFunc != nil {
		return f.requestFunc(ctx, language, scheme)
	}
	return models.AssetOutcomeAvailable, nil
}

func (f *fakeProvider) Tag(ctx context.Context, text string, granularity models.TokenGranularity, scheme models.TagScheme, opts models.TokenizeOptions) ([]provider.TokenTag, error) {
	f.tagCalls++
	if f.tagFunc != nil {
		return f.tagFunc(ctx, text, granularity, scheme, opts)
	}
	return nil, nil
}

func (f *fakeProvider) Hypotheses(ctx context.Context, text string, position int, granularity models.TokenGranularity, scheme models.TagScheme, maxK int) (map[models.Tag]float64, error) {
	f.hypothesesCalls++
	if f.hypothesesFunc != nil {
		return f.hypothesesFunc(ctx, text, position, granularity, scheme, maxK)
	}
	return map[models.Tag]float64{}, nil
}

var _ provider.Provider = (*fakeProvider)(nil)

func tagPtr(t models.Tag) *models.Tag { return &t }

func langPtr(l models.LanguageCode) *models.LanguageCode { return &l }
