package apihandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/models"
)

type stubAnalyzer struct {
	result models.LanguageIdentificationResult
	spans  []models.Span
	err    error
}

func (s *stubAnalyzer) IdentifyLanguage(context.Context, string) (models.LanguageIdentificationResult, error) {
	return s.result, s.err
}

func (s *stubAnalyzer) IdentifyLexical(context.Context, string) ([]models.Span, error) {
	return s.spans, s.err
}

func (s *stubAnalyzer) IdentifyEntities(context.Context, string) ([]models.Span, error) {
	return s.spans, s.err
}

func (s *stubAnalyzer) EvaluateSentimentScore(context.Context, string) ([]models.Span, error) {
	return s.spans, s.err
}

func newTestRouter(analyzer Analyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAPIHandler(analyzer).RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLanguageEndpoint(t *testing.T) {
	lang := models.LanguageCode("en")
	router := newTestRouter(&stubAnalyzer{
		result: models.LanguageIdentificationResult{
			Dominant:   &lang,
			Hypotheses: map[models.LanguageCode]float64{"en": 0.9},
		},
	})

	w := postJSON(t, router, "/api/v1/language", `{"text":"Hello world"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result models.LanguageIdentificationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Dominant)
	assert.Equal(t, lang, *result.Dominant)
	assert.Equal(t, 0.9, result.Hypotheses["en"])
}

func TestSpanEndpoints(t *testing.T) {
	spans := []models.Span{
		{ID: 0, Text: "Hello", TagHypotheses: map[models.Tag]float64{"Interjection": 0.7}},
	}
	router := newTestRouter(&stubAnalyzer{spans: spans})

	for _, path := range []string{"/api/v1/lexical", "/api/v1/entities", "/api/v1/sentiment"} {
		w := postJSON(t, router, path, `{"text":"Hello"}`)
		require.Equal(t, http.StatusOK, w.Code, path)

		var body struct {
			Spans []models.Span `json:"spans"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), path)
		assert.Equal(t, spans, body.Spans, path)
	}
}

func TestMissingTextRejected(t *testing.T) {
	router := newTestRouter(&stubAnalyzer{})

	for _, body := range []string{`{}`, `not json`, `{"text":""}`} {
		w := postJSON(t, router, "/api/v1/lexical", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestAnalysisErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"asset unavailable", models.ErrAssetUnavailable, http.StatusServiceUnavailable, "asset_unavailable"},
		{"asset fetch failed", models.ErrAssetFetchFailed, http.StatusBadGateway, "asset_fetch_failed"},
		{"validation", models.ErrValidation, http.StatusBadRequest, "bad_request"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubAnalyzer{err: tc.err})

			w := postJSON(t, router, "/api/v1/sentiment", `{"text":"Hello"}`)
			assert.Equal(t, tc.wantStatus, w.Code)

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}
