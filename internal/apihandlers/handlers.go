package apihandlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"glossa/internal/models"
)

// Analyzer is the slice of the analysis core the HTTP surface consumes.
type Analyzer interface {
	IdentifyLanguage(ctx context.Context, text string) (models.LanguageIdentificationResult, error)
	IdentifyLexical(ctx context.Context, text string) ([]models.Span, error)
	IdentifyEntities(ctx context.Context, text string) ([]models.Span, error)
	EvaluateSentimentScore(ctx context.Context, text string) ([]models.Span, error)
}

type APIHandler struct {
	Analyzer Analyzer
}

func NewAPIHandler(analyzer Analyzer) *APIHandler {
	return &APIHandler{Analyzer: analyzer}
}

// RegisterRoutes mounts the analysis endpoints under /api/v1.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.POST("/language", h.LanguageHandler)
		v1.POST("/lexical", h.LexicalHandler)
		v1.POST("/entities", h.EntitiesHandler)
		v1.POST("/sentiment", h.SentimentHandler)
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

type analyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

func parseAnalyzeRequest(c *gin.Context) (analyzeRequest, bool) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return req, false
	}
	return req, true
}

func (h *APIHandler) LanguageHandler(c *gin.Context) {
	req, ok := parseAnalyzeRequest(c)
	if !ok {
		return
	}
	result, err := h.Analyzer.IdentifyLanguage(c.Request.Context(), req.Text)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) LexicalHandler(c *gin.Context) {
	h.respondSpans(c, h.Analyzer.IdentifyLexical)
}

func (h *APIHandler) EntitiesHandler(c *gin.Context) {
	h.respondSpans(c, h.Analyzer.IdentifyEntities)
}

func (h *APIHandler) SentimentHandler(c *gin.Context) {
	h.respondSpans(c, h.Analyzer.EvaluateSentimentScore)
}

func (h *APIHandler) respondSpans(c *gin.Context, analyze func(context.Context, string) ([]models.Span, error)) {
	req, ok := parseAnalyzeRequest(c)
	if !ok {
		return
	}
	spans, err := analyze(c.Request.Context(), req.Text)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spans": spans})
}

func respondAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrAssetUnavailable):
		AssetUnavailable(c, err.Error())
	case errors.Is(err, models.ErrAssetFetchFailed):
		AssetFetchFailed(c, err.Error())
	case errors.Is(err, models.ErrValidation):
		BadRequest(c, err.Error())
	default:
		Internal(c, err.Error())
	}
}
