package local

import (
	"math"
	"strings"

	"glossa/internal/models"
	"glossa/internal/provider"
)

// sentimentLexicon scores individual words in [-1,1].
var sentimentLexicon = map[string]float64{
	"great": 0.8, "awesome": 0.9, "good": 0.6, "nice": 0.5, "love": 0.9,
	"excellent": 0.9, "wonderful": 0.85, "happy": 0.7, "best": 0.8,
	"beautiful": 0.7, "fantastic": 0.9, "amazing": 0.85, "like": 0.4,

	"bad": -0.6, "terrible": -0.9, "awful": -0.85, "hate": -0.9,
	"worst": -0.9, "horrible": -0.85, "sad": -0.6, "poor": -0.5,
	"ugly": -0.6, "boring": -0.5, "wrong": -0.4, "disappointing": -0.7,
}

// sentenceScore averages the lexicon scores of the sentiment-bearing words
// in a sentence, clamped to [-1,1]. A sentence with no scored words is 0.
func sentenceScore(text string) float64 {
	var sum float64
	scored := 0
	for _, t := range tokenizeWords(text) {
		if t.kind() != kindWord {
			continue
		}
		if s, ok := sentimentLexicon[strings.ToLower(t.text)]; ok {
			sum += s
			scored++
		}
	}
	if scored == 0 {
		return 0
	}
	score := sum / float64(scored)
	// Round to two decimals so the pseudo-tag is stable across runs.
	score = math.Round(score*100) / 100
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score
}

// tagSentiment emits one pseudo-tag per sentence keyed by its score. The
// score is always definite, so every span gets a tag.
func tagSentiment(tokens []token) []provider.TokenTag {
	out := make([]provider.TokenTag, 0, len(tokens))
	for _, t := range tokens {
		tag := models.SentimentTag(sentenceScore(t.text))
		out = append(out, provider.TokenTag{Tag: &tag, Start: t.start, End: t.end})
	}
	return out
}

// sentimentHypotheses is the single pseudo-tag at full weight; the score has
// no competing hypotheses.
func sentimentHypotheses(t token) map[models.Tag]float64 {
	return map[models.Tag]float64{
		models.SentimentTag(sentenceScore(t.text)): 1.0,
	}
}
