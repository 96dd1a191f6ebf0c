package models

import (
	"strconv"
)

// LanguageCode identifies a natural language by a BCP-47-like tag (e.g. "en", "ja").
// Codes compare by value; the provider decides which codes it emits.
type LanguageCode string

// Tag is an annotation label scoped to a TagScheme (e.g. "Noun", "PlaceName").
// For SchemeSentimentScore the tag is the formatted score itself.
type Tag string

// TagScheme names a category of linguistic annotation.
type TagScheme string

const (
	SchemeLexicalClass   TagScheme = "lexicalClass"
	SchemeNameType       TagScheme = "nameType"
	SchemeSentimentScore TagScheme = "sentimentScore"
)

// TokenGranularity is the unit tagging operates over.
type TokenGranularity string

const (
	GranularityWord     TokenGranularity = "word"
	GranularitySentence TokenGranularity = "sentence"
)

// DefaultGranularity returns the token unit a scheme naturally works at:
// word for lexical class and name type, sentence for sentiment.
func (s TagScheme) DefaultGranularity() TokenGranularity {
	if s == SchemeSentimentScore {
		return GranularitySentence
	}
	return GranularityWord
}

// Valid reports whether s is one of the known schemes.
func (s TagScheme) Valid() bool {
	switch s {
	case SchemeLexicalClass, SchemeNameType, SchemeSentimentScore:
		return true
	}
	return false
}

// TokenizeOptions control which tokens the tagger emits.
type TokenizeOptions struct {
	// OmitPunctuation drops tokens consisting only of punctuation.
	OmitPunctuation bool
	// OmitWhitespace drops tokens consisting only of whitespace.
	OmitWhitespace bool
	// JoinNames merges adjacent tokens the ranker groups as one named entity
	// into a single span. Only meaningful for SchemeNameType.
	JoinNames bool
}

// MaxHypotheses is the default cap on hypothesis sets (languages and tags).
const MaxHypotheses = 3

// BestTagProbability is the weight assigned to a ranker's definite best tag
// when the hypothesis set did not already rank it. The definite answer is
// trusted fully; no probability is inferred for it.
const BestTagProbability = 1.0

// Span is a contiguous substring of the analyzed text together with its tag
// hypothesis distribution. Spans are request-scoped values: Text is an owned
// copy and ID is the start offset of the span within the analyzed text,
// unique within a single run.
type Span struct {
	ID            int             `json:"id"`
	Text          string          `json:"text"`
	TagHypotheses map[Tag]float64 `json:"tagHypotheses"`
}

// BestTag returns the highest-weighted tag in the span's hypothesis set.
// ok is false when the span carries no hypotheses at all.
func (s Span) BestTag() (tag Tag, prob float64, ok bool) {
	for t, p := range s.TagHypotheses {
		if !ok || p > prob || (p == prob && t < tag) {
			tag, prob, ok = t, p, true
		}
	}
	return tag, prob, ok
}

// LanguageIdentificationResult is the outcome of language identification.
// Dominant is nil when the recognizer could not decide (empty or too-short
// text); Hypotheses may still be non-empty in that case. Hypothesis scores
// are independent confidences in [0,1], not a normalized distribution.
type LanguageIdentificationResult struct {
	Dominant   *LanguageCode            `json:"dominant,omitempty"`
	Hypotheses map[LanguageCode]float64 `json:"hypotheses"`
}

// SentimentTag formats a sentiment score in [-1,1] as the pseudo-tag used by
// SchemeSentimentScore.
func SentimentTag(score float64) Tag {
	return Tag(strconv.FormatFloat(score, 'f', -1, 64))
}

// SentimentScore parses a sentiment pseudo-tag back into its numeric score.
func SentimentScore(t Tag) (float64, error) {
	return strconv.ParseFloat(string(t), 64)
}

// AssetOutcome is the provider's answer to an asset request.
type AssetOutcome int

const (
	// AssetOutcomeUnknown is any outcome code this version does not know.
	// Unknown outcomes are treated as success so that future provider states
	// do not block analysis.
	AssetOutcomeUnknown AssetOutcome = iota
	AssetOutcomeAvailable
	AssetOutcomeNotAvailable
	AssetOutcomeFetchFailed
)

func (o AssetOutcome) String() string {
	switch o {
	case AssetOutcomeAvailable:
		return "available"
	case AssetOutcomeNotAvailable:
		return "notAvailable"
	case AssetOutcomeFetchFailed:
		return "fetchFailed"
	default:
		return "unknown"
	}
}

// AssetRecord describes one installed model asset in the local catalog.
type AssetRecord struct {
	Language    LanguageCode     `json:"language" db:"language"`
	Scheme      TagScheme        `json:"scheme" db:"scheme"`
	Granularity TokenGranularity `json:"granularity" db:"granularity"`
}
