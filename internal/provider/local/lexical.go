package local

import (
	"strings"
	"unicode"

	"glossa/internal/models"
	"glossa/internal/provider"
)

// Lexical class tags, mirroring the usual part-of-speech inventory.
const (
	TagNoun         models.Tag = "Noun"
	TagProperNoun   models.Tag = "ProperNoun"
	TagVerb         models.Tag = "Verb"
	TagAdjective    models.Tag = "Adjective"
	TagAdverb       models.Tag = "Adverb"
	TagPronoun      models.Tag = "Pronoun"
	TagDeterminer   models.Tag = "Determiner"
	TagPreposition  models.Tag = "Preposition"
	TagConjunction  models.Tag = "Conjunction"
	TagInterjection models.Tag = "Interjection"
	TagNumber       models.Tag = "Number"
	TagPunctuation  models.Tag = "Punctuation"
	TagWhitespace   models.Tag = "Whitespace"
)

// lexicon maps known English words to their most likely lexical class.
var lexicon = map[string]models.Tag{
	"the": TagDeterminer, "a": TagDeterminer, "an": TagDeterminer,
	"this": TagDeterminer, "that": TagDeterminer, "these": TagDeterminer,
	"those": TagDeterminer,

	"i": TagPronoun, "you": TagPronoun, "he": TagPronoun, "she": TagPronoun,
	"it": TagPronoun, "we": TagPronoun, "they": TagPronoun, "me": TagPronoun,
	"him": TagPronoun, "her": TagPronoun, "us": TagPronoun, "them": TagPronoun,

	"in": TagPreposition, "on": TagPreposition, "at": TagPreposition,
	"of": TagPreposition, "to": TagPreposition, "from": TagPreposition,
	"with": TagPreposition, "by": TagPreposition, "for": TagPreposition,

	"and": TagConjunction, "or": TagConjunction, "but": TagConjunction,
	"nor": TagConjunction, "so": TagConjunction, "yet": TagConjunction,

	"is": TagVerb, "are": TagVerb, "was": TagVerb, "were": TagVerb,
	"be": TagVerb, "been": TagVerb, "am": TagVerb, "have": TagVerb,
	"has": TagVerb, "had": TagVerb, "do": TagVerb, "does": TagVerb,
	"did": TagVerb, "will": TagVerb, "would": TagVerb, "can": TagVerb,
	"could": TagVerb, "go": TagVerb, "make": TagVerb, "run": TagVerb,

	"good": TagAdjective, "bad": TagAdjective, "great": TagAdjective,
	"awesome": TagAdjective, "small": TagAdjective, "big": TagAdjective,
	"new": TagAdjective, "old": TagAdjective, "nice": TagAdjective,

	"not": TagAdverb, "very": TagAdverb, "too": TagAdverb, "also": TagAdverb,
	"here": TagAdverb, "there": TagAdverb, "now": TagAdverb, "then": TagAdverb,

	"hello": TagInterjection, "hi": TagInterjection, "hey": TagInterjection,
	"oh": TagInterjection, "wow": TagInterjection, "ouch": TagInterjection,
}

// lexAmbiguity lists competing readings for words with more than one common
// class. Weights are ranker confidences, intentionally unnormalized.
var lexAmbiguity = map[string]map[models.Tag]float64{
	"run":   {TagVerb: 0.7, TagNoun: 0.25},
	"that":  {TagDeterminer: 0.5, TagPronoun: 0.35, TagConjunction: 0.1},
	"like":  {TagVerb: 0.5, TagPreposition: 0.35},
	"hello": {TagInterjection: 0.7, TagNoun: 0.2},
	"so":    {TagConjunction: 0.45, TagAdverb: 0.45},
	"her":   {TagPronoun: 0.55, TagDeterminer: 0.4},
}

// bestLexical returns the single best lexical class for a token.
func bestLexical(t token) models.Tag {
	switch t.kind() {
	case kindWhitespace:
		return TagWhitespace
	case kindPunctuation:
		return TagPunctuation
	}

	lower := strings.ToLower(t.text)
	if tag, ok := lexicon[lower]; ok {
		return tag
	}
	if isNumeric(t.text) {
		return TagNumber
	}
	switch {
	case strings.HasSuffix(lower, "ly"):
		return TagAdverb
	case strings.HasSuffix(lower, "ing"), strings.HasSuffix(lower, "ed"):
		return TagVerb
	case strings.HasSuffix(lower, "ful"), strings.HasSuffix(lower, "ous"),
		strings.HasSuffix(lower, "ive"), strings.HasSuffix(lower, "able"):
		return TagAdjective
	}
	if isCapitalizedWord(t) {
		return TagProperNoun
	}
	return TagNoun
}

func tagLexical(tokens []token) []provider.TokenTag {
	out := make([]provider.TokenTag, 0, len(tokens))
	for _, t := range tokens {
		tag := bestLexical(t)
		out = append(out, provider.TokenTag{Tag: &tag, Start: t.start, End: t.end})
	}
	return out
}

func lexicalHypotheses(t token) map[models.Tag]float64 {
	lower := strings.ToLower(t.text)
	if amb, ok := lexAmbiguity[lower]; ok {
		hyps := make(map[models.Tag]float64, len(amb))
		for tag, p := range amb {
			hyps[tag] = p
		}
		return hyps
	}

	best := bestLexical(t)
	hyps := map[models.Tag]float64{best: 0.8}
	// Unknown open-class words could still be nouns.
	if _, known := lexicon[lower]; !known && t.kind() == kindWord && best != TagNoun && best != TagNumber {
		hyps[TagNoun] = 0.15
	}
	return hyps
}

func isNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		} else if r != '.' && r != ',' {
			return false
		}
	}
	return digits > 0
}
