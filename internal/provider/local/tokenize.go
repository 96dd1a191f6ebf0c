package local

import (
	"strings"
	"sync"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"glossa/internal/models"
)

// token is a tokenizer unit: the covered text and its half-open byte range.
type token struct {
	text  string
	start int
	end   int
}

type tokenKind int

const (
	kindWord tokenKind = iota
	kindWhitespace
	kindPunctuation
)

func classifyRune(r rune) tokenKind {
	switch {
	case unicode.IsSpace(r):
		return kindWhitespace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
		return kindWord
	default:
		return kindPunctuation
	}
}

func (t token) kind() tokenKind {
	for _, r := range t.text {
		return classifyRune(r)
	}
	return kindWhitespace
}

// IsPunctuation reports whether the token consists only of punctuation runes.
func isPunctuationOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if classifyRune(r) != kindPunctuation {
			return false
		}
	}
	return true
}

func isWhitespaceOnly(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}

// tokenizeWords splits text into maximal runs of word, whitespace and
// punctuation runes, preserving byte offsets. Apostrophes inside words stay
// attached ("don't" is one token).
func tokenizeWords(text string) []token {
	var tokens []token
	start := -1
	var kind tokenKind
	for i, r := range text {
		k := classifyRune(r)
		if start < 0 {
			start, kind = i, k
			continue
		}
		if k != kind {
			tokens = append(tokens, token{text: text[start:i], start: start, end: i})
			start, kind = i, k
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: text[start:], start: start, end: len(text)})
	}
	return tokens
}

var (
	sentenceTokenizerOnce sync.Once
	sentenceTokenizer     *sentences.DefaultSentenceTokenizer
	sentenceTokenizerErr  error
)

// loadSentenceTokenizer builds the punkt tokenizer from the embedded English
// training data, once per process.
func loadSentenceTokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	sentenceTokenizerOnce.Do(func() {
		sentenceTokenizer, sentenceTokenizerErr = english.NewSentenceTokenizer(nil)
	})
	return sentenceTokenizer, sentenceTokenizerErr
}

// tokenizeSentences segments text into sentence tokens with byte offsets.
func tokenizeSentences(text string) []token {
	tokenizer, err := loadSentenceTokenizer()
	if err != nil {
		// Training data is embedded in the binary; if it cannot load, the
		// whole text counts as one sentence rather than none.
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		lead := strings.Index(text, trimmed)
		return []token{{text: trimmed, start: lead, end: lead + len(trimmed)}}
	}
	var tokens []token
	cursor := 0
	for _, s := range tokenizer.Tokenize(text) {
		raw := s.Text
		if raw == "" {
			continue
		}
		idx := strings.Index(text[cursor:], raw)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		// Offsets key spans, so trim surrounding whitespace out of the range
		// instead of out of the text copy alone.
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			cursor = start + len(raw)
			continue
		}
		lead := strings.Index(raw, trimmed)
		tokens = append(tokens, token{
			text:  trimmed,
			start: start + lead,
			end:   start + lead + len(trimmed),
		})
		cursor = start + len(raw)
	}
	return tokens
}

// tokenize produces option-filtered tokens at the requested granularity.
func tokenize(text string, granularity models.TokenGranularity, opts models.TokenizeOptions) []token {
	var raw []token
	if granularity == models.GranularitySentence {
		raw = tokenizeSentences(text)
	} else {
		raw = tokenizeWords(text)
	}

	filtered := raw[:0:0]
	for _, t := range raw {
		if opts.OmitWhitespace && isWhitespaceOnly(t.text) {
			continue
		}
		if opts.OmitPunctuation && isPunctuationOnly(t.text) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// tokenAt locates the filtered token whose range contains position.
func tokenAt(tokens []token, position int) (token, bool) {
	for _, t := range tokens {
		if position >= t.start && position < t.end {
			return t, true
		}
	}
	return token{}, false
}
