package local

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"glossa/internal/models"
)

// dominantThreshold is the minimum confidence before the recognizer commits
// to a single dominant language. Below it, callers get hypotheses only.
const dominantThreshold = 0.25

// commonWords are high-frequency function and everyday words per language,
// enough signal for short interactive inputs. Scores are hit ratios, not a
// normalized distribution.
var commonWords = map[models.LanguageCode]map[string]struct{}{
	"en": wordSet("the", "a", "an", "is", "are", "was", "were", "be", "to",
		"of", "and", "in", "that", "it", "for", "on", "with", "as", "this",
		"but", "not", "you", "he", "she", "they", "we", "at", "by", "from",
		"or", "have", "has", "had", "what", "which", "who", "will", "would",
		"there", "their", "hello", "world", "great", "awesome", "good", "bad"),
	"es": wordSet("el", "la", "los", "las", "un", "una", "es", "son", "y",
		"de", "en", "que", "por", "con", "para", "no", "se", "su", "al",
		"como", "pero", "más", "este", "esta", "hola", "mundo", "muy"),
	"fr": wordSet("le", "la", "les", "un", "une", "des", "est", "sont", "et",
		"de", "du", "en", "que", "qui", "dans", "pour", "avec", "sur", "pas",
		"ne", "je", "tu", "il", "elle", "nous", "vous", "bonjour", "monde", "très"),
	"de": wordSet("der", "die", "das", "ein", "eine", "ist", "sind", "und",
		"von", "zu", "mit", "auf", "für", "nicht", "ich", "du", "er", "sie",
		"wir", "ihr", "aber", "auch", "hallo", "welt", "sehr"),
	"it": wordSet("il", "lo", "la", "gli", "le", "un", "una", "è", "sono",
		"e", "di", "che", "per", "con", "non", "si", "al", "del", "ciao",
		"mondo", "molto"),
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// RecognizeLanguage scores candidate languages by script membership and
// common-word hits, applies the caller's hints as additive priors, and
// restricts candidates when constraints are non-empty. Nothing is carried
// over between calls.
func (p *Provider) RecognizeLanguage(ctx context.Context, text string, hints map[models.LanguageCode]float64, constraints []models.LanguageCode) (*models.LanguageCode, map[models.LanguageCode]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, map[models.LanguageCode]float64{}, nil
	}

	scores := make(map[models.LanguageCode]float64)

	// Script evidence decides non-Latin text almost outright.
	for lang, share := range scriptShares(text) {
		scores[lang] += share * 0.9
	}

	// Common-word evidence for Latin-script languages.
	words := lowercaseWords(text)
	if len(words) > 0 {
		for lang, set := range commonWords {
			hits := 0
			for _, w := range words {
				if _, ok := set[w]; ok {
					hits++
				}
			}
			if hits > 0 {
				scores[lang] += float64(hits) / float64(len(words))
			}
		}
	}

	for lang, boost := range hints {
		if _, ok := scores[lang]; ok || boost > 0 {
			scores[lang] += boost
		}
	}

	if len(constraints) > 0 {
		allowed := make(map[models.LanguageCode]struct{}, len(constraints))
		for _, lang := range constraints {
			allowed[lang] = struct{}{}
		}
		for lang := range scores {
			if _, ok := allowed[lang]; !ok {
				delete(scores, lang)
			}
		}
	}

	type candidate struct {
		lang  models.LanguageCode
		score float64
	}
	candidates := make([]candidate, 0, len(scores))
	for lang, score := range scores {
		if score <= 0 {
			continue
		}
		if score > 1 {
			score = 1
		}
		candidates = append(candidates, candidate{lang, score})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].lang < candidates[j].lang
	})
	if len(candidates) > models.MaxHypotheses {
		candidates = candidates[:models.MaxHypotheses]
	}

	hypotheses := make(map[models.LanguageCode]float64, len(candidates))
	for _, c := range candidates {
		hypotheses[c.lang] = c.score
	}

	var dominant *models.LanguageCode
	if len(candidates) > 0 && candidates[0].score >= dominantThreshold {
		lang := candidates[0].lang
		dominant = &lang
	}
	return dominant, hypotheses, nil
}

// scriptShares returns, per language, the share of letter runes written in a
// script that identifies it.
func scriptShares(text string) map[models.LanguageCode]float64 {
	counts := make(map[models.LanguageCode]int)
	letters := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			counts["ja"]++
		case unicode.Is(unicode.Han, r):
			// Han alone is ambiguous between Japanese and Chinese; kana
			// elsewhere in the text tips the balance via the hiragana arm.
			counts["zh"]++
		case unicode.Is(unicode.Hangul, r):
			counts["ko"]++
		case unicode.Is(unicode.Cyrillic, r):
			counts["ru"]++
		}
	}
	if letters == 0 {
		return nil
	}
	shares := make(map[models.LanguageCode]float64, len(counts))
	for lang, n := range counts {
		shares[lang] = float64(n) / float64(letters)
	}
	return shares
}

func lowercaseWords(text string) []string {
	var words []string
	for _, t := range tokenizeWords(text) {
		if t.kind() == kindWord {
			words = append(words, strings.ToLower(t.text))
		}
	}
	return words
}
