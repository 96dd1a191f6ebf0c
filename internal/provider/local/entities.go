package local

import (
	"strings"
	"unicode"

	"glossa/internal/models"
	"glossa/internal/provider"
)

// Name type tags.
const (
	TagPersonalName     models.Tag = "PersonalName"
	TagPlaceName        models.Tag = "PlaceName"
	TagOrganizationName models.Tag = "OrganizationName"
)

var placeNames = wordSet(
	"tokyo", "kyoto", "osaka", "london", "paris", "berlin", "madrid", "rome",
	"moscow", "seoul", "beijing", "sydney", "chicago", "boston", "seattle",
	"america", "japan", "france", "germany", "spain", "italy", "england",
	"new york", "san francisco", "los angeles", "hong kong", "united states",
)

var personalNames = wordSet(
	"john", "jane", "alice", "bob", "mary", "james", "robert", "michael",
	"linda", "david", "sarah", "emma", "kenji", "yuki", "hiro", "tanaka",
	"smith", "johnson", "garcia", "miller", "john smith", "jane doe",
)

var organizationNames = wordSet(
	"google", "microsoft", "amazon", "toyota", "sony", "nintendo", "honda",
	"nasa", "unesco", "interpol", "acme corp",
)

// lookupNameType classifies a candidate entity phrase by exact gazetteer
// match. Multi-word entities ("new york", "john smith") are listed whole, so
// an overgrown run of capitalized words never resolves by accident.
func lookupNameType(phrase string) (models.Tag, bool) {
	lower := strings.ToLower(phrase)
	if _, ok := placeNames[lower]; ok {
		return TagPlaceName, true
	}
	if _, ok := personalNames[lower]; ok {
		return TagPersonalName, true
	}
	if _, ok := organizationNames[lower]; ok {
		return TagOrganizationName, true
	}
	return "", false
}

func isCapitalizedWord(t token) bool {
	if t.kind() != kindWord {
		return false
	}
	for _, r := range t.text {
		return unicode.IsUpper(r)
	}
	return false
}

// tagNames tags tokens with name types. With join enabled, maximal runs of
// adjacent capitalized words that resolve to an entity collapse into one
// span covering the combined range.
func tagNames(tokens []token, join bool) []provider.TokenTag {
	out := make([]provider.TokenTag, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if !isCapitalizedWord(t) {
			out = append(out, provider.TokenTag{Start: t.start, End: t.end})
			continue
		}

		end := i
		if join {
			// Extend over capitalized words separated by single spaces.
			for end+1 < len(tokens) {
				next := tokens[end+1]
				if !isCapitalizedWord(next) || next.start != tokens[end].end+1 {
					break
				}
				end++
			}
		}

		for end > i {
			phrase := joinedText(tokens, i, end)
			if _, ok := lookupNameType(phrase); ok {
				break
			}
			end--
		}

		phrase := joinedText(tokens, i, end)
		if tag, ok := lookupNameType(phrase); ok {
			out = append(out, provider.TokenTag{Tag: &tag, Start: tokens[i].start, End: tokens[end].end})
		} else {
			out = append(out, provider.TokenTag{Start: t.start, End: t.end})
			end = i
		}
		i = end
	}
	return out
}

func joinedText(tokens []token, i, j int) string {
	parts := make([]string, 0, j-i+1)
	for k := i; k <= j; k++ {
		parts = append(parts, tokens[k].text)
	}
	return strings.Join(parts, " ")
}

func nameHypotheses(t token) map[models.Tag]float64 {
	if tag, ok := lookupNameType(t.text); ok {
		hyps := map[models.Tag]float64{tag: 0.9}
		switch tag {
		case TagPlaceName:
			hyps[TagOrganizationName] = 0.05
		case TagPersonalName:
			hyps[TagPlaceName] = 0.05
		case TagOrganizationName:
			hyps[TagPlaceName] = 0.05
		}
		return hyps
	}
	if isCapitalizedWord(t) {
		// Unknown capitalized word: weak evidence for every name type.
		return map[models.Tag]float64{
			TagPersonalName:     0.35,
			TagPlaceName:        0.3,
			TagOrganizationName: 0.2,
		}
	}
	return map[models.Tag]float64{}
}
