package provider

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"glossa/internal/models"
)

// Wire shapes for the JSON the remote models are prompted to emit.

type wireLanguageResult struct {
	Dominant   string             `json:"dominant"`
	Hypotheses map[string]float64 `json:"hypotheses"`
}

type wireTokenTag struct {
	Token string `json:"token"`
	Tag   string `json:"tag"`
}

// decodeJSONBlock parses a JSON value out of a model reply, tolerating
// markdown code fences around it.
func decodeJSONBlock(reply string, v interface{}) error {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```json")
		reply = strings.TrimPrefix(reply, "```")
		if idx := strings.LastIndex(reply, "```"); idx >= 0 {
			reply = reply[:idx]
		}
		reply = strings.TrimSpace(reply)
	}
	if err := json.Unmarshal([]byte(reply), v); err != nil {
		return fmt.Errorf("decode model reply: %w", err)
	}
	return nil
}

// parseLanguageReply converts the wire result into the provider return
// shape, capping hypotheses at models.MaxHypotheses.
func parseLanguageReply(reply string) (*models.LanguageCode, map[models.LanguageCode]float64, error) {
	var wire wireLanguageResult
	if err := decodeJSONBlock(reply, &wire); err != nil {
		return nil, nil, err
	}
	hypotheses := make(map[models.LanguageCode]float64, len(wire.Hypotheses))
	for lang, p := range wire.Hypotheses {
		if len(hypotheses) == models.MaxHypotheses {
			break
		}
		if p < 0 {
			p = 0
		} else if p > 1 {
			p = 1
		}
		hypotheses[models.LanguageCode(lang)] = p
	}
	var dominant *models.LanguageCode
	if wire.Dominant != "" {
		lang := models.LanguageCode(wire.Dominant)
		dominant = &lang
	}
	return dominant, hypotheses, nil
}

// alignTokenTags maps the model's token list back onto byte ranges in text.
// Tokens the model invented (not found left to right) are dropped.
func alignTokenTags(text string, wire []wireTokenTag) []TokenTag {
	out := make([]TokenTag, 0, len(wire))
	cursor := 0
	for _, wt := range wire {
		if wt.Token == "" {
			continue
		}
		idx := strings.Index(text[cursor:], wt.Token)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		end := start + len(wt.Token)
		tt := TokenTag{Start: start, End: end}
		if wt.Tag != "" {
			tag := models.Tag(wt.Tag)
			tt.Tag = &tag
		}
		out = append(out, tt)
		cursor = end
	}
	return out
}

// wordAt extracts the word or sentence fragment surrounding position, used
// when asking a remote model to rank hypotheses for a single token.
func wordAt(text string, position int) string {
	if position < 0 || position >= len(text) {
		return ""
	}
	end := position
	for end < len(text) {
		r := rune(text[end])
		if unicode.IsSpace(r) {
			break
		}
		end++
	}
	return strings.TrimFunc(text[position:end], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// allSchemes is what remote providers report as available: server-side
// models need no local assets.
func allSchemes() map[models.TagScheme]struct{} {
	return map[models.TagScheme]struct{}{
		models.SchemeLexicalClass:   {},
		models.SchemeNameType:       {},
		models.SchemeSentimentScore: {},
	}
}
