package util

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// charReplacementMap normalizes Windows-1252 leftovers and typographic
// characters that confuse the tokenizers.
var charReplacementMap = map[string]string{
	"‘": "'", "’": "'", "“": "\"", "”": "\"",
	"–": "-", "—": "--", "…": "...", " ": " ",
	"": "'", "": "'", "": "\"", "": "\"",
	"": "-", "": "--",
}

// IsLikelyBinary reports whether data looks like binary content (contains a
// NUL in its first bytes).
func IsLikelyBinary(data []byte) bool {
	const checkBytes = 512
	if len(data) > checkBytes {
		data = data[:checkBytes]
	}
	return bytes.Contains(data, []byte{0})
}

// CleanText strips a UTF-8 BOM, repairs invalid UTF-8 and normalizes
// typographic punctuation so analysis sees plain text.
func CleanText(data []byte, src string) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		log.Warnf("%s: invalid UTF-8, replacing invalid bytes", src)
		data = bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
	}

	str := string(data)
	for bad, good := range charReplacementMap {
		str = strings.ReplaceAll(str, bad, good)
	}

	if !utf8.ValidString(str) {
		return "", fmt.Errorf("invalid UTF-8 after replacements: %s", src)
	}
	return str, nil
}
