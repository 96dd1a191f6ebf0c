// Package inputprocessor turns CLI input (inline text, a file path or
// stdin) into clean plain text ready for analysis.
package inputprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"glossa/internal/util"
)

// Processor resolves raw CLI input into analyzable text.
type Processor interface {
	Process(ctx context.Context, input string) (string, error)
}

func New() Processor {
	return &defaultProcessor{stdin: os.Stdin}
}

type defaultProcessor struct {
	stdin io.Reader
}

// Process treats input as a file path when one exists, as "-" for stdin,
// and as inline text otherwise. File and stdin content is UTF-8 cleaned and
// stripped of HTML markup when it looks like markup.
func (p *defaultProcessor) Process(ctx context.Context, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if input == "-" {
		data, err := io.ReadAll(p.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return p.prepare(data, "stdin")
	}

	if fi, err := os.Stat(input); err == nil && !fi.IsDir() {
		log.Debugf("input %q detected as a file", input)
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("read file %q: %w", input, err)
		}
		if util.IsLikelyBinary(data) {
			return "", fmt.Errorf("file %q looks binary, refusing to analyze", input)
		}
		return p.prepare(data, input)
	}

	return input, nil
}

func (p *defaultProcessor) prepare(data []byte, src string) (string, error) {
	text, err := util.CleanText(data, src)
	if err != nil {
		return "", err
	}
	if looksLikeHTML(text) {
		log.Debugf("%s: stripping HTML markup", src)
		text = stripHTML(text)
	}
	return text, nil
}

func looksLikeHTML(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<body")
}

// stripHTML extracts the visible text of an HTML document, skipping script
// and style subtrees.
func stripHTML(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return src
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}
