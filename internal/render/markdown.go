// Package render implements the markdown renderer on top of goldmark
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/markwatch/markwatch/internal/core/interfaces"
	"github.com/markwatch/markwatch/pkg/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

const wordsPerMinute = 200

// GoldmarkRenderer renders markdown to HTML and extracts the table of
// contents, word count, and estimated reading time in a single pass over the
// parsed document
type GoldmarkRenderer struct {
	full goldmark.Markdown
	fast goldmark.Markdown
}

var _ interfaces.Renderer = (*GoldmarkRenderer)(nil)

// NewGoldmarkRenderer creates a renderer with GFM extensions enabled; the
// performance-mode pipeline drops the extensions but keeps heading IDs so the
// TOC stays usable
func NewGoldmarkRenderer() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		full: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		fast: goldmark.New(
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// Render converts markdown source into HTML plus document statistics
func (r *GoldmarkRenderer) Render(markdown string, preferences models.RenderPreferences) (*models.RenderedMarkdown, error) {
	frontMatter, body := splitFrontMatter([]byte(markdown))

	md := r.full
	if preferences.PerformanceMode {
		md = r.fast
	}

	doc := md.Parser().Parse(text.NewReader(body))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, doc); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	toc := extractToc(doc, body)

	words := countWords(doc, body, preferences.WordCountRules)
	if preferences.WordCountRules.IncludeFrontMatter {
		words += len(strings.Fields(string(frontMatter)))
	}

	return &models.RenderedMarkdown{
		HTML:               buf.String(),
		Toc:                toc,
		WordCount:          words,
		ReadingTimeMinutes: readingTime(words),
	}, nil
}

// splitFrontMatter separates a leading "---"-delimited front matter block
// from the document body. Front matter never reaches the HTML output; the word
// count rules decide whether its words are counted.
func splitFrontMatter(source []byte) ([]byte, []byte) {
	if !bytes.HasPrefix(source, []byte("---\n")) && !bytes.HasPrefix(source, []byte("---\r\n")) {
		return nil, source
	}

	rest := source[bytes.IndexByte(source, '\n')+1:]
	for _, delim := range []string{"\n---\n", "\n---\r\n"} {
		if idx := bytes.Index(rest, []byte(delim)); idx >= 0 {
			return rest[:idx], rest[idx+len(delim):]
		}
	}
	return nil, source
}

func extractToc(doc ast.Node, source []byte) []models.TocEntry {
	var toc []models.TocEntry

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var id string
		if v, found := heading.AttributeString("id"); found {
			if raw, isBytes := v.([]byte); isBytes {
				id = string(raw)
			}
		}

		toc = append(toc, models.TocEntry{
			Level: heading.Level,
			ID:    id,
			Text:  collectText(heading, source),
		})
		return ast.WalkSkipChildren, nil
	})

	return toc
}

// collectText concatenates the plain text content of a node's subtree
func collectText(node ast.Node, source []byte) string {
	var sb strings.Builder
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func countWords(doc ast.Node, source []byte, rules models.WordCountRules) int {
	words := 0

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if rules.IncludeCode {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					words += len(bytes.Fields(seg.Value(source)))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			if !rules.IncludeCode {
				return ast.WalkSkipChildren, nil
			}
		case *ast.Link, *ast.AutoLink:
			if !rules.IncludeLinks {
				return ast.WalkSkipChildren, nil
			}
		case *ast.Text:
			words += len(bytes.Fields(t.Segment.Value(source)))
		case *ast.String:
			words += len(bytes.Fields(t.Value))
		}
		return ast.WalkContinue, nil
	})

	return words
}

func readingTime(words int) int {
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
