// Package classify decides whether note content is rich enough to be
// worth embedding or summarizing, and normalizes markdown into prose
// before it is sent to the embedding model.
package classify

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	// minEmbeddingChars is the minimum prose length worth embedding.
	minEmbeddingChars = 30
	// minEmbeddingWords guards against long but word-poor text.
	minEmbeddingWords = 5
)

var parser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ShouldGenerateEmbedding reports whether the given text carries enough
// prose to produce a meaningful embedding. Empty text, text below the
// length or word thresholds, and markup with no prose all return false.
// Pure and deterministic; never fails.
func ShouldGenerateEmbedding(content string) bool {
	prose := PrepareContentForEmbedding(content)
	if len(prose) < minEmbeddingChars {
		return false
	}
	if len(strings.Fields(prose)) < minEmbeddingWords {
		return false
	}
	return true
}

// PrepareContentForEmbedding strips presentation markup from markdown
// content, keeping the prose: heading markers, bullet glyphs, emphasis,
// and code fences are removed while their text survives. Raw code block
// bodies are dropped so the embedded signal stays close to natural
// language. Plain text passes through trimmed.
func PrepareContentForEmbedding(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	source := []byte(trimmed)
	doc := parser.Parser().Parse(text.NewReader(source))

	var parts []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			// Formatting noise, not prose.
			return ast.WalkSkipChildren, nil
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			if textContent := extractText(n, source); textContent != "" {
				parts = append(parts, textContent)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// extractText collects the plain text of a block node's inline children.
func extractText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if textNode, ok := n.(*ast.Text); ok {
			sb.Write(textNode.Segment.Value(source))
			if textNode.SoftLineBreak() || textNode.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// BuildEmbeddingInput concatenates a note title with its prepared
// content the way every embedding call site does: title, blank line,
// prose.
func BuildEmbeddingInput(title, content string) string {
	prose := PrepareContentForEmbedding(content)
	title = strings.TrimSpace(title)
	if title == "" {
		return prose
	}
	if prose == "" {
		return title
	}
	return title + "\n\n" + prose
}
