package loader

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Renderer converts markdown source into normalized plain text by walking
// the parsed AST. The same input bytes always produce the same output
// bytes, so re-ingesting an unchanged corpus yields identical records.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a markdown-to-text renderer with GFM extensions
// enabled (tables, strikethrough, task lists).
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render converts markdown source to plain text. Raw HTML and JSX blocks
// (common in .mdx files) are dropped; code blocks are kept verbatim.
// A non-empty source that renders to empty text is an error, never a
// silently empty document.
func (r *Renderer) Render(src []byte) (string, error) {
	root := r.md.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			// Separate block-level nodes with a blank line.
			if n.Type() == ast.TypeBlock {
				sb.WriteString("\n\n")
			}
			return ast.WalkContinue, nil
		}

		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.AutoLink:
			sb.Write(t.URL(src))
		case *ast.CodeBlock:
			writeBlockLines(&sb, src, t.Lines())
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			writeBlockLines(&sb, src, t.Lines())
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("walking markdown ast: %w", err)
	}

	out := normalizeText(sb.String())
	if out == "" && len(strings.TrimSpace(string(src))) > 0 {
		return "", fmt.Errorf("markdown rendered to empty text")
	}
	return out, nil
}

// writeBlockLines copies the raw line segments of a code block.
func writeBlockLines(sb *strings.Builder, src []byte, lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
}

// normalizeText trims trailing whitespace per line and collapses runs of
// blank lines into a single blank line.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	prevBlank := true // drop leading blank lines
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		blank := line == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, line)
		prevBlank = blank
	}
	// Drop a trailing blank line, if any.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
