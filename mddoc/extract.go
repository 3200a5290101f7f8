// Package mddoc extracts plain text from Markdown documents.
//
// Markdown markup (heading markers, list bullets, emphasis, inline and
// block HTML) is stripped while the text it wraps is kept. Links keep
// both halves, rendered as "label (url)".
package mddoc

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Extract reads the file at path and returns its plain text.
func Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	return ExtractBytes(content)
}

// ExtractBytes extracts plain text from Markdown data. Top-level blocks
// are separated by blank lines; list items within one list share a block.
func ExtractBytes(content []byte) (string, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	var blocks []string
	collectBlocks(doc, content, &blocks)
	return strings.Join(blocks, "\n\n"), nil
}

func collectBlocks(n ast.Node, source []byte, blocks *[]string) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			if t := inlineText(child, source); t != "" {
				*blocks = append(*blocks, t)
			}
		case *ast.FencedCodeBlock:
			if t := rawLines(c, source); t != "" {
				*blocks = append(*blocks, t)
			}
		case *ast.CodeBlock:
			if t := rawLines(c, source); t != "" {
				*blocks = append(*blocks, t)
			}
		case *ast.List:
			var items []string
			for li := c.FirstChild(); li != nil; li = li.NextSibling() {
				var sub []string
				collectBlocks(li, source, &sub)
				if len(sub) > 0 {
					items = append(items, strings.Join(sub, "\n"))
				}
			}
			if len(items) > 0 {
				*blocks = append(*blocks, strings.Join(items, "\n"))
			}
		case *ast.HTMLBlock, *ast.ThematicBreak:
			// Markup only, no document text.
		default:
			collectBlocks(child, source, blocks)
		}
	}
}

// inlineText renders the inline children of a block node.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	collectInline(n, source, &b)
	return strings.TrimSpace(b.String())
}

func collectInline(n ast.Node, source []byte, b *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.Link:
			var label strings.Builder
			collectInline(c, source, &label)
			writeLink(b, strings.TrimSpace(label.String()), string(c.Destination))
		case *ast.AutoLink:
			b.Write(c.URL(source))
		case *ast.Image:
			var alt strings.Builder
			collectInline(c, source, &alt)
			b.WriteString(strings.TrimSpace(alt.String()))
		default:
			collectInline(child, source, b)
		}
	}
}

func writeLink(b *strings.Builder, label, dest string) {
	if label == "" || label == dest {
		b.WriteString(dest)
		return
	}
	b.WriteString(label)
	if dest != "" {
		fmt.Fprintf(b, " (%s)", dest)
	}
}

func rawLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}
