// Package htmldoc extracts text from HTML documents. Script, style and
// other non-content elements are skipped, block elements produce line
// breaks, and list items keep textual markers so downstream classification
// can still recognize them.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Reader provides access to HTML document content.
type Reader struct {
	doc   *html.Node
	title string
}

// Open opens an HTML file for reading. The document's character encoding
// is detected from its meta tags or byte order mark.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	decoded, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{doc: doc}
	if titleNode := findElement(doc, "title"); titleNode != nil {
		reader.title = getTextContent(titleNode)
	}

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return nil
}

// Title returns the document title, or "" when the document has none.
func (r *Reader) Title() string {
	return r.title
}

// Text returns the document's visible text, one line per block element.
func (r *Reader) Text() (string, error) {
	root := findElement(r.doc, "body")
	if root == nil {
		root = r.doc
	}

	var b strings.Builder
	collect(root, &b, nil)

	var lines []string
	for _, raw := range strings.Split(b.String(), "\n") {
		line := strings.Join(strings.Fields(raw), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}

// collect walks the DOM appending text. Text node whitespace is collapsed
// so the only newlines in the builder are structural ones; listMarker, when
// set, prefixes each li of the enclosing list.
func collect(n *html.Node, b *strings.Builder, listMarker func() string) {
	switch n.Type {
	case html.TextNode:
		writeCollapsed(b, n.Data)
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}
		switch n.Data {
		case "br":
			b.WriteString("\n")
			return
		case "ul":
			marker := func() string { return "- " }
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				collect(c, b, marker)
			}
			b.WriteString("\n")
			return
		case "ol":
			i := 0
			marker := func() string {
				i++
				return fmt.Sprintf("%d. ", i)
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				collect(c, b, marker)
			}
			b.WriteString("\n")
			return
		case "li":
			if listMarker != nil {
				b.WriteString(listMarker())
			}
		case "a":
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				collect(c, b, listMarker)
			}
			if href := linkTarget(n); href != "" {
				b.WriteString(" (")
				b.WriteString(href)
				b.WriteString(")")
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, b, listMarker)
	}

	if n.Type == html.ElementNode {
		if isBlockElement(n.Data) {
			b.WriteString("\n")
		} else if n.Data == "td" || n.Data == "th" {
			b.WriteString(" ")
		}
	}
}

// linkTarget returns an anchor's href when it adds information beyond the
// anchor's own text: fragment and javascript targets are ignored, and a
// href identical to the display text would only duplicate it.
func linkTarget(n *html.Node) string {
	var href string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	if strings.TrimSpace(getTextContent(n)) == href {
		return ""
	}
	return href
}

// writeCollapsed appends s with every whitespace run reduced to a single
// space.
func writeCollapsed(b *strings.Builder, s string) {
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
}

// shouldSkipElement returns true for elements whose content is never
// document text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

// isBlockElement returns true for elements that end a line of text.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "p", "div", "li", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6",
		"tr", "table", "thead", "tbody", "blockquote", "pre", "section",
		"article", "header", "footer", "main", "nav", "aside", "figure",
		"figcaption", "dt", "dd", "dl", "hr":
		return true
	}
	return false
}

// getTextContent returns a node's text with whitespace collapsed.
func getTextContent(n *html.Node) string {
	var b strings.Builder
	collectPlain(n, &b)
	return strings.TrimSpace(b.String())
}

func collectPlain(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		writeCollapsed(b, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectPlain(c, b)
	}
}

// findElement returns the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// Extract opens the file at path and returns its text content.
func Extract(path string) (string, error) {
	text, _, err := ExtractWithTitle(path)
	return text, err
}

// ExtractWithTitle opens the file at path and returns its text content and
// document title.
func ExtractWithTitle(path string) (string, string, error) {
	r, err := Open(path)
	if err != nil {
		return "", "", err
	}
	defer r.Close()

	text, err := r.Text()
	if err != nil {
		return "", "", err
	}
	return text, r.Title(), nil
}
