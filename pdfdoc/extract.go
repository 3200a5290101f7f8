// Package pdfdoc extracts plain text from PDF documents using the pure Go
// ledongthuc/pdf reader, so no system PDF library is required.
package pdfdoc

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract reads the file at path and returns its plain text, pages joined
// by blank lines.
func Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	return ExtractBytes(content)
}

// ExtractBytes extracts text from in-memory PDF data. Pages that cannot
// be parsed are skipped rather than failing the whole document; a document
// with no readable pages yields an empty string.
func ExtractBytes(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty PDF content")
	}

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	// The reader can panic on malformed cross-reference tables.
	pages := 0
	func() {
		defer func() { _ = recover() }()
		pages = r.NumPage()
	}()

	var text strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText := safePageText(page)
		if pageText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(pageText)
	}

	return strings.TrimSpace(text.String()), nil
}

// safePageText extracts one page's text, absorbing panics the PDF library
// throws on malformed content streams and fonts.
func safePageText(page pdf.Page) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
