// Package textdoc reads plain text files, decoding Unicode byte order
// marks so UTF-16 exports from Windows tools come out as UTF-8.
package textdoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Extract reads the file at path and returns its contents as UTF-8.
func Extract(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open text file: %w", err)
	}
	defer f.Close()
	return ExtractReader(f)
}

// ExtractReader decodes plain text from r. A leading UTF-8, UTF-16LE or
// UTF-16BE byte order mark selects the decoding and is consumed; input
// without a BOM is read as UTF-8 with invalid bytes replaced.
func ExtractReader(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}

	text := string(decoded)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text), nil
}
