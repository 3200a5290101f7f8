// Package rtf extracts plain text from Rich Text Format documents.
//
// The extractor walks the RTF token stream directly: control words are
// interpreted or dropped, destination groups that never contain document
// text (font tables, style sheets, embedded pictures) are skipped whole,
// and escaped bytes are decoded as Windows-1252.
package rtf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// skipDestinations are group destinations whose content is formatting
// machinery, not document text.
var skipDestinations = map[string]bool{
	"fonttbl":           true,
	"stylesheet":        true,
	"colortbl":          true,
	"info":              true,
	"pict":              true,
	"generator":         true,
	"themedata":         true,
	"listtable":         true,
	"listoverridetable": true,
}

// symbolWords maps control words that stand for a literal character.
var symbolWords = map[string]string{
	"par":       "\n",
	"line":      "\n",
	"sect":      "\n",
	"page":      "\n",
	"tab":       "\t",
	"emdash":    "-",
	"endash":    "-",
	"bullet":    "-",
	"lquote":    "'",
	"rquote":    "'",
	"ldblquote": `"`,
	"rdblquote": `"`,
}

// Extract reads the file at path and returns its plain text.
func Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read rtf: %w", err)
	}
	return ExtractBytes(content)
}

// ExtractBytes extracts plain text from RTF data.
func ExtractBytes(content []byte) (string, error) {
	if !bytes.HasPrefix(content, []byte(`{\rtf`)) {
		return "", fmt.Errorf("not an RTF document")
	}

	var out strings.Builder
	var (
		depth       int
		skipDepth   int // depth of the skipped group; 0 = not skipping
		ucSkip      = 1 // fallback chars following \uN, set by \ucN
		pendingSkip int
	)

	i, n := 0, len(content)
	for i < n {
		switch c := content[i]; c {
		case '{':
			depth++
			i++
		case '}':
			if skipDepth > 0 && depth == skipDepth {
				skipDepth = 0
			}
			depth--
			i++
		case '\r', '\n':
			// Raw line breaks in RTF source carry no meaning.
			i++
		case '\\':
			i++
			if i >= n {
				break
			}
			if isAlpha(content[i]) {
				word, param, hasParam, next := readControlWord(content, i)
				i = next
				if skipDepth > 0 {
					continue
				}
				switch {
				case skipDestinations[word]:
					skipDepth = depth
				case word == "uc" && hasParam:
					ucSkip = param
				case word == "u" && hasParam:
					r := param
					if r < 0 {
						r += 65536
					}
					out.WriteRune(rune(r))
					pendingSkip = ucSkip
				default:
					if s, ok := symbolWords[word]; ok {
						out.WriteString(s)
					}
				}
				continue
			}

			// Control symbol.
			switch content[i] {
			case '\'':
				if i+2 < n {
					if b, err := strconv.ParseUint(string(content[i+1:i+3]), 16, 8); err == nil {
						if skipDepth == 0 {
							if pendingSkip > 0 {
								pendingSkip--
							} else {
								out.WriteRune(charmap.Windows1252.DecodeByte(byte(b)))
							}
						}
						i += 3
						continue
					}
				}
				i++
			case '\\', '{', '}':
				if skipDepth == 0 {
					out.WriteByte(content[i])
				}
				i++
			case '~':
				if skipDepth == 0 {
					out.WriteByte(' ')
				}
				i++
			case '_':
				if skipDepth == 0 {
					out.WriteByte('-')
				}
				i++
			case '*':
				// Starred groups are optional destinations; drop them.
				if skipDepth == 0 {
					skipDepth = depth
				}
				i++
			default:
				i++
			}
		default:
			if skipDepth == 0 {
				if pendingSkip > 0 {
					pendingSkip--
				} else {
					out.WriteByte(c)
				}
			}
			i++
		}
	}

	return strings.TrimSpace(out.String()), nil
}

// readControlWord scans a control word and its optional numeric parameter
// starting at content[i], returning the position after the word and its
// single delimiter space, if present.
func readControlWord(content []byte, i int) (word string, param int, hasParam bool, next int) {
	n := len(content)

	start := i
	for i < n && isAlpha(content[i]) {
		i++
	}
	word = string(content[start:i])

	neg := false
	if i < n && content[i] == '-' {
		neg = true
		i++
	}
	numStart := i
	for i < n && isDigit(content[i]) {
		i++
	}
	if numStart < i {
		hasParam = true
		param, _ = strconv.Atoi(string(content[numStart:i]))
		if neg {
			param = -param
		}
	}

	if i < n && content[i] == ' ' {
		i++
	}
	return word, param, hasParam, i
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
