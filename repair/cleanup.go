package repair

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// splitWord matches a broken single-character word split such as
	// "T he". A and I are excluded because they are words on their own.
	splitWord = regexp.MustCompile(`\b([B-HJ-Z]) ([a-z]+)`)

	// missingSpace matches sentence punctuation glued to the next
	// sentence's capital. Requiring a lowercase letter before the
	// punctuation keeps abbreviations like U.S.A. intact.
	missingSpace = regexp.MustCompile(`([a-z][.!?])([A-Z])`)

	// lostCapital matches a lowercase letter opening a sentence.
	lostCapital = regexp.MustCompile(`[a-z][.!?]\s+[a-z]`)
)

// Cleanup fixes token damage common to any extracted document: broken
// single-character word splits ("T he" becomes "The"), missing spaces after
// sentence punctuation, and lost capitalization at sentence starts.
//
// Cleanup is independent of family-specific repair and runs instead of it
// when no family trigger phrase is present.
func Cleanup(text string) string {
	s := norm.NFC.String(text)
	s = splitWord.ReplaceAllString(s, "$1$2")
	s = missingSpace.ReplaceAllString(s, "$1 $2")
	s = lostCapital.ReplaceAllStringFunc(s, func(m string) string {
		return m[:len(m)-1] + strings.ToUpper(m[len(m)-1:])
	})
	return s
}
