package links

import (
	"regexp"
	"sort"
	"strings"
)

// MakeClickable wraps every occurrence of the given links in the text with
// an HTML anchor tag. The visible label is the link exactly as it appeared;
// the href is normalized per link type (mailto: for emails, https:// for
// scheme-less URLs, file:// for root paths).
//
// Replacement happens in a single pass with longer links preferred, so a
// link that is a substring of another never corrupts an inserted anchor.
// An empty link list returns the text unchanged.
func MakeClickable(text string, extractedLinks []string) string {
	if len(extractedLinks) == 0 {
		return text
	}

	sorted := make([]string, 0, len(extractedLinks))
	for _, link := range extractedLinks {
		if link != "" {
			sorted = append(sorted, link)
		}
	}
	if len(sorted) == 0 {
		return text
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	alternatives := make([]string, len(sorted))
	for i, link := range sorted {
		alternatives[i] = boundedPattern(link)
	}
	pattern, err := regexp.Compile(strings.Join(alternatives, "|"))
	if err != nil {
		return text
	}

	return pattern.ReplaceAllStringFunc(text, anchorFor)
}

// boundedPattern quotes a link for literal matching, adding word boundaries
// only where the link's edge is a word character. A leading slash or
// trailing punctuation has no word boundary to anchor to.
func boundedPattern(link string) string {
	quoted := regexp.QuoteMeta(link)
	if isWordByte(link[0]) {
		quoted = `\b` + quoted
	}
	if isWordByte(link[len(link)-1]) {
		quoted += `\b`
	}
	return quoted
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_':
		return true
	}
	return false
}

// anchorFor renders one matched link as an HTML anchor element.
func anchorFor(link string) string {
	var href string
	switch Categorize(link) {
	case Email:
		href = "mailto:" + link
	case URL:
		if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
			href = link
		} else {
			href = "https://" + link
		}
	case FilePath:
		href = "file://" + link
	default:
		href = link
	}
	return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + link + `</a>`
}
