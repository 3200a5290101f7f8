// Package links detects, classifies and renders links embedded in extracted
// document text.
//
// Detection is pattern-based with secondary false-positive filtering, so
// prose that merely looks like a domain name ("visit example.com today") is
// not reported. Results have set semantics in first-seen order: no two equal
// link strings are ever returned for one input.
package links

import (
	"regexp"
	"strings"
)

// ExtractorConfig holds the pattern tables and limits driving link
// extraction.
type ExtractorConfig struct {
	// MaxLineLength is the line length at and above which a line is
	// skipped entirely. Long lines are almost always prose and produce
	// noise rather than clickable links. Default: 200.
	MaxLineLength int

	// MinLinkLength and MaxLinkLength bound accepted link strings after
	// trailing punctuation is trimmed. Defaults: 8 and 200.
	MinLinkLength int
	MaxLinkLength int

	// URLPattern matches scheme-prefixed URLs.
	URLPattern *regexp.Regexp

	// EmailPattern matches addresses of the local@domain.tld shape.
	EmailPattern *regexp.Regexp

	// DomainPattern matches bare domain names with an optional www prefix
	// and optional path, anchored to line start or whitespace so it cannot
	// re-match the host inside a scheme-prefixed URL. The domain itself is
	// capture group 1.
	DomainPattern *regexp.Regexp

	// PathPattern matches root-relative paths ending in a known web or
	// document extension, anchored like DomainPattern. The path itself is
	// capture group 1.
	PathPattern *regexp.Regexp

	// FalsePositives rejects any candidate it fully matches: single-label
	// domains with a generic TLD, two-letter label pairs, dotted-quad IPs.
	FalsePositives []*regexp.Regexp
}

// DefaultExtractorConfig returns the standard patterns and limits.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLineLength: 200,
		MinLinkLength: 8,
		MaxLinkLength: 200,
		URLPattern:    regexp.MustCompile("https?://[^\\s<>\"'{}|\\\\^`\\[\\]]{8,}"),
		EmailPattern:  regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		DomainPattern: regexp.MustCompile(`(?:^|\s)((?:www\.)?(?:[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z]{2,}(?:/[^\s<>"']*)?)`),
		PathPattern:   regexp.MustCompile(`(?:^|\s)(/[A-Za-z0-9_\-./]+\.(?:html|htm|php|asp|jsp|js|css|png|jpg|gif|svg|pdf))\b`),
		FalsePositives: []*regexp.Regexp{
			regexp.MustCompile(`^[A-Za-z]+\.(?:com|org|net)$`),
			regexp.MustCompile(`^[A-Za-z0-9]{1,2}\.[A-Za-z]{2}$`),
			regexp.MustCompile(`^(?:\d{1,3}\.){3}\d{1,3}$`),
		},
	}
}

// Extractor scans text for URL, email and path-like links.
type Extractor struct {
	config ExtractorConfig
}

// NewExtractor creates an Extractor with default configuration.
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(DefaultExtractorConfig())
}

// NewExtractorWithConfig creates an Extractor with custom patterns.
func NewExtractorWithConfig(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Extract returns the de-duplicated links found in the text, in first-seen
// order. It never fails; text with no recognizable links yields nil.
func (e *Extractor) Extract(text string) []string {
	var result []string
	seen := make(map[string]bool)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || len(line) >= e.config.MaxLineLength {
			continue
		}

		var candidates []string
		candidates = append(candidates, e.config.URLPattern.FindAllString(line, -1)...)
		candidates = append(candidates, e.config.EmailPattern.FindAllString(line, -1)...)
		candidates = append(candidates, e.domainMatches(line)...)
		candidates = append(candidates, submatches(e.config.PathPattern, line)...)

		for _, c := range candidates {
			link, ok := e.accept(c)
			if !ok || seen[link] {
				continue
			}
			seen[link] = true
			result = append(result, link)
		}
	}

	return result
}

// domainMatches returns bare-domain candidates, skipping spans that are
// really the local part of an email address.
func (e *Extractor) domainMatches(line string) []string {
	var out []string
	for _, idx := range e.config.DomainPattern.FindAllStringSubmatchIndex(line, -1) {
		start, end := idx[2], idx[3]
		if start < 0 {
			continue
		}
		if end < len(line) && line[end] == '@' {
			continue
		}
		out = append(out, line[start:end])
	}
	return out
}

// submatches returns capture group 1 of every match.
func submatches(pattern *regexp.Regexp, line string) []string {
	var out []string
	for _, m := range pattern.FindAllStringSubmatch(line, -1) {
		if len(m) > 1 && m[1] != "" {
			out = append(out, m[1])
		}
	}
	return out
}

// accept trims and filters one candidate match.
func (e *Extractor) accept(match string) (string, bool) {
	link := strings.TrimRight(match, ".,;!?")
	if len(link) < e.config.MinLinkLength || len(link) > e.config.MaxLinkLength {
		return "", false
	}
	for _, fp := range e.config.FalsePositives {
		if fp.MatchString(link) {
			return "", false
		}
	}
	return link, true
}
