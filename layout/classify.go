package layout

import "regexp"

// Rule pairs a line pattern with the classification it produces.
type Rule struct {
	// Pattern is matched against the trimmed line text.
	Pattern *regexp.Regexp

	// Type is the role assigned when the pattern matches.
	Type LineType

	// Priority is the ordering weight assigned when the pattern matches.
	Priority int
}

// ClassifierConfig holds the ordered rule tables driving line classification.
// Rules are evaluated in slice order; the first match in a table wins.
type ClassifierConfig struct {
	// HeaderRules identify lines that belong at the top of a document:
	// metadata lines, all-caps titles, document kind markers.
	HeaderRules []Rule

	// FooterRules identify lines that belong at the bottom: page numbers,
	// dates, copyright and status markers. Footer rules are evaluated even
	// when a header rule already matched, because the footer flag can
	// coexist with a header classification. The matched rule supplies the
	// line type only when no earlier rule did.
	FooterRules []Rule

	// ContentRules identify structure inside the body: list markers and
	// conclusion keywords. Only consulted when no header or footer rule
	// matched.
	ContentRules []Rule
}

// DefaultClassifierConfig returns the standard rule tables.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		HeaderRules: []Rule{
			{regexp.MustCompile(`(?i)^(title|subject|to:|from:|date:|re:|cc:|bcc:)`), Header, 1},
			{regexp.MustCompile(`^[A-Z\s]{4,}$`), Title, 1},
			{regexp.MustCompile(`(?i)^(report|document|memo|letter|email|fax)`), DocumentType, 2},
		},
		FooterRules: []Rule{
			{regexp.MustCompile(`(?i)^(page|p\.|pg\.?)\s*\d+`), PageNumber, 100},
			{regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`), Date, 90},
			{regexp.MustCompile(`(?i)(©|copyright|all rights reserved)`), Copyright, 95},
			{regexp.MustCompile(`(?i)\b(confidential|private|draft|internal)\b`), Status, 85},
		},
		ContentRules: []Rule{
			{regexp.MustCompile(`^\d+[.)]\s+`), NumberedList, 50},
			{regexp.MustCompile(`^[a-zA-Z][.)]\s+`), LetteredList, 50},
			{regexp.MustCompile(`^[-*•]\s+`), BulletList, 50},
			{regexp.MustCompile(`(?i)^(therefore|thus|consequently|as a result|in conclusion|summary|finally)\b`), Conclusion, 80},
		},
	}
}

// Classifier assigns a semantic role to each line of text.
//
// Classification is total: a line matching no rule is Content with priority
// zero. The classification of a line depends only on its own text, never on
// surrounding lines.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a Classifier with default configuration.
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultClassifierConfig())
}

// NewClassifierWithConfig creates a Classifier with custom rule tables.
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	return &Classifier{config: config}
}

// Classify labels a single trimmed line with its semantic role. It never
// fails; unmatched lines default to Content.
func (c *Classifier) Classify(text string, index int) ClassifiedLine {
	cl := ClassifiedLine{Line: Line{Text: text, Index: index}}

	typed := false
	for _, r := range c.config.HeaderRules {
		if r.Pattern.MatchString(text) {
			cl.Type = r.Type
			cl.Priority = r.Priority
			cl.IsHeader = true
			typed = true
			break
		}
	}

	// Footer rules always run so the footer flag can coexist with a header
	// classification (e.g. a "Date:" line containing a date pattern).
	for _, r := range c.config.FooterRules {
		if r.Pattern.MatchString(text) {
			cl.IsFooter = true
			if !typed {
				cl.Type = r.Type
				cl.Priority = r.Priority
				typed = true
			}
			break
		}
	}
	if typed {
		return cl
	}

	for _, r := range c.config.ContentRules {
		if r.Pattern.MatchString(text) {
			cl.Type = r.Type
			cl.Priority = r.Priority
			break
		}
	}

	return cl
}

// ClassifyAll classifies every line in order.
func (c *Classifier) ClassifyAll(lines []Line) []ClassifiedLine {
	classified := make([]ClassifiedLine, 0, len(lines))
	for _, ln := range lines {
		classified = append(classified, c.Classify(ln.Text, ln.Index))
	}
	return classified
}

// ClassifyText splits text into lines and classifies each one.
func (c *Classifier) ClassifyText(text string) []ClassifiedLine {
	return c.ClassifyAll(SplitLines(text))
}
