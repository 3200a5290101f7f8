// Package repair fixes text extraction artifacts.
//
// Two kinds of damage are handled. Family-specific repair targets known OCR
// merge artifacts in a recognized document family, driven by an ordered rule
// table and gated on trigger phrases. General cleanup fixes token damage
// common to any OCR output: broken single-character word splits, missing
// spaces after sentence punctuation, and lost capitalization.
//
// The two are alternatives, never combined: [Repairer.Process] applies the
// family rules when a trigger phrase is present and [Cleanup] otherwise.
// All transformations are idempotent.
package repair

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Rewrite pairs a pattern with its replacement string.
type Rewrite struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Family describes the repair rules for one document family. Rules run in
// the order given, specific fixes before general ones.
type Family struct {
	// Name identifies the family.
	Name string

	// Triggers are lowercase phrases; the family applies only when the
	// lowercased text contains at least one of them.
	Triggers []string

	// HeaderSplits break known merged header pairs onto separate lines.
	HeaderSplits []Rewrite

	// TokenFixes repair known glued or split tokens.
	TokenFixes []Rewrite

	// RangeBreaks split merged score-range lists, one range per line.
	// Each rewrite is applied repeatedly until the text stops changing,
	// because consecutive merged ranges overlap a single pattern match.
	RangeBreaks []Rewrite

	// SectionOrder lists lowercase section keywords in canonical document
	// order, used by Reflow for keyword-driven reconstruction.
	SectionOrder []string
}

// triggered reports whether the lowercased text names this family.
func (f Family) triggered(lower string) bool {
	for _, t := range f.Triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// apply runs the family's rule table over the text.
func (f Family) apply(text string) string {
	s := norm.NFC.String(text)

	for _, rw := range f.HeaderSplits {
		s = rw.Pattern.ReplaceAllString(s, rw.Replacement)
	}
	for _, rw := range f.TokenFixes {
		s = rw.Pattern.ReplaceAllString(s, rw.Replacement)
	}
	for _, rw := range f.RangeBreaks {
		for {
			next := rw.Pattern.ReplaceAllString(s, rw.Replacement)
			if next == s {
				break
			}
			s = next
		}
	}

	return generalPass(s)
}

// sectionRank returns the canonical position of the section a line opens,
// or false when the line contains no section keyword.
func (f Family) sectionRank(line string) (int, bool) {
	lower := strings.ToLower(line)
	for i, kw := range f.SectionOrder {
		if strings.Contains(lower, kw) {
			return i + 1, true
		}
	}
	return 0, false
}

// DefaultFamilies returns the built-in document families.
func DefaultFamilies() []Family {
	return []Family{cefrCertificate()}
}

// cefrCertificate returns repair rules for EF SET certificate exports, whose
// OCR output glues header lines, level codes and score-scale rows together.
func cefrCertificate() Family {
	return Family{
		Name:     "cefr-certificate",
		Triggers: []string{"ef set", "cefr", "common european framework"},
		HeaderSplits: []Rewrite{
			{regexp.MustCompile(`(?i)(EF SET English Certificate)[ \t]+(Common European Framework)`), "$1\n$2"},
			{regexp.MustCompile(`(?i)(Certificate of Achievement)[ \t]*(This is to certify|This certifies)`), "$1\n$2"},
			{regexp.MustCompile(`(?i)(English Certificate)[ \t]*(Test taken|Test date)`), "$1\n$2"},
			{regexp.MustCompile(`(?i)(Overall Score[ \t]*\d{1,3}[ \t]*/[ \t]*100)[ \t]*(Reading|Listening|Writing|Speaking)`), "$1\n$2"},
		},
		TokenFixes: []Rewrite{
			// Unglue a level code from its label: "CEFR LevelC2".
			{regexp.MustCompile(`(?i)(CEFR Level)[ \t]*([ABC][12])\b`), "$1 $2"},
			// Split level rejoined into a score: "C 271/100" is C2 71/100.
			{regexp.MustCompile(`\b([ABC])[ \t]+([12])(\d{1,3}[ \t]*/[ \t]*100)`), "$1$2 $3"},
			// Rejoin a split level code: "C 2".
			{regexp.MustCompile(`\b([ABC])[ \t]+([12])\b`), "$1$2"},
			// Separate a level code glued to its score: "C271/100".
			{regexp.MustCompile(`\b([ABC][12])(\d{1,3}[ \t]*/[ \t]*100)`), "$1 $2"},
		},
		RangeBreaks: []Rewrite{
			{regexp.MustCompile(`([ABC][12][ \t]*\d{1,3}[ \t]*[-–][ \t]*\d{1,3})[ \t]*([ABC][12])`), "$1\n$2"},
		},
		SectionOrder: []string{
			"ef set", "certificate", "certify", "cefr",
			"overall score", "reading", "listening", "writing", "speaking",
			"test date", "score range",
		},
	}
}

var (
	multiSpace    = regexp.MustCompile(`[ \t]{2,}`)
	multiNewline  = regexp.MustCompile(`\n{3,}`)
	digitUpper    = regexp.MustCompile(`(\d)([A-Z])`)
	upperRunDigit = regexp.MustCompile(`([A-Z]{2,})(\d)`)
)

// generalPass is the final whitespace and token-gluing cleanup for family
// repairs. It runs last so it cannot fight the specific fixes above it.
// A space is inserted between an uppercase run and a digit only for runs of
// two or more capitals, which leaves level codes like "C2" intact.
func generalPass(s string) string {
	s = multiSpace.ReplaceAllString(s, " ")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	s = digitUpper.ReplaceAllString(s, "$1 $2")
	s = upperRunDigit.ReplaceAllString(s, "$1 $2")
	return s
}

// Repairer applies family-specific artifact repair.
type Repairer struct {
	families []Family
}

// NewRepairer creates a Repairer with the built-in families.
func NewRepairer() *Repairer {
	return NewRepairerWithFamilies(DefaultFamilies()...)
}

// NewRepairerWithFamilies creates a Repairer with a custom family table.
func NewRepairerWithFamilies(families ...Family) *Repairer {
	return &Repairer{families: families}
}

// Detect returns the first family whose trigger phrase appears in the text.
func (r *Repairer) Detect(text string) (Family, bool) {
	lower := strings.ToLower(text)
	for _, f := range r.families {
		if f.triggered(lower) {
			return f, true
		}
	}
	return Family{}, false
}

// Repair applies family-specific fixes when a trigger phrase is present.
// Text from an unrecognized document passes through unchanged.
func (r *Repairer) Repair(text string) string {
	fam, ok := r.Detect(text)
	if !ok {
		return text
	}
	return fam.apply(text)
}

// Process repairs the text with family rules when a family is detected and
// falls back to the general [Cleanup] routine otherwise. The two never both
// run on the same text.
func (r *Repairer) Process(text string) string {
	if fam, ok := r.Detect(text); ok {
		return fam.apply(text)
	}
	return Cleanup(text)
}
