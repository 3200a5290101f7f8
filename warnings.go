package scriba

import "strings"

// WarningCode identifies the pipeline stage a warning came from.
type WarningCode int

const (
	// WarnLinkExtraction reports that the link scanner failed and an
	// empty link list was substituted.
	WarnLinkExtraction WarningCode = iota

	// WarnPersistence reports that writing a link report or recording
	// the extraction in the store failed, leaving the result without a
	// saved path.
	WarnPersistence
)

// String returns a string representation of the warning code.
func (c WarningCode) String() string {
	switch c {
	case WarnLinkExtraction:
		return "link_extraction"
	case WarnPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal problem encountered during extraction.
// A warning never prevents a terminal from returning its text; it marks
// a stage that fell back to a safe default instead.
type Warning struct {
	// Code identifies the stage that degraded.
	Code WarningCode

	// Message describes what happened.
	Message string
}

// FormatWarnings joins warnings into a single human-readable string,
// suitable for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(warnings))
	for _, w := range warnings {
		parts = append(parts, w.Code.String()+": "+w.Message)
	}
	return strings.Join(parts, "; ")
}
