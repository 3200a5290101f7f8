package layout

import "strings"

// LineType identifies the semantic role assigned to a line by the Classifier.
type LineType int

const (
	// Content is the default role for lines matching no rule.
	Content LineType = iota
	// Title is an all-caps heading line.
	Title
	// DocumentType is a line naming the kind of document (report, memo, ...).
	DocumentType
	// Header is a salutation or metadata line (To:, From:, Subject:, ...).
	Header
	// PageNumber is a page marker line (Page 3, p. 12, ...).
	PageNumber
	// Date is a standalone date line.
	Date
	// Copyright is a copyright or rights-reserved line.
	Copyright
	// Status is a confidentiality or status marker line.
	Status
	// NumberedList is a line starting with a numeric list marker.
	NumberedList
	// LetteredList is a line starting with a letter list marker.
	LetteredList
	// BulletList is a line starting with a bullet character.
	BulletList
	// Conclusion is a line opening with a flow or conclusion keyword.
	Conclusion
)

// String returns a string representation of the line type.
func (lt LineType) String() string {
	switch lt {
	case Title:
		return "title"
	case DocumentType:
		return "document_type"
	case Header:
		return "header"
	case PageNumber:
		return "page_number"
	case Date:
		return "date"
	case Copyright:
		return "copyright"
	case Status:
		return "status"
	case NumberedList:
		return "numbered_list"
	case LetteredList:
		return "lettered_list"
	case BulletList:
		return "bullet_list"
	case Conclusion:
		return "conclusion"
	default:
		return "content"
	}
}

// Line is a single line of extracted text with its original position.
type Line struct {
	// Text is the trimmed line content.
	Text string

	// Index is the line's position in the original text (0-based).
	Index int
}

// ClassifiedLine is a Line with its detected semantic role.
type ClassifiedLine struct {
	Line

	// Type is the semantic role assigned by the Classifier.
	Type LineType

	// Priority orders lines during reconstruction; lower values sort earlier.
	// It is only meaningful relative to other priorities, never persisted.
	Priority int

	// IsHeader reports that the line belongs at the top of the document.
	IsHeader bool

	// IsFooter reports that the line belongs at the bottom of the document.
	// A line can carry the footer flag while typed as something else, e.g.
	// a "Date:" header line containing a date pattern.
	IsFooter bool
}

// SplitLines splits text into trimmed, non-empty lines, each tagged with its
// original line index.
func SplitLines(text string) []Line {
	var lines []Line
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, Line{Text: trimmed, Index: i})
	}
	return lines
}
