package layout

import (
	"strings"
	"testing"
)

func TestLineType_String(t *testing.T) {
	tests := []struct {
		lineType LineType
		want     string
	}{
		{Title, "title"},
		{DocumentType, "document_type"},
		{Header, "header"},
		{PageNumber, "page_number"},
		{Date, "date"},
		{Copyright, "copyright"},
		{Status, "status"},
		{NumberedList, "numbered_list"},
		{LetteredList, "lettered_list"},
		{BulletList, "bullet_list"},
		{Conclusion, "conclusion"},
		{Content, "content"},
		{LineType(99), "content"},
	}

	for _, tt := range tests {
		if got := tt.lineType.String(); got != tt.want {
			t.Errorf("LineType(%d).String() = %q, want %q", tt.lineType, got, tt.want)
		}
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name         string
		text         string
		wantType     LineType
		wantPriority int
		wantHeader   bool
		wantFooter   bool
	}{
		{"salutation to", "To: John Smith", Header, 1, true, false},
		{"salutation from", "From: Jane Doe", Header, 1, true, false},
		{"subject line", "Subject: Quarterly Review", Header, 1, true, false},
		{"all caps title", "REPORT TITLE", Title, 1, true, false},
		{"all caps multi word", "ANNUAL FINANCIAL SUMMARY", Title, 1, true, false},
		{"document kind", "Report on Q3 earnings", DocumentType, 2, true, false},
		{"memo kind", "Memo to all staff", DocumentType, 2, true, false},
		{"page number", "Page 3", PageNumber, 100, false, true},
		{"page number abbreviated", "p. 12", PageNumber, 100, false, true},
		{"page number pg", "pg 7", PageNumber, 100, false, true},
		{"standalone date", "12/05/2024", Date, 90, false, true},
		{"copyright symbol", "© 2024 Acme Corp", Copyright, 95, false, true},
		{"rights reserved", "All rights reserved", Copyright, 95, false, true},
		{"status marker", "Strictly confidential", Status, 85, false, true},
		{"draft marker", "Draft for review", Status, 85, false, true},
		{"numbered list", "1. First item", NumberedList, 50, false, false},
		{"numbered list paren", "2) Second item", NumberedList, 50, false, false},
		{"lettered list", "a) Option one", LetteredList, 50, false, false},
		{"lettered list dot", "b. Option two", LetteredList, 50, false, false},
		{"dash bullet", "- bullet point", BulletList, 50, false, false},
		{"star bullet", "* another point", BulletList, 50, false, false},
		{"unicode bullet", "• third point", BulletList, 50, false, false},
		{"conclusion therefore", "Therefore, we recommend approval.", Conclusion, 80, false, false},
		{"conclusion in conclusion", "In conclusion, the results hold.", Conclusion, 80, false, false},
		{"conclusion finally", "Finally, some closing remarks.", Conclusion, 80, false, false},
		{"plain content", "Just an ordinary sentence of body text.", Content, 0, false, false},
		{"decimal number is not a list", "3.14159 is pi", Content, 0, false, false},
		{"empty-ish punctuation", "...", Content, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text, 0)
			if got.Type != tt.wantType {
				t.Errorf("Classify(%q).Type = %v, want %v", tt.text, got.Type, tt.wantType)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("Classify(%q).Priority = %d, want %d", tt.text, got.Priority, tt.wantPriority)
			}
			if got.IsHeader != tt.wantHeader {
				t.Errorf("Classify(%q).IsHeader = %v, want %v", tt.text, got.IsHeader, tt.wantHeader)
			}
			if got.IsFooter != tt.wantFooter {
				t.Errorf("Classify(%q).IsFooter = %v, want %v", tt.text, got.IsFooter, tt.wantFooter)
			}
		})
	}
}

func TestClassifier_FooterFlagCoexistsWithHeader(t *testing.T) {
	c := NewClassifier()

	// A metadata line containing a date pattern keeps its header
	// classification but also carries the footer flag.
	got := c.Classify("Date: 12/05/2024", 0)
	if got.Type != Header {
		t.Errorf("Type = %v, want Header", got.Type)
	}
	if !got.IsHeader {
		t.Error("expected IsHeader to be true")
	}
	if !got.IsFooter {
		t.Error("expected IsFooter to be true")
	}

	// Same for an all-caps status line.
	got = c.Classify("CONFIDENTIAL", 0)
	if got.Type != Title {
		t.Errorf("Type = %v, want Title", got.Type)
	}
	if !got.IsFooter {
		t.Error("expected IsFooter to be true for all-caps status marker")
	}
}

func TestClassifier_ClassificationIsTotal(t *testing.T) {
	c := NewClassifier()

	valid := map[LineType]bool{
		Title: true, DocumentType: true, Header: true, PageNumber: true,
		Date: true, Copyright: true, Status: true, NumberedList: true,
		LetteredList: true, BulletList: true, Conclusion: true, Content: true,
	}

	inputs := []string{
		"To: someone",
		"REPORT",
		"Page 99",
		"random text with no structure at all",
		"!!!",
		"1234567890",
		"mixed CASE with Symbols #$%",
		"a", "-", "•",
	}

	for _, in := range inputs {
		got := c.Classify(in, 0)
		if !valid[got.Type] {
			t.Errorf("Classify(%q).Type = %d, not an enumerated line type", in, got.Type)
		}
		if got.Priority < 0 {
			t.Errorf("Classify(%q).Priority = %d, want non-negative", in, got.Priority)
		}
	}
}

func TestClassifier_ClassifyText(t *testing.T) {
	c := NewClassifier()

	text := "REPORT TITLE\n\nBody line one.\n  \nPage 3"
	lines := c.ClassifyText(text)

	if len(lines) != 3 {
		t.Fatalf("ClassifyText() returned %d lines, want 3", len(lines))
	}
	if lines[0].Type != Title || lines[0].Index != 0 {
		t.Errorf("line 0 = %v at index %d, want Title at 0", lines[0].Type, lines[0].Index)
	}
	if lines[1].Type != Content || lines[1].Index != 2 {
		t.Errorf("line 1 = %v at index %d, want Content at 2", lines[1].Type, lines[1].Index)
	}
	if lines[2].Type != PageNumber || lines[2].Index != 4 {
		t.Errorf("line 2 = %v at index %d, want PageNumber at 4", lines[2].Type, lines[2].Index)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "one\ntwo", []string{"one", "two"}},
		{"blank lines skipped", "one\n\n\ntwo\n", []string{"one", "two"}},
		{"whitespace trimmed", "  one  \n\ttwo\t", []string{"one", "two"}},
		{"empty", "", nil},
		{"only whitespace", "  \n\t\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := SplitLines(tt.text)
			if len(lines) != len(tt.want) {
				t.Fatalf("SplitLines(%q) returned %d lines, want %d", tt.text, len(lines), len(tt.want))
			}
			for i, ln := range lines {
				if ln.Text != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, ln.Text, tt.want[i])
				}
			}
		})
	}
}

func TestSplitLines_PreservesOriginalIndex(t *testing.T) {
	lines := SplitLines("first\n\nthird\n\n\nsixth")
	wantIndices := []int{0, 2, 5}

	if len(lines) != len(wantIndices) {
		t.Fatalf("got %d lines, want %d", len(lines), len(wantIndices))
	}
	for i, ln := range lines {
		if ln.Index != wantIndices[i] {
			t.Errorf("line %q has index %d, want %d", ln.Text, ln.Index, wantIndices[i])
		}
	}
	if strings.Join([]string{lines[0].Text, lines[1].Text, lines[2].Text}, " ") != "first third sixth" {
		t.Error("line text not preserved in order")
	}
}
