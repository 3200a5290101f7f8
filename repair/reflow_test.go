package repair

import "testing"

func TestReflow_NoTriggerPassthrough(t *testing.T) {
	r := NewRepairer()

	text := "Second paragraph.\nFirst paragraph."
	if got := r.Reflow(text); got != text {
		t.Errorf("Reflow() changed text without a trigger phrase:\ngot  %q\nwant %q", got, text)
	}
}

func TestReflow_OrdersSectionsByKeyword(t *testing.T) {
	r := NewRepairer()

	text := "Reading 68/100\nEF SET English Certificate\nOverall Score 71/100"
	want := "EF SET English Certificate\n\nOverall Score 71/100\n\nReading 68/100"

	if got := r.Reflow(text); got != want {
		t.Errorf("Reflow() = %q, want %q", got, want)
	}
}

func TestReflow_PreambleStaysFirst(t *testing.T) {
	r := NewRepairer()

	text := "John Smith\nEF SET English Certificate"
	want := "John Smith\n\nEF SET English Certificate"

	if got := r.Reflow(text); got != want {
		t.Errorf("Reflow() = %q, want %q", got, want)
	}
}

func TestReflow_ContinuationLinesFollowTheirSection(t *testing.T) {
	r := NewRepairer()

	text := "Overall Score\n71/100\nEF SET Certificate"
	want := "EF SET Certificate\n\nOverall Score\n71/100"

	if got := r.Reflow(text); got != want {
		t.Errorf("Reflow() = %q, want %q", got, want)
	}
}

func TestReflow_FullCertificate(t *testing.T) {
	r := NewRepairer()

	text := "Writing 65/100\nTest Date: 12/05/2024\nEF SET English Certificate\nCEFR Level C2\nReading 68/100\nOverall Score 71/100"
	want := "EF SET English Certificate\n\nCEFR Level C2\n\nOverall Score 71/100\n\nReading 68/100\n\nWriting 65/100\n\nTest Date: 12/05/2024"

	if got := r.Reflow(text); got != want {
		t.Errorf("Reflow() = %q, want %q", got, want)
	}
}

func TestReflow_StableForEqualRanks(t *testing.T) {
	r := NewRepairer()

	// Two lines in the same section keep their relative order.
	text := "Reading part one 60/100\nReading part two 62/100\nEF SET Certificate"
	want := "EF SET Certificate\n\nReading part one 60/100\n\nReading part two 62/100"

	if got := r.Reflow(text); got != want {
		t.Errorf("Reflow() = %q, want %q", got, want)
	}
}

func TestReflow_Empty(t *testing.T) {
	r := NewRepairer()

	for _, text := range []string{"", "  \n\t\n"} {
		if got := r.Reflow(text); got != text {
			t.Errorf("Reflow(%q) = %q, want unchanged", text, got)
		}
	}
}
