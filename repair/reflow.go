package repair

import (
	"sort"
	"strings"
)

// Reflow reconstructs reading order using the detected family's section
// keywords instead of generic layout heuristics. It exists for documents
// whose sections carry no generic header markers, where heuristic
// reordering cannot separate them.
//
// Lines containing a section keyword open a new section ranked by the
// keyword's position in the family's canonical order; following lines join
// the open section. Sections are then stably sorted by rank. Lines before
// the first keyword keep their place at the top. Text from an unrecognized
// document passes through unchanged.
func (r *Repairer) Reflow(text string) string {
	fam, ok := r.Detect(text)
	if !ok || len(fam.SectionOrder) == 0 {
		return text
	}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return text
	}

	type section struct {
		rank  int
		lines []string
	}

	var sections []section
	current := section{rank: 0}
	for _, ln := range lines {
		if rank, ok := fam.sectionRank(ln); ok {
			if len(current.lines) > 0 {
				sections = append(sections, current)
			}
			current = section{rank: rank}
		}
		current.lines = append(current.lines, ln)
	}
	if len(current.lines) > 0 {
		sections = append(sections, current)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].rank < sections[j].rank
	})

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, strings.Join(s.lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
