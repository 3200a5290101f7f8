package layout

import (
	"sort"
	"strings"
)

// ReordererConfig holds configuration for the full reconstruction pipeline.
type ReordererConfig struct {
	// Classifier configures the line classification stage.
	Classifier ClassifierConfig

	// Segmenter configures the block segmentation stage.
	Segmenter SegmenterConfig
}

// DefaultReordererConfig returns sensible default configuration.
func DefaultReordererConfig() ReordererConfig {
	return ReordererConfig{
		Classifier: DefaultClassifierConfig(),
		Segmenter:  DefaultSegmenterConfig(),
	}
}

// Reorderer sorts content blocks into canonical reading order.
//
// Ordering is stable: blocks with the same order key keep their relative
// input position, so reordering already-ordered text is a no-op.
type Reorderer struct {
	config     ReordererConfig
	classifier *Classifier
	segmenter  *Segmenter
}

// NewReorderer creates a Reorderer with default configuration.
func NewReorderer() *Reorderer {
	return NewReordererWithConfig(DefaultReordererConfig())
}

// NewReordererWithConfig creates a Reorderer with custom configuration.
func NewReordererWithConfig(config ReordererConfig) *Reorderer {
	return &Reorderer{
		config:     config,
		classifier: NewClassifierWithConfig(config.Classifier),
		segmenter:  NewSegmenterWithConfig(config.Segmenter),
	}
}

// Reorder returns the blocks stably sorted by their order key. The input
// slice is not modified; line order inside each block is preserved.
func (r *Reorderer) Reorder(blocks []Block) []Block {
	ordered := make([]Block, len(blocks))
	copy(ordered, blocks)

	sort.SliceStable(ordered, func(i, j int) bool {
		return orderKey(ordered[i]) < orderKey(ordered[j])
	})

	return ordered
}

// orderKey ranks a block by its first line: titles first, then document
// kind markers, other headers, plain content, and footers last.
func orderKey(b Block) int {
	first := b.First()
	switch {
	case first.Type == Title:
		return 1
	case first.Type == DocumentType:
		return 2
	case first.IsHeader:
		return 10
	case !first.IsHeader && !first.IsFooter:
		return 50
	case first.IsFooter:
		return 100
	}
	return 90
}

// Reconstruct runs the full pipeline on raw text: classify lines, segment
// into blocks, reorder blocks, and join the result. The returned flag
// reports whether reordering changed anything; callers use it to decide
// whether a domain-specific fallback pass is worth trying.
func (r *Reorderer) Reconstruct(text string) (string, bool) {
	lines := r.classifier.ClassifyText(text)
	if len(lines) == 0 {
		return "", false
	}

	blocks := r.segmenter.Segment(lines)
	ordered := r.Reorder(blocks)

	before := joinBlocks(blocks)
	after := joinBlocks(ordered)
	return after, after != before
}

// joinBlocks renders blocks as paragraphs separated by blank lines.
func joinBlocks(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text())
	}
	return strings.Join(parts, "\n\n")
}
