package layout

import "strings"

// Block is an ordered, non-empty run of classified lines judged to belong
// together, such as a header followed by its data. The Reorderer moves
// whole blocks; line order inside a block never changes.
type Block struct {
	Lines []ClassifiedLine
}

// First returns the block's first line. Blocks produced by the Segmenter
// are never empty.
func (b Block) First() ClassifiedLine {
	return b.Lines[0]
}

// Text returns the block's lines joined with newlines.
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Lines))
	for _, ln := range b.Lines {
		parts = append(parts, ln.Text)
	}
	return strings.Join(parts, "\n")
}

// SegmenterConfig holds configuration for block segmentation.
type SegmenterConfig struct {
	// LengthJumpThreshold is the character-length difference between a line
	// and its predecessor that forces a block boundary. Default: 60.
	LengthJumpThreshold int
}

// DefaultSegmenterConfig returns sensible default configuration.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		LengthJumpThreshold: 60,
	}
}

// Segmenter groups consecutive classified lines into content blocks.
//
// Segmentation is loss-less: concatenating the lines of all returned blocks
// in order reproduces the input sequence exactly.
type Segmenter struct {
	config SegmenterConfig
}

// NewSegmenter creates a Segmenter with default configuration.
func NewSegmenter() *Segmenter {
	return NewSegmenterWithConfig(DefaultSegmenterConfig())
}

// NewSegmenterWithConfig creates a Segmenter with custom configuration.
func NewSegmenterWithConfig(config SegmenterConfig) *Segmenter {
	return &Segmenter{config: config}
}

// Segment splits the classified lines into blocks. A new block starts when:
//
//   - the current line is a Title or DocumentType header
//   - the current line carries the footer flag
//   - the line length jumps by more than LengthJumpThreshold characters
//     relative to the previous line in the open block
//   - the next line is a Title header (look-ahead, so the title opens the
//     following block)
//
// The triggering line always becomes the first line of the new block. An
// empty open block is never flushed.
func (s *Segmenter) Segment(lines []ClassifiedLine) []Block {
	var blocks []Block
	var current []ClassifiedLine

	for i, ln := range lines {
		if s.boundary(ln, i, lines, current) && len(current) > 0 {
			blocks = append(blocks, Block{Lines: current})
			current = nil
		}
		current = append(current, ln)
	}
	if len(current) > 0 {
		blocks = append(blocks, Block{Lines: current})
	}

	return blocks
}

// boundary reports whether a new block must start before line i.
func (s *Segmenter) boundary(ln ClassifiedLine, i int, lines, current []ClassifiedLine) bool {
	if ln.Type == Title || ln.Type == DocumentType {
		return true
	}
	if ln.IsFooter {
		return true
	}
	if len(current) > 0 {
		last := current[len(current)-1]
		if abs(len(ln.Text)-len(last.Text)) > s.config.LengthJumpThreshold {
			return true
		}
	}
	if i+1 < len(lines) && lines[i+1].Type == Title {
		return true
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
