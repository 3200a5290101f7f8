// Package layout provides reading-order reconstruction for text whose lines
// arrive scrambled or merged, as is common in OCR output.
//
// Unlike geometric layout analysis, this package never sees pixel
// coordinates. It operates purely on the linear sequence of text lines
// produced by an upstream extractor, using pattern-based heuristics.
//
// # Pipeline
//
// Three stages run in order:
//
//   - [Classifier] - labels each line with a semantic role (title, header,
//     footer, list item, and so on) and a priority score
//   - [Segmenter] - groups consecutive classified lines into content blocks,
//     splitting at detected section boundaries
//   - [Reorderer] - stably sorts blocks into canonical reading order while
//     preserving line order inside each block
//
// The [Reorderer.Reconstruct] convenience method runs all three stages on a
// raw string:
//
//	ro := layout.NewReorderer()
//	ordered, changed := ro.Reconstruct(text)
//
// # Configuration
//
// Each stage is driven by an ordered rule table that can be configured
// independently:
//
//	config := layout.DefaultSegmenterConfig()
//	config.LengthJumpThreshold = 80
//	s := layout.NewSegmenterWithConfig(config)
//
// All stages are pure functions of their input. No line is ever dropped or
// duplicated: the concatenation of all blocks is always a permutation of the
// input lines.
package layout
