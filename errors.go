package scriba

import "errors"

// Sentinel errors returned by extraction terminals. Returned errors wrap
// these, so callers test with errors.Is and still see the underlying
// cause in the message.
var (
	// ErrFileNotFound reports that the input path does not resolve to a
	// regular file.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedFormat reports that no extractor is registered for
	// the detected format.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailed reports that the underlying parser or OCR
	// engine failed.
	ErrExtractionFailed = errors.New("extraction failed")
)
