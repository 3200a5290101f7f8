// Package scriba provides a fluent API for extracting plain text and
// links from documents and images.
//
// Basic usage:
//
//	text, warnings, err := scriba.Open("document.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", scriba.FormatWarnings(warnings))
//	}
//
// With options:
//
//	res, _, err := scriba.Open("scan.png").
//	    WithOCRLanguage("deu").
//	    SaveLinks("reports").
//	    Result()
//
// Extraction runs a fixed pipeline: detect the format from content,
// pull raw text out of the file (or OCR it when the file is an image),
// repair common merge artifacts, reconstruct reading order, and scan
// the result for links. Found links are written to a JSON report next
// to the source file unless disabled with WithoutSavingLinks.
//
// For advanced use cases, the lower-level layout, repair, and links
// packages are also available.
package scriba

import "github.com/tsawler/scriba/ocr"

// Open returns an Extractor for fluent configuration of a single file.
// No work happens until a terminal operation like Text or Result is
// called.
//
// Example:
//
//	text, warnings, err := scriba.Open("document.pdf").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	found := scriba.Must(linkstore.Find("", "report.pdf", "out"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a terminal call returning
// (T, []Warning, error) and panics if the error is non-nil. It discards
// warnings and returns just the value.
//
// Example:
//
//	text := scriba.MustText(scriba.Open("document.pdf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Shutdown releases the shared OCR engine. Call it once when the
// process is done extracting images; extractors used afterwards lazily
// re-initialize the engine.
func Shutdown() error {
	return ocr.Shutdown()
}
