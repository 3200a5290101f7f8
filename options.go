package scriba

import (
	"log/slog"

	"github.com/tsawler/scriba/linkstore"
)

// ExtractOptions holds configuration for text extraction.
type ExtractOptions struct {
	// OCR language passed to Tesseract when the input is an image
	ocrLanguage string

	// Pipeline toggles
	skipRepair  bool
	skipReorder bool

	// Link report persistence
	saveLinks bool
	outputDir string // empty means next to the source file

	// Collaborators
	logger *slog.Logger
	store  *linkstore.Store
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		ocrLanguage: "eng",
		skipRepair:  false,
		skipReorder: false,
		saveLinks:   true,
		outputDir:   "",
		logger:      nil, // nil means discard
		store:       nil,
	}
}

// clone creates a copy of ExtractOptions. The logger and store are
// shared handles; everything else is a value.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		ocrLanguage: o.ocrLanguage,
		skipRepair:  o.skipRepair,
		skipReorder: o.skipReorder,
		saveLinks:   o.saveLinks,
		outputDir:   o.outputDir,
		logger:      o.logger,
		store:       o.store,
	}
}
