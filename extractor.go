package scriba

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/scriba/csvdoc"
	"github.com/tsawler/scriba/docx"
	"github.com/tsawler/scriba/epubdoc"
	"github.com/tsawler/scriba/format"
	"github.com/tsawler/scriba/htmldoc"
	"github.com/tsawler/scriba/layout"
	"github.com/tsawler/scriba/links"
	"github.com/tsawler/scriba/linkstore"
	"github.com/tsawler/scriba/mddoc"
	"github.com/tsawler/scriba/ocr"
	"github.com/tsawler/scriba/pdfdoc"
	"github.com/tsawler/scriba/repair"
	"github.com/tsawler/scriba/rtf"
	"github.com/tsawler/scriba/textdoc"
	"github.com/tsawler/scriba/xlsx"
)

// Result is the full product of one extraction.
type Result struct {
	// Text is the recovered plain text after repair and reordering.
	Text string `json:"text"`

	// Format is the detected input format.
	Format format.Format `json:"-"`

	// MIMEType is the MIME type of the detected format.
	MIMEType string `json:"mime_type"`

	// Links are the unique links found in Text, in first-seen order.
	Links []string `json:"links"`

	// FilePath is the path the text was extracted from.
	FilePath string `json:"file_path"`

	// SavedLinksPath is the path of the written link report. It is
	// empty when saving was disabled, no links were found, or the
	// write failed.
	SavedLinksPath string `json:"saved_links_path,omitempty"`

	// StructuredData carries per-format extras, such as sheet names
	// for spreadsheets or the page title for HTML.
	StructuredData map[string]any `json:"structured_data,omitempty"`
}

// TextExtractor pulls plain text out of one file. Every document
// package in this module provides one.
type TextExtractor func(path string) (string, error)

// extractors maps each plain-document format to its extractor. Images
// go through the OCR engine instead, and XLSX, HTML and EPUB take
// richer paths that also produce structured data.
var extractors = map[format.Format]TextExtractor{
	format.PDF:      pdfdoc.Extract,
	format.DOCX:     docx.Extract,
	format.CSV:      csvdoc.Extract,
	format.RTF:      rtf.Extract,
	format.Markdown: mddoc.Extract,
	format.Text:     textdoc.Extract,
}

// Extractor provides a fluent interface for extracting text and links
// from documents and images. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source
	filename string

	// Configuration
	options ExtractOptions
}

// clone creates a copy of the Extractor with a copy of its options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
	}
}

// WithOCRLanguage sets the Tesseract language used when the input is
// an image. The default is "eng".
func (e *Extractor) WithOCRLanguage(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocrLanguage = lang
	return newExt
}

// WithoutRepair skips the text-repair stage, returning the raw
// extractor output.
func (e *Extractor) WithoutRepair() *Extractor {
	newExt := e.clone()
	newExt.options.skipRepair = true
	return newExt
}

// WithoutReordering skips the reading-order reconstruction stage.
func (e *Extractor) WithoutReordering() *Extractor {
	newExt := e.clone()
	newExt.options.skipReorder = true
	return newExt
}

// SaveLinks writes the link report into dir instead of next to the
// source file. Saving is on by default; SaveLinks only changes where
// the report goes.
func (e *Extractor) SaveLinks(dir string) *Extractor {
	newExt := e.clone()
	newExt.options.saveLinks = true
	newExt.options.outputDir = dir
	return newExt
}

// WithoutSavingLinks disables writing the link report.
func (e *Extractor) WithoutSavingLinks() *Extractor {
	newExt := e.clone()
	newExt.options.saveLinks = false
	return newExt
}

// WithLogger attaches a logger for pipeline progress and warnings. The
// default discards everything.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// WithStore additionally records each extraction and its links in st.
// Store failures degrade to a warning, never an error.
func (e *Extractor) WithStore(st *linkstore.Store) *Extractor {
	newExt := e.clone()
	newExt.options.store = st
	return newExt
}

// Text runs the pipeline and returns the recovered plain text.
func (e *Extractor) Text() (string, []Warning, error) {
	res, warnings, err := e.run()
	if err != nil {
		return "", warnings, err
	}
	return res.Text, warnings, nil
}

// Links runs the pipeline and returns the unique links found in the
// text, in first-seen order.
func (e *Extractor) Links() ([]string, []Warning, error) {
	res, warnings, err := e.run()
	if err != nil {
		return nil, warnings, err
	}
	return res.Links, warnings, nil
}

// ClickableHTML runs the pipeline and returns the text with every
// found link wrapped in an HTML anchor tag.
func (e *Extractor) ClickableHTML() (string, []Warning, error) {
	res, warnings, err := e.run()
	if err != nil {
		return "", warnings, err
	}
	return links.MakeClickable(res.Text, res.Links), warnings, nil
}

// Result runs the pipeline and returns the full extraction record.
func (e *Extractor) Result() (*Result, []Warning, error) {
	return e.run()
}

// run executes the extraction pipeline for the configured file. Errors
// from format detection and raw-text extraction are fatal; failures in
// link extraction and persistence degrade to warnings so the text that
// was successfully extracted is still returned.
func (e *Extractor) run() (*Result, []Warning, error) {
	logger := e.logger()

	info, err := os.Stat(e.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, e.filename)
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, e.filename)
	}

	f, err := detectFormat(e.filename)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("format detected", "file", e.filename, "format", f.String())

	text, structured, err := e.extract(f)
	if err != nil {
		return nil, nil, err
	}

	rep := repair.NewRepairer()
	if !e.options.skipRepair {
		text = rep.Process(text)
	}
	if !e.options.skipReorder {
		reordered, changed := layout.NewReorderer().Reconstruct(text)
		if changed {
			text = reordered
		} else {
			// The generic pass left every block in place. Try the
			// family keyword pass, which can separate sections the
			// layout heuristics cannot see.
			text = rep.Reflow(text)
		}
	}

	var warnings []Warning
	extracted, warn := safeExtractLinks(text)
	if warn != nil {
		warnings = append(warnings, *warn)
		logger.Warn("link extraction failed", "file", e.filename, "error", warn.Message)
	}

	res := &Result{
		Text:           text,
		Format:         f,
		MIMEType:       f.MIME(),
		Links:          extracted,
		FilePath:       e.filename,
		StructuredData: structured,
	}

	if e.options.saveLinks && len(res.Links) > 0 {
		path, err := linkstore.Save(res.Links, e.filename, e.options.outputDir)
		if err != nil {
			warnings = append(warnings, Warning{Code: WarnPersistence, Message: err.Error()})
			logger.Warn("link report not written", "file", e.filename, "error", err)
		} else {
			res.SavedLinksPath = path
		}
	}

	if e.options.store != nil {
		if err := recordExtraction(e.options.store, res); err != nil {
			warnings = append(warnings, Warning{Code: WarnPersistence, Message: err.Error()})
			logger.Warn("extraction not recorded", "file", e.filename, "error", err)
		}
	}

	logger.Debug("extraction complete",
		"file", e.filename,
		"format", f.String(),
		"chars", len(res.Text),
		"links", len(res.Links))

	return res, warnings, nil
}

// detectFormat sniffs the file content, falling back to the extension
// when the content matches nothing.
func detectFormat(path string) (format.Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return format.Unknown, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return format.Unknown, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	if f, err := format.DetectFromReader(file, info.Size()); err == nil && f != format.Unknown {
		return f, nil
	}
	return format.Detect(path), nil
}

// extract pulls raw text from the file according to its detected
// format. The second return value carries per-format structured data.
func (e *Extractor) extract(f format.Format) (string, map[string]any, error) {
	switch {
	case f.IsImage():
		text, err := e.recognize()
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
		}
		return text, nil, nil

	case f == format.XLSX:
		text, sheets, err := xlsx.ExtractWithSheets(e.filename)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
		}
		return text, map[string]any{"sheets": sheets}, nil

	case f == format.HTML:
		text, title, err := htmldoc.ExtractWithTitle(e.filename)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
		}
		var structured map[string]any
		if title != "" {
			structured = map[string]any{"title": title}
		}
		return text, structured, nil

	case f == format.EPUB:
		text, title, err := epubdoc.ExtractWithTitle(e.filename)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
		}
		var structured map[string]any
		if title != "" {
			structured = map[string]any{"title": title}
		}
		return text, structured, nil
	}

	extractor, ok := extractors[f]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	text, err := extractor(e.filename)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	return text, nil, nil
}

// recognize decodes the image, re-encodes it to PNG, and runs it
// through the shared OCR engine.
func (e *Extractor) recognize() (string, error) {
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	normalized, err := ocr.Normalize(data)
	if err != nil {
		return "", err
	}
	engine := ocr.Shared()
	if err := engine.SetLanguage(e.options.ocrLanguage); err != nil {
		return "", err
	}
	return engine.Recognize(normalized)
}

// safeExtractLinks scans text for links, turning a scanner panic into
// a warning and an empty list so extraction still returns its text.
func safeExtractLinks(text string) (found []string, warn *Warning) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			warn = &Warning{
				Code:    WarnLinkExtraction,
				Message: fmt.Sprintf("link scanner panicked: %v", r),
			}
		}
	}()
	return links.NewExtractor().Extract(text), nil
}

// recordExtraction mirrors a finished result into the link history
// store.
func recordExtraction(st *linkstore.Store, res *Result) error {
	records := make([]linkstore.LinkRecord, 0, len(res.Links))
	for i, link := range res.Links {
		records = append(records, linkstore.LinkRecord{
			Link:     link,
			Type:     links.Categorize(link).String(),
			Position: i,
		})
	}
	_, err := st.RecordExtraction(context.Background(), linkstore.Extraction{
		FilePath:   res.FilePath,
		MIMEType:   res.MIMEType,
		CharCount:  len(res.Text),
		ReportPath: res.SavedLinksPath,
		Links:      records,
	})
	return err
}

// logger returns the configured logger or a discarding fallback.
func (e *Extractor) logger() *slog.Logger {
	if e.options.logger != nil {
		return e.options.logger
	}
	return nopLogger
}

var nopLogger = slog.New(discardHandler{})

// discardHandler is a slog.Handler that drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
