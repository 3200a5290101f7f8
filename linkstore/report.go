// Package linkstore persists extracted links: per-document report files
// in JSON or CSV, and an optional SQLite history database.
package linkstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/tsawler/scriba/links"
)

// ReportFormat defines the available report file formats
type ReportFormat int

const (
	// ReportFormatJSON writes an indented JSON document
	ReportFormatJSON ReportFormat = iota
	// ReportFormatCSV writes one link per row with a header
	ReportFormatCSV
)

// String returns a human-readable representation of the report format
func (rf ReportFormat) String() string {
	switch rf {
	case ReportFormatJSON:
		return "json"
	case ReportFormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (rf ReportFormat) FileExtension() string {
	switch rf {
	case ReportFormatJSON:
		return ".json"
	case ReportFormatCSV:
		return ".csv"
	default:
		return ".txt"
	}
}

// LinkRecord is one extracted link in a report. Records are never
// mutated after creation.
type LinkRecord struct {
	ID       string `json:"id"`
	Link     string `json:"link"`
	Type     string `json:"type"`
	Position int    `json:"position"`
	Context  string `json:"context,omitempty"`
}

// Report is the persisted form of one extraction's links.
type Report struct {
	ID         string       `json:"id"`
	SourcePath string       `json:"source_path"`
	SourceFile string       `json:"source_file"`
	CreatedAt  time.Time    `json:"created_at"`
	LinkCount  int          `json:"link_count"`
	Links      []LinkRecord `json:"links"`
}

// WriterConfig holds configuration options for report writing
type WriterConfig struct {
	// Format specifies the report file format
	Format ReportFormat
}

// DefaultWriterConfig returns sensible defaults for report writing
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		Format: ReportFormatJSON,
	}
}

// Writer persists link reports to disk
type Writer struct {
	config WriterConfig
}

// NewWriter creates a report writer with default configuration
func NewWriter() *Writer {
	return &Writer{
		config: DefaultWriterConfig(),
	}
}

// NewWriterWithConfig creates a report writer with custom configuration
func NewWriterWithConfig(config WriterConfig) *Writer {
	return &Writer{
		config: config,
	}
}

// NewReport builds a Report for links extracted from sourcePath. Each
// link is classified and assigned a fresh ID.
func NewReport(extracted []string, sourcePath string) *Report {
	records := make([]LinkRecord, 0, len(extracted))
	for i, link := range extracted {
		records = append(records, LinkRecord{
			ID:       newID(),
			Link:     link,
			Type:     links.Categorize(link).String(),
			Position: i,
		})
	}
	return &Report{
		ID:         newID(),
		SourcePath: sourcePath,
		SourceFile: filepath.Base(sourcePath),
		CreatedAt:  time.Now().UTC(),
		LinkCount:  len(records),
		Links:      records,
	}
}

// Save writes a report for links extracted from sourcePath into dir and
// returns the report file path. With zero links no file is written and
// the returned path is empty. An empty dir means alongside the source.
func (w *Writer) Save(extracted []string, sourcePath, dir string) (string, error) {
	if len(extracted) == 0 {
		return "", nil
	}
	if dir == "" {
		dir = filepath.Dir(sourcePath)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	report := NewReport(extracted, sourcePath)
	path := filepath.Join(dir, reportFileName(filepath.Base(sourcePath), w.config.Format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := w.Write(report, f); err != nil {
		return "", err
	}
	return path, nil
}

// Write encodes a report to the specified writer
func (w *Writer) Write(report *Report, out io.Writer) error {
	switch w.config.Format {
	case ReportFormatJSON:
		return writeJSON(report, out)
	case ReportFormatCSV:
		return writeCSV(report, out)
	default:
		return fmt.Errorf("unsupported report format: %v", w.config.Format)
	}
}

// Save writes a JSON report using the default configuration.
func Save(extracted []string, sourcePath, dir string) (string, error) {
	return NewWriter().Save(extracted, sourcePath, dir)
}

// Find loads link records previously saved for the source file named by
// stage from dir, keeping only those whose link contains term. A missing
// report or an empty match set yields nil without an error; an empty
// term returns every record.
func Find(term, stage, dir string) ([]LinkRecord, error) {
	path := filepath.Join(dir, reportFileName(stage, ReportFormatJSON))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading link report: %w", err)
	}

	var report Report
	if err := sonic.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing link report: %w", err)
	}
	if term == "" {
		return report.Links, nil
	}

	needle := strings.ToLower(term)
	var matched []LinkRecord
	for _, rec := range report.Links {
		if strings.Contains(strings.ToLower(rec.Link), needle) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// reportFileName derives the report file name for a source file, e.g.
// "report.pdf" becomes "report_links.json".
func reportFileName(sourceFile string, format ReportFormat) string {
	base := strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile))
	return base + "_links" + format.FileExtension()
}

func writeJSON(report *Report, out io.Writer) error {
	data, err := sonic.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func writeCSV(report *Report, out io.Writer) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"id", "link", "type", "position"}); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, rec := range report.Links {
		row := []string{rec.ID, rec.Link, rec.Type, strconv.Itoa(rec.Position)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
