// Package xlsx extracts text from XLSX (Office Open XML Spreadsheet)
// workbooks.
package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sheet holds one worksheet's resolved cell text.
type Sheet struct {
	Name string
	Rows [][]string
}

// Reader provides access to XLSX workbook content.
type Reader struct {
	zipReader     *zip.ReadCloser
	workbook      *workbookXML
	sharedStrings []string
	sheetRels     map[string]string
	sheets        []*Sheet
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zipReader: zr,
		sheetRels: make(map[string]string),
	}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}
	if err := r.parseRelationships(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}
	if err := r.parseWorkbook(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}

	// Shared strings are optional; workbooks with only numbers lack them.
	_ = r.parseSharedStrings()

	if err := r.parseWorksheets(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing worksheets: %w", err)
	}

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required XLSX parts exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"xl/workbook.xml",
	}

	present := make(map[string]bool, len(r.zipReader.File))
	for _, f := range r.zipReader.File {
		present[f.Name] = true
	}

	for _, name := range required {
		if !present[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseRelationships parses the workbook relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil
	}

	rels := &relationshipsXML{}
	if err := xml.Unmarshal(data, rels); err != nil {
		return err
	}
	for _, rel := range rels.Relationship {
		r.sheetRels[rel.ID] = rel.Target
	}
	return nil
}

// parseWorkbook parses the main workbook file.
func (r *Reader) parseWorkbook() error {
	data, err := r.getFileContent("xl/workbook.xml")
	if err != nil {
		return err
	}

	r.workbook = &workbookXML{}
	return xml.Unmarshal(data, r.workbook)
}

// parseSharedStrings parses the shared strings table.
func (r *Reader) parseSharedStrings() error {
	data, err := r.getFileContent("xl/sharedStrings.xml")
	if err != nil {
		return err
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return err
	}

	r.sharedStrings = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != "" {
			r.sharedStrings[i] = si.T
			continue
		}
		// Rich text: concatenate all runs.
		var text strings.Builder
		for _, run := range si.R {
			text.WriteString(run.T)
		}
		r.sharedStrings[i] = text.String()
	}

	return nil
}

// parseWorksheets parses all worksheets named by the workbook.
func (r *Reader) parseWorksheets() error {
	if r.workbook == nil {
		return fmt.Errorf("workbook not parsed")
	}

	r.sheets = make([]*Sheet, 0, len(r.workbook.Sheets.Sheet))

	for i, sheetRef := range r.workbook.Sheets.Sheet {
		target := r.sheetRels[sheetRef.RID]
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		if !strings.HasPrefix(target, "xl/") && !strings.HasPrefix(target, "/") {
			target = "xl/" + target
		}
		target = strings.TrimPrefix(target, "/")

		data, err := r.getFileContent(target)
		if err != nil {
			continue
		}

		sheet, err := r.parseWorksheet(data, sheetRef.Name)
		if err != nil {
			continue
		}
		r.sheets = append(r.sheets, sheet)
	}

	if len(r.sheets) == 0 {
		return fmt.Errorf("no worksheets found")
	}
	return nil
}

// parseWorksheet resolves one worksheet's cells to text, padding skipped
// columns so tab positions survive.
func (r *Reader) parseWorksheet(data []byte, name string) (*Sheet, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}

	sheet := &Sheet{Name: name}
	for _, row := range ws.SheetData.Rows {
		var cells []string
		for _, cell := range row.Cells {
			col, _, err := ParseCellRef(cell.R)
			if err != nil {
				col = len(cells)
			}
			for len(cells) < col {
				cells = append(cells, "")
			}
			cells = append(cells, r.cellValue(cell))
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	return sheet, nil
}

// cellValue resolves one cell's display text.
func (r *Reader) cellValue(cell cellXML) string {
	switch cell.T {
	case "s":
		idx, err := strconv.Atoi(cell.V)
		if err == nil && idx >= 0 && idx < len(r.sharedStrings) {
			return r.sharedStrings[idx]
		}
		return ""
	case "b":
		if cell.V == "1" {
			return "TRUE"
		}
		return "FALSE"
	case "inlineStr":
		if cell.Is != nil {
			return cell.Is.T
		}
		return ""
	default:
		// "str" formula caches, "e" errors and plain numbers all carry
		// their text in V.
		return cell.V
	}
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of all sheets, in workbook order.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// Text returns the workbook's text: each sheet under a "Sheet: name"
// header, rows line by line with cells joined by tabs.
func (r *Reader) Text() (string, error) {
	var result strings.Builder

	for i, sheet := range r.sheets {
		if i > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString("Sheet: ")
		result.WriteString(sheet.Name)

		for _, row := range sheet.Rows {
			result.WriteString("\n")
			result.WriteString(strings.TrimRight(strings.Join(row, "\t"), "\t"))
		}
	}

	return result.String(), nil
}

// Extract opens the file at path and returns its text content.
func Extract(path string) (string, error) {
	text, _, err := ExtractWithSheets(path)
	return text, err
}

// ExtractWithSheets opens the file at path and returns its text content
// along with the workbook's sheet names.
func ExtractWithSheets(path string) (string, []string, error) {
	r, err := Open(path)
	if err != nil {
		return "", nil, err
	}
	defer r.Close()

	text, err := r.Text()
	if err != nil {
		return "", nil, err
	}
	return text, r.SheetNames(), nil
}
