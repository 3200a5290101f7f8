package xlsx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeXLSX builds a minimal XLSX file from the given zip entries and
// returns its path.
func writeXLSX(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	return path
}

const (
	contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`
	nsMain       = `xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"`
	nsRel        = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
)

func twoSheetWorkbook(t *testing.T) string {
	return writeXLSX(t, map[string]string{
		"[Content_Types].xml": contentTypes,
		"xl/workbook.xml": `<?xml version="1.0"?><workbook ` + nsMain + ` ` + nsRel + `><sheets>` +
			`<sheet name="Sales" sheetId="1" r:id="rId1"/>` +
			`<sheet name="Notes" sheetId="2" r:id="rId2"/>` +
			`</sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/>` +
			`<Relationship Id="rId2" Type="worksheet" Target="worksheets/sheet2.xml"/>` +
			`</Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0"?><sst ` + nsMain + `>` +
			`<si><t>Name</t></si><si><t>Qty</t></si>` +
			`<si><r><t>Wid</t></r><r><t>get</t></r></si>` +
			`</sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?><worksheet ` + nsMain + `><sheetData>` +
			`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>` +
			`<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>2</v></c></row>` +
			`</sheetData></worksheet>`,
		"xl/worksheets/sheet2.xml": `<?xml version="1.0"?><worksheet ` + nsMain + `><sheetData>` +
			`<row r="1"><c r="A1" t="inlineStr"><is><t>hello world</t></is></c></row>` +
			`</sheetData></worksheet>`,
	})
}

func TestExtract_TwoSheets(t *testing.T) {
	text, err := Extract(twoSheetWorkbook(t))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "Sheet: Sales\nName\tQty\nWidget\t2\n\nSheet: Notes\nhello world"
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestExtractWithSheets_Names(t *testing.T) {
	_, sheets, err := ExtractWithSheets(twoSheetWorkbook(t))
	if err != nil {
		t.Fatalf("ExtractWithSheets: %v", err)
	}

	want := []string{"Sales", "Notes"}
	if !reflect.DeepEqual(sheets, want) {
		t.Errorf("sheet names = %v, want %v", sheets, want)
	}
}

func TestExtract_ColumnGapPadding(t *testing.T) {
	path := writeXLSX(t, map[string]string{
		"[Content_Types].xml": contentTypes,
		"xl/workbook.xml": `<?xml version="1.0"?><workbook ` + nsMain + ` ` + nsRel + `><sheets>` +
			`<sheet name="Data" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/sharedStrings.xml": `<?xml version="1.0"?><sst ` + nsMain + `><si><t>left</t></si><si><t>right</t></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?><worksheet ` + nsMain + `><sheetData>` +
			`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="C1" t="s"><v>1</v></c></row>` +
			`</sheetData></worksheet>`,
	})

	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "Sheet: Data\nleft\t\tright"
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestExtract_BooleanAndFormulaCache(t *testing.T) {
	path := writeXLSX(t, map[string]string{
		"[Content_Types].xml": contentTypes,
		"xl/workbook.xml": `<?xml version="1.0"?><workbook ` + nsMain + ` ` + nsRel + `><sheets>` +
			`<sheet name="Flags" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?><worksheet ` + nsMain + `><sheetData>` +
			`<row r="1"><c r="A1" t="b"><v>1</v></c><c r="B1" t="b"><v>0</v></c>` +
			`<c r="C1" t="str"><f>CONCAT(A1)</f><v>sum</v></c></row>` +
			`</sheetData></worksheet>`,
	})

	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "Sheet: Flags\nTRUE\tFALSE\tsum"
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestOpen_DefaultSheetNaming(t *testing.T) {
	// No relationships part: sheet paths fall back to worksheets/sheetN.xml.
	path := writeXLSX(t, map[string]string{
		"[Content_Types].xml": contentTypes,
		"xl/workbook.xml": `<?xml version="1.0"?><workbook ` + nsMain + ` ` + nsRel + `><sheets>` +
			`<sheet name="Only" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?><worksheet ` + nsMain + `><sheetData>` +
			`<row r="1"><c r="A1"><v>42</v></c></row>` +
			`</sheetData></worksheet>`,
	})

	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "Sheet: Only\n42"
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestOpen_MissingWorkbook(t *testing.T) {
	path := writeXLSX(t, map[string]string{
		"[Content_Types].xml": contentTypes,
	})

	if _, err := Open(path); err == nil {
		t.Error("expected error for XLSX without xl/workbook.xml")
	}
}

func TestOpen_NoReadableSheets(t *testing.T) {
	path := writeXLSX(t, map[string]string{
		"[Content_Types].xml": contentTypes,
		"xl/workbook.xml": `<?xml version="1.0"?><workbook ` + nsMain + ` ` + nsRel + `><sheets>` +
			`<sheet name="Ghost" sheetId="1" r:id="rId1"/></sheets></workbook>`,
	})

	if _, err := Open(path); err == nil {
		t.Error("expected error when no worksheet parts are present")
	}
}

func TestOpen_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.xlsx")
	if err := os.WriteFile(path, []byte("csv,actually"), 0o644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Error("expected error for non-zip file")
	}
}
