package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// writeDOCX builds a minimal DOCX file containing the given document.xml
// body and returns its path.
func writeDOCX(t *testing.T, documentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   documentXML,
	}
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

const docHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`

func TestExtract_Paragraphs(t *testing.T) {
	path := writeDOCX(t, docHeader+`<w:body>`+
		`<w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t xml:space="preserve"> World</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Second line</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "Hello World\nSecond line"
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestExtract_TabsInSeparateRuns(t *testing.T) {
	path := writeDOCX(t, docHeader+`<w:body>`+
		`<w:p><w:r><w:t>Name</w:t></w:r><w:r><w:tab/></w:r><w:r><w:t>Value</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "Name\tValue"
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestExtract_HyperlinkDisplayText(t *testing.T) {
	path := writeDOCX(t, docHeader+`<w:body>`+
		`<w:p><w:r><w:t xml:space="preserve">Visit </w:t></w:r>`+
		`<w:hyperlink><w:r><w:t>https://example.com/page</w:t></w:r></w:hyperlink></w:p>`+
		`</w:body></w:document>`)

	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "Visit https://example.com/page"
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestExtract_TableCells(t *testing.T) {
	path := writeDOCX(t, docHeader+`<w:body>`+
		`<w:p><w:r><w:t>Before table</w:t></w:r></w:p>`+
		`<w:tbl><w:tr>`+
		`<w:tc><w:p><w:r><w:t>A1</w:t></w:r></w:p></w:tc>`+
		`<w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p></w:tc>`+
		`</w:tr></w:tbl>`+
		`</w:body></w:document>`)

	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "Before table\nA1\tB1"
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestExtract_LineBreak(t *testing.T) {
	path := writeDOCX(t, docHeader+`<w:body>`+
		`<w:p><w:r><w:t>First</w:t><w:br/></w:r><w:r><w:t>Second</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "First\nSecond"
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestOpen_MissingDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test file: %v", err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte("<Types/>"))
	zw.Close()
	f.Close()

	if _, err := Open(path); err == nil {
		t.Error("expected error for DOCX without word/document.xml")
	}
}

func TestOpen_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.docx")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Error("expected error for non-zip file")
	}
}

func TestReader_CloseTwice(t *testing.T) {
	path := writeDOCX(t, docHeader+`<w:body><w:p><w:r><w:t>x</w:t></w:r></w:p></w:body></w:document>`)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
