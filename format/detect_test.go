package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{DOCX, "DOCX"},
		{XLSX, "XLSX"},
		{CSV, "CSV"},
		{HTML, "HTML"},
		{RTF, "RTF"},
		{Markdown, "Markdown"},
		{Text, "Text"},
		{PNG, "PNG"},
		{JPEG, "JPEG"},
		{GIF, "GIF"},
		{BMP, "BMP"},
		{TIFF, "TIFF"},
		{WebP, "WebP"},
		{ODT, "ODT"},
		{PPTX, "PPTX"},
		{EPUB, "EPUB"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, ".pdf"},
		{DOCX, ".docx"},
		{XLSX, ".xlsx"},
		{CSV, ".csv"},
		{HTML, ".html"},
		{RTF, ".rtf"},
		{Markdown, ".md"},
		{Text, ".txt"},
		{PNG, ".png"},
		{JPEG, ".jpg"},
		{TIFF, ".tiff"},
		{EPUB, ".epub"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_MIME(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "application/pdf"},
		{DOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{XLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{CSV, "text/csv"},
		{HTML, "text/html"},
		{RTF, "application/rtf"},
		{Markdown, "text/markdown"},
		{Text, "text/plain"},
		{PNG, "image/png"},
		{JPEG, "image/jpeg"},
		{EPUB, "application/epub+zip"},
		{Unknown, "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := tt.format.MIME(); got != tt.want {
			t.Errorf("Format(%d).MIME() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_IsImage(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{PNG, true},
		{JPEG, true},
		{GIF, true},
		{BMP, true},
		{TIFF, true},
		{WebP, true},
		{PDF, false},
		{DOCX, false},
		{HTML, false},
		{Text, false},
		{Unknown, false},
	}

	for _, tt := range tests {
		if got := tt.format.IsImage(); got != tt.want {
			t.Errorf("Format(%v).IsImage() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.pdf", PDF},
		{"document.PDF", PDF},
		{"document.Pdf", PDF},
		{"document.docx", DOCX},
		{"document.DOCX", DOCX},
		{"document.xlsx", XLSX},
		{"document.csv", CSV},
		{"document.html", HTML},
		{"document.HTM", HTML},
		{"document.rtf", RTF},
		{"document.md", Markdown},
		{"document.markdown", Markdown},
		{"document.txt", Text},
		{"document.log", Text},
		{"scan.png", PNG},
		{"scan.jpg", JPEG},
		{"scan.jpeg", JPEG},
		{"scan.gif", GIF},
		{"scan.bmp", BMP},
		{"scan.tif", TIFF},
		{"scan.tiff", TIFF},
		{"scan.webp", WebP},
		{"document.odt", ODT},
		{"document.pptx", PPTX},
		{"book.epub", EPUB},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.pdf", PDF},
		{"/path/to/scan.png", PNG},
		{"/path/to/file.docx", DOCX},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "PDF magic bytes",
			data: []byte("%PDF-1.4"),
			want: PDF,
		},
		{
			name: "ZIP magic bytes (DOCX/XLSX/PPTX)",
			data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00},
			want: Unknown, // ZIP needs further inspection
		},
		{
			name: "RTF header",
			data: []byte(`{\rtf1\ansi\deff0`),
			want: RTF,
		},
		{
			name: "PNG signature",
			data: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00},
			want: PNG,
		},
		{
			name: "JPEG signature",
			data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			want: JPEG,
		},
		{
			name: "GIF89a signature",
			data: []byte("GIF89a\x00\x00"),
			want: GIF,
		},
		{
			name: "BMP signature",
			data: []byte{'B', 'M', 0x36, 0x00, 0x00, 0x00},
			want: BMP,
		},
		{
			name: "TIFF little-endian",
			data: []byte{'I', 'I', 0x2A, 0x00, 0x08, 0x00},
			want: TIFF,
		},
		{
			name: "TIFF big-endian",
			data: []byte{'M', 'M', 0x00, 0x2A, 0x00, 0x08},
			want: TIFF,
		},
		{
			name: "WebP signature",
			data: append([]byte("RIFF"), append([]byte{0x24, 0x00, 0x00, 0x00}, []byte("WEBPVP8 ")...)...),
			want: WebP,
		},
		{
			name: "HTML with DOCTYPE",
			data: []byte("<!DOCTYPE html>\n<html>"),
			want: HTML,
		},
		{
			name: "HTML with whitespace before DOCTYPE",
			data: []byte("  \n  <!DOCTYPE HTML PUBLIC"),
			want: HTML,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "short data",
			data: []byte{0x50, 0x4B},
			want: Unknown,
		},
		{
			name: "random data",
			data: []byte{0x01, 0x02, 0x03, 0x04, 0x05},
			want: Unknown,
		},
		{
			name: "text file",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_PDF(t *testing.T) {
	data := []byte("%PDF-1.4\n%%EOF")
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != PDF {
		t.Errorf("DetectFromReader() = %v, want PDF", format)
	}
}

func TestDetectFromReader_RTF(t *testing.T) {
	data := []byte(`{\rtf1\ansi Hello}`)
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != RTF {
		t.Errorf("DetectFromReader() = %v, want RTF", format)
	}
}

func TestDetectFromReader_PNG(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != PNG {
		t.Errorf("DetectFromReader() = %v, want PNG", format)
	}
}

func TestDetectFromReader_HTML(t *testing.T) {
	data := []byte("<!DOCTYPE html>\n<html><head><title>Test</title></head><body></body></html>")
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != HTML {
		t.Errorf("DetectFromReader() = %v, want HTML", format)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte("Hello, World! This is plain text.")
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}

func TestDetectFromReader_ZIP(t *testing.T) {
	tests := []struct {
		name    string
		entries []struct{ name, body string }
		want    Format
	}{
		{
			name: "EPUB mimetype entry",
			entries: []struct{ name, body string }{
				{"mimetype", "application/epub+zip"},
				{"META-INF/container.xml", "<container/>"},
			},
			want: EPUB,
		},
		{
			name: "ODT mimetype entry",
			entries: []struct{ name, body string }{
				{"mimetype", "application/vnd.oasis.opendocument.text"},
				{"content.xml", "<document-content/>"},
			},
			want: ODT,
		},
		{
			name: "DOCX content directory",
			entries: []struct{ name, body string }{
				{"[Content_Types].xml", "<Types/>"},
				{"word/document.xml", "<document/>"},
			},
			want: DOCX,
		},
		{
			name: "XLSX content directory",
			entries: []struct{ name, body string }{
				{"[Content_Types].xml", "<Types/>"},
				{"xl/workbook.xml", "<workbook/>"},
			},
			want: XLSX,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			for _, e := range tt.entries {
				w, err := zw.Create(e.name)
				if err != nil {
					t.Fatalf("adding %s: %v", e.name, err)
				}
				if _, err := w.Write([]byte(e.body)); err != nil {
					t.Fatalf("writing %s: %v", e.name, err)
				}
			}
			if err := zw.Close(); err != nil {
				t.Fatalf("closing archive: %v", err)
			}

			r := bytes.NewReader(buf.Bytes())
			got, err := DetectFromReader(r, int64(buf.Len()))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}
