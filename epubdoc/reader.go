// Package epubdoc extracts text from EPUB e-books. An EPUB is a zip
// archive whose container document points at a package document (OPF);
// the package's spine lists content documents in reading order, and
// each one is XHTML extracted through the htmldoc package.
package epubdoc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/tsawler/scriba/htmldoc"
)

const containerPath = "META-INF/container.xml"

// containerXML is the subset of the container document naming the
// package document.
type containerXML struct {
	Rootfiles []rootfileXML `xml:"rootfiles>rootfile"`
}

type rootfileXML struct {
	FullPath string `xml:"full-path,attr"`
}

// packageXML is the subset of the OPF package document needed for text
// extraction: the title, the manifest mapping item IDs to hrefs, and
// the spine giving reading order.
type packageXML struct {
	Metadata metadataXML `xml:"metadata"`
	Manifest manifestXML `xml:"manifest"`
	Spine    spineXML    `xml:"spine"`
}

type metadataXML struct {
	Titles []string `xml:"title"`
}

type manifestXML struct {
	Items []itemXML `xml:"item"`
}

type itemXML struct {
	ID   string `xml:"id,attr"`
	Href string `xml:"href,attr"`
}

type spineXML struct {
	ItemRefs []itemRefXML `xml:"itemref"`
}

type itemRefXML struct {
	IDRef string `xml:"idref,attr"`
}

// Reader provides access to EPUB document content.
type Reader struct {
	zr    *zip.ReadCloser
	title string
	spine []string
}

// Open opens an EPUB file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening epub: %w", err)
	}

	r := &Reader{zr: zr}
	if err := r.parse(); err != nil {
		zr.Close()
		return nil, err
	}
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return r.zr.Close()
}

// Title returns the book title, or "" when the package declares none.
func (r *Reader) Title() string {
	return r.title
}

// parse locates the package document through the container and records
// the title and the spine's content paths.
func (r *Reader) parse() error {
	data, err := r.fileContent(containerPath)
	if err != nil {
		return fmt.Errorf("reading container: %w", err)
	}

	var container containerXML
	if err := xml.Unmarshal(data, &container); err != nil {
		return fmt.Errorf("parsing container: %w", err)
	}
	if len(container.Rootfiles) == 0 || container.Rootfiles[0].FullPath == "" {
		return fmt.Errorf("container names no package document")
	}

	opfPath := container.Rootfiles[0].FullPath
	data, err = r.fileContent(opfPath)
	if err != nil {
		return fmt.Errorf("reading package document: %w", err)
	}

	var pkg packageXML
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return fmt.Errorf("parsing package document: %w", err)
	}
	if len(pkg.Metadata.Titles) > 0 {
		r.title = strings.TrimSpace(pkg.Metadata.Titles[0])
	}

	hrefs := make(map[string]string, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		hrefs[item.ID] = item.Href
	}

	// Hrefs are relative to the package document's directory.
	base := path.Dir(opfPath)
	for _, ref := range pkg.Spine.ItemRefs {
		href, ok := hrefs[ref.IDRef]
		if !ok || href == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(href); err == nil {
			href = decoded
		}
		if base != "." {
			href = path.Join(base, href)
		}
		r.spine = append(r.spine, href)
	}
	if len(r.spine) == 0 {
		return fmt.Errorf("package document has an empty spine")
	}
	return nil
}

// fileContent returns the content of a named archive entry.
func (r *Reader) fileContent(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// Text extracts plain text from every spine document in reading order,
// separated by blank lines. Documents that are missing from the
// archive or fail to parse are skipped.
func (r *Reader) Text() (string, error) {
	var parts []string
	for _, name := range r.spine {
		content, err := r.fileContent(name)
		if err != nil {
			continue
		}
		hr, err := htmldoc.OpenReader(bytes.NewReader(content))
		if err != nil {
			continue
		}
		text, err := hr.Text()
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// Extract opens the file at path and returns its text content.
func Extract(path string) (string, error) {
	text, _, err := ExtractWithTitle(path)
	return text, err
}

// ExtractWithTitle opens the file at path and returns its text content
// along with the book title from the package metadata.
func ExtractWithTitle(path string) (string, string, error) {
	r, err := Open(path)
	if err != nil {
		return "", "", err
	}
	defer r.Close()

	text, err := r.Text()
	if err != nil {
		return "", "", err
	}
	return text, r.Title(), nil
}
