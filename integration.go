package scriba

import "github.com/tsawler/scriba/links"

// ExtractText extracts plain text from any supported file with default
// options. It is shorthand for Open(path).Text().
func ExtractText(path string) (string, []Warning, error) {
	return Open(path).Text()
}

// ExtractLinks scans already-extracted text for links. The returned
// list is de-duplicated in first-seen order.
func ExtractLinks(text string) []string {
	return links.NewExtractor().Extract(text)
}

// MakeLinksClickable wraps each occurrence of the given links in text
// with an HTML anchor tag. Text without links passes through unchanged.
func MakeLinksClickable(text string, found []string) string {
	return links.MakeClickable(text, found)
}

// Categorize reports the kind of a single link: email, URL, file path,
// relative path, or other.
func Categorize(link string) links.LinkType {
	return links.Categorize(link)
}
