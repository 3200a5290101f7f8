package links

import (
	"regexp"
	"strings"
)

// bareDomain recognizes a whole string shaped like a domain name with an
// optional path, used to classify scheme-less links as URLs.
var bareDomain = regexp.MustCompile(`^(?:www\.)?(?:[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z]{2,}(?:/[^\s<>"']*)?$`)

// LinkType identifies what kind of target a link string points at.
type LinkType int

const (
	// Other is the fallback for strings no rule recognizes.
	Other LinkType = iota
	// URL is a web address, with or without an explicit scheme.
	URL
	// Email is a mailable address.
	Email
	// FilePath is a root-relative path such as /docs/manual.pdf.
	FilePath
	// Relative is a path relative to the current location, such as ../index.html.
	Relative
)

// String returns a human-readable name for the link type.
func (t LinkType) String() string {
	switch t {
	case URL:
		return "url"
	case Email:
		return "email"
	case FilePath:
		return "file-path"
	case Relative:
		return "relative"
	default:
		return "other"
	}
}

// Categorize determines the type of a single link string. Rules are checked
// in order of specificity: an address containing @ is an email even when it
// also looks like a domain.
func Categorize(link string) LinkType {
	link = strings.TrimSpace(link)
	if link == "" {
		return Other
	}

	switch {
	case strings.Contains(link, "@"):
		return Email
	case strings.HasPrefix(link, "http://"), strings.HasPrefix(link, "https://"):
		return URL
	case bareDomain.MatchString(link):
		return URL
	case strings.HasPrefix(link, "./"), strings.HasPrefix(link, "../"):
		return Relative
	case strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//"):
		return FilePath
	default:
		return Other
	}
}
