package doi

import (
	"regexp"
	"strings"
)

var (
	rePrefix = regexp.MustCompile(`(?i)^(?:https?://(?:dx\.)?doi\.org/|doi:\s*)`)
	reDOI    = regexp.MustCompile(`(?i)\b10\.\d{4,9}/[-._;()/:A-Z0-9]+`)
)

// Normalize strips a doi.org URL or "doi:" prefix and surrounding whitespace.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(rePrefix.ReplaceAllString(s, ""))
}

// URL renders a DOI as its resolver link.
func URL(d string) string {
	d = Normalize(d)
	if d == "" {
		return ""
	}
	return "https://doi.org/" + d
}

// Find returns the first bare DOI in arbitrary text, without trailing sentence
// punctuation.
func Find(text string) string {
	m := reDOI.FindString(text)
	return strings.TrimRight(m, ".,;:")
}
