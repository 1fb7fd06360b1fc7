package sanitize

import (
	"net/url"
	"strings"

	"citeassist/src/internal/schema"
)

// CleanString trims and removes ASCII control characters except tab/newline/carriage
// return up to max runes (if max <= 0, no truncation).
func CleanString(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
			n++
			if max > 0 && n >= max {
				break
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanURL returns a validated http/https URL or empty string.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Path = strings.ReplaceAll(u.Path, " ", "%20")
	return u.String()
}

// IsWebURL reports whether raw is a well-formed http(s) URL.
func IsWebURL(raw string) bool { return CleanURL(raw) != "" }

// CleanAuthors sanitizes author names and drops blank entries. The result is
// never nil.
func CleanAuthors(authors schema.Authors) schema.Authors {
	const max = 256
	out := make(schema.Authors, 0, len(authors))
	for _, a := range authors {
		p := schema.Person{
			Given:   CleanString(a.Given, max),
			Family:  CleanString(a.Family, max),
			Literal: CleanString(a.Literal, max),
		}
		if p.IsZero() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CleanRecord applies conservative sanitization to all strings in the record.
// URLs that are not http(s) are kept as typed; only whitespace is fixed.
func CleanRecord(r *schema.Record) {
	if r == nil {
		return
	}
	r.Title = CleanString(r.Title, 1024)
	r.Container = CleanString(r.Container, 512)
	r.Publisher = CleanString(r.Publisher, 512)
	r.Volume = CleanString(r.Volume, 64)
	r.Issue = CleanString(r.Issue, 64)
	r.Pages = CleanString(r.Pages, 64)
	r.DOI = CleanString(r.DOI, 256)
	if u := CleanURL(r.URL); u != "" {
		r.URL = u
	} else {
		r.URL = strings.Join(strings.Fields(CleanString(r.URL, 2048)), "")
	}
	r.DatePublished = CleanString(r.DatePublished, 64)
	r.DateModified = CleanString(r.DateModified, 64)
	r.Authors = CleanAuthors(r.Authors)
}
