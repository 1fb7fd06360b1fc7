// Package build maps every supported metadata origin into one canonical
// schema.Record.
package build

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"citeassist/src/internal/dates"
	"citeassist/src/internal/doi"
	"citeassist/src/internal/names"
	"citeassist/src/internal/sanitize"
	"citeassist/src/internal/schema"
)

// ErrInvalidSource is returned when Build is handed no source at all.
var ErrInvalidSource = errors.New("build: invalid source")

// OpenLibraryISBNURL is the canonical page synthesized for ISBN lookups.
const OpenLibraryISBNURL = "https://openlibrary.org/isbn/"

// Extracted wraps metadata extracted from an HTML page.
type Extracted struct {
	Partial schema.Partial
}

// Build produces the canonical record for src. Missing or malformed fields
// become absent values; the only error is a nil source.
func Build(src Source) (schema.Record, error) {
	if src == nil {
		return schema.Record{}, ErrInvalidSource
	}
	r := src.record()
	finish(&r)
	return r, nil
}

// finish applies the normalization every origin shares.
func finish(r *schema.Record) {
	sanitize.CleanRecord(r)
	r.Type = schema.ParseType(string(r.Type))
	r.DOI = doi.Normalize(r.DOI)
	authors := make(schema.Authors, 0, len(r.Authors))
	for _, p := range r.Authors {
		authors = append(authors, names.Fill(p))
	}
	r.Authors = authors
	if r.Year != nil && *r.Year <= 0 {
		r.Year = nil
	}
	if r.Year == nil {
		if y, ok := dates.Year(r.DatePublished); ok {
			r.Year = &y
		}
	}
}

func (w Work) record() schema.Record {
	r := schema.Record{
		Type:      workType(string(w.Type)),
		Title:     string(w.Title),
		Container: string(w.ContainerTitle),
		Publisher: string(w.Publisher),
		Volume:    string(w.Volume),
		Issue:     string(w.Issue),
		Pages:     string(w.Page),
		DOI:       string(w.DOI),
		URL:       string(w.URL),
	}
	for _, a := range w.Author {
		if strings.TrimSpace(string(a.Given)) == "" && strings.TrimSpace(string(a.Family)) == "" {
			if n := strings.TrimSpace(string(a.Name)); n != "" {
				r.Authors = append(r.Authors, schema.Person{Literal: n})
			}
			continue
		}
		r.Authors = append(r.Authors, names.FromParts(string(a.Given), string(a.Family)))
	}
	p := w.Issued.Parts
	if len(p) > 0 {
		y := p[0]
		r.Year = &y
	}
	switch {
	case len(p) >= 3:
		r.DatePublished = fmt.Sprintf("%04d-%02d-%02d", p[0], p[1], p[2])
	case len(p) == 2:
		r.DatePublished = fmt.Sprintf("%04d-%02d", p[0], p[1])
	}
	return r
}

// workType maps the registry type. The registry indexes scholarly works, so
// anything that is not a book is treated as a journal article.
func workType(t string) schema.Type {
	t = strings.ToLower(strings.TrimSpace(t))
	switch {
	case strings.Contains(t, "journal-article"):
		return schema.JournalArticle
	case t == "book":
		return schema.Book
	default:
		return schema.JournalArticle
	}
}

var rePagination = regexp.MustCompile(`[^0-9\-–]`)

func (b Book) record() schema.Record {
	r := schema.Record{
		Type:  schema.Book,
		Title: string(b.Title),
		Pages: rePagination.ReplaceAllString(string(b.Pagination), ""),
	}
	for _, a := range b.Authors {
		if p := names.Parse(string(a.Name)); !p.IsZero() {
			r.Authors = append(r.Authors, p)
		}
	}
	if len(b.Publishers) > 0 {
		r.Publisher = string(b.Publishers[0].Name)
	}
	if y := dates.ExtractYear(string(b.PublishDate)); y > 0 {
		r.Year = &y
	}
	switch isbn := strings.TrimSpace(b.ISBN); {
	case strings.TrimSpace(b.Link) != "":
		r.URL = b.Link
	case isbn != "":
		r.URL = OpenLibraryISBNURL + isbn
	}
	return r
}

func (e Extracted) record() schema.Record {
	r := e.Partial.Record.Clone()
	if strings.TrimSpace(r.Container) == "" {
		r.Container = e.Partial.Website
	}
	return r
}

func (m Manual) record() schema.Record {
	r := schema.Record{
		Type:          schema.ParseType(m.Type),
		Title:         m.Title,
		Authors:       names.ParseLines(m.Authors),
		Container:     m.Container,
		Publisher:     m.Publisher,
		Volume:        m.Volume,
		Issue:         m.Issue,
		Pages:         m.Pages,
		DOI:           m.DOI,
		URL:           m.URL,
		DatePublished: m.Date,
	}
	if y, ok := ParseYear(m.Year); ok {
		r.Year = &y
	}
	return r
}

var reLeadingDigits = regexp.MustCompile(`^\d+`)

// ParseYear reads the leading digits of s as a year. Non-numeric or zero
// input is absent.
func ParseYear(s string) (int, bool) {
	d := reLeadingDigits.FindString(strings.TrimSpace(s))
	if d == "" {
		return 0, false
	}
	y, err := strconv.Atoi(d)
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}
