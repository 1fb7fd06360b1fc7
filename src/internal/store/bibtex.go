package store

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"citeassist/src/internal/schema"
)

// WriteBibTeX writes every item of l as a BibTeX record, in list order.
func WriteBibTeX(w io.Writer, l List) error {
	for _, it := range l {
		if _, err := io.WriteString(w, itemToBibTeX(it)); err != nil {
			return err
		}
	}
	return nil
}

// itemToBibTeX converts one stored item into a BibTeX record string.
func itemToBibTeX(it Item) string {
	r := it.Record
	field := func(k, v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		return fmt.Sprintf("  %s = {%s},\n", k, escapeBib(v))
	}
	year := ""
	if y, ok := r.ResolvedYear(); ok {
		year = strconv.Itoa(y)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "@%s{%s,\n", bibTypeFor(r.Type), bibKeyFor(it))
	b.WriteString(field("author", formatAuthors(r.Authors)))
	b.WriteString(field("title", r.Title))
	switch r.Type {
	case schema.JournalArticle:
		b.WriteString(field("journal", r.Container))
		b.WriteString(field("volume", r.Volume))
		b.WriteString(field("number", r.Issue))
		b.WriteString(field("pages", r.Pages))
		b.WriteString(field("publisher", r.Publisher))
	case schema.Book:
		b.WriteString(field("publisher", coalesce(r.Publisher, r.Container)))
		b.WriteString(field("pages", r.Pages))
	default:
		b.WriteString(field("howpublished", coalesce(r.Container, r.Publisher)))
		if d := strings.TrimSpace(r.DateModified); d != "" {
			b.WriteString(field("note", "Updated: "+d))
		}
	}
	b.WriteString(field("year", year))
	b.WriteString(field("date", r.DatePublished))
	b.WriteString(field("doi", r.DOI))
	b.WriteString(field("url", r.URL))
	b.WriteString(field("_id", it.ID))
	b.WriteString(field("_type", string(r.Type)))

	out := strings.TrimRight(b.String(), "\n")
	out = strings.TrimRight(out, ",")
	return out + "\n}\n\n"
}

func escapeBib(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	return strings.TrimSpace(s)
}

func coalesce(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

// formatAuthors joins authors as "Family, Given and ...".
func formatAuthors(as schema.Authors) string {
	parts := make([]string, 0, len(as))
	for _, a := range as {
		fam := strings.TrimSpace(a.Family)
		giv := strings.TrimSpace(a.Given)
		switch {
		case fam != "" && giv != "":
			parts = append(parts, fam+", "+giv)
		case fam != "":
			parts = append(parts, fam)
		case giv != "":
			parts = append(parts, giv)
		case strings.TrimSpace(a.Literal) != "":
			parts = append(parts, strings.TrimSpace(a.Literal))
		}
	}
	return strings.Join(parts, " and ")
}

func bibTypeFor(t schema.Type) string {
	switch t {
	case schema.JournalArticle:
		return "article"
	case schema.Book:
		return "book"
	default:
		return "misc"
	}
}

func bibKeyFor(it Item) string {
	// UUID without dashes is unique and BibTeX-safe
	k := strings.ReplaceAll(strings.ToLower(it.ID), "-", "")
	if k == "" {
		return "entry"
	}
	return k
}
