package build

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"citeassist/src/internal/schema"
)

// Source is one origin a canonical record can be built from. The set is
// closed: Work, Book, Extracted and Manual.
type Source interface {
	record() schema.Record
}

// Text decodes a JSON string, number, or list (first element) into a string.
// Registry responses are inconsistent about these shapes; anything else is
// read as empty rather than failing the whole document.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = ""
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil
	}
	*t = Text(textOf(raw))
	return nil
}

func textOf(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case []any:
		for _, it := range x {
			if s := textOf(it); s != "" {
				return s
			}
		}
	}
	return ""
}

// Work is a DOI registry work object (Crossref / CSL JSON).
type Work struct {
	Title          Text         `json:"title"`
	Author         []WorkAuthor `json:"author"`
	ContainerTitle Text         `json:"container-title"`
	Issued         DateParts    `json:"issued"`
	Volume         Text         `json:"volume"`
	Issue          Text         `json:"issue"`
	Page           Text         `json:"page"`
	DOI            Text         `json:"DOI"`
	URL            Text         `json:"URL"`
	Publisher      Text         `json:"publisher"`
	Type           Text         `json:"type"`
}

// WorkAuthor is a registry contributor; organizations only carry Name.
type WorkAuthor struct {
	Given  Text `json:"given"`
	Family Text `json:"family"`
	Name   Text `json:"name"`
}

// DateParts is the registry's {"date-parts": [[year, month, day]]} shape.
type DateParts struct {
	Parts []int
}

func (d *DateParts) UnmarshalJSON(b []byte) error {
	d.Parts = nil
	var raw struct {
		DateParts [][]any `json:"date-parts"`
	}
	if err := json.Unmarshal(b, &raw); err != nil || len(raw.DateParts) == 0 {
		return nil
	}
	for _, p := range raw.DateParts[0] {
		n, err := strconv.Atoi(textOf(normalizeNumber(p)))
		if err != nil || n <= 0 {
			break
		}
		d.Parts = append(d.Parts, n)
	}
	return nil
}

func normalizeNumber(v any) any {
	if f, ok := v.(float64); ok {
		return json.Number(strconv.FormatInt(int64(f), 10))
	}
	return v
}

// ParseWork decodes either a bare work object or the registry envelope
// {"status": "ok", "message": {...}}.
func ParseWork(r io.Reader) (Work, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Work{}, err
	}
	var env struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return Work{}, fmt.Errorf("work: %w", err)
	}
	if m := bytes.TrimSpace(env.Message); len(m) > 0 && m[0] == '{' {
		b = m
	}
	var w Work
	if err := json.Unmarshal(b, &w); err != nil {
		return Work{}, fmt.Errorf("work: %w", err)
	}
	return w, nil
}

// Book is one entry of the book registry's ISBN-keyed response.
type Book struct {
	ISBN        string  `json:"-"`
	Link        string  `json:"-"` // overrides the synthesized ISBN page
	Title       Text    `json:"title"`
	Authors     []Named `json:"authors"`
	PublishDate Text    `json:"publish_date"`
	Publishers  []Named `json:"publishers"`
	Pagination  Text    `json:"pagination"`
}

// Named is a {"name": ...} object.
type Named struct {
	Name Text `json:"name"`
}

// ParseBook decodes the {"ISBN:<digits>": {...}} object and reports whether
// the key was present.
func ParseBook(r io.Reader, isbn string) (Book, bool, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Book{}, false, fmt.Errorf("book: %w", err)
	}
	data, ok := raw["ISBN:"+isbn]
	if !ok || len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return Book{}, false, nil
	}
	var bk Book
	if err := json.Unmarshal(data, &bk); err != nil {
		return Book{}, false, fmt.Errorf("book: %w", err)
	}
	bk.ISBN = isbn
	return bk, true, nil
}

// Manual is the flat manual-entry form. Authors is newline-delimited and
// Year is free text.
type Manual struct {
	Type      string `yaml:"type,omitempty" json:"type,omitempty"`
	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
	Authors   string `yaml:"authors,omitempty" json:"authors,omitempty"`
	Container string `yaml:"container,omitempty" json:"container,omitempty"`
	Publisher string `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	Year      string `yaml:"year,omitempty" json:"year,omitempty"`
	Volume    string `yaml:"volume,omitempty" json:"volume,omitempty"`
	Issue     string `yaml:"issue,omitempty" json:"issue,omitempty"`
	Pages     string `yaml:"pages,omitempty" json:"pages,omitempty"`
	DOI       string `yaml:"doi,omitempty" json:"doi,omitempty"`
	URL       string `yaml:"url,omitempty" json:"url,omitempty"`
	Date      string `yaml:"date,omitempty" json:"date,omitempty"`
}
