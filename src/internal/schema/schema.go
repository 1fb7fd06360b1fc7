package schema

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"citeassist/src/internal/dates"
)

// Type is the source type of a citation; it drives format branching.
type Type string

const (
	JournalArticle Type = "journal-article"
	Book           Type = "book"
	Webpage        Type = "webpage"
	Generic        Type = "generic"
)

// ParseType maps free text to a Type. Unknown or empty input is Generic.
func ParseType(s string) Type {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case JournalArticle:
		return JournalArticle
	case Book:
		return Book
	case Webpage:
		return Webpage
	default:
		return Generic
	}
}

// Person is one contributor. Literal is the fallback used when the structured
// parts are missing and is always set for a non-empty person.
type Person struct {
	Given   string `yaml:"given,omitempty" json:"given,omitempty"`
	Family  string `yaml:"family,omitempty" json:"family,omitempty"`
	Literal string `yaml:"literal,omitempty" json:"literal,omitempty"`
}

// IsZero reports whether every name part is blank.
func (p Person) IsZero() bool {
	return strings.TrimSpace(p.Given) == "" && strings.TrimSpace(p.Family) == "" && strings.TrimSpace(p.Literal) == ""
}

// Record is the canonical, style-agnostic citation. Empty strings mean absent.
type Record struct {
	Type          Type    `yaml:"type" json:"type"`
	Title         string  `yaml:"title,omitempty" json:"title,omitempty"`
	Authors       Authors `yaml:"authors" json:"authors"`
	Container     string  `yaml:"container,omitempty" json:"container,omitempty"`
	Publisher     string  `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	Year          *int    `yaml:"year,omitempty" json:"year,omitempty"`
	Volume        string  `yaml:"volume,omitempty" json:"volume,omitempty"`
	Issue         string  `yaml:"issue,omitempty" json:"issue,omitempty"`
	Pages         string  `yaml:"pages,omitempty" json:"pages,omitempty"`
	DOI           string  `yaml:"doi,omitempty" json:"doi,omitempty"`
	URL           string  `yaml:"url,omitempty" json:"url,omitempty"`
	DatePublished string  `yaml:"date_published,omitempty" json:"datePublished,omitempty"`
	DateModified  string  `yaml:"date_modified,omitempty" json:"dateModified,omitempty"`
}

// Partial is what the metadata extractor returns: any field may be absent.
// Website is the site name, used as container fallback and as a type signal.
type Partial struct {
	Record  `yaml:",inline"`
	Website string `yaml:"website,omitempty" json:"website,omitempty"`
}

// Clone returns a deep copy so callers can hand records around without aliasing.
func (r Record) Clone() Record {
	out := r
	if r.Authors != nil {
		out.Authors = append(Authors{}, r.Authors...)
	}
	if r.Year != nil {
		y := *r.Year
		out.Year = &y
	}
	return out
}

// ResolvedYear returns Year, falling back to the UTC year of DatePublished.
func (r Record) ResolvedYear() (int, bool) {
	if r.Year != nil && *r.Year > 0 {
		return *r.Year, true
	}
	return dates.Year(r.DatePublished)
}

// NewID returns a random identifier for a stored citation.
func NewID() string { return uuid.NewString() }

// Authors is a slice of Person that can unmarshal from multiple shapes:
// - a single string (full or corporate name; stored in Literal)
// - a sequence of strings
// - a mapping (single Person object)
// - a sequence of Person mappings
// Unknown shapes decode to an empty list rather than an error.
type Authors []Person

func (a *Authors) UnmarshalYAML(value *yaml.Node) error {
	*a = Authors{}
	if value == nil {
		return nil
	}
	switch value.Kind {
	case yaml.ScalarNode:
		if p, ok := literalPerson(value.Value); ok {
			*a = Authors{p}
		}
	case yaml.SequenceNode:
		out := Authors{}
		for _, n := range value.Content {
			switch n.Kind {
			case yaml.ScalarNode:
				if p, ok := literalPerson(n.Value); ok {
					out = append(out, p)
				}
			case yaml.MappingNode:
				var p Person
				if err := n.Decode(&p); err != nil || p.IsZero() {
					continue
				}
				out = append(out, p)
			}
		}
		*a = out
	case yaml.MappingNode:
		var p Person
		if err := value.Decode(&p); err == nil && !p.IsZero() {
			*a = Authors{p}
		}
	}
	return nil
}

// UnmarshalJSON accepts the same shapes as UnmarshalYAML.
func (a *Authors) UnmarshalJSON(b []byte) error {
	*a = Authors{}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	switch t := raw.(type) {
	case string:
		if p, ok := literalPerson(t); ok {
			*a = Authors{p}
		}
	case map[string]any:
		if p, ok := personFromMap(t); ok {
			*a = Authors{p}
		}
	case []any:
		out := Authors{}
		for _, it := range t {
			switch v := it.(type) {
			case string:
				if p, ok := literalPerson(v); ok {
					out = append(out, p)
				}
			case map[string]any:
				if p, ok := personFromMap(v); ok {
					out = append(out, p)
				}
			}
		}
		*a = out
	}
	return nil
}

func literalPerson(s string) (Person, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return Person{}, false
	}
	return Person{Literal: s}, true
}

func personFromMap(m map[string]any) (Person, bool) {
	str := func(k string) string { s, _ := m[k].(string); return strings.TrimSpace(s) }
	p := Person{Given: str("given"), Family: str("family"), Literal: str("literal")}
	if p.Literal == "" {
		p.Literal = str("name")
	}
	return p, !p.IsZero()
}
