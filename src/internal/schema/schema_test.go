package schema

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseType(t *testing.T) {
	cases := []struct {
		in   string
		want Type
	}{
		{"journal-article", JournalArticle},
		{" Book ", Book},
		{"WEBPAGE", Webpage},
		{"", Generic},
		{"movie", Generic},
	}
	for _, c := range cases {
		if got := ParseType(c.in); got != c.want {
			t.Fatalf("ParseType(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestAuthorsUnmarshalYAML_Shapes(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want int
	}{
		{"scalar", "authors: ACME Corp", 1},
		{"seq of strings", "authors: [Jane Doe, '', John Roe]", 2},
		{"mapping", "authors: {family: Doe, given: Jane}", 1},
		{"seq of mappings", "authors:\n  - {family: Doe, given: Jane}\n  - {given: ' '}\n  - {literal: WHO}", 2},
		{"null", "authors: null", 0},
	}
	for _, c := range cases {
		var r Record
		if err := yaml.Unmarshal([]byte(c.doc), &r); err != nil {
			t.Fatalf("%s: unmarshal: %v", c.name, err)
		}
		if len(r.Authors) != c.want {
			t.Fatalf("%s: got %d authors (%+v), want %d", c.name, len(r.Authors), r.Authors, c.want)
		}
	}
}

func TestAuthorsUnmarshalJSON_Malformed(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"type":"book","authors":42}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Authors == nil || len(r.Authors) != 0 {
		t.Fatalf("expected empty non-nil authors, got %#v", r.Authors)
	}
	if err := json.Unmarshal([]byte(`{"authors":[{"given":"Jane","family":"Doe"},{"name":"NASA"},"Ann Lee"]}`), &r); err != nil {
		t.Fatal(err)
	}
	if len(r.Authors) != 3 || r.Authors[1].Literal != "NASA" || r.Authors[2].Literal != "Ann Lee" {
		t.Fatalf("authors: %+v", r.Authors)
	}
}

func TestResolvedYear(t *testing.T) {
	y := 1999
	if got, ok := (Record{Year: &y, DatePublished: "2020-01-01"}).ResolvedYear(); !ok || got != 1999 {
		t.Fatalf("explicit year: got %d %v", got, ok)
	}
	if got, ok := (Record{DatePublished: "2020-03-15T00:00:00Z"}).ResolvedYear(); !ok || got != 2020 {
		t.Fatalf("derived year: got %d %v", got, ok)
	}
	if _, ok := (Record{DatePublished: "not a date"}).ResolvedYear(); ok {
		t.Fatalf("malformed date should yield no year")
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	y := 2001
	r := Record{Title: "T", Year: &y, Authors: Authors{{Family: "Doe", Literal: "Doe"}}}
	c := r.Clone()
	c.Authors[0].Family = "Roe"
	*c.Year = 2002
	if r.Authors[0].Family != "Doe" || *r.Year != 2001 {
		t.Fatalf("clone aliased original: %+v", r)
	}
}

func TestNewID_Unique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Fatalf("NewID not unique: %q %q", a, b)
	}
}
