package formatcmd

import (
	"strings"
	"testing"

	"citeassist/src/internal/schema"
)

func TestReadRecord(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"yaml", "type: book\ntitle: Go in Action\nauthors:\n  - given: William\n    family: Kennedy\npublisher: Manning\nyear: 2015\n"},
		{"json", `{"type":"book","title":"Go in Action","authors":[{"given":"William","family":"Kennedy"}],"publisher":"Manning","year":2015}`},
	}
	for _, c := range cases {
		r, err := ReadRecord(strings.NewReader(c.in))
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if r.Type != schema.Book || r.Title != "Go in Action" || r.Publisher != "Manning" {
			t.Fatalf("%s: %+v", c.name, r)
		}
		if r.Year == nil || *r.Year != 2015 {
			t.Fatalf("%s: year %v", c.name, r.Year)
		}
		if len(r.Authors) != 1 || r.Authors[0].Family != "Kennedy" || r.Authors[0].Given != "William" {
			t.Fatalf("%s: authors %+v", c.name, r.Authors)
		}
	}
}

func TestReadRecord_Errors(t *testing.T) {
	if _, err := ReadRecord(strings.NewReader("title: [unclosed")); err == nil {
		t.Fatalf("expected yaml error")
	}
	if _, err := ReadRecord(strings.NewReader(`{"title":`)); err == nil {
		t.Fatalf("expected json error")
	}
}
