package sanitize

import (
	"net/url"
	"testing"
	"unicode/utf8"

	"citeassist/src/internal/schema"
)

func TestCleanString(t *testing.T) {
	in := "  \tHello\x00World\n  "
	out := CleanString(in, 100)
	if out != "HelloWorld" {
		t.Fatalf("CleanString unexpected: %q", out)
	}
	if s := CleanString("abcdef", 3); s != "abc" {
		t.Fatalf("CleanString truncation: want 'abc', got %q", s)
	}
	if s := CleanString("ééééé", 2); s != "éé" {
		t.Fatalf("CleanString truncation counts runes: got %q", s)
	}
	if !utf8.ValidString(out) {
		t.Fatalf("CleanString produced invalid utf8")
	}
}

func TestCleanURL(t *testing.T) {
	if CleanURL("") != "" {
		t.Fatalf("CleanURL empty should be empty")
	}
	if CleanURL("not a url") != "" {
		t.Fatalf("CleanURL invalid should be empty")
	}
	u := CleanURL("https://example.com/a b")
	if _, err := url.Parse(u); err != nil {
		t.Fatalf("CleanURL not parseable: %v", err)
	}
	if CleanURL("ftp://x") != "" {
		t.Fatalf("only http/https allowed")
	}
	if !IsWebURL("http://example.org") || IsWebURL("example.org") {
		t.Fatalf("IsWebURL mismatch")
	}
}

func TestCleanRecord(t *testing.T) {
	r := schema.Record{
		Title:   "  Title\x07  ",
		URL:     " example.org/page ",
		DOI:     " 10.1/ABC ",
		Authors: schema.Authors{{Family: " ", Given: " "}, {Family: "Doe", Given: "J."}},
	}
	CleanRecord(&r)
	if r.Title != "Title" || r.DOI != "10.1/ABC" {
		t.Fatalf("CleanRecord did not trim: %+v", r)
	}
	if r.URL != "example.org/page" {
		t.Fatalf("CleanRecord non-http url: %q", r.URL)
	}
	if len(r.Authors) != 1 || r.Authors[0].Family != "Doe" {
		t.Fatalf("CleanRecord authors: %+v", r.Authors)
	}
	var nilAuthors schema.Record
	CleanRecord(&nilAuthors)
	if nilAuthors.Authors == nil {
		t.Fatalf("CleanRecord should leave a non-nil author list")
	}
}
