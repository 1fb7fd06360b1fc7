package openlibrary

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"citeassist/src/internal/build"
	"citeassist/src/internal/schema"
)

type route struct {
	match  string
	status int
	body   string
}

type routeHTTP struct{ routes []route }

func (r routeHTTP) Do(req *http.Request) (*http.Response, error) {
	u := req.URL.String()
	for _, rt := range r.routes {
		if strings.Contains(u, rt.match) {
			return &http.Response{StatusCode: rt.status, Body: io.NopCloser(strings.NewReader(rt.body)), Header: make(http.Header)}, nil
		}
	}
	return &http.Response{StatusCode: 404, Body: io.NopCloser(strings.NewReader("not found")), Header: make(http.Header)}, nil
}

func TestFetch_Success(t *testing.T) {
	body := `{
        "ISBN:9780132350884": {
            "title": "Clean Code",
            "publish_date": "August 2008",
            "authors": [{"name": "Robert C. Martin"}],
            "publishers": [{"name": "Prentice Hall"}],
            "pagination": "xxix, 431 p."
        }
    }`
	old := client
	defer func() { client = old }()
	client = routeHTTP{routes: []route{{"bibkeys=ISBN%3A9780132350884", 200, body}}}

	b, err := Fetch(context.Background(), "978-0-13-235088-4")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	r, _ := build.Build(b)
	if r.Type != schema.Book || r.Title != "Clean Code" || r.Publisher != "Prentice Hall" {
		t.Fatalf("bad mapping: %+v", r)
	}
	if r.Year == nil || *r.Year != 2008 || r.Pages != "431" {
		t.Fatalf("year/pages: %v %q", r.Year, r.Pages)
	}
	if r.URL != "https://openlibrary.org/isbn/9780132350884" {
		t.Fatalf("url: %q", r.URL)
	}
	if len(r.Authors) != 1 || r.Authors[0].Family != "Martin" || r.Authors[0].Given != "Robert C." {
		t.Fatalf("authors: %+v", r.Authors)
	}
}

func TestFetch_NoData(t *testing.T) {
	old := client
	defer func() { client = old }()
	client = routeHTTP{routes: []route{{"openlibrary.org/api/books", 200, "{}"}, {"googleapis.com/books", 404, "not found"}}}
	if _, err := Fetch(context.Background(), "0000"); err == nil {
		t.Fatalf("expected error for missing key and google fallback")
	}
}

func TestFetch_FallbackGoogle(t *testing.T) {
	old := client
	defer func() { client = old }()
	google := `{"items":[{"volumeInfo":{"title":"Clean Code","authors":["Robert C. Martin"],"publisher":"Prentice Hall","publishedDate":"2008-08-01","pageCount":464,"infoLink":"https://books.google.com/books?id=ttMsCwAAQBAJ"}}]}`
	client = routeHTTP{routes: []route{{"openlibrary.org/api/books", 200, "{}"}, {"googleapis.com/books", 200, google}}}
	b, err := Fetch(context.Background(), "9780132350884")
	if err != nil {
		t.Fatalf("fallback google: %v", err)
	}
	r, _ := build.Build(b)
	if r.Title != "Clean Code" || r.Publisher != "Prentice Hall" || r.Pages != "464" {
		t.Fatalf("bad mapping: %+v", r)
	}
	if r.URL != "https://books.google.com/books?id=ttMsCwAAQBAJ" {
		t.Fatalf("url: %q", r.URL)
	}
	if len(r.Authors) == 0 || r.Authors[0].Family != "Martin" {
		t.Fatalf("authors parse: %+v", r.Authors)
	}
}

func TestFetch_Normalizes9DigitISBN(t *testing.T) {
	old := client
	defer func() { client = old }()
	body := `{"ISBN:0262060167": {"title": "Some Title"}}`
	client = routeHTTP{routes: []route{{"ISBN%3A0262060167", 200, body}}}
	b, err := Fetch(context.Background(), "026206016")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if b.ISBN != "0262060167" || string(b.Title) != "Some Title" {
		t.Fatalf("expected normalized ISBN-10, got %+v", b)
	}
}

func TestNormalizeISBNAndCheckDigit(t *testing.T) {
	cases := []struct{ in, want string }{
		{"0-262-06016", "0262060167"},
		{"978-0-13-235088-4", "9780132350884"},
		{"0-8044-2957-x", "080442957X"},
		{"  ", ""},
	}
	for _, c := range cases {
		if got := NormalizeISBN(c.in); got != c.want {
			t.Fatalf("NormalizeISBN(%q)=%q want %q", c.in, got, c.want)
		}
	}
	if isbn10CheckDigit("080442957") != "X" {
		t.Fatalf("isbn10CheckDigit X case failed")
	}
}

func TestFetch_HTTPErrors(t *testing.T) {
	old := client
	defer func() { client = old }()
	client = routeHTTP{routes: []route{{"openlibrary.org/api/books", 500, "boom"}}}
	if _, err := Fetch(context.Background(), "123"); err == nil || !strings.Contains(err.Error(), "openlibrary: http 500") {
		t.Fatalf("expected http error from OpenLibrary, got %v", err)
	}
	client = routeHTTP{routes: []route{{"openlibrary.org/api/books", 200, "not json"}}}
	if _, err := Fetch(context.Background(), "123"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := Fetch(context.Background(), "---"); err == nil {
		t.Fatalf("expected empty isbn error")
	}
}
