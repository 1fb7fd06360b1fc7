package crossref

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"citeassist/src/internal/build"
	"citeassist/src/internal/schema"
)

type fakeHTTP struct {
	status int
	body   string
	seen   *http.Request
}

func (f *fakeHTTP) Do(req *http.Request) (*http.Response, error) {
	f.seen = req
	return &http.Response{StatusCode: f.status, Body: io.NopCloser(strings.NewReader(f.body)), Header: make(http.Header)}, nil
}

func TestFetch_Success(t *testing.T) {
	body := `{"status":"ok","message":{
		"title":["The Open Web"],
		"author":[{"given":"Jane","family":"Smith"}],
		"container-title":["Journal of Testing"],
		"issued":{"date-parts":[[2021]]},
		"volume":"4","issue":"2","page":"10-20",
		"type":"journal-article"}}`
	f := &fakeHTTP{status: 200, body: body}
	old := client
	defer func() { client = old }()
	client = f
	SetMailto("ops@example.org")
	defer SetMailto("")

	w, err := Fetch(context.Background(), "https://doi.org/10.1000/xyz")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := f.seen.URL.String(); got != "https://api.crossref.org/works/10.1000%2Fxyz" && got != "https://api.crossref.org/works/10.1000/xyz" {
		t.Fatalf("request url: %s", got)
	}
	if ua := f.seen.Header.Get("User-Agent"); !strings.Contains(ua, "mailto:ops@example.org") {
		t.Fatalf("user agent: %q", ua)
	}
	r, err := build.Build(w)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if r.DOI != "10.1000/xyz" || r.Type != schema.JournalArticle || r.Title != "The Open Web" {
		t.Fatalf("record: %+v", r)
	}
}

func TestFetch_Errors(t *testing.T) {
	old := client
	defer func() { client = old }()
	client = &fakeHTTP{status: 404, body: "Resource not found."}
	if _, err := Fetch(context.Background(), "10.1000/missing"); err == nil || !strings.Contains(err.Error(), "crossref: http 404") {
		t.Fatalf("expected http error, got %v", err)
	}
	client = &fakeHTTP{status: 200, body: "<html>"}
	if _, err := Fetch(context.Background(), "10.1000/x"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := Fetch(context.Background(), "   "); err == nil {
		t.Fatalf("expected empty doi error")
	}
}
