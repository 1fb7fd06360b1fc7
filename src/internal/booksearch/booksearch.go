// Package booksearch finds a book by title and author when no ISBN is at hand.
package booksearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"citeassist/src/internal/build"
	"citeassist/src/internal/httpx"
	"citeassist/src/internal/openlibrary"
)

// client is the HTTP client used by this package; replaceable in tests.
var client httpx.Doer = httpx.NewClient(0)

// SetHTTPClient allows tests to inject a fake http client.
func SetHTTPClient(c httpx.Doer) { client = c }

// Attempt captures a single provider attempt outcome.
type Attempt struct {
	Provider string
	Success  bool
	Error    string
}

// Search queries OpenLibrary search, then Google Books, and returns the first
// hit as a book source together with the provider name and every attempt.
func Search(ctx context.Context, title, author string) (build.Book, string, []Attempt, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(author) == "" {
		return build.Book{}, "", nil, fmt.Errorf("booksearch: title or author required")
	}
	providers := []struct {
		name string
		fn   func(context.Context, string, string) (build.Book, error)
	}{
		{"openlibrary", searchOpenLibrary},
		{"googlebooks", searchGoogleBooks},
	}
	attempts := []Attempt{}
	for _, p := range providers {
		b, err := p.fn(ctx, title, author)
		if err != nil {
			attempts = append(attempts, Attempt{Provider: p.name, Error: err.Error()})
			if ctx.Err() != nil {
				return build.Book{}, "", attempts, ctx.Err()
			}
			continue
		}
		attempts = append(attempts, Attempt{Provider: p.name, Success: true})
		return b, p.name, attempts, nil
	}
	return build.Book{}, "", attempts, fmt.Errorf("booksearch: no providers returned data for title/author")
}

func get(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	httpx.SetAPIUA(req, "")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

type olDoc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	Publisher  []string `json:"publisher"`
	FirstYear  int      `json:"first_publish_year"`
	Pages      int      `json:"number_of_pages_median"`
	ISBN       []string `json:"isbn"`
	Key        string   `json:"key"`
}

func searchOpenLibrary(ctx context.Context, title, author string) (build.Book, error) {
	v := url.Values{}
	if strings.TrimSpace(title) != "" {
		v.Set("title", title)
	}
	if strings.TrimSpace(author) != "" {
		v.Set("author", author)
	}
	v.Set("limit", "1")
	var r struct {
		Docs []olDoc `json:"docs"`
	}
	if err := get(ctx, "https://openlibrary.org/search.json?"+v.Encode(), &r); err != nil {
		return build.Book{}, fmt.Errorf("openlibrary: %w", err)
	}
	if len(r.Docs) == 0 || strings.TrimSpace(r.Docs[0].Title) == "" {
		return build.Book{}, fmt.Errorf("openlibrary: no results")
	}
	return mapDoc(r.Docs[0]), nil
}

func mapDoc(d olDoc) build.Book {
	b := build.Book{Title: build.Text(d.Title)}
	for _, a := range d.AuthorName {
		b.Authors = append(b.Authors, build.Named{Name: build.Text(a)})
	}
	if len(d.Publisher) > 0 {
		b.Publishers = []build.Named{{Name: build.Text(d.Publisher[0])}}
	}
	if d.FirstYear > 0 {
		b.PublishDate = build.Text(strconv.Itoa(d.FirstYear))
	}
	if d.Pages > 0 {
		b.Pagination = build.Text(strconv.Itoa(d.Pages))
	}
	if len(d.ISBN) > 0 {
		b.ISBN = openlibrary.NormalizeISBN(d.ISBN[0])
	}
	if k := strings.TrimSpace(d.Key); k != "" {
		b.Link = "https://openlibrary.org" + k
	}
	return b
}

func searchGoogleBooks(ctx context.Context, title, author string) (build.Book, error) {
	qparts := []string{}
	if strings.TrimSpace(title) != "" {
		qparts = append(qparts, "intitle:"+title)
	}
	if strings.TrimSpace(author) != "" {
		qparts = append(qparts, "inauthor:"+author)
	}
	v := url.Values{}
	v.Set("q", strings.Join(qparts, "+"))
	v.Set("maxResults", "1")
	var r struct {
		Items []struct {
			VolumeInfo struct {
				Title         string     `json:"title"`
				Authors       []string   `json:"authors"`
				Publisher     string     `json:"publisher"`
				PublishedDate string     `json:"publishedDate"`
				PageCount     build.Text `json:"pageCount"`
				InfoLink      string     `json:"infoLink"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := get(ctx, "https://www.googleapis.com/books/v1/volumes?"+v.Encode(), &r); err != nil {
		return build.Book{}, fmt.Errorf("googlebooks: %w", err)
	}
	if len(r.Items) == 0 {
		return build.Book{}, fmt.Errorf("googlebooks: no results")
	}
	vi := r.Items[0].VolumeInfo
	b := build.Book{
		Title:       build.Text(vi.Title),
		PublishDate: build.Text(vi.PublishedDate),
		Pagination:  vi.PageCount,
		Link:        strings.TrimSpace(vi.InfoLink),
	}
	for _, a := range vi.Authors {
		b.Authors = append(b.Authors, build.Named{Name: build.Text(a)})
	}
	if p := strings.TrimSpace(vi.Publisher); p != "" {
		b.Publishers = []build.Named{{Name: build.Text(p)}}
	}
	return b, nil
}
