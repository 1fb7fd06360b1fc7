// Package openlibrary looks books up by ISBN, falling back to Google Books
// when OpenLibrary has no record.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"citeassist/src/internal/build"
	"citeassist/src/internal/httpx"
)

var client httpx.Doer = httpx.NewClient(0)

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// Fetch queries OpenLibrary (jscmd=data) for isbn and returns the raw book
// entry. When the key is absent it tries Google Books before giving up.
func Fetch(ctx context.Context, isbn string) (build.Book, error) {
	norm := NormalizeISBN(isbn)
	if norm == "" {
		return build.Book{}, fmt.Errorf("openlibrary: empty isbn")
	}
	resp, err := client.Do(buildOpenLibraryRequest(ctx, norm))
	if err != nil {
		return build.Book{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return build.Book{}, fmt.Errorf("openlibrary: http %d: %s", resp.StatusCode, string(b))
	}
	book, ok, err := build.ParseBook(resp.Body, norm)
	if err != nil {
		return build.Book{}, fmt.Errorf("openlibrary: %w", err)
	}
	if ok {
		return book, nil
	}
	if b, err := fetchGoogleBook(ctx, norm); err == nil {
		return b, nil
	}
	return build.Book{}, fmt.Errorf("openlibrary: no data for ISBN:%s", norm)
}

func buildOpenLibraryRequest(ctx context.Context, norm string) *http.Request {
	q := url.Values{}
	q.Set("bibkeys", "ISBN:"+norm)
	q.Set("format", "json")
	q.Set("jscmd", "data")
	endpoint := "https://openlibrary.org/api/books?" + q.Encode()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	req.Header.Set("Accept", "application/json")
	httpx.SetAPIUA(req, "")
	return req
}

type gBooksResp struct {
	Items []struct {
		VolumeInfo gVolume `json:"volumeInfo"`
	} `json:"items"`
}

type gVolume struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Publisher     string     `json:"publisher"`
	PublishedDate string     `json:"publishedDate"`
	PageCount     build.Text `json:"pageCount"`
	InfoLink      string     `json:"infoLink"`
}

// fetchGoogleBook queries Google Books for isbn and maps the first volume.
func fetchGoogleBook(ctx context.Context, isbn string) (build.Book, error) {
	q := url.Values{}
	q.Set("q", "isbn:"+isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/books/v1/volumes?"+q.Encode(), nil)
	if err != nil {
		return build.Book{}, err
	}
	req.Header.Set("Accept", "application/json")
	httpx.SetAPIUA(req, "")
	resp, err := client.Do(req)
	if err != nil {
		return build.Book{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return build.Book{}, fmt.Errorf("googlebooks: http %d: %s", resp.StatusCode, string(b))
	}
	var gb gBooksResp
	if err := json.NewDecoder(resp.Body).Decode(&gb); err != nil {
		return build.Book{}, fmt.Errorf("googlebooks: %w", err)
	}
	if len(gb.Items) == 0 {
		return build.Book{}, fmt.Errorf("googlebooks: no items for %s", isbn)
	}
	return mapGoogleVolume(gb.Items[0].VolumeInfo, isbn), nil
}

func mapGoogleVolume(v gVolume, isbn string) build.Book {
	b := build.Book{
		ISBN:        isbn,
		Link:        strings.TrimSpace(v.InfoLink),
		Title:       build.Text(v.Title),
		PublishDate: build.Text(v.PublishedDate),
		Pagination:  v.PageCount,
	}
	for _, a := range v.Authors {
		b.Authors = append(b.Authors, build.Named{Name: build.Text(a)})
	}
	if p := strings.TrimSpace(v.Publisher); p != "" {
		b.Publishers = []build.Named{{Name: build.Text(p)}}
	}
	return b
}

// NormalizeISBN keeps digits and X and, if a 9-digit core is provided,
// appends the ISBN-10 check digit.
func NormalizeISBN(isbn string) string {
	s := strings.ToUpper(strings.TrimSpace(isbn))
	core := make([]rune, 0, len(s))
	digitsOnly := true
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			core = append(core, r)
		case r == 'X':
			core = append(core, r)
			digitsOnly = false
		}
	}
	if len(core) == 9 && digitsOnly {
		return string(core) + isbn10CheckDigit(string(core))
	}
	return string(core)
}

// isbn10CheckDigit computes the ISBN-10 check digit for a 9-digit string,
// returning "0"-"9" or "X".
func isbn10CheckDigit(s string) string {
	sum := 0
	for i, ch := range s {
		sum += (i + 1) * int(ch-'0')
	}
	cd := sum % 11
	if cd == 10 {
		return "X"
	}
	return fmt.Sprintf("%d", cd)
}
