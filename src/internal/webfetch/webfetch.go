// Package webfetch retrieves web pages for metadata extraction.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"citeassist/src/internal/extract"
	"citeassist/src/internal/httpx"
	"citeassist/src/internal/sanitize"
)

// MaxBody bounds how much of a page is read.
const MaxBody = 2 << 20

var client httpx.Doer = httpx.NewClient(0)

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// Fetch downloads raw as HTML. Redirects are followed by the client; the
// returned page records the URL that was finally served.
func Fetch(ctx context.Context, raw string) (extract.Page, error) {
	u := strings.TrimSpace(raw)
	if !sanitize.IsWebURL(u) {
		return extract.Page{}, fmt.Errorf("webfetch: invalid url %q", raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return extract.Page{}, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	httpx.SetUA(req)
	resp, err := client.Do(req)
	if err != nil {
		return extract.Page{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return extract.Page{}, fmt.Errorf("webfetch: http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if ct := strings.ToLower(resp.Header.Get("Content-Type")); ct != "" && !strings.Contains(ct, "html") && !strings.Contains(ct, "xml") && !strings.HasPrefix(ct, "text/") {
		return extract.Page{}, fmt.Errorf("webfetch: unsupported content type %q", ct)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBody))
	if err != nil {
		return extract.Page{}, err
	}
	final := u
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	return extract.Page{HTML: string(body), FinalURL: final, RequestURL: u}, nil
}
