// Package crossref looks DOIs up in the Crossref works API.
package crossref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"citeassist/src/internal/build"
	"citeassist/src/internal/doi"
	"citeassist/src/internal/httpx"
)

// Endpoint is the works API base; a DOI is appended path-escaped.
const Endpoint = "https://api.crossref.org/works/"

var client httpx.Doer = httpx.NewClient(0)

var mailto string

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// SetMailto sets the contact address sent in the User-Agent.
func SetMailto(addr string) { mailto = strings.TrimSpace(addr) }

// Fetch retrieves the work registered under d. d may be a bare DOI, a
// doi.org URL or carry a "doi:" prefix.
func Fetch(ctx context.Context, d string) (build.Work, error) {
	d = doi.Normalize(d)
	if d == "" {
		return build.Work{}, fmt.Errorf("crossref: empty doi")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, Endpoint+url.PathEscape(d), nil)
	if err != nil {
		return build.Work{}, err
	}
	req.Header.Set("Accept", "application/json")
	httpx.SetAPIUA(req, mailto)
	resp, err := client.Do(req)
	if err != nil {
		return build.Work{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return build.Work{}, fmt.Errorf("crossref: http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	w, err := build.ParseWork(resp.Body)
	if err != nil {
		return build.Work{}, fmt.Errorf("crossref: %w", err)
	}
	if strings.TrimSpace(string(w.DOI)) == "" {
		w.DOI = build.Text(d)
	}
	return w, nil
}
