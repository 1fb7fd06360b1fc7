package httpx

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Doer is the minimal HTTP client interface used across packages.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChromeUA is a consistent, modern desktop Chrome User-Agent for page fetches.
const ChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// AppUA identifies citeassist to bibliographic APIs.
const AppUA = "citeassist/1.0"

// DefaultTimeout bounds every outbound request unless configured otherwise.
const DefaultTimeout = 10 * time.Second

// SetUA sets the ChromeUA header on the request.
func SetUA(req *http.Request) {
	if req != nil {
		req.Header.Set("User-Agent", ChromeUA)
	}
}

// SetAPIUA sets the application User-Agent, with a contact address when
// mailto is non-empty. Crossref routes such requests to its polite pool.
func SetAPIUA(req *http.Request, mailto string) {
	if req == nil {
		return
	}
	ua := AppUA
	if mailto != "" {
		ua = fmt.Sprintf("%s (mailto:%s)", AppUA, mailto)
	}
	req.Header.Set("User-Agent", ua)
}

// NewClient returns an http.Client with timeout t, or DefaultTimeout when t
// is not positive.
func NewClient(t time.Duration) *http.Client {
	if t <= 0 {
		t = DefaultTimeout
	}
	return &http.Client{Timeout: t}
}

// Limited is a Doer that waits on a token bucket before each request.
type Limited struct {
	next    Doer
	limiter *rate.Limiter
}

// NewLimited wraps next so at most perSecond requests start each second,
// with bursts of one. A non-positive rate disables limiting.
func NewLimited(next Doer, perSecond float64) *Limited {
	lim := rate.NewLimiter(rate.Inf, 1)
	if perSecond > 0 {
		lim = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return &Limited{next: next, limiter: lim}
}

// Do waits for a token, honouring the request context, then delegates.
func (l *Limited) Do(req *http.Request) (*http.Response, error) {
	if err := l.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return l.next.Do(req)
}
