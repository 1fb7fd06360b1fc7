package httpx

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestSetUA(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	if hv := req.Header.Get("User-Agent"); hv != "" {
		t.Fatalf("precondition: UA not empty: %q", hv)
	}
	SetUA(req)
	if hv := req.Header.Get("User-Agent"); hv != ChromeUA {
		t.Fatalf("SetUA: want %q, got %q", ChromeUA, hv)
	}
	SetUA(nil)
}

func TestSetAPIUA(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com", nil)
	SetAPIUA(req, "")
	if hv := req.Header.Get("User-Agent"); hv != AppUA {
		t.Fatalf("SetAPIUA: %q", hv)
	}
	SetAPIUA(req, "me@example.org")
	if hv := req.Header.Get("User-Agent"); !strings.Contains(hv, "mailto:me@example.org") {
		t.Fatalf("SetAPIUA mailto: %q", hv)
	}
}

func TestNewClient(t *testing.T) {
	if c := NewClient(0); c.Timeout != DefaultTimeout {
		t.Fatalf("default timeout: %v", c.Timeout)
	}
	if c := NewClient(3 * time.Second); c.Timeout != 3*time.Second {
		t.Fatalf("timeout: %v", c.Timeout)
	}
}

type countingDoer struct{ calls int }

func (c *countingDoer) Do(req *http.Request) (*http.Response, error) {
	c.calls++
	return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader("ok")), Header: make(http.Header)}, nil
}

func TestLimited_Delegates(t *testing.T) {
	next := &countingDoer{}
	l := NewLimited(next, 0)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
		resp, err := l.Do(req)
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
		resp.Body.Close()
	}
	if next.calls != 3 {
		t.Fatalf("calls=%d", next.calls)
	}
}

func TestLimited_HonoursContext(t *testing.T) {
	next := &countingDoer{}
	l := NewLimited(next, 0.001)
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	if _, err := l.Do(req); err != nil {
		t.Fatalf("first request should use the burst token: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	req, _ = http.NewRequestWithContext(ctx, http.MethodGet, "https://example.com", nil)
	_, err := l.Do(req)
	if err == nil {
		t.Fatalf("expected limiter error")
	}
	if next.calls != 1 {
		t.Fatalf("second request should not reach the client: calls=%d", next.calls)
	}
}
