// Package fetch retrieves remote media from an allow-listed set of hosts.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrHostNotAllowed = errors.New("host is not allowed")
	ErrInvalidURL     = errors.New("url must be an absolute http(s) url")
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned http %d", e.StatusCode)
}

// Fetcher only talks to allow-listed hosts, including on redirects.
type Fetcher struct {
	allowed map[string]bool
	client  *http.Client
}

func New(hosts []string, timeout time.Duration) *Fetcher {
	f := &Fetcher{allowed: make(map[string]bool, len(hosts))}
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			f.allowed[h] = true
		}
	}
	f.client = &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			if !f.allowed[strings.ToLower(req.URL.Hostname())] {
				return fmt.Errorf("redirect to %s: %w", req.URL.Hostname(), ErrHostNotAllowed)
			}
			return nil
		},
	}
	return f
}

// Check parses rawURL and verifies its host against the allow-list.
func (f *Fetcher) Check(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return nil, ErrInvalidURL
	}
	if !f.allowed[strings.ToLower(u.Hostname())] {
		return nil, ErrHostNotAllowed
	}
	return u, nil
}

// Open starts a GET for an allowed URL. The caller closes the body.
func (f *Fetcher) Open(ctx context.Context, rawURL string) (*http.Response, error) {
	u, err := f.Check(rawURL)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// Get reads an allowed URL fully, up to limit bytes.
func (f *Fetcher) Get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	resp, err := f.Open(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("body exceeds %d bytes", limit)
	}
	return data, nil
}
