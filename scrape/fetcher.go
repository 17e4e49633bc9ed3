// Package scrape fetches puzzle pages from the puzzle site and turns them
// into the data model. It consumes the site's HTML as-is: prompt blocks are
// selected by CSS selector and submission responses are classified by
// substring matching, which tolerates markup changes at the cost of being
// brittle to wording changes. That trade-off is intentional.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher performs authenticated, blocking HTTP requests against the
// puzzle site. The session credential is injected once at construction
// and reused for every request.
type Fetcher struct {
	client    *http.Client
	session   string
	userAgent string
}

// NewFetcher creates a fetcher holding the given session credential.
// Redirects are never followed: the site redirects unauthenticated or
// errored requests to pages that would otherwise scrape as valid puzzle
// text, so a redirect must surface as a non-200 status error instead.
func NewFetcher(session, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		session:   session,
		userAgent: userAgent,
	}
}

// Get retrieves the body at urlStr.
func (f *Fetcher) Get(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return f.do(req)
}

// PostForm submits a form-encoded body to urlStr.
func (f *Fetcher) PostForm(ctx context.Context, urlStr string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *Fetcher) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", f.userAgent)
	req.AddCookie(&http.Cookie{Name: "session", Value: f.session})

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
