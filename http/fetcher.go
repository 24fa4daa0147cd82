// Package http implements sitescrape.Fetcher over plain HTTP. Pages are
// decoded to UTF-8 from whatever charset they declare.
package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/sitescrape"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the crawler when no user agent is configured.
const DefaultUserAgent = "sitescrape/1.0"

// sniffLen is how much of the body is inspected for a charset declaration.
const sniffLen = 1024

var _ sitescrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with a single reused http.Client.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each request. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header. Empty keeps the default.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves url and returns its body as UTF-8. Any non-2xx status is
// returned as *sitescrape.StatusError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &sitescrape.StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := decode(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// decode converts body to UTF-8 using the charset from the Content-Type
// header, a BOM or a meta tag, in that order of precedence.
func decode(body io.Reader, contentType string) ([]byte, error) {
	r := bufio.NewReaderSize(body, sniffLen)
	// A short body returns what is available along with io.EOF.
	head, _ := r.Peek(sniffLen)
	enc, _, _ := charset.DetermineEncoding(head, contentType)
	return io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
