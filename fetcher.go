package sitescrape

import "context"

// Fetcher retrieves the HTML text of a page.
type Fetcher interface {
	// Fetch downloads the URL and returns its body decoded to UTF-8.
	// Error statuses are reported as *StatusError.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}

// Pacer spaces out fetches so a crawl does not hammer the site.
type Pacer interface {
	// Wait returns when the next fetch from host may start. It returns
	// ctx's error if the crawl is cancelled first.
	Wait(ctx context.Context, host string) error
}
