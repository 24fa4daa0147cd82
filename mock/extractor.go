package mock

import (
	"net/url"

	"github.com/fwojciec/sitescrape"
)

var _ sitescrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitescrape.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL *url.URL) (*sitescrape.ExtractResult, error)
}

func (e *Extractor) Extract(html string, pageURL *url.URL) (*sitescrape.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
