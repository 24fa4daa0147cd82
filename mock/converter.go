package mock

import (
	"net/url"

	"github.com/fwojciec/sitescrape"
)

var _ sitescrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitescrape.Converter.
type Converter struct {
	ConvertFn func(html string, base *url.URL) (string, error)
}

func (c *Converter) Convert(html string, base *url.URL) (string, error) {
	return c.ConvertFn(html, base)
}
