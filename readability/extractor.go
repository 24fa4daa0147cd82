// Package readability implements a content fallback using go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitescrape"
	"github.com/go-shiori/go-readability"
)

var _ sitescrape.Extractor = (*Extractor)(nil)

// Extractor finds a page's main article with the Readability heuristics.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable article of rawHTML. Relative links are
// resolved against pageURL when it is set. Pages without a readable
// article return ENOTFOUND.
func (e *Extractor) Extract(rawHTML string, pageURL *url.URL) (*sitescrape.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, sitescrape.Errorf(sitescrape.ENOTFOUND, "no readable article: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, sitescrape.Errorf(sitescrape.ENOTFOUND, "no readable article")
	}

	return &sitescrape.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
