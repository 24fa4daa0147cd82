// Package trafilatura implements a content fallback using go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/sitescrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ sitescrape.Extractor = (*Extractor)(nil)

// Extractor finds a page's main content with trafilatura, falling back to
// readability and dom-distiller internally when its own heuristics fail.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML. Pages without any
// recognisable content return ENOTFOUND.
func (e *Extractor) Extract(rawHTML string, pageURL *url.URL) (*sitescrape.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    pageURL,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, sitescrape.Errorf(sitescrape.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, sitescrape.Errorf(sitescrape.ENOTFOUND, "no main content")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &sitescrape.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
