package sitescrape

import "net/url"

// ExtractResult holds the main content found on a page.
type ExtractResult struct {
	// Title is the page title taken from document metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// Extractor finds the main content of a page without selectors. It backs up
// the content selector on pages where the selector matches nothing.
//
// pageURL is used to resolve relative links and may be nil.
type Extractor interface {
	Extract(html string, pageURL *url.URL) (*ExtractResult, error)
}
