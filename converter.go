package sitescrape

import "net/url"

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown. Relative links and
	// image sources are resolved against base when it is non-nil.
	Convert(html string, base *url.URL) (string, error)
}
