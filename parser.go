package sitescrape

import (
	"log/slog"
	"net/url"
)

// Anchor is a link as it appears in a document, before resolution.
type Anchor struct {
	Text string
	Href string
}

// MenuItem is one entry of a document's navigation menu.
type MenuItem struct {
	// Anchors lists the links matched by the menu anchor selector inside
	// the item. Only the first one names the item.
	Anchors []Anchor

	// Submenu returns the item's nested entries. It is nil when no submenu
	// selector is configured.
	Submenu func() []MenuItem
}

// Document is a parsed page.
type Document interface {
	// Menu returns the top-level entries of the structured menu.
	Menu() []MenuItem

	// Anchors returns every element matching the generic anchor selector,
	// in document order.
	Anchors() []Anchor

	// Contents extracts the body text and params. Ambiguous matches are
	// reported to logger and resolved by taking the first one.
	Contents(logger *slog.Logger) (*PageContents, error)
}

// Parser turns HTML text into a Document. pageURL is the address the HTML
// was fetched from; links in extracted content are resolved against it.
type Parser interface {
	Parse(html string, pageURL *url.URL) (Document, error)
}
