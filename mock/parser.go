package mock

import (
	"log/slog"
	"net/url"

	"github.com/fwojciec/sitescrape"
)

var _ sitescrape.Parser = (*Parser)(nil)

// Parser is a mock implementation of sitescrape.Parser.
type Parser struct {
	ParseFn func(html string, pageURL *url.URL) (sitescrape.Document, error)
}

func (p *Parser) Parse(html string, pageURL *url.URL) (sitescrape.Document, error) {
	return p.ParseFn(html, pageURL)
}

var _ sitescrape.Document = (*Document)(nil)

// Document is a mock implementation of sitescrape.Document.
type Document struct {
	MenuFn     func() []sitescrape.MenuItem
	AnchorsFn  func() []sitescrape.Anchor
	ContentsFn func(logger *slog.Logger) (*sitescrape.PageContents, error)
}

func (d *Document) Menu() []sitescrape.MenuItem {
	return d.MenuFn()
}

func (d *Document) Anchors() []sitescrape.Anchor {
	return d.AnchorsFn()
}

func (d *Document) Contents(logger *slog.Logger) (*sitescrape.PageContents, error) {
	return d.ContentsFn(logger)
}
