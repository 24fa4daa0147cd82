// Package goquery parses pages and applies the configured selectors using
// goquery and cascadia.
package goquery

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitescrape"
	"golang.org/x/net/html"
)

var _ sitescrape.Parser = (*Parser)(nil)

// Parser parses HTML into documents queried with a fixed selector set.
// It is safe for concurrent use.
type Parser struct {
	menu       *Selector
	menuAnchor *Selector
	submenu    *Selector // nil disables nested menus
	anchor     *Selector
	content    *Selector
	date       *Selector // nil disables the date param
	params     []paramSelector

	conv sitescrape.Converter
}

type paramSelector struct {
	name string
	sel  *Selector
}

// NewParser compiles the selectors of cfg. Content is converted to
// markdown with conv. An invalid selector returns EINVALID naming the
// config key.
func NewParser(cfg *sitescrape.Config, conv sitescrape.Converter) (*Parser, error) {
	p := &Parser{conv: conv}

	required := []struct {
		key string
		sel string
		dst **Selector
	}{
		{"menu_selector", cfg.MenuSelector, &p.menu},
		{"menu_anchor_selector", cfg.MenuAnchorSelector, &p.menuAnchor},
		{"anchor_selector", cfg.AnchorSelector, &p.anchor},
		{"content_selector", cfg.ContentSelector, &p.content},
	}
	for _, r := range required {
		s, err := compile(r.key, r.sel)
		if err != nil {
			return nil, err
		}
		*r.dst = s
	}

	var err error
	if cfg.SubmenuSelector != "" {
		if p.submenu, err = compile("submenu_selector", cfg.SubmenuSelector); err != nil {
			return nil, err
		}
	}
	if cfg.DateSelector != "" {
		if p.date, err = compile("date_selector", cfg.DateSelector); err != nil {
			return nil, err
		}
	}
	for _, name := range cfg.ParamNames() {
		s, err := compile("param_selectors."+name, cfg.ParamSelectors[name])
		if err != nil {
			return nil, err
		}
		p.params = append(p.params, paramSelector{name: name, sel: s})
	}
	return p, nil
}

func compile(key, sel string) (*Selector, error) {
	s, err := Compile(sel)
	if err != nil {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "invalid %s %q: %v", key, sel, err)
	}
	return s, nil
}

// Parse parses rawHTML fetched from pageURL. The HTML parser recovers from
// malformed markup, so errors are limited to read failures.
func (p *Parser) Parse(rawHTML string, pageURL *url.URL) (sitescrape.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{p: p, doc: doc, url: pageURL}, nil
}

// Document is a parsed page.
type Document struct {
	p   *Parser
	doc *goquery.Document
	url *url.URL // base for links in content, may be nil
}

// Menu returns the items matched by the menu selector.
func (d *Document) Menu() []sitescrape.MenuItem {
	return d.menuItems(d.p.menu.Select(d.doc.Selection))
}

func (d *Document) menuItems(sel *goquery.Selection) []sitescrape.MenuItem {
	items := make([]sitescrape.MenuItem, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		item := sitescrape.MenuItem{Anchors: anchors(d.p.menuAnchor.Select(s))}
		if d.p.submenu != nil {
			item.Submenu = func() []sitescrape.MenuItem {
				return d.menuItems(d.p.submenu.Select(s))
			}
		}
		items = append(items, item)
	})
	return items
}

// Anchors returns the elements matched by the anchor selector.
func (d *Document) Anchors() []sitescrape.Anchor {
	return anchors(d.p.anchor.Select(d.doc.Selection))
}

func anchors(sel *goquery.Selection) []sitescrape.Anchor {
	out := make([]sitescrape.Anchor, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		out = append(out, sitescrape.Anchor{Text: s.Text(), Href: href})
	})
	return out
}

// Contents converts every content element to markdown and collects the
// date and named params.
func (d *Document) Contents(logger *slog.Logger) (*sitescrape.PageContents, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	root := d.doc.Selection

	var (
		parts []string
		err   error
	)
	d.p.content.Select(root).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		inner, herr := s.Html()
		if herr != nil {
			err = herr
			return false
		}
		if strings.TrimSpace(inner) == "" {
			return true
		}
		md, cerr := d.p.conv.Convert(inner, d.url)
		if cerr != nil {
			err = cerr
			return false
		}
		parts = append(parts, md)
		return true
	})
	if err != nil {
		return nil, err
	}

	text := strings.Join(parts, "\n")
	if strings.TrimSpace(text) == "" {
		logger.Warn("no content found")
		text = ""
	}
	contents := sitescrape.NewPageContents(text)

	if d.p.date != nil {
		if v, ok := d.p.date.Select(root).First().Attr("datetime"); ok && strings.TrimSpace(v) != "" {
			contents.SetParam(sitescrape.DateParam, strings.TrimSpace(v))
		}
	}

	for _, ps := range d.p.params {
		matches := ps.sel.Select(root)
		if matches.Length() == 0 {
			continue
		}
		if matches.Length() > 1 {
			logger.Warn("ignoring second param element", "param", ps.name)
		}
		v, ok := firstText(matches.Get(0))
		if !ok {
			logger.Debug("param element has no text", "param", ps.name)
			continue
		}
		contents.SetParam(ps.name, v)
	}
	return contents, nil
}

// firstText returns the first non-blank text node below n, trimmed.
func firstText(n *html.Node) (string, bool) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			return t, true
		}
		return "", false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t, ok := firstText(c); ok {
			return t, true
		}
	}
	return "", false
}
