// Package crawl turns a website into a tree of rendered pages. It walks the
// structured menu from the home page depth-first, then crawls links found
// elsewhere as unsorted pages, breadth-first by level.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/sitescrape"
)

// Crawler walks a site and emits one rendered file per page.
type Crawler struct {
	Config  *sitescrape.Config
	Fetcher sitescrape.Fetcher
	Parser  sitescrape.Parser
	Writer  sitescrape.PageWriter

	// Fallback, when set, extracts content from pages where the content
	// selector finds nothing. Its HTML is converted with Converter.
	Fallback  sitescrape.Extractor
	Converter sitescrape.Converter

	// Pacer, when set, is waited on before every fetch attempt.
	Pacer sitescrape.Pacer

	Logger *slog.Logger

	// DryRun crawls and extracts without writing any file.
	DryRun bool
}

// Result summarises a crawl.
type Result struct {
	Sitemap *Sitemap

	Visited   int // pages downloaded and parsed
	Written   int // files created or changed
	Unchanged int // files already holding the rendered page
	Skipped   int // pages skipped after a permanent failure
	Bytes     int // bytes of written files
}

// outcome is the result of visiting one page.
type outcome int

const (
	proceed outcome = iota
	skipPage
	abortCrawl
)

// run holds the state of one crawl.
type run struct {
	*Crawler
	log      *slog.Logger
	site     *url.URL
	sitemap  *Sitemap
	frontier *Frontier
	result   *Result
}

// Crawl walks the configured site. It stops at the first process-fatal
// failure: exhausted retries, an invalid site URL, a failed write or a
// cancelled context. The result is returned even when err is set and
// reflects the work done so far.
func (c *Crawler) Crawl(ctx context.Context) (*Result, error) {
	site, err := c.Config.SiteURL()
	if err != nil {
		return nil, err
	}
	if site.Scheme != "http" && site.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", sitescrape.ErrInvalidSiteURL, site.Scheme)
	}
	log := c.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	r := &run{
		Crawler:  c,
		log:      log,
		site:     site,
		sitemap:  NewSitemap(site),
		frontier: NewFrontier(),
	}
	r.result = &Result{Sitemap: r.sitemap}

	if err := r.crawlTree(ctx, Home, 0); err != nil {
		return r.result, err
	}
	return r.result, nil
}

// crawlTree visits a structured page and then its children, depth-first.
func (r *run) crawlTree(ctx context.Context, id PageID, depth int) error {
	log := r.logger(depth)

	doc, oc, err := r.visit(ctx, id, depth)
	if oc == abortCrawl {
		return err
	}

	page := r.sitemap.Page(id)
	if depth >= r.Config.MaxDepth {
		if len(page.Children) > 0 {
			log.Warn("reached max crawler depth", "limit", r.Config.MaxDepth)
		}
	} else {
		for _, child := range page.Children {
			cu := r.sitemap.Page(child).URL
			if !r.sameOrigin(cu) {
				log.Info("ignoring foreign url", "url", cu.String())
				continue
			}
			if err := r.crawlTree(ctx, child, depth+1); err != nil {
				return err
			}
		}
	}

	if id != Home {
		return nil
	}
	if oc == proceed {
		r.harvest(doc, page.URL, log)
	}
	return r.crawlUnsorted(ctx, depth+1)
}

// crawlUnsorted crawls the frontier level by level. Each level's pages
// join the sitemap as unsorted before they are visited; links found on
// them form the next level.
func (r *run) crawlUnsorted(ctx context.Context, depth int) error {
	for ; depth <= r.Config.MaxDepth && r.frontier.Len() > 0; depth++ {
		log := r.logger(depth)

		var ids []PageID
		for _, c := range r.frontier.Advance() {
			id, ok := r.sitemap.AddUnsorted(c.Title, c.URL)
			if !ok {
				log.Debug("ignoring unsorted link", "url", c.URL.String())
				continue
			}
			ids = append(ids, id)
		}

		for _, id := range ids {
			doc, oc, err := r.visit(ctx, id, depth)
			switch oc {
			case abortCrawl:
				return err
			case skipPage:
				continue
			}
			if depth < r.Config.MaxDepth {
				r.harvest(doc, r.sitemap.Page(id).URL, log)
			}
		}
	}
	return nil
}

// visit downloads, parses, extracts and emits one page. At depth 0 the
// structured menu is parsed into the sitemap before extraction.
func (r *run) visit(ctx context.Context, id PageID, depth int) (sitescrape.Document, outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, abortCrawl, err
	}

	page := r.sitemap.Page(id)
	log := r.logger(depth)
	log.Info("crawling", "url", page.URL.Path, "file", r.sitemap.Path(id))

	html, err := r.download(ctx, page.URL, log)
	if err != nil {
		var de *DownloadError
		if errors.As(err, &de) && de.Kind == NonRetryable {
			log.Warn("skipping page", "url", page.URL.String(), "err", de.Err)
			r.result.Skipped++
			return nil, skipPage, nil
		}
		return nil, abortCrawl, err
	}

	doc, err := r.Parser.Parse(html, page.URL)
	if err != nil {
		log.Warn("skipping unparsable page", "url", page.URL.String(), "err", err)
		r.result.Skipped++
		return nil, skipPage, nil
	}
	r.result.Visited++

	if depth == 0 && id == Home {
		r.parseMenu(doc.Menu(), Home, 0)
	}

	r.sitemap.AddContents(id, r.extract(doc, html, page, log))

	if err := r.emit(ctx, id, log); err != nil {
		return nil, abortCrawl, err
	}
	return doc, proceed, nil
}

func (r *run) download(ctx context.Context, u *url.URL, log *slog.Logger) (string, error) {
	fetch := func(ctx context.Context, raw string) (string, error) {
		if r.Pacer != nil {
			if err := r.Pacer.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
		return r.Fetcher.Fetch(ctx, raw)
	}
	return Download(ctx, u.String(), fetch, log, r.Config.RetryCount, r.Config.RetryDelay())
}

// parseMenu inserts menu items below parent. Items sit one level below
// depth; none are added past the depth limit.
func (r *run) parseMenu(items []sitescrape.MenuItem, parent PageID, depth int) {
	childDepth := depth + 1
	if childDepth > r.Config.MaxDepth {
		return
	}
	log := r.logger(childDepth)

	for _, item := range items {
		if len(item.Anchors) == 0 {
			log.Warn("menu item has no link")
			continue
		}
		if len(item.Anchors) > 1 {
			log.Warn("ignoring second link in menu item")
		}

		a := item.Anchors[0]
		title := normalizeSpace(a.Text)
		u, ok := resolve(r.site, a.Href)
		if !ok {
			log.Warn("menu item has unusable link", "href", a.Href)
			continue
		}
		if !r.sameOrigin(u) {
			log.Info("ignoring foreign url", "url", u.String())
			continue
		}

		id, ok := r.sitemap.PushNew(parent, title, u, "")
		if !ok {
			log.Debug("menu item already in sitemap", "url", u.String())
			continue
		}
		log.Debug("menu item", "title", title, "url", u.String())

		if childDepth < r.Config.MaxDepth && item.Submenu != nil {
			r.parseMenu(item.Submenu(), id, childDepth)
		}
	}
}

// harvest queues the generic anchors of doc that are neither in the
// sitemap nor foreign.
func (r *run) harvest(doc sitescrape.Document, base *url.URL, log *slog.Logger) {
	for _, a := range doc.Anchors() {
		title := normalizeSpace(a.Text)
		if title == "" {
			continue
		}
		u, ok := resolve(base, a.Href)
		if !ok {
			log.Debug("ignoring unusable link", "href", a.Href)
			continue
		}
		if r.frontier.Seen(u) || r.sitemap.Contains(u) {
			continue
		}
		if !r.sameOrigin(u) {
			r.frontier.Ignore(u)
			log.Info("ignoring foreign url", "url", u.String())
			continue
		}
		r.frontier.Push(Candidate{Title: title, URL: u})
	}
}

// extract runs the content selectors and, when they find no text on a
// menu page, the fallback extractor. Unsorted pages keep selector output
// only, so an empty one is skipped rather than filled with boilerplate.
func (r *run) extract(doc sitescrape.Document, html string, page *Page, log *slog.Logger) *sitescrape.PageContents {
	contents, err := doc.Contents(log)
	if err != nil {
		log.Warn("content extraction failed", "title", page.Title, "err", err)
		contents = sitescrape.NewPageContents("")
	}
	if contents.Text != "" || page.Unsorted || r.Fallback == nil || r.Converter == nil {
		return contents
	}

	res, err := r.Fallback.Extract(html, page.URL)
	if err != nil {
		log.Debug("fallback found no content", "title", page.Title, "err", err)
		return contents
	}
	md, err := r.Converter.Convert(res.ContentHTML, page.URL)
	if err != nil {
		log.Warn("fallback conversion failed", "title", page.Title, "err", err)
		return contents
	}
	if md = strings.TrimSpace(md); md != "" {
		log.Info("using fallback content", "title", page.Title)
		contents.Text = md
	}
	return contents
}

// emit renders and writes a page. Unsorted pages without text are not
// written.
func (r *run) emit(ctx context.Context, id PageID, log *slog.Logger) error {
	if r.DryRun {
		return nil
	}

	page := r.sitemap.Page(id)
	if page.Unsorted && strings.TrimSpace(page.Contents.Text) == "" {
		log.Debug("not writing empty unsorted page", "title", page.Title)
		return nil
	}

	text, err := sitescrape.RenderPage(page.Title, page.Contents, r.Config.Template(), r.Config.ParamsFormat)
	if err != nil {
		return err
	}

	path := r.sitemap.Path(id)
	written, err := r.Writer.WritePage(ctx, path, text)
	if err != nil {
		return err
	}
	if written {
		r.result.Written++
		r.result.Bytes += len(text)
	} else {
		r.result.Unchanged++
	}
	return nil
}

func (r *run) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Host, r.site.Host)
}

func (r *run) logger(depth int) *slog.Logger {
	return r.log.With(slog.Int("depth", depth))
}

// resolve turns an href into an absolute http(s) URL relative to base.
func resolve(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
