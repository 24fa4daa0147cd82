package crawl

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/bloom"
)

// PageID addresses a Page within its Sitemap. IDs are stable for the
// lifetime of the Sitemap.
type PageID int

const (
	// Home is the ID of the root page.
	Home PageID = 0

	// NoPage marks a missing page, such as the parent of a root.
	NoPage PageID = -1
)

// UnsortedDir is the directory unsorted pages are written to.
const UnsortedDir = "unsorted"

const (
	initialCapacity   = 256
	falsePositiveRate = 0.01
)

// Page is a node of the site tree.
type Page struct {
	Title string
	URL   *url.URL

	// Slug is the slash-separated path from the output root. It is empty
	// for the home page.
	Slug string

	Parent   PageID
	Children []PageID

	// Contents is nil until the page has been extracted.
	Contents *sitescrape.PageContents

	// Unsorted is set for pages found outside the structured menu.
	Unsorted bool
}

// Sitemap is the registry of pages discovered during one crawl: a tree
// rooted at the home page plus a flat list of unsorted pages. No two pages
// share a URL. URLs differing only by fragment are the same page.
type Sitemap struct {
	pages    []*Page
	unsorted []PageID

	// seen holds the key of every page and rules out most lookups before
	// a tree walk is needed.
	seen *bloom.Filter
}

// NewSitemap returns a sitemap whose home page is root.
func NewSitemap(root *url.URL) *Sitemap {
	s := &Sitemap{seen: bloom.NewFilter(initialCapacity, falsePositiveRate)}
	s.add(&Page{
		Title:  "root",
		URL:    stripFragment(root),
		Parent: NoPage,
	})
	return s
}

// Page returns the page with the given ID.
func (s *Sitemap) Page(id PageID) *Page {
	return s.pages[id]
}

// Len returns the number of pages, including the home page.
func (s *Sitemap) Len() int {
	return len(s.pages)
}

// Unsorted returns the unsorted pages in discovery order.
func (s *Sitemap) Unsorted() []PageID {
	return s.unsorted
}

// Find searches the subtree rooted at from depth-first and returns the
// first page with the URL.
func (s *Sitemap) Find(from PageID, u *url.URL) (PageID, bool) {
	key := urlKey(u)
	stack := []PageID{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p := s.pages[id]
		if urlKey(p.URL) == key {
			return id, true
		}
		// Push in reverse so children are visited in insertion order.
		for i := len(p.Children) - 1; i >= 0; i-- {
			stack = append(stack, p.Children[i])
		}
	}
	return NoPage, false
}

// Contains reports whether any page of the sitemap, structured or
// unsorted, has the URL.
func (s *Sitemap) Contains(u *url.URL) bool {
	if !s.seen.MayContain(urlKey(u)) {
		return false
	}
	if _, ok := s.Find(Home, u); ok {
		return true
	}
	for _, id := range s.unsorted {
		if _, ok := s.Find(id, u); ok {
			return true
		}
	}
	return false
}

// Push inserts child under parent. child.Slug is the segment appended to
// the parent's slug. Push refuses, returning false, when the URL is already
// in the sitemap or the segment is empty.
func (s *Sitemap) Push(parent PageID, child Page) (PageID, bool) {
	if child.Slug == "" || s.Contains(child.URL) {
		return NoPage, false
	}

	p := s.pages[parent]
	child.URL = stripFragment(child.URL)
	child.Slug = joinSlug(p.Slug, child.Slug)
	child.Parent = parent
	child.Children = nil
	child.Contents = nil
	child.Unsorted = p.Unsorted

	id := s.add(&child)
	p.Children = append(p.Children, id)
	return id, true
}

// PushNew builds a page from a title and URL and pushes it under parent.
// The slug segment is slugOverride when set, otherwise derived from the
// title, falling back to the last element of the URL path.
func (s *Sitemap) PushNew(parent PageID, title string, u *url.URL, slugOverride string) (PageID, bool) {
	return s.Push(parent, Page{
		Title: title,
		URL:   u,
		Slug:  segment(title, u, slugOverride),
	})
}

// AddUnsorted appends a page outside the structured tree. It refuses,
// returning false, when the URL is already in the sitemap.
func (s *Sitemap) AddUnsorted(title string, u *url.URL) (PageID, bool) {
	seg := segment(title, u, "")
	if seg == "" || s.Contains(u) {
		return NoPage, false
	}

	id := s.add(&Page{
		Title:    title,
		URL:      stripFragment(u),
		Slug:     joinSlug(UnsortedDir, seg),
		Parent:   NoPage,
		Unsorted: true,
	})
	s.unsorted = append(s.unsorted, id)
	return id, true
}

// Path returns the output file of a page relative to the target directory.
// Pages with children become a directory index.
func (s *Sitemap) Path(id PageID) string {
	if id == Home {
		return "_index.md"
	}
	p := s.pages[id]
	if len(p.Children) > 0 {
		return p.Slug + "/_index.md"
	}
	return p.Slug + ".md"
}

// AddContents sets the contents of a page. Contents are extracted once per
// page; a second call panics.
func (s *Sitemap) AddContents(id PageID, contents *sitescrape.PageContents) {
	p := s.pages[id]
	if p.Contents != nil {
		panic("crawl: contents set twice for " + p.URL.String())
	}
	p.Contents = contents
}

func (s *Sitemap) add(p *Page) PageID {
	id := PageID(len(s.pages))
	s.pages = append(s.pages, p)

	s.seen.Add(urlKey(p.URL))
	if s.seen.Saturated() {
		f := s.seen.Grow()
		for _, q := range s.pages {
			f.Add(urlKey(q.URL))
		}
		s.seen = f
	}
	return id
}

func segment(title string, u *url.URL, override string) string {
	if override != "" {
		return override
	}
	if seg := cleanSegment(sitescrape.Slugify(title)); seg != "" {
		return seg
	}
	base := path.Base(strings.TrimSuffix(u.Path, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return cleanSegment(sitescrape.Slugify(base))
}

// cleanSegment drops empty and dot elements so a slug cannot climb out of
// its parent directory.
func cleanSegment(slug string) string {
	parts := strings.Split(slug, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && p != "." && p != ".." {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

func joinSlug(parent, seg string) string {
	if parent == "" {
		return seg
	}
	return parent + "/" + seg
}

// urlKey is the identity of a URL for deduplication. Scheme and host are
// case-insensitive and an empty path is the root path, so
// "https://Example.com" and "https://example.com/" share a key.
func urlKey(u *url.URL) string {
	k := *stripFragment(u)
	k.Scheme = strings.ToLower(k.Scheme)
	k.Host = strings.ToLower(k.Host)
	if k.Path == "" && k.Opaque == "" && k.Host != "" {
		k.Path = "/"
		k.RawPath = ""
	}
	return k.String()
}

func stripFragment(u *url.URL) *url.URL {
	if u.Fragment == "" && u.RawFragment == "" {
		return u
	}
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	return &c
}
