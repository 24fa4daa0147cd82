package crawl

import "net/url"

// Candidate is a link found outside the structured menu that may become an
// unsorted page.
type Candidate struct {
	Title string
	URL   *url.URL
}

// Frontier collects unsorted candidates level by level. Links gathered
// while one level is crawled form the next level; each URL is accepted
// once for the lifetime of the frontier. It is not safe for concurrent use.
type Frontier struct {
	seen map[string]struct{}
	next []Candidate
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{seen: make(map[string]struct{})}
}

// Push queues c for the next level. It returns false if the URL was
// already queued or ignored.
func (f *Frontier) Push(c Candidate) bool {
	if !f.mark(c.URL) {
		return false
	}
	c.URL = stripFragment(c.URL)
	f.next = append(f.next, c)
	return true
}

// Ignore records u as seen without queueing it, so later sightings are
// dropped quietly. It returns false if u was already seen.
func (f *Frontier) Ignore(u *url.URL) bool {
	return f.mark(u)
}

// Seen reports whether u was queued or ignored.
func (f *Frontier) Seen(u *url.URL) bool {
	_, ok := f.seen[urlKey(u)]
	return ok
}

// Advance returns the candidates of the next level in discovery order and
// starts a new, empty level.
func (f *Frontier) Advance() []Candidate {
	level := f.next
	f.next = nil
	return level
}

// Len returns the number of candidates waiting for the next level.
func (f *Frontier) Len() int {
	return len(f.next)
}

func (f *Frontier) mark(u *url.URL) bool {
	key := urlKey(u)
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}
