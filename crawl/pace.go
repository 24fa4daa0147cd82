package crawl

import (
	"context"

	"github.com/fwojciec/sitescrape"
	"golang.org/x/time/rate"
)

var _ sitescrape.Pacer = (*HostPacer)(nil)

// HostPacer keeps consecutive fetches from one host at least 1/rps seconds
// apart. The first fetch of a host never waits.
//
// The crawl loop fetches one page at a time, so a HostPacer is not safe for
// concurrent use.
type HostPacer struct {
	perSecond rate.Limit
	hosts     map[string]*rate.Limiter
}

// NewHostPacer returns a pacer for rps fetches per second. A non-positive
// rps never waits.
func NewHostPacer(rps float64) *HostPacer {
	perSecond := rate.Limit(rps)
	if rps <= 0 {
		perSecond = rate.Inf
	}
	return &HostPacer{perSecond: perSecond, hosts: make(map[string]*rate.Limiter)}
}

// Wait returns once the next fetch from host is due, or with ctx's error.
func (p *HostPacer) Wait(ctx context.Context, host string) error {
	l := p.hosts[host]
	if l == nil {
		l = rate.NewLimiter(p.perSecond, 1)
		p.hosts[host] = l
	}
	return l.Wait(ctx)
}
