package mock

import (
	"context"

	"github.com/fwojciec/sitescrape"
)

var _ sitescrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitescrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ sitescrape.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of sitescrape.Pacer.
type Pacer struct {
	WaitFn func(ctx context.Context, host string) error
}

func (p *Pacer) Wait(ctx context.Context, host string) error {
	return p.WaitFn(ctx, host)
}
