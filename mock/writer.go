package mock

import (
	"context"

	"github.com/fwojciec/sitescrape"
)

var _ sitescrape.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of sitescrape.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, path string, content string) (bool, error)
}

func (w *PageWriter) WritePage(ctx context.Context, path string, content string) (bool, error) {
	return w.WritePageFn(ctx, path, content)
}
