package sitescrape

import "context"

// PageWriter persists rendered pages.
type PageWriter interface {
	// WritePage stores content at a slash-separated path relative to the
	// output root, creating directories as needed. It reports false when
	// the file already held identical content.
	WritePage(ctx context.Context, path string, content string) (written bool, err error)
}
