// Package fs writes rendered pages below a target directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitescrape"
)

// WriteError reports a failed filesystem operation for a page.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ErrOutsideRoot is returned for page paths that would leave the target
// directory.
var ErrOutsideRoot = errors.New("path escapes target directory")

var _ sitescrape.PageWriter = (*Writer)(nil)

// Writer writes pages as files under a root directory.
type Writer struct {
	root string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{root: dir}
}

// WritePage writes content to the slash-separated path below the root,
// creating parent directories. Files already holding the same content are
// left untouched and reported as not written.
func (w *Writer) WritePage(ctx context.Context, p string, content string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	full, err := w.resolve(p)
	if err != nil {
		return false, &WriteError{Path: p, Err: err}
	}

	if existing, err := os.ReadFile(full); err == nil && xxhash.Sum64(existing) == xxhash.Sum64String(content) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return false, &WriteError{Path: full, Err: err}
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return false, &WriteError{Path: full, Err: err}
	}
	return true, nil
}

func (w *Writer) resolve(p string) (string, error) {
	if p == "" || path.IsAbs(p) {
		return "", ErrOutsideRoot
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrOutsideRoot
	}
	return filepath.Join(w.root, filepath.FromSlash(clean)), nil
}
