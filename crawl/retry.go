package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescrape"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// FailureKind classifies a failed download.
type FailureKind int

const (
	// Retryable failures may succeed on another attempt.
	Retryable FailureKind = iota
	// NonRetryable failures are permanent for the page; it is skipped.
	NonRetryable
	// Exhausted means every attempt failed; the crawl cannot continue.
	Exhausted
)

func (k FailureKind) String() string {
	switch k {
	case Retryable:
		return "retryable"
	case NonRetryable:
		return "non-retryable"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// DownloadError is returned by Download when a page could not be fetched.
type DownloadError struct {
	URL      string
	Kind     FailureKind
	Attempts int
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %s after %d attempt(s): %v", e.URL, e.Kind, e.Attempts, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Classify returns the kind of a single fetch failure. Client error
// statuses are permanent; everything else is worth another attempt.
func Classify(err error) FailureKind {
	var se *sitescrape.StatusError
	if errors.As(err, &se) && se.IsClientError() {
		return NonRetryable
	}
	return Retryable
}

// Download fetches url with up to attempts tries, sleeping interval before
// every try after the first. A client error status stops immediately with
// a NonRetryable DownloadError; running out of attempts returns an
// Exhausted one. Context cancellation returns ctx.Err().
func Download(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, attempts int, interval time.Duration) (string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, interval); err != nil {
				return "", err
			}
		}

		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err

		if Classify(err) == NonRetryable {
			return "", &DownloadError{URL: url, Kind: NonRetryable, Attempts: attempt, Err: err}
		}
		logger.Warn("download failed", "url", url, "attempt", attempt, "of", attempts, "err", err)
	}

	return "", &DownloadError{URL: url, Kind: Exhausted, Attempts: attempts, Err: lastErr}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
