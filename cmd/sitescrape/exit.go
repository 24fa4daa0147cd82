package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/crawl"
	"github.com/fwojciec/sitescrape/fs"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitConfigInvalid  = 10
	ExitConfigMissing  = 11
	ExitInitFailed     = 20
	ExitDownloadFailed = 30
	ExitInvalidSiteURL = 31
	ExitWriteFailed    = 40
)

// InitError is returned when the default config cannot be written.
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("couldn't create config at %s: %v", e.Path, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	var (
		initErr  *InitError
		dlErr    *crawl.DownloadError
		writeErr *fs.WriteError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &initErr):
		return ExitInitFailed
	case errors.Is(err, context.Canceled):
		return ExitFailure
	case errors.As(err, &dlErr):
		return ExitDownloadFailed
	case errors.Is(err, sitescrape.ErrInvalidSiteURL):
		return ExitInvalidSiteURL
	case errors.As(err, &writeErr):
		return ExitWriteFailed
	}

	switch sitescrape.ErrorCode(err) {
	case sitescrape.ENOTFOUND:
		return ExitConfigMissing
	case sitescrape.EINVALID:
		return ExitConfigInvalid
	}
	return ExitFailure
}

// errorText returns the message shown to the user for err.
func errorText(err error) string {
	var e *sitescrape.Error
	if errors.As(err, &e) {
		return "error: " + e.Message
	}
	return "error: " + err.Error()
}
