package main_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitescrape"
	main "github.com/fwojciec/sitescrape/cmd/sitescrape"
	"github.com/fwojciec/sitescrape/crawl"
	"github.com/fwojciec/sitescrape/fs"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, main.ExitOK},
		{"init", &main.InitError{Path: "x", Err: errors.New("denied")}, main.ExitInitFailed},
		{"missing config", sitescrape.Errorf(sitescrape.ENOTFOUND, "no config"), main.ExitConfigMissing},
		{"invalid config", sitescrape.Errorf(sitescrape.EINVALID, "bad"), main.ExitConfigInvalid},
		{"download", &crawl.DownloadError{URL: "u", Kind: crawl.Exhausted, Attempts: 5, Err: errors.New("503")}, main.ExitDownloadFailed},
		{"site url", fmt.Errorf("%w: no host", sitescrape.ErrInvalidSiteURL), main.ExitInvalidSiteURL},
		{"site url from validation", fmt.Errorf("%w: %w", sitescrape.ErrInvalidSiteURL, sitescrape.Errorf(sitescrape.EINVALID, "bad url")), main.ExitInvalidSiteURL},
		{"write", fmt.Errorf("emit: %w", &fs.WriteError{Path: "a.md", Err: errors.New("disk full")}), main.ExitWriteFailed},
		{"interrupt", context.Canceled, main.ExitFailure},
		{"other", errors.New("boom"), main.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, main.ExitCode(tt.err))
		})
	}
}
