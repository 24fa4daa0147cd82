package sitescrape_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitescrape"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitescrape.Errorf(sitescrape.ENOTFOUND, "config %q not found", "scrape.toml")

	assert.Equal(t, sitescrape.ENOTFOUND, sitescrape.ErrorCode(err))
	assert.Equal(t, "config \"scrape.toml\" not found", sitescrape.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading: %w", sitescrape.Errorf(sitescrape.EINVALID, "bad selector"))

	assert.Equal(t, sitescrape.EINVALID, sitescrape.ErrorCode(err))
	assert.Equal(t, "bad selector", sitescrape.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, sitescrape.EINTERNAL, sitescrape.ErrorCode(err))
	assert.Equal(t, "Internal error.", sitescrape.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitescrape.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitescrape.ErrorMessage(nil))
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	t.Run("4xx is a client error", func(t *testing.T) {
		t.Parallel()

		err := &sitescrape.StatusError{URL: "https://example.com/missing", StatusCode: 404}

		assert.True(t, err.IsClientError())
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "https://example.com/missing")
	})

	t.Run("5xx is not a client error", func(t *testing.T) {
		t.Parallel()

		err := &sitescrape.StatusError{URL: "https://example.com/", StatusCode: 503}

		assert.False(t, err.IsClientError())
	})
}
