package crawl_test

import (
	"testing"

	"github.com/fwojciec/sitescrape/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_Push(t *testing.T) {
	t.Parallel()

	t.Run("rejects duplicate URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()

		assert.True(t, f.Push(crawl.Candidate{Title: "Privacy", URL: mustParse(t, "https://example.com/privacy")}))
		assert.False(t, f.Push(crawl.Candidate{Title: "Privacy Policy", URL: mustParse(t, "https://example.com/privacy")}))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("treats fragments as the same URL", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()

		assert.True(t, f.Push(crawl.Candidate{Title: "Jobs", URL: mustParse(t, "https://example.com/jobs#open")}))
		assert.False(t, f.Push(crawl.Candidate{Title: "Jobs", URL: mustParse(t, "https://example.com/jobs")}))

		level := f.Advance()
		require.Len(t, level, 1)
		assert.Equal(t, "https://example.com/jobs", level[0].URL.String())
	})

	t.Run("rejects ignored URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		u := mustParse(t, "https://other.example.org/")

		assert.True(t, f.Ignore(u))
		assert.False(t, f.Ignore(u))
		assert.True(t, f.Seen(u))
		assert.False(t, f.Push(crawl.Candidate{Title: "Other", URL: u}))
	})
}

func TestFrontier_Advance(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push(crawl.Candidate{Title: "A", URL: mustParse(t, "https://example.com/a")})
	f.Push(crawl.Candidate{Title: "B", URL: mustParse(t, "https://example.com/b")})

	level := f.Advance()
	require.Len(t, level, 2)
	assert.Equal(t, "A", level[0].Title)
	assert.Equal(t, "B", level[1].Title)
	assert.Equal(t, 0, f.Len())

	// URLs stay seen across levels.
	assert.False(t, f.Push(crawl.Candidate{Title: "A", URL: mustParse(t, "https://example.com/a")}))
	assert.True(t, f.Push(crawl.Candidate{Title: "C", URL: mustParse(t, "https://example.com/c")}))

	level = f.Advance()
	require.Len(t, level, 1)
	assert.Equal(t, "C", level[0].Title)
	assert.Empty(t, f.Advance())
}
