package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/sitescrape/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndMayContain(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.MayContain("https://example.com/about-us/"))

	f.Add("https://example.com/about-us/")

	assert.True(t, f.MayContain("https://example.com/about-us/"))
	assert.False(t, f.MayContain("https://example.com/contact/"))
}

func TestFilter_Saturated(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(2, 0.01)

	f.Add("https://example.com/a")
	f.Add("https://example.com/b")
	assert.False(t, f.Saturated())

	f.Add("https://example.com/c")
	assert.True(t, f.Saturated())
}

func TestFilter_Grow(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(16, 0.01)
	f.Add("https://example.com/a")

	g := f.Grow()

	assert.False(t, g.Saturated())
	assert.False(t, g.MayContain("https://example.com/a"))

	for i := range 32 {
		g.Add(fmt.Sprintf("https://example.com/p/%d", i))
	}
	assert.False(t, g.Saturated(), "sized for twice the original keys")

	g.Add("https://example.com/p/32")
	assert.True(t, g.Saturated())
}

func TestFilter_ZeroCapacity(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)
	f.Add("https://example.com/")
	assert.False(t, f.Saturated())

	f.Add("https://example.com/about")
	assert.True(t, f.Saturated())
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems    = 10000
		fpRate      = 0.01
		testLookups = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testLookups {
		if f.MayContain(fmt.Sprintf("https://example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% for statistical variance.
	actualRate := float64(falsePositives) / float64(testLookups)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
