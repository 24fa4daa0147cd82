package goquery_test

import (
	"bytes"
	"log/slog"
	"net/url"
	"testing"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/goquery"
	"github.com/fwojciec/sitescrape/htmltomarkdown"
	"github.com/fwojciec/sitescrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<!DOCTYPE html>
<html>
<head><title>About</title></head>
<body>
<nav>
<ul class="mega-menu">
  <li class="mega-menu-item">
    <a class="mega-menu-link" href="/about">About
      Us</a>
    <ul class="mega-sub-menu">
      <li class="mega-menu-item"><a class="mega-menu-link" href="/about/team">Team</a></li>
    </ul>
  </li>
  <li class="mega-menu-item"><span>No link</span></li>
  <li class="mega-menu-item">
    <a class="mega-menu-link" href="/news">News</a>
    <a class="mega-menu-link" href="/blog">Blog</a>
  </li>
</ul>
</nav>
<article>
  <time class="entry-date" datetime="2024-01-01T10:00:00+00:00">January 1</time>
  <h2 class="subtitle">
    <span>Who we are</span> and more
  </h2>
  <p class="lead">First lead</p>
  <p class="lead">Second lead</p>
  <div class="entry-content"><p>Hello</p></div>
  <div class="entry-content">   </div>
  <div class="entry-content"><p>World</p></div>
</article>
<footer><a href="/privacy">Privacy Policy</a><a>No href</a></footer>
</body>
</html>`

func newParser(t *testing.T, modify func(*sitescrape.Config)) *goquery.Parser {
	t.Helper()

	cfg := sitescrape.DefaultConfig()
	if modify != nil {
		modify(cfg)
	}
	p, err := goquery.NewParser(cfg, htmltomarkdown.NewConverter())
	require.NoError(t, err)
	return p
}

func TestNewParser_InvalidSelector(t *testing.T) {
	t.Parallel()

	cfg := sitescrape.DefaultConfig()
	cfg.ParamSelectors = map[string]string{"subtitle": "h2["}

	_, err := goquery.NewParser(cfg, htmltomarkdown.NewConverter())

	require.Error(t, err)
	assert.Equal(t, sitescrape.EINVALID, sitescrape.ErrorCode(err))
	assert.Contains(t, sitescrape.ErrorMessage(err), "param_selectors.subtitle")
}

func TestDocument_Menu(t *testing.T) {
	t.Parallel()

	doc, err := newParser(t, nil).Parse(pageHTML, nil)
	require.NoError(t, err)

	menu := doc.Menu()

	require.Len(t, menu, 3)
	require.Len(t, menu[0].Anchors, 1)
	assert.Equal(t, "/about", menu[0].Anchors[0].Href)
	assert.Contains(t, menu[0].Anchors[0].Text, "About")

	require.NotNil(t, menu[0].Submenu)
	sub := menu[0].Submenu()
	require.Len(t, sub, 1)
	assert.Equal(t, []sitescrape.Anchor{{Text: "Team", Href: "/about/team"}}, sub[0].Anchors)
	assert.Empty(t, sub[0].Submenu())

	assert.Empty(t, menu[1].Anchors)
	assert.Len(t, menu[2].Anchors, 2)
}

func TestDocument_Menu_WithoutSubmenuSelector(t *testing.T) {
	t.Parallel()

	doc, err := newParser(t, func(c *sitescrape.Config) { c.SubmenuSelector = "" }).Parse(pageHTML, nil)
	require.NoError(t, err)

	for _, item := range doc.Menu() {
		assert.Nil(t, item.Submenu)
	}
}

func TestDocument_Anchors(t *testing.T) {
	t.Parallel()

	doc, err := newParser(t, func(c *sitescrape.Config) { c.AnchorSelector = "footer a" }).Parse(pageHTML, nil)
	require.NoError(t, err)

	assert.Equal(t, []sitescrape.Anchor{
		{Text: "Privacy Policy", Href: "/privacy"},
		{Text: "No href", Href: ""},
	}, doc.Anchors())
}

func TestDocument_Contents(t *testing.T) {
	t.Parallel()

	t.Run("joins converted content elements", func(t *testing.T) {
		t.Parallel()

		doc, err := newParser(t, nil).Parse(pageHTML, nil)
		require.NoError(t, err)

		c, err := doc.Contents(nil)

		require.NoError(t, err)
		assert.Equal(t, "Hello\nWorld", c.Text)
	})

	t.Run("stores date from datetime attribute", func(t *testing.T) {
		t.Parallel()

		doc, err := newParser(t, nil).Parse(pageHTML, nil)
		require.NoError(t, err)

		c, err := doc.Contents(nil)

		require.NoError(t, err)
		v, ok := c.Param(sitescrape.DateParam)
		assert.True(t, ok)
		assert.Equal(t, "2024-01-01T10:00:00+00:00", v)
	})

	t.Run("params use first text node in sorted name order", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		doc, err := newParser(t, func(c *sitescrape.Config) {
			c.DateSelector = ""
			c.ParamSelectors = map[string]string{
				"subtitle": "h2.subtitle",
				"lead":     "p.lead",
				"missing":  ".does-not-exist",
			}
		}).Parse(pageHTML, nil)
		require.NoError(t, err)

		c, err := doc.Contents(logger)

		require.NoError(t, err)
		assert.Equal(t, []sitescrape.Param{
			{Name: "lead", Value: "First lead"},
			{Name: "subtitle", Value: "Who we are"},
		}, c.Params)
		assert.Contains(t, logs.String(), "ignoring second param element")
	})

	t.Run("warns when no content is found", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		doc, err := newParser(t, func(c *sitescrape.Config) { c.ContentSelector = ".nothing" }).Parse(pageHTML, nil)
		require.NoError(t, err)

		c, err := doc.Contents(logger)

		require.NoError(t, err)
		assert.Empty(t, c.Text)
		assert.Contains(t, logs.String(), "no content found")
	})

	t.Run("resolves relative links against the page URL", func(t *testing.T) {
		t.Parallel()

		pageURL, err := url.Parse("https://example.com/docs/guide/")
		require.NoError(t, err)
		doc, err := newParser(t, nil).Parse(`<article><div class="entry-content">
<p>Read <a href="child.html">the next part</a> or go <a href="../">up</a>.</p>
<img src="img/diagram.png" alt="Diagram">
</div></article>`, pageURL)
		require.NoError(t, err)

		c, err := doc.Contents(nil)

		require.NoError(t, err)
		assert.Contains(t, c.Text, "[the next part](https://example.com/docs/guide/child.html)")
		assert.Contains(t, c.Text, "[up](https://example.com/docs/)")
		assert.Contains(t, c.Text, "![Diagram](https://example.com/docs/guide/img/diagram.png)")
	})

	t.Run("returns converter errors", func(t *testing.T) {
		t.Parallel()

		cfg := sitescrape.DefaultConfig()
		p, err := goquery.NewParser(cfg, &mock.Converter{
			ConvertFn: func(string, *url.URL) (string, error) {
				return "", sitescrape.Errorf(sitescrape.EINTERNAL, "boom")
			},
		})
		require.NoError(t, err)
		doc, err := p.Parse(pageHTML, nil)
		require.NoError(t, err)

		_, err = doc.Contents(nil)

		assert.Error(t, err)
	})
}
