package sitescrape_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/sitescrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// frontMatter splits a rendered page into its front matter block and body.
func frontMatter(t *testing.T, page, fence string) (string, string) {
	t.Helper()

	require.True(t, strings.HasPrefix(page, fence+"\n"), "page must open with %q", fence)
	rest := page[len(fence)+1:]
	end := strings.Index(rest, "\n"+fence+"\n")
	require.GreaterOrEqual(t, end, 0, "page must close front matter with %q", fence)
	return rest[:end], rest[end+len(fence)+2:]
}

func TestRenderPage_TOML(t *testing.T) {
	t.Parallel()

	contents := sitescrape.NewPageContents("Hello")
	contents.SetParam("date", "2024-01-01")

	page, err := sitescrape.RenderPage("About Us", contents, sitescrape.DefaultArchetype(sitescrape.FormatTOML), sitescrape.FormatTOML)

	require.NoError(t, err)
	assert.Contains(t, page, "date = '2024-01-01'")
	assert.Equal(t, 1, strings.Count(page, `title = "About Us"`))
	assert.True(t, strings.HasSuffix(page, "Hello"))

	fm, body := frontMatter(t, page, "+++")
	assert.Equal(t, "\nHello", body)

	var got map[string]any
	_, err = toml.Decode(fm, &got)
	require.NoError(t, err)
	assert.Equal(t, "About Us", got["title"])
	assert.Equal(t, "2024-01-01", got["date"])
}

func TestRenderPage_TOMLEscaping(t *testing.T) {
	t.Parallel()

	contents := sitescrape.NewPageContents("")
	contents.SetParam("quote", `it's "quoted"`)
	contents.SetParam("multi", "line one\nline two")
	contents.SetParam("sub title", `back\slash`)

	page, err := sitescrape.RenderPage(`Say "Hi"`, contents, sitescrape.DefaultArchetype(sitescrape.FormatTOML), sitescrape.FormatTOML)
	require.NoError(t, err)

	fm, _ := frontMatter(t, page, "+++")

	var got map[string]any
	_, err = toml.Decode(fm, &got)
	require.NoError(t, err)
	assert.Equal(t, `Say "Hi"`, got["title"])
	assert.Equal(t, `it's "quoted"`, got["quote"])
	assert.Equal(t, "line one\nline two", got["multi"])
	assert.Equal(t, `back\slash`, got["sub title"])
}

func TestRenderPage_YAML(t *testing.T) {
	t.Parallel()

	contents := sitescrape.NewPageContents("Body text")
	contents.SetParam("date", "2024-01-01")
	contents.SetParam("subtitle", `A "quoted": value`)

	page, err := sitescrape.RenderPage("Über: uns", contents, sitescrape.DefaultArchetype(sitescrape.FormatYAML), sitescrape.FormatYAML)
	require.NoError(t, err)

	fm, body := frontMatter(t, page, "---")
	assert.Equal(t, "\nBody text", body)

	var got map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(fm), &got))
	assert.Equal(t, "Über: uns", got["title"])
	assert.Equal(t, "2024-01-01", got["date"])
	assert.Equal(t, `A "quoted": value`, got["subtitle"])
}

func TestRenderPage_JSON(t *testing.T) {
	t.Parallel()

	contents := sitescrape.NewPageContents("Body")
	contents.SetParam("date", "2024-01-01")
	contents.SetParam("lead", "tab\there")

	page, err := sitescrape.RenderPage("News", contents, sitescrape.DefaultArchetype(sitescrape.FormatJSON), sitescrape.FormatJSON)
	require.NoError(t, err)

	end := strings.Index(page, "\n}\n")
	require.GreaterOrEqual(t, end, 0)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(page[:end+2]), &got))
	assert.Equal(t, map[string]string{"title": "News", "date": "2024-01-01", "lead": "tab\there"}, got)
	assert.True(t, strings.HasSuffix(page, "\n\nBody"))
}

func TestRenderPage_NoParams(t *testing.T) {
	t.Parallel()

	for _, format := range []sitescrape.ParamsFormat{sitescrape.FormatTOML, sitescrape.FormatYAML, sitescrape.FormatJSON} {
		page, err := sitescrape.RenderPage("Home", sitescrape.NewPageContents("x"), sitescrape.DefaultArchetype(format), format)
		require.NoError(t, err)
		assert.NotContains(t, page, sitescrape.PlaceholderParams, "format %s", format)
		assert.NotContains(t, page, sitescrape.PlaceholderContent, "format %s", format)
	}
}

func TestRenderPage_PlaceholdersInContentAreLiteral(t *testing.T) {
	t.Parallel()

	contents := sitescrape.NewPageContents("Use {TITLE} and {PARAMS} literally")

	page, err := sitescrape.RenderPage("T", contents, "{TITLE}|{CONTENT}", sitescrape.FormatTOML)

	require.NoError(t, err)
	assert.Equal(t, "T|Use {TITLE} and {PARAMS} literally", page)
}

func TestRenderPage_NilContents(t *testing.T) {
	t.Parallel()

	_, err := sitescrape.RenderPage("Missing", nil, "{CONTENT}", sitescrape.FormatTOML)

	require.Error(t, err)
	assert.Equal(t, sitescrape.EINVALID, sitescrape.ErrorCode(err))
}

func TestRenderParams(t *testing.T) {
	t.Parallel()

	params := []sitescrape.Param{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}

	assert.Equal(t, "a = '1'\nb = '2'", sitescrape.RenderParams(params, sitescrape.FormatTOML))
	assert.Equal(t, "a: \"1\"\nb: \"2\"", sitescrape.RenderParams(params, sitescrape.FormatYAML))
	assert.Equal(t, ",\n    \"a\": \"1\",\n    \"b\": \"2\"", sitescrape.RenderParams(params, sitescrape.FormatJSON))
	assert.Empty(t, sitescrape.RenderParams(nil, sitescrape.FormatJSON))
}
