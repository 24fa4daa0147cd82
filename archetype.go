package sitescrape

import (
	"fmt"
	"regexp"
	"strings"
)

// Archetype placeholders.
const (
	PlaceholderTitle   = "{TITLE}"
	PlaceholderParams  = "{PARAMS}"
	PlaceholderContent = "{CONTENT}"
)

const tomlArchetype = `+++
title = "{TITLE}"
{PARAMS}
+++

{CONTENT}`

const yamlArchetype = `---
title: "{TITLE}"
{PARAMS}
---

{CONTENT}`

const jsonArchetype = `{
    "title": "{TITLE}"{PARAMS}
}

{CONTENT}`

// DefaultArchetype returns the built-in template for a front matter format.
// The title placeholder always sits inside a double-quoted string.
func DefaultArchetype(format ParamsFormat) string {
	switch format {
	case FormatYAML:
		return yamlArchetype
	case FormatJSON:
		return jsonArchetype
	default:
		return tomlArchetype
	}
}

// RenderPage fills an archetype with a page's title, front matter params and
// body. It fails when the page has no extracted contents.
func RenderPage(title string, contents *PageContents, archetype string, format ParamsFormat) (string, error) {
	if contents == nil {
		return "", Errorf(EINVALID, "page %q has no contents", title)
	}

	r := strings.NewReplacer(
		PlaceholderTitle, escapeQuoted(title),
		PlaceholderParams, RenderParams(contents.Params, format),
		PlaceholderContent, contents.Text,
	)
	return r.Replace(archetype), nil
}

// RenderParams formats params as a front matter fragment.
//
//	toml: name = 'value'      joined by "\n"
//	yaml: name: "value"       joined by "\n"
//	json:     "name": "value" joined by ",\n", prefixed with ",\n"
//
// Values are escaped so that quotes and newlines cannot break the block.
func RenderParams(params []Param, format ParamsFormat) string {
	if len(params) == 0 {
		return ""
	}

	entries := make([]string, 0, len(params))
	for _, p := range params {
		entries = append(entries, renderParam(p, format))
	}

	switch format {
	case FormatJSON:
		return ",\n" + strings.Join(entries, ",\n")
	default:
		return strings.Join(entries, "\n")
	}
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func renderParam(p Param, format ParamsFormat) string {
	key := p.Name
	if !bareKey.MatchString(key) {
		key = `"` + escapeQuoted(key) + `"`
	}

	switch format {
	case FormatYAML:
		return fmt.Sprintf(`%s: "%s"`, key, escapeQuoted(p.Value))
	case FormatJSON:
		return fmt.Sprintf(`    "%s": "%s"`, escapeQuoted(p.Name), escapeQuoted(p.Value))
	default:
		// Literal strings cannot hold a single quote or control characters.
		if isLiteralSafe(p.Value) {
			return fmt.Sprintf(`%s = '%s'`, key, p.Value)
		}
		return fmt.Sprintf(`%s = "%s"`, key, escapeQuoted(p.Value))
	}
}

func isLiteralSafe(s string) bool {
	for _, r := range s {
		if r == '\'' || (r < 0x20 && r != '\t') || r == 0x7f {
			return false
		}
	}
	return true
}

// escapeQuoted escapes s for a double-quoted string. The escapes used are
// valid in TOML basic strings, YAML double-quoted scalars and JSON.
func escapeQuoted(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
