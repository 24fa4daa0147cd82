package sitescrape

import (
	"fmt"
	"net/url"
	"sort"
	"time"
)

// ParamsFormat selects the front matter syntax of generated pages.
type ParamsFormat string

// Supported front matter formats.
const (
	FormatTOML ParamsFormat = "toml"
	FormatYAML ParamsFormat = "yaml"
	FormatJSON ParamsFormat = "json"
)

// Valid reports whether f is one of the supported formats.
func (f ParamsFormat) Valid() bool {
	switch f {
	case FormatTOML, FormatYAML, FormatJSON:
		return true
	}
	return false
}

// Content fallback extractors.
const (
	FallbackNone        = ""
	FallbackReadability = "readability"
	FallbackTrafilatura = "trafilatura"
)

// DateParam is the reserved parameter name filled by the date selector.
const DateParam = "date"

// Config describes one site: where to start, which selectors find the menu,
// anchors and content, and how pages are rendered.
type Config struct {
	// URL is the home page. Its host defines which links are followed.
	URL string `toml:"url" yaml:"url"`

	MenuSelector       string `toml:"menu_selector" yaml:"menu_selector"`
	MenuAnchorSelector string `toml:"menu_anchor_selector" yaml:"menu_anchor_selector"`
	// SubmenuSelector is evaluated relative to a menu item. Empty disables
	// nested menus.
	SubmenuSelector string `toml:"submenu_selector,omitempty" yaml:"submenu_selector,omitempty"`
	AnchorSelector  string `toml:"anchor_selector" yaml:"anchor_selector"`
	ContentSelector string `toml:"content_selector" yaml:"content_selector"`

	// ParamSelectors maps front matter names to selectors whose first text
	// node becomes the value.
	ParamSelectors map[string]string `toml:"param_selectors" yaml:"param_selectors"`
	// DateSelector picks an element whose datetime attribute becomes the
	// "date" param.
	DateSelector string `toml:"date_selector,omitempty" yaml:"date_selector,omitempty"`

	MaxDepth      int     `toml:"max_depth" yaml:"max_depth"`
	RetryCount    int     `toml:"retry_count" yaml:"retry_count"`
	RetryInterval float64 `toml:"retry_interval" yaml:"retry_interval"` // seconds

	ParamsFormat ParamsFormat `toml:"params_format" yaml:"params_format"`
	// Archetype overrides the built-in template for ParamsFormat.
	Archetype string `toml:"archetype,omitempty" yaml:"archetype,omitempty"`

	UserAgent         string  `toml:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	Timeout           float64 `toml:"timeout,omitempty" yaml:"timeout,omitempty"`                         // seconds
	RequestsPerSecond float64 `toml:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"` // 0 = unthrottled
	ContentFallback   string  `toml:"content_fallback,omitempty" yaml:"content_fallback,omitempty"`
}

// DefaultConfig returns a configuration for WordPress sites using the
// Max Mega Menu plugin.
func DefaultConfig() *Config {
	return &Config{
		URL:                "https://example.com/",
		MenuSelector:       ".mega-menu > .mega-menu-item",
		MenuAnchorSelector: ":scope > .mega-menu-link",
		SubmenuSelector:    ":scope > .mega-sub-menu > .mega-menu-item",
		AnchorSelector:     "a[href]",
		ContentSelector:    "article .entry-content",
		ParamSelectors:     map[string]string{},
		DateSelector:       "time.entry-date",
		MaxDepth:           3,
		RetryCount:         5,
		RetryInterval:      2,
		ParamsFormat:       FormatTOML,
		Timeout:            30,
	}
}

// Validate returns an error if the configuration cannot drive a crawl.
// Selector syntax is checked by the parser that compiles them.
func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %w", ErrInvalidSiteURL, Errorf(EINVALID, "url must be an absolute http(s) URL, got %q", c.URL))
	}
	if c.MenuSelector == "" {
		return Errorf(EINVALID, "menu_selector required")
	}
	if c.MenuAnchorSelector == "" {
		return Errorf(EINVALID, "menu_anchor_selector required")
	}
	if c.AnchorSelector == "" {
		return Errorf(EINVALID, "anchor_selector required")
	}
	if c.ContentSelector == "" {
		return Errorf(EINVALID, "content_selector required")
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max_depth must be non-negative")
	}
	if c.RetryCount < 1 {
		return Errorf(EINVALID, "retry_count must be at least 1")
	}
	if c.RetryInterval < 0 {
		return Errorf(EINVALID, "retry_interval must be non-negative")
	}
	if c.Timeout < 0 {
		return Errorf(EINVALID, "timeout must be non-negative")
	}
	if c.RequestsPerSecond < 0 {
		return Errorf(EINVALID, "requests_per_second must be non-negative")
	}
	if !c.ParamsFormat.Valid() {
		return Errorf(EINVALID, "params_format must be one of toml, yaml, json, got %q", c.ParamsFormat)
	}
	for name, sel := range c.ParamSelectors {
		if name == "" || sel == "" {
			return Errorf(EINVALID, "param_selectors entries need a name and a selector")
		}
		if name == "title" {
			return Errorf(EINVALID, "param %q is reserved for the page title", name)
		}
		if name == DateParam && c.DateSelector != "" {
			return Errorf(EINVALID, "param %q conflicts with date_selector", name)
		}
	}
	switch c.ContentFallback {
	case FallbackNone, FallbackReadability, FallbackTrafilatura:
	default:
		return Errorf(EINVALID, "content_fallback must be empty, %q or %q", FallbackReadability, FallbackTrafilatura)
	}
	return nil
}

// SiteURL returns the parsed home page URL.
func (c *Config) SiteURL() (*url.URL, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSiteURL, Errorf(EINVALID, "invalid site url %q: %v", c.URL, err))
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSiteURL, Errorf(EINVALID, "site url %q has no host", c.URL))
	}
	return u, nil
}

// RetryDelay returns the pause between download attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryInterval * float64(time.Second))
}

// FetchTimeout returns the per-request timeout, or 0 for the transport default.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

// Template returns the configured archetype or the default for the format.
func (c *Config) Template() string {
	if c.Archetype != "" {
		return c.Archetype
	}
	return DefaultArchetype(c.ParamsFormat)
}

// ParamNames returns the configured parameter names in sorted order.
func (c *Config) ParamNames() []string {
	names := make([]string, 0, len(c.ParamSelectors))
	for name := range c.ParamSelectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
