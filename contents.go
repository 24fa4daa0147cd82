package sitescrape

import "fmt"

// Param is one named front matter value.
type Param struct {
	Name  string
	Value string
}

// PageContents is the payload extracted from a page.
type PageContents struct {
	// Text is the page body as markdown. It may be empty.
	Text string

	// Params holds front matter values in insertion order.
	Params []Param
}

// NewPageContents returns contents with the given body and no params.
func NewPageContents(text string) *PageContents {
	return &PageContents{Text: text}
}

// Param returns the value stored under name.
func (c *PageContents) Param(name string) (string, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// SetParam stores a value under name. Each name may be set once; a second
// assignment is a programming error and panics.
func (c *PageContents) SetParam(name, value string) {
	if _, ok := c.Param(name); ok {
		panic(fmt.Sprintf("sitescrape: param %q set twice", name))
	}
	c.Params = append(c.Params, Param{Name: name, Value: value})
}
