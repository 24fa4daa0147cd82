package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Selector is a compiled CSS selector that may start with ":scope" to
// select relative to the element it is applied to, as in
// ":scope > .mega-menu-link".
type Selector struct {
	raw   string
	steps []step
}

// step narrows a selection to the children or descendants matching m.
type step struct {
	children bool
	m        goquery.Matcher
}

const scope = ":scope"

// Compile parses sel. Scoped selectors support child and descendant
// combinators after ":scope"; selector lists are only supported without it.
func Compile(sel string) (*Selector, error) {
	raw := strings.TrimSpace(sel)
	if raw == "" {
		return nil, fmt.Errorf("empty selector")
	}

	if !strings.HasPrefix(raw, scope) {
		m, err := cascadia.Compile(raw)
		if err != nil {
			return nil, err
		}
		return &Selector{raw: raw, steps: []step{{m: m}}}, nil
	}

	s := &Selector{raw: raw}
	rest := strings.TrimSpace(strings.TrimPrefix(raw, scope))
	if rest == "" {
		return nil, fmt.Errorf("%q selects nothing", raw)
	}

	for rest != "" {
		switch rest[0] {
		case '+', '~', ',':
			return nil, fmt.Errorf("%q: %q after :scope is not supported", raw, rest[0])
		case '>':
			compound, remainder := splitCompound(strings.TrimSpace(rest[1:]))
			if compound == "" {
				return nil, fmt.Errorf("%q: missing selector after '>'", raw)
			}
			m, err := cascadia.Compile(compound)
			if err != nil {
				return nil, err
			}
			s.steps = append(s.steps, step{children: true, m: m})

			rest = strings.TrimSpace(remainder)
			if rest == "" || rest[0] == '>' {
				continue
			}
			if strings.IndexByte("+~,", rest[0]) >= 0 {
				return nil, fmt.Errorf("%q: %q after :scope is not supported", raw, rest[0])
			}
			// Descendant combinator: the remainder matches anywhere below.
			m, err = cascadia.Compile(rest)
			if err != nil {
				return nil, err
			}
			s.steps = append(s.steps, step{m: m})
			rest = ""
		default:
			m, err := cascadia.Compile(rest)
			if err != nil {
				return nil, err
			}
			s.steps = append(s.steps, step{m: m})
			rest = ""
		}
	}
	return s, nil
}

// String returns the selector as written.
func (s *Selector) String() string {
	return s.raw
}

// Select applies the selector relative to from.
func (s *Selector) Select(from *goquery.Selection) *goquery.Selection {
	cur := from
	for _, st := range s.steps {
		if st.children {
			cur = cur.ChildrenMatcher(st.m)
		} else {
			cur = cur.FindMatcher(st.m)
		}
	}
	return cur
}

// splitCompound returns the leading compound selector of s and the rest,
// starting at the first top-level combinator or comma.
func splitCompound(s string) (string, string) {
	var (
		brackets, parens int
		quote            byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			brackets++
		case c == ']':
			brackets--
		case c == '(':
			parens++
		case c == ')':
			parens--
		case brackets == 0 && parens == 0 && strings.IndexByte(" \t\n>+~,", c) >= 0:
			return s[:i], s[i:]
		}
	}
	return s, ""
}
