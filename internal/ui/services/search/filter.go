package search

import (
	"strings"

	"treenav/internal/domain"
	"treenav/internal/engine"
)

// Filter is a parsed search query. A query is either plain text, matched
// case-insensitively against labels and descriptions, or an "is:" qualifier
// that matches on node state.
type Filter struct {
	Text      string
	Qualifier string
}

// ParseFilter splits a query into text and qualifier
func ParseFilter(query string) Filter {
	q := strings.ToLower(strings.TrimSpace(query))
	if strings.HasPrefix(q, "is:") {
		return Filter{Qualifier: strings.TrimPrefix(q, "is:")}
	}
	return Filter{Text: q}
}

// Empty reports whether the filter matches nothing in particular
func (f Filter) Empty() bool {
	return f.Text == "" && f.Qualifier == ""
}

// MatchesText reports whether text contains the plain part of the filter
func (f Filter) MatchesText(text string) bool {
	if f.Text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), f.Text)
}

// Matches checks the node under c
func (f Filter) Matches(e *engine.Engine, c *engine.Cursor, n domain.Node) bool {
	p := e.Provider()
	if f.Qualifier != "" {
		return f.matchesQualifier(e, c, n)
	}

	if l, ok := p.(domain.Labeler); ok && f.MatchesText(l.Label(n)) {
		return true
	}
	if d, ok := p.(domain.Describer); ok && f.MatchesText(d.Description(n)) {
		return true
	}
	return false
}

func (f Filter) matchesQualifier(e *engine.Engine, c *engine.Cursor, n domain.Node) bool {
	p := e.Provider()
	switch f.Qualifier {
	case "selected":
		sel, ok := p.(domain.Selector)
		return ok && sel.IsSelected(n)
	case "container", "dir", "branch":
		return e.IsContainer(c)
	case "leaf", "file":
		return !e.IsContainer(c)
	case "open":
		return e.IsContainer(c) && p.IsOpen(n)
	case "closed":
		return e.IsContainer(c) && !p.IsOpen(n)
	case "hidden":
		return !p.IsVisible(n)
	case "disabled":
		en, ok := p.(domain.Enabler)
		return ok && !en.IsEnabled(n)
	default:
		return false
	}
}
