package domain

import (
	"strconv"
	"strings"
)

// Node is an opaque handle to an item owned by a Provider.
// The navigation engine never allocates, frees or inspects nodes itself.
type Node interface{}

// Path addresses a node from the root as one sibling index per depth level.
// [2 0 5] is the 6th child of the 1st child of the 3rd top-level item.
type Path []int

// Clone returns a copy of the path that does not share storage.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether both paths address the same node
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix addresses p or one of its ancestors
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// String formats the path as dotted indices, e.g. "2.0.5"
func (p Path) String() string {
	if len(p) == 0 {
		return "<root>"
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// Provider supplies tree shape and per-node attributes to the engine.
// All methods are pure queries and are expected to be cheap: O(1), or
// O(children) at one level, never O(subtree).
type Provider interface {
	// ChildAt returns the node addressed by path[:level+1], or nil if any
	// index along the way is out of range.
	ChildAt(path Path, level int) Node

	// ChildCount returns how many indices are valid for path[level], that is
	// the number of children of the node addressed by path[:level]. Level 0
	// counts the top-level items. It returns -1 when that node is not a
	// container.
	ChildCount(path Path, level int) int

	IsVisible(n Node) bool
	IsOpen(n Node) bool

	// Height is the pixel height used for position bookkeeping. It must be
	// stable between layout passes.
	Height(n Node) int
}

// Selector is implemented by providers that store a per-node selected flag.
type Selector interface {
	IsSelected(n Node) bool
	SetSelected(n Node, selected bool)
}

// SelectionCounter is implemented by selectors that keep a running count of
// selected nodes, so hosts can show it without walking the tree.
type SelectionCounter interface {
	SelectedCount() int
}

// Expander is implemented by providers whose containers can be opened and
// closed by the host widget.
type Expander interface {
	SetOpen(n Node, open bool)
}

// Labeler is implemented by providers that can name their nodes for display
// and search.
type Labeler interface {
	Label(n Node) string
}

// Describer is implemented by providers with secondary text for multi-line
// rows.
type Describer interface {
	Description(n Node) string
}

// Enabler is implemented by providers that can mark nodes inactive, such as
// disabled menu entries or dividers.
type Enabler interface {
	IsEnabled(n Node) bool
}
