package engine

import (
	"fmt"

	"treenav/internal/domain"
)

// Engine runs the navigation algorithms for one widget over a node
// provider. It owns the widget's CursorSet and never mutates the tree.
//
// The engine is not safe for concurrent use; every call runs to completion
// on the UI thread. The tree may change between calls but not during one.
type Engine struct {
	provider domain.Provider
	set      *CursorSet
}

// New creates an engine with the default depth capacity and ceiling
func New(provider domain.Provider) *Engine {
	return NewWithLimits(provider, DefaultCapacity, DefaultDepthCeiling)
}

// NewWithLimits creates an engine whose cursors start with room for
// capacity levels and refuse to grow past ceiling levels
func NewWithLimits(provider domain.Provider, capacity, ceiling int) *Engine {
	return &Engine{
		provider: provider,
		set:      NewCursorSet(capacity, ceiling),
	}
}

// Provider returns the node provider the engine reads from
func (e *Engine) Provider() domain.Provider {
	return e.provider
}

// SetProvider swaps the tree model and unsets every cursor
func (e *Engine) SetProvider(provider domain.Provider) {
	e.provider = provider
	e.set.Reset()
}

// Cursors returns the engine's cursor set
func (e *Engine) Cursors() *CursorSet {
	return e.set
}

// Cursor returns the cursor stored in slot
func (e *Engine) Cursor(slot Slot) *Cursor {
	return e.set.Get(slot)
}

// Copy copies src into dst without allocating
func (e *Engine) Copy(dst, src *Cursor) {
	e.set.Copy(dst, src)
}

// Unset clears a cursor to the "points at nothing" state
func (e *Engine) Unset(c *Cursor) {
	c.unset()
}

// NodeAt resolves the node a cursor addresses. It returns nil for an unset
// cursor or a path the tree no longer contains.
func (e *Engine) NodeAt(c *Cursor) domain.Node {
	if !c.IsSet() {
		return nil
	}
	n, err := e.fetch(c.path, c.depth)
	if err != nil {
		return nil
	}
	return n
}

// HeightAt returns the height of the row a cursor occupies: the addressed
// node when it is on screen, otherwise the visible ancestor at OpenDepth.
func (e *Engine) HeightAt(c *Cursor) int {
	if !c.IsSet() {
		return 0
	}
	n, err := e.fetch(c.path, c.openDepth)
	if err != nil || n == nil || !e.provider.IsVisible(n) {
		return 0
	}
	return e.height(n)
}

// Children returns how many children the node under c has; zero for a leaf
func (e *Engine) Children(c *Cursor) (int, error) {
	if !c.IsSet() {
		return 0, nil
	}
	return e.children(c.path, c.depth)
}

// IsContainer reports whether the node under c can hold children, even if
// it has none right now
func (e *Engine) IsContainer(c *Cursor) bool {
	if !c.IsSet() {
		return false
	}
	return e.provider.ChildCount(domain.Path(c.path[:c.depth+1]), c.depth+1) >= 0
}

// Compare orders two cursors in tree (pre-order) order
func (e *Engine) Compare(a, b *Cursor) Order {
	return Compare(a, b)
}

// Provider adapter

// count returns how many indices are valid at level for the given path.
// A non-container parent counts as zero.
func (e *Engine) count(path []int, level int) (int, error) {
	n := e.provider.ChildCount(domain.Path(path[:level]), level)
	if n < -1 {
		return 0, fmt.Errorf("%w: child count %d under %s", ErrProviderContract, n, domain.Path(path[:level]))
	}
	if n < 0 {
		return 0, nil
	}
	return n, nil
}

// children returns how many children the node at level has
func (e *Engine) children(path []int, level int) (int, error) {
	if level+1 > len(path) {
		return 0, nil
	}
	n := e.provider.ChildCount(domain.Path(path[:level+1]), level+1)
	if n < -1 {
		return 0, fmt.Errorf("%w: child count %d under %s", ErrProviderContract, n, domain.Path(path[:level+1]))
	}
	if n < 0 {
		return 0, nil
	}
	return n, nil
}

// fetch returns the node addressed by path[:level+1]. When the provider has
// nothing there the child count is re-read, so an index that went out of
// range since it was last checked yields nil instead of a fault.
func (e *Engine) fetch(path []int, level int) (domain.Node, error) {
	if path[level] < 0 {
		return nil, nil
	}
	if n := e.provider.ChildAt(domain.Path(path[:level+1]), level); n != nil {
		return n, nil
	}
	cnt, err := e.count(path, level)
	if err != nil {
		return nil, err
	}
	if path[level] >= cnt {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: no node at %s although %d children reported",
		ErrProviderContract, domain.Path(path[:level+1]), cnt)
}

func (e *Engine) height(n domain.Node) int {
	h := e.provider.Height(n)
	if h < 0 {
		return 0
	}
	return h
}

func (e *Engine) visible(n domain.Node) bool {
	return n != nil && e.provider.IsVisible(n)
}
