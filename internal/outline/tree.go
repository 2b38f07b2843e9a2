package outline

import (
	"errors"
	"fmt"
	"sync"

	"treenav/internal/domain"
)

// ErrInvalidPath indicates a path that does not address an item
var ErrInvalidPath = errors.New("invalid outline path")

// DefaultHeight is the row height used for items that do not set one
const DefaultHeight = 1

// Tree is an array-backed node provider. Nodes handed to the engine are
// *Item values. Selection of items already in the tree must go through
// SetSelected to keep the selected count right.
type Tree struct {
	mu            sync.RWMutex
	roots         []*Item
	defaultHeight int
	selected      int
}

// New creates a tree from top-level items
func New(items ...*Item) *Tree {
	return NewWithHeight(DefaultHeight, items...)
}

// NewWithHeight creates a tree whose items default to the given row height
func NewWithHeight(height int, items ...*Item) *Tree {
	if height < 1 {
		height = DefaultHeight
	}
	if items == nil {
		items = []*Item{}
	}
	return &Tree{
		roots:         items,
		defaultHeight: height,
		selected:      countSelected(items),
	}
}

func countSelected(items []*Item) int {
	n := 0
	for _, it := range items {
		if it.Selected {
			n++
		}
		n += countSelected(it.Children)
	}
	return n
}

// Roots returns the top-level items
func (t *Tree) Roots() []*Item {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]*Item(nil), t.roots...)
}

// lookup returns the item addressed by path; caller holds the lock
func (t *Tree) lookup(path domain.Path) *Item {
	siblings := t.roots
	var it *Item
	for _, idx := range path {
		if idx < 0 || idx >= len(siblings) {
			return nil
		}
		it = siblings[idx]
		siblings = it.Children
	}
	return it
}

// ChildAt implements domain.Provider
func (t *Tree) ChildAt(path domain.Path, level int) domain.Node {
	if level < 0 || level >= len(path) {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if it := t.lookup(path[:level+1]); it != nil {
		return it
	}
	return nil
}

// ChildCount implements domain.Provider
func (t *Tree) ChildCount(path domain.Path, level int) int {
	if level < 0 || level > len(path) {
		return -1
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if level == 0 {
		return len(t.roots)
	}
	it := t.lookup(path[:level])
	if it == nil || !it.IsContainer() {
		return -1
	}
	return len(it.Children)
}

// IsVisible implements domain.Provider
func (t *Tree) IsVisible(n domain.Node) bool {
	it, ok := n.(*Item)
	if !ok {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !it.Hidden
}

// IsOpen implements domain.Provider
func (t *Tree) IsOpen(n domain.Node) bool {
	it, ok := n.(*Item)
	if !ok {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return it.Open && it.IsContainer()
}

// Height implements domain.Provider
func (t *Tree) Height(n domain.Node) int {
	it, ok := n.(*Item)
	if !ok {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if it.Height > 0 {
		return it.Height
	}
	return t.defaultHeight
}

// IsSelected implements domain.Selector
func (t *Tree) IsSelected(n domain.Node) bool {
	it, ok := n.(*Item)
	if !ok {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return it.Selected
}

// SetSelected implements domain.Selector
func (t *Tree) SetSelected(n domain.Node, selected bool) {
	it, ok := n.(*Item)
	if !ok {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if it.Selected == selected {
		return
	}
	it.Selected = selected
	if selected {
		t.selected++
	} else {
		t.selected--
	}
}

// SelectedCount implements domain.SelectionCounter
func (t *Tree) SelectedCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selected
}

// SetOpen implements domain.Expander
func (t *Tree) SetOpen(n domain.Node, open bool) {
	if it, ok := n.(*Item); ok {
		t.mu.Lock()
		it.Open = open
		t.mu.Unlock()
	}
}

// SetHidden changes an item's visibility
func (t *Tree) SetHidden(n domain.Node, hidden bool) {
	if it, ok := n.(*Item); ok {
		t.mu.Lock()
		it.Hidden = hidden
		t.mu.Unlock()
	}
}

// Label implements domain.Labeler
func (t *Tree) Label(n domain.Node) string {
	if it, ok := n.(*Item); ok {
		return it.Label
	}
	return ""
}

// Description implements domain.Describer
func (t *Tree) Description(n domain.Node) string {
	if it, ok := n.(*Item); ok {
		return it.Description
	}
	return ""
}

// IsEnabled implements domain.Enabler
func (t *Tree) IsEnabled(n domain.Node) bool {
	it, ok := n.(*Item)
	if !ok {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !it.Disabled
}

// Item returns the item addressed by path
func (t *Tree) Item(path domain.Path) (*Item, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	it := t.lookup(path)
	if it == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return it, nil
}

// Insert places item at index among the children of parent. An empty parent
// path inserts at top level; index is clamped to the sibling range.
func (t *Tree) Insert(parent domain.Path, index int, item *Item) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	siblings := &t.roots
	if len(parent) > 0 {
		p := t.lookup(parent)
		if p == nil {
			return fmt.Errorf("%w: %s", ErrInvalidPath, parent)
		}
		p.Container = true
		siblings = &p.Children
	}

	if index < 0 {
		index = 0
	}
	if index > len(*siblings) {
		index = len(*siblings)
	}
	*siblings = append(*siblings, nil)
	copy((*siblings)[index+1:], (*siblings)[index:])
	(*siblings)[index] = item
	t.selected += countSelected([]*Item{item})
	return nil
}

// Remove deletes the item addressed by path and returns it
func (t *Tree) Remove(path domain.Path) (*Item, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: cannot remove root", ErrInvalidPath)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	siblings := &t.roots
	if len(path) > 1 {
		p := t.lookup(path[:len(path)-1])
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
		}
		siblings = &p.Children
	}
	idx := path[len(path)-1]
	if idx < 0 || idx >= len(*siblings) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	removed := (*siblings)[idx]
	*siblings = append((*siblings)[:idx], (*siblings)[idx+1:]...)
	t.selected -= countSelected([]*Item{removed})
	return removed, nil
}

// SetAllOpen opens or closes every container
func (t *Tree) SetAllOpen(open bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var walk func(items []*Item)
	walk = func(items []*Item) {
		for _, it := range items {
			if it.IsContainer() {
				it.Open = open
				walk(it.Children)
			}
		}
	}
	walk(t.roots)
}
