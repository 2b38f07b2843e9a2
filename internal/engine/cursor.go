package engine

import (
	"fmt"

	"treenav/internal/domain"
)

// Slot names one of the cursors a widget keeps in its CursorSet
type Slot int

const (
	Current Slot = iota
	Focus
	FirstVisible
	RedrawA
	RedrawB
	Scratch
	slotCount
)

// String returns the slot name
func (s Slot) String() string {
	switch s {
	case Current:
		return "current"
	case Focus:
		return "focus"
	case FirstVisible:
		return "first-visible"
	case RedrawA:
		return "redraw-a"
	case RedrawB:
		return "redraw-b"
	case Scratch:
		return "scratch"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Depth limits for a CursorSet
const (
	DefaultCapacity     = 8
	DefaultDepthCeiling = 1024
)

// Cursor (a mark) records where in the tree a widget is looking.
//
// Only path[:depth+1] is meaningful. Levels deeper than openDepth are still
// addressed but not on screen because an ancestor is closed or hidden; in
// that case pixel is the position of the row at openDepth. pixel is valid
// until the next layout-invalidating change.
type Cursor struct {
	path      []int
	depth     int
	openDepth int
	pixel     int
}

// IsSet reports whether the cursor points at anything
func (c *Cursor) IsSet() bool {
	return len(c.path) > 0 && c.path[0] >= 0
}

func (c *Cursor) unset() {
	c.path[0] = -1
	c.depth = 0
	c.openDepth = 0
	c.pixel = 0
}

// Depth is the index of the deepest addressed level
func (c *Cursor) Depth() int { return c.depth }

// OpenDepth is the deepest level whose ancestors are all open and visible
func (c *Cursor) OpenDepth() int { return c.openDepth }

// PixelPosition is the vertical offset of the cursor's row from the top of
// the content
func (c *Cursor) PixelPosition() int { return c.pixel }

// OnScreen reports whether the addressed item itself is in the displayed
// part of the tree (no closed or hidden ancestor)
func (c *Cursor) OnScreen() bool {
	return c.IsSet() && c.depth == c.openDepth
}

// Index returns the sibling index at level, or -1 beyond the cursor's depth
func (c *Cursor) Index(level int) int {
	if !c.IsSet() || level < 0 || level > c.depth {
		return -1
	}
	return c.path[level]
}

// Path returns a copy of the cursor's path, nil when unset
func (c *Cursor) Path() domain.Path {
	if !c.IsSet() {
		return nil
	}
	return c.AppendPath(make(domain.Path, 0, c.depth+1))
}

// AppendPath appends the cursor's path to dst so callers can reuse storage
func (c *Cursor) AppendPath(dst domain.Path) domain.Path {
	if !c.IsSet() {
		return dst
	}
	return append(dst, c.path[:c.depth+1]...)
}

// String formats the cursor for logs and test failures
func (c *Cursor) String() string {
	if !c.IsSet() {
		return "<unset>"
	}
	return fmt.Sprintf("%s(open %d)@%d", domain.Path(c.path[:c.depth+1]), c.openDepth, c.pixel)
}

// CursorSet owns the fixed group of named cursors of one widget. All cursors
// share one index capacity and are grown together.
type CursorSet struct {
	cursors [slotCount]Cursor

	// Work buffers used inside a single engine call. They are not slots.
	undo Cursor
	goal []int

	capacity int
	ceiling  int
}

// NewCursorSet creates a set able to address capacity levels without
// growing, and never more than ceiling levels
func NewCursorSet(capacity, ceiling int) *CursorSet {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if ceiling <= 0 {
		ceiling = DefaultDepthCeiling
	}
	if capacity > ceiling {
		capacity = ceiling
	}

	s := &CursorSet{ceiling: ceiling}
	s.resize(capacity)
	s.Reset()
	return s
}

// Get returns the cursor stored in slot
func (s *CursorSet) Get(slot Slot) *Cursor {
	return &s.cursors[slot]
}

// Capacity is the number of levels every cursor can currently address
func (s *CursorSet) Capacity() int { return s.capacity }

// Ceiling is the hard limit on capacity
func (s *CursorSet) Ceiling() int { return s.ceiling }

// Reset unsets every cursor
func (s *CursorSet) Reset() {
	for i := range s.cursors {
		s.cursors[i].unset()
	}
	s.undo.unset()
}

// Copy copies src's position into dst without allocating
func (s *CursorSet) Copy(dst, src *Cursor) {
	if dst == src {
		return
	}
	copy(dst.path, src.path[:src.depth+1])
	dst.depth = src.depth
	dst.openDepth = src.openDepth
	dst.pixel = src.pixel
}

// ensure grows every cursor so that paths of the given number of levels fit
func (s *CursorSet) ensure(levels int) error {
	if levels <= s.capacity {
		return nil
	}
	if levels > s.ceiling {
		return fmt.Errorf("%w: need %d levels, ceiling is %d", ErrDepthCeiling, levels, s.ceiling)
	}

	capacity := s.capacity * 2
	for capacity < levels {
		capacity *= 2
	}
	if capacity > s.ceiling {
		capacity = s.ceiling
	}
	s.resize(capacity)
	return nil
}

func (s *CursorSet) resize(capacity int) {
	grow := func(old []int) []int {
		p := make([]int, capacity)
		copy(p, old)
		return p
	}
	for i := range s.cursors {
		s.cursors[i].path = grow(s.cursors[i].path)
	}
	s.undo.path = grow(s.undo.path)
	s.goal = grow(s.goal)
	s.capacity = capacity
}
