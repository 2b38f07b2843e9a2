package selection

import (
	"fmt"

	"treenav/internal/domain"
	"treenav/internal/engine"
	"treenav/internal/ui/services/events"
)

// Service orchestrates selection over the engine's cursors. Selection bits
// live in the provider (domain.Selector); the service decides which nodes
// change and reports each change on the bus when asked to.
type Service struct {
	state  *State
	engine *engine.Engine
	bus    events.EventBus
	damage Noter
	live   Liveness

	target domain.Path
}

// NewService creates a single-mode selection service
func NewService(e *engine.Engine, bus events.EventBus, damage Noter) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state:  &State{Mode: ModeSingle},
		engine: e,
		bus:    bus,
		damage: damage,
		live:   &Token{},
	}
}

// SetLiveness replaces the token checked after every change callback
func (s *Service) SetLiveness(l Liveness) {
	s.live = l
}

// Mode returns the selection mode
func (s *Service) Mode() Mode {
	return s.state.Mode
}

// SetMode switches the selection mode
func (s *Service) SetMode(m Mode) {
	s.state.Mode = m
}

// Dragging reports whether a drag-extend is in progress
func (s *Service) Dragging() bool {
	return s.state.Dragging
}

// Forget drops the paths the service remembers; used when the provider is
// replaced
func (s *Service) Forget() {
	s.state.Single = nil
	s.state.Anchor = nil
	s.state.Dragging = false
}

// IsSelected reports whether the node under c is selected
func (s *Service) IsSelected(c *engine.Cursor) bool {
	sel, ok := s.selector()
	if !ok {
		return false
	}
	n := s.engine.NodeAt(c)
	return n != nil && sel.IsSelected(n)
}

// SelectOnly clears the previous single selection, selects the node under c
// and moves Current there. The previous selection is found by the path it
// was selected at, so it is cleared even when Current was moved since, for
// example by a relayout lifting it out of a closed subtree.
func (s *Service) SelectOnly(c *engine.Cursor, fire bool) Result {
	res := Result{Completed: true}
	sel, ok := s.selector()
	if !ok {
		return res
	}
	n := s.engine.NodeAt(c)
	if n == nil {
		return res
	}

	cur := s.engine.Cursor(engine.Current)
	if !s.clearSingle(sel, c, cur, fire, &res) {
		return res
	}
	if cur != c && cur.IsSet() && s.engine.Compare(cur, c) != engine.OrderSame {
		if old := s.engine.NodeAt(cur); old != nil && sel.IsSelected(old) {
			if !s.apply(sel, cur, old, false, fire, &res) {
				return res
			}
		}
	}
	if !s.apply(sel, c, n, true, fire, &res) {
		return res
	}
	s.state.Single = c.AppendPath(s.state.Single[:0])
	s.engine.Copy(cur, c)
	return res
}

// SetSelected sets the selection bit of the node under c
func (s *Service) SetSelected(c *engine.Cursor, value, fire bool) Result {
	res := Result{Completed: true}
	sel, ok := s.selector()
	if !ok {
		return res
	}
	if n := s.engine.NodeAt(c); n != nil {
		if !value && len(s.state.Single) > 0 && engine.ComparePath(c, s.state.Single) == engine.OrderSame {
			s.state.Single = nil
		}
		s.apply(sel, c, n, value, fire, &res)
	}
	return res
}

// Toggle flips the selection of the node under c
func (s *Service) Toggle(c *engine.Cursor, fire bool) Result {
	if s.state.Mode == ModeSingle {
		if s.IsSelected(c) {
			return s.SetSelected(c, false, fire)
		}
		return s.SelectOnly(c, fire)
	}
	return s.SetSelected(c, !s.IsSelected(c), fire)
}

// SelectRange sets every visible item from from to to inclusive, walking in
// whichever direction reaches to. Current ends on to.
func (s *Service) SelectRange(from, to *engine.Cursor, value, fire bool) Result {
	res := Result{Completed: true}
	sel, ok := s.selector()
	if !ok || !from.IsSet() || !to.IsSet() {
		return res
	}

	s.target = to.AppendPath(s.target[:0])
	cur := s.engine.Cursor(engine.Current)
	s.engine.Copy(cur, from)
	forward := engine.ComparePath(cur, s.target).Precedes()

	for {
		if n := s.engine.NodeAt(cur); n != nil {
			if !s.apply(sel, cur, n, value, fire, &res) {
				return res
			}
		}

		ord := engine.ComparePath(cur, s.target)
		if ord == engine.OrderSame || ord.Precedes() != forward {
			break
		}
		n, err := s.step(cur, forward)
		if err != nil {
			res.Err = fmt.Errorf("failed to select range: %w", err)
			return res
		}
		if n == nil {
			break
		}
		if ord = engine.ComparePath(cur, s.target); ord != engine.OrderSame && ord.Precedes() != forward {
			// stepped past a target that is not on screen
			break
		}
	}

	if engine.ComparePath(cur, s.target) != engine.OrderSame {
		if _, err := s.engine.GotoPath(cur, s.target); err != nil {
			res.Err = fmt.Errorf("failed to select range: %w", err)
		}
	}
	return res
}

// SetAnchor starts range extension at c
func (s *Service) SetAnchor(c *engine.Cursor) {
	s.state.Anchor = c.AppendPath(s.state.Anchor[:0])
}

// ClearAnchor ends range extension
func (s *Service) ClearAnchor() {
	s.state.Anchor = s.state.Anchor[:0]
}

// HasAnchor reports whether a range extension is in progress
func (s *Service) HasAnchor() bool {
	return len(s.state.Anchor) > 0
}

// ExtendTo selects every visible item from the anchor to c and leaves
// Current on c. c must not be Scratch. Without an anchor, or when the
// anchored node is gone, c becomes the anchor.
func (s *Service) ExtendTo(c *engine.Cursor, fire bool) Result {
	if !c.IsSet() {
		return Result{Completed: true}
	}
	if !s.HasAnchor() {
		s.SetAnchor(c)
	}
	from := s.engine.Cursor(engine.Scratch)
	n, err := s.engine.GotoPath(from, s.state.Anchor)
	if err != nil {
		return Result{Completed: true, Err: fmt.Errorf("failed to find range anchor: %w", err)}
	}
	if n == nil {
		s.SetAnchor(c)
		s.engine.Copy(from, c)
	}
	return s.SelectRange(from, c, true, fire)
}

// DeselectAll clears every selected node, hidden or not
func (s *Service) DeselectAll(fire bool) Result {
	return s.SelectAllRaw(false, fire)
}

// SelectAllRaw sets every node in the tree, including hidden nodes and
// nodes under closed containers. Per-node reports are suppressed; a single
// bulk event is published when anything changed.
func (s *Service) SelectAllRaw(value, fire bool) Result {
	res := Result{Completed: true}
	sel, ok := s.selector()
	if !ok {
		return res
	}
	if !value {
		s.state.Single = nil
	}

	walker := s.engine.Cursor(engine.Scratch)
	count := 0
	n, err := s.engine.GotoFirstRaw(walker)
	for n != nil && err == nil {
		if sel.IsSelected(n) != value {
			sel.SetSelected(n, value)
			count++
		}
		n, err = s.engine.NextRaw(walker)
	}
	if err != nil {
		res.Err = fmt.Errorf("failed to walk tree: %w", err)
	}
	if count == 0 {
		return res
	}

	res.Changed = true
	if s.damage != nil {
		s.damage.NoteAll()
	}
	if fire {
		s.bus.Publish(domain.SelectionChangedEvent{Selected: value, Bulk: true, Count: count})
		res.Completed = s.alive()
	}
	return res
}

// BeginDrag starts a drag-extend on the item under c. The polarity for the
// whole drag is the opposite of that item's current state; the item gets it
// immediately. The anchor is kept in Focus and the pointer in Current.
func (s *Service) BeginDrag(c *engine.Cursor, fire bool) Result {
	res := Result{Completed: true}
	sel, ok := s.selector()
	if !ok {
		return res
	}
	n := s.engine.NodeAt(c)
	if n == nil {
		return res
	}

	s.state.Dragging = true
	s.state.Polarity = !sel.IsSelected(n)
	s.engine.Copy(s.engine.Cursor(engine.Focus), c)
	s.engine.Copy(s.engine.Cursor(engine.Current), c)

	cur := s.engine.Cursor(engine.Current)
	s.apply(sel, cur, n, s.state.Polarity, fire, &res)
	return res
}

// DragTo extends the drag to the item under c. Items the pointer moves onto
// away from the anchor get the drag polarity; items it retreats over toward
// the anchor get the opposite, so the selected run always ends at the
// pointer.
func (s *Service) DragTo(c *engine.Cursor, fire bool) Result {
	res := Result{Completed: true}
	sel, ok := s.selector()
	if !ok || !s.state.Dragging || !c.IsSet() {
		return res
	}

	s.target = c.AppendPath(s.target[:0])
	anchor := s.engine.Cursor(engine.Focus)
	cur := s.engine.Cursor(engine.Current)

	ord := engine.ComparePath(cur, s.target)
	if ord == engine.OrderSame {
		return res
	}
	forward := ord.Precedes()

	for ord != engine.OrderSame && ord.Precedes() == forward {
		side := s.engine.Compare(cur, anchor)
		retreating := side != engine.OrderSame && side.Precedes() == forward

		if retreating {
			if n := s.engine.NodeAt(cur); n != nil {
				if !s.apply(sel, cur, n, !s.state.Polarity, fire, &res) {
					return res
				}
			}
		}
		n, err := s.step(cur, forward)
		if err != nil {
			res.Err = fmt.Errorf("failed to extend drag: %w", err)
			return res
		}
		if n == nil {
			break
		}
		if !retreating {
			if !s.apply(sel, cur, n, s.state.Polarity, fire, &res) {
				return res
			}
		}
		ord = engine.ComparePath(cur, s.target)
	}
	return res
}

// EndDrag finishes a drag-extend; the pointer item becomes the focus
func (s *Service) EndDrag() {
	if !s.state.Dragging {
		return
	}
	s.state.Dragging = false
	s.engine.Copy(s.engine.Cursor(engine.Focus), s.engine.Cursor(engine.Current))
}

// Count returns how many nodes are selected. Providers that keep a count
// answer directly; any other provider is walked in full.
func (s *Service) Count() (int, error) {
	if sc, ok := s.engine.Provider().(domain.SelectionCounter); ok {
		return sc.SelectedCount(), nil
	}
	paths, err := s.Selected()
	return len(paths), err
}

// Selected collects the paths of every selected node. It walks the whole
// tree, closed subtrees included.
func (s *Service) Selected() ([]domain.Path, error) {
	sel, ok := s.selector()
	if !ok {
		return nil, nil
	}
	var out []domain.Path
	walker := s.engine.Cursor(engine.Scratch)
	n, err := s.engine.GotoFirstRaw(walker)
	for n != nil && err == nil {
		if sel.IsSelected(n) {
			out = append(out, walker.Path())
		}
		n, err = s.engine.NextRaw(walker)
	}
	if err != nil {
		return out, fmt.Errorf("failed to walk tree: %w", err)
	}
	return out, nil
}

// clearSingle deselects the node SelectOnly picked last when it is neither
// c nor under Current, which the caller handles itself. It returns false
// when the widget died in a change handler.
func (s *Service) clearSingle(sel domain.Selector, c, cur *engine.Cursor, fire bool, res *Result) bool {
	prev := s.state.Single
	if len(prev) == 0 || engine.ComparePath(c, prev) == engine.OrderSame || engine.ComparePath(cur, prev) == engine.OrderSame {
		return true
	}
	old := s.engine.Provider().ChildAt(prev, len(prev)-1)
	if old == nil || !sel.IsSelected(old) {
		return true
	}

	sel.SetSelected(old, false)
	res.Changed = true
	if s.damage != nil {
		// the row may be anywhere, or nowhere on screen
		s.damage.NoteAll()
	}
	if !fire {
		return true
	}
	s.bus.Publish(domain.SelectionChangedEvent{Path: prev.Clone(), Selected: false, Count: 1})
	res.Completed = s.alive()
	return res.Completed
}

// apply sets one node and reports it. It returns false when the widget died
// in a change handler.
func (s *Service) apply(sel domain.Selector, c *engine.Cursor, n domain.Node, value, fire bool, res *Result) bool {
	if sel.IsSelected(n) == value {
		return true
	}
	sel.SetSelected(n, value)
	res.Changed = true
	if s.damage != nil {
		s.damage.NoteChanged(c)
	}
	if !fire {
		return true
	}
	s.bus.Publish(domain.SelectionChangedEvent{Path: c.Path(), Selected: value, Count: 1})
	res.Completed = s.alive()
	return res.Completed
}

func (s *Service) step(c *engine.Cursor, forward bool) (domain.Node, error) {
	if forward {
		return s.engine.NextVisible(c)
	}
	return s.engine.PreviousVisible(c)
}

func (s *Service) selector() (domain.Selector, bool) {
	sel, ok := s.engine.Provider().(domain.Selector)
	return sel, ok
}

func (s *Service) alive() bool {
	return s.live == nil || s.live.Alive()
}
