package navigation

import (
	"fmt"

	"treenav/internal/domain"
	"treenav/internal/engine"
	"treenav/internal/ui/services/events"
)

// Service moves the widget's Current cursor and keeps the viewport, the
// FirstVisible cursor and the damage notes in step with it.
type Service struct {
	state  *State
	engine *engine.Engine
	bus    events.EventBus
	damage Noter
	commit CommitFunc

	old domain.Path
}

// NewService creates a new navigation service
func NewService(e *engine.Engine, bus events.EventBus, damage Noter) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{
			ViewportHeight: 20, // Default, will be updated
			ContentHeight:  -1,
		},
		engine: e,
		bus:    bus,
		damage: damage,
	}
}

// SetCommitFunction installs the hook run before Current moves; single
// selection mode uses it to select the item the cursor lands on
func (s *Service) SetCommitFunction(fn CommitFunc) {
	s.commit = fn
}

// GetViewportOffset returns the content row at the top of the viewport
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	if height == s.state.ViewportHeight {
		return
	}
	s.state.ViewportHeight = height
	s.noteAll()
	s.ensureVisible()
}

// CurrentNode returns the node under Current, nil when the tree is empty
func (s *Service) CurrentNode() domain.Node {
	return s.engine.NodeAt(s.engine.Cursor(engine.Current))
}

// CurrentPath returns a copy of Current's path
func (s *Service) CurrentPath() domain.Path {
	return s.engine.Cursor(engine.Current).Path()
}

// Start places Current on the first visible item if it points nowhere
func (s *Service) Start() error {
	cur := s.engine.Cursor(engine.Current)
	if cur.IsSet() {
		return nil
	}
	scratch := s.engine.Cursor(engine.Scratch)
	n, err := s.engine.GotoTop(scratch)
	if err != nil {
		return fmt.Errorf("failed to find first item: %w", err)
	}
	if n == nil {
		return nil
	}
	s.moveTo(scratch)
	return nil
}

// Navigate handles navigation in a direction. It returns the node Current
// landed on, or nil when it did not move.
func (s *Service) Navigate(direction Direction) (domain.Node, error) {
	cur := s.engine.Cursor(engine.Current)
	if !cur.IsSet() {
		return nil, s.Start()
	}

	scratch := s.engine.Cursor(engine.Scratch)
	s.engine.Copy(scratch, cur)

	var n domain.Node
	var err error
	switch direction {
	case DirectionUp:
		n, err = s.engine.PreviousVisible(scratch)
	case DirectionDown:
		n, err = s.engine.NextVisible(scratch)
	case DirectionPageUp:
		n, err = s.pageUp(scratch)
	case DirectionPageDown:
		n, err = s.pageDown(scratch)
	case DirectionHome:
		n, err = s.engine.GotoTop(scratch)
	case DirectionEnd:
		n, err = s.engine.LastVisible(scratch)
	case DirectionLeft:
		return s.left(scratch)
	case DirectionRight:
		return s.right(scratch)
	default:
		return nil, fmt.Errorf("unknown direction %q", direction)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", direction, err)
	}
	if n == nil || s.engine.Compare(scratch, cur) == engine.OrderSame {
		return nil, nil
	}
	if !s.moveTo(scratch) {
		return nil, nil
	}
	return n, nil
}

// GotoPath moves Current to the given path. A path inside a closed subtree
// lands on its on-screen ancestor.
func (s *Service) GotoPath(p domain.Path) (domain.Node, error) {
	scratch := s.engine.Cursor(engine.Scratch)
	n, err := s.engine.GotoPath(scratch, p)
	if err != nil {
		return nil, fmt.Errorf("failed to go to %s: %w", p, err)
	}
	if n == nil {
		return nil, nil
	}
	for !scratch.OnScreen() {
		if n, err = s.engine.Parent(scratch); err != nil || n == nil {
			return nil, err
		}
	}
	if !s.moveTo(scratch) {
		return nil, nil
	}
	return n, nil
}

// PointAt positions Scratch on the item drawn at viewport row and returns
// it. The cursor is only valid until the next service call.
func (s *Service) PointAt(row int) (*engine.Cursor, domain.Node, error) {
	scratch := s.engine.Cursor(engine.Scratch)
	n, err := s.engine.GotoPixelOffset(scratch, s.state.ViewportOffset+row, s.state.ViewportOffset)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve row %d: %w", row, err)
	}
	if n == nil {
		return nil, nil, nil
	}
	return scratch, n, nil
}

// ClickAt moves Current to the item drawn at viewport row
func (s *Service) ClickAt(row int) (domain.Node, error) {
	c, n, err := s.PointAt(row)
	if err != nil || n == nil {
		return nil, err
	}
	if !s.moveTo(c) {
		return nil, nil
	}
	return n, nil
}

// ScrollBy moves the viewport without moving Current
func (s *Service) ScrollBy(delta int) error {
	return s.setOffset(s.state.ViewportOffset + delta)
}

// ToggleOpen opens or closes the container under Current
func (s *Service) ToggleOpen() error {
	cur := s.engine.Cursor(engine.Current)
	n := s.engine.NodeAt(cur)
	if n == nil || !s.engine.IsContainer(cur) {
		return nil
	}
	return s.setOpen(cur, n, !s.engine.Provider().IsOpen(n))
}

// SetAllOpen opens or closes every container in the tree, including ones
// under closed ancestors
func (s *Service) SetAllOpen(open bool) error {
	exp, ok := s.engine.Provider().(domain.Expander)
	if !ok {
		return nil
	}
	walker := s.engine.Cursor(engine.Scratch)
	n, err := s.engine.GotoFirstRaw(walker)
	for n != nil && err == nil {
		if s.engine.IsContainer(walker) {
			exp.SetOpen(n, open)
		}
		n, err = s.engine.NextRaw(walker)
	}
	if err != nil {
		return fmt.Errorf("failed to walk tree: %w", err)
	}
	return s.Relayout()
}

// OpenAncestors opens every closed container above p so that p is on
// screen, then lays the tree out again
func (s *Service) OpenAncestors(p domain.Path) error {
	exp, ok := s.engine.Provider().(domain.Expander)
	if !ok || len(p) < 2 {
		return nil
	}
	walker := s.engine.Cursor(engine.Scratch)
	changed := false
	for level := 1; level < len(p); level++ {
		n, err := s.engine.GotoPath(walker, p[:level])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", p[:level], err)
		}
		if n != nil && !s.engine.Provider().IsOpen(n) {
			exp.SetOpen(n, true)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.Relayout()
}

// Relayout re-derives every cursor after the tree changed shape. Current is
// restored from Focus, and lifted to its on-screen ancestor if it ended up
// inside a closed subtree.
func (s *Service) Relayout() error {
	cur := s.engine.Cursor(engine.Current)
	focus := s.engine.Cursor(engine.Focus)

	n, err := s.engine.GotoCursor(cur, focus)
	if err != nil {
		return fmt.Errorf("failed to restore cursor: %w", err)
	}
	if n == nil {
		if _, err := s.engine.GotoTop(cur); err != nil {
			return fmt.Errorf("failed to restore cursor: %w", err)
		}
	}
	for cur.IsSet() && !cur.OnScreen() {
		if _, err := s.engine.Parent(cur); err != nil {
			return fmt.Errorf("failed to restore cursor: %w", err)
		}
	}
	s.engine.Copy(focus, cur)

	s.state.ContentHeight = -1
	s.engine.Unset(s.engine.Cursor(engine.FirstVisible))
	s.noteAll()
	if err := s.setOffset(s.state.ViewportOffset); err != nil {
		return err
	}
	s.ensureVisible()
	return nil
}

// ContentHeight returns the total height of the visible rows
func (s *Service) ContentHeight() (int, error) {
	if s.state.ContentHeight >= 0 {
		return s.state.ContentHeight, nil
	}
	scratch := s.engine.Cursor(engine.Scratch)
	n, err := s.engine.LastVisible(scratch)
	if err != nil {
		return 0, fmt.Errorf("failed to measure content: %w", err)
	}
	h := 0
	if n != nil {
		h = scratch.PixelPosition() + s.engine.HeightAt(scratch)
	}
	s.state.ContentHeight = h
	return h, nil
}

// VisibleRows calls fn for every item intersecting the viewport, top to
// bottom. The cursor passed to fn is Scratch and must not be kept.
func (s *Service) VisibleRows(fn func(c *engine.Cursor, n domain.Node) bool) error {
	fv := s.engine.Cursor(engine.FirstVisible)
	if !fv.OnScreen() {
		if err := s.setOffset(s.state.ViewportOffset); err != nil {
			return err
		}
		if !fv.OnScreen() {
			return nil
		}
	}

	walker := s.engine.Cursor(engine.Scratch)
	s.engine.Copy(walker, fv)
	bottom := s.state.ViewportOffset + s.state.ViewportHeight
	n := s.engine.NodeAt(walker)
	for n != nil && walker.PixelPosition() < bottom {
		if !fn(walker, n) {
			return nil
		}
		var err error
		if n, err = s.engine.NextVisible(walker); err != nil {
			return fmt.Errorf("failed to walk rows: %w", err)
		}
	}
	return nil
}

// Internal navigation methods

func (s *Service) pageUp(c *engine.Cursor) (domain.Node, error) {
	y := c.PixelPosition() - (s.state.ViewportHeight - 1)
	if y <= 0 {
		return s.engine.GotoTop(c)
	}
	return s.engine.GotoPixelOffset(c, y, s.state.ViewportOffset)
}

func (s *Service) pageDown(c *engine.Cursor) (domain.Node, error) {
	y := c.PixelPosition() + s.engine.HeightAt(c) - 1 + (s.state.ViewportHeight - 1)
	n, err := s.engine.GotoPixelOffset(c, y, s.state.ViewportOffset)
	if err != nil || n != nil {
		return n, err
	}
	return s.engine.LastVisible(c)
}

func (s *Service) left(c *engine.Cursor) (domain.Node, error) {
	n := s.engine.NodeAt(c)
	if n == nil {
		return nil, nil
	}
	if s.engine.IsContainer(c) && s.engine.Provider().IsOpen(n) {
		return nil, s.setOpen(s.engine.Cursor(engine.Current), n, false)
	}
	p, err := s.engine.Parent(c)
	if err != nil || p == nil {
		return nil, err
	}
	if !s.moveTo(c) {
		return nil, nil
	}
	return p, nil
}

func (s *Service) right(c *engine.Cursor) (domain.Node, error) {
	n := s.engine.NodeAt(c)
	if n == nil || !s.engine.IsContainer(c) {
		return nil, nil
	}
	if !s.engine.Provider().IsOpen(n) {
		return nil, s.setOpen(s.engine.Cursor(engine.Current), n, true)
	}
	child, err := s.engine.FirstChild(c)
	if err != nil || child == nil {
		return nil, err
	}
	if !s.moveTo(c) {
		return nil, nil
	}
	return child, nil
}

func (s *Service) setOpen(c *engine.Cursor, n domain.Node, open bool) error {
	exp, ok := s.engine.Provider().(domain.Expander)
	if !ok || s.engine.Provider().IsOpen(n) == open {
		return nil
	}
	exp.SetOpen(n, open)
	s.bus.Publish(domain.NodeToggledEvent{Path: c.Path(), Open: open})
	return s.Relayout()
}

// moveTo makes c the current item. It returns false when the commit hook
// reports the widget gone.
func (s *Service) moveTo(c *engine.Cursor) bool {
	cur := s.engine.Cursor(engine.Current)
	s.old = cur.AppendPath(s.old[:0])
	s.note(cur)

	if s.commit != nil && !s.commit(c) {
		return false
	}
	s.engine.Copy(cur, c)
	s.engine.Copy(s.engine.Cursor(engine.Focus), cur)
	s.note(cur)
	s.ensureVisible()

	s.bus.Publish(CursorMovedEvent{
		Old: s.old.Clone(),
		New: cur.Path(),
	})
	return true
}

func (s *Service) ensureVisible() {
	cur := s.engine.Cursor(engine.Current)
	if !cur.IsSet() {
		return
	}
	top := cur.PixelPosition()
	bottom := top + s.engine.HeightAt(cur)
	offset := s.state.ViewportOffset

	switch {
	case top < offset:
		offset = top
	case bottom > offset+s.state.ViewportHeight:
		offset = bottom - s.state.ViewportHeight
		if offset > top {
			offset = top
		}
	default:
		return
	}
	s.setOffset(offset)
}

// setOffset scrolls to offset, clamped to the content, and moves
// FirstVisible onto the row drawn at the top of the viewport
func (s *Service) setOffset(offset int) error {
	content, err := s.ContentHeight()
	if err != nil {
		return err
	}
	if limit := content - s.state.ViewportHeight; offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}

	fv := s.engine.Cursor(engine.FirstVisible)
	old := s.state.ViewportOffset
	if offset == old && fv.OnScreen() {
		return nil
	}
	if _, err := s.engine.GotoPixelOffset(fv, offset, old); err != nil {
		return fmt.Errorf("failed to scroll: %w", err)
	}
	s.state.ViewportOffset = offset
	if offset != old {
		s.noteAll()
		s.bus.Publish(ViewportChangedEvent{
			Offset: s.state.ViewportOffset,
			Height: s.state.ViewportHeight,
		})
	}
	return nil
}

func (s *Service) note(c *engine.Cursor) {
	if s.damage != nil {
		s.damage.NoteChanged(c)
	}
}

func (s *Service) noteAll() {
	if s.damage != nil {
		s.damage.NoteAll()
	}
}
