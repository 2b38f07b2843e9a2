package menu

import (
	"fmt"

	"treenav/internal/domain"
	"treenav/internal/engine"
)

// Menu drives a cascading popup menu. The entries are a provider tree whose
// open containers are the posted submenus; the highlighted entry is the
// engine's Current cursor.
type Menu struct {
	engine *engine.Engine
	state  State
	picked domain.Path

	start domain.Path
}

type handlerFunc func(*Menu, Event) (State, error)

var dispatch = map[State]handlerFunc{
	StateIdle:     (*Menu).idle,
	StateKeyboard: (*Menu).keyboard,
	StatePointer:  (*Menu).pointer,
	StateDone:     (*Menu).done,
}

// New creates a menu over a tree of entries. The provider must implement
// domain.Expander so submenus can be posted.
func New(entries domain.Provider) *Menu {
	return &Menu{engine: engine.New(entries)}
}

// Engine exposes the menu's engine for rendering
func (m *Menu) Engine() *engine.Engine {
	return m.engine
}

// State returns the current input state
func (m *Menu) State() State {
	return m.state
}

// Picked returns the path of the chosen entry, nil unless picked
func (m *Menu) Picked() domain.Path {
	return m.picked
}

// Highlighted returns the highlighted entry, nil if none
func (m *Menu) Highlighted() domain.Node {
	return m.engine.NodeAt(m.engine.Cursor(engine.Current))
}

// Outcome reports whether the menu is still active
func (m *Menu) Outcome() Outcome {
	switch {
	case m.state != StateDone:
		return OutcomeActive
	case m.picked != nil:
		return OutcomePicked
	default:
		return OutcomeCancelled
	}
}

// Reset unposts every submenu and returns to the idle state
func (m *Menu) Reset() error {
	if err := m.closeAll(nil); err != nil {
		return err
	}
	m.state = StateIdle
	m.picked = nil
	m.engine.Cursors().Reset()
	return nil
}

// Handle feeds one event through the state machine
func (m *Menu) Handle(ev Event) (Outcome, error) {
	h, ok := dispatch[m.state]
	if !ok {
		return m.Outcome(), fmt.Errorf("menu in unknown state %s", m.state)
	}
	next, err := h(m, ev)
	if err != nil {
		return m.Outcome(), fmt.Errorf("failed to handle menu event: %w", err)
	}
	m.state = next
	return m.Outcome(), nil
}

// State handlers

func (m *Menu) idle(ev Event) (State, error) {
	switch ev.Kind {
	case EventPointerMove, EventPointerRelease:
		return m.pointer(ev)
	default:
		cur := m.engine.Cursor(engine.Current)
		n, err := m.engine.GotoTop(cur)
		if err != nil || n == nil {
			return StateDone, err
		}
		if !m.enabled(n) {
			if err := m.moveSibling(true); err != nil {
				return StateIdle, err
			}
		}
		return StateKeyboard, nil
	}
}

func (m *Menu) keyboard(ev Event) (State, error) {
	if ev.Kind != EventKey {
		if ev.Kind == EventPointerMove || ev.Kind == EventPointerRelease {
			return m.pointer(ev)
		}
		return StateKeyboard, nil
	}

	cur := m.engine.Cursor(engine.Current)
	switch ev.Key {
	case KeyUp:
		return StateKeyboard, m.moveSibling(false)
	case KeyDown:
		return StateKeyboard, m.moveSibling(true)
	case KeyRight:
		return StateKeyboard, m.postSubmenu()
	case KeyLeft:
		return StateKeyboard, m.unpostSubmenu()
	case KeyEscape:
		if cur.Depth() == 0 {
			return StateDone, nil
		}
		return StateKeyboard, m.unpostSubmenu()
	case KeyEnter:
		n := m.engine.NodeAt(cur)
		if n == nil || !m.enabled(n) {
			return StateKeyboard, nil
		}
		if m.engine.IsContainer(cur) {
			return StateKeyboard, m.postSubmenu()
		}
		m.picked = cur.Path()
		return StateDone, nil
	}
	return StateKeyboard, nil
}

func (m *Menu) pointer(ev Event) (State, error) {
	switch ev.Kind {
	case EventKey:
		return m.keyboard(ev)
	case EventPointerMove:
		_, err := m.hover(ev.Row)
		return StatePointer, err
	case EventPointerRelease:
		n, err := m.hover(ev.Row)
		if err != nil {
			return StatePointer, err
		}
		if n == nil {
			// released outside the menu
			return StateDone, nil
		}
		cur := m.engine.Cursor(engine.Current)
		if !m.enabled(n) || m.engine.IsContainer(cur) {
			return StatePointer, nil
		}
		m.picked = cur.Path()
		return StateDone, nil
	}
	return StatePointer, nil
}

func (m *Menu) done(Event) (State, error) {
	return StateDone, nil
}

// Movement

// hover highlights the entry at row and posts it if it is a submenu. It
// returns the entry under the pointer, which may be disabled.
func (m *Menu) hover(row int) (domain.Node, error) {
	scratch := m.engine.Cursor(engine.Scratch)
	n, err := m.engine.GotoPixelOffset(scratch, row, 0)
	if err != nil || n == nil || !m.enabled(n) {
		return n, err
	}

	cur := m.engine.Cursor(engine.Current)
	if m.engine.Compare(cur, scratch) == engine.OrderSame {
		return n, nil
	}
	m.engine.Copy(cur, scratch)
	m.start = cur.AppendPath(m.start[:0])
	if err := m.closeAll(m.start); err != nil {
		return nil, err
	}
	if m.engine.IsContainer(cur) {
		m.setOpen(n, true)
		if err := m.relayout(); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// moveSibling highlights the next enabled entry of the same submenu,
// wrapping at either end
func (m *Menu) moveSibling(forward bool) error {
	cur := m.engine.Cursor(engine.Current)
	if !cur.IsSet() {
		return nil
	}
	scratch := m.engine.Cursor(engine.Scratch)
	m.engine.Copy(scratch, cur)
	m.start = cur.AppendPath(m.start[:0])

	for {
		var n domain.Node
		var err error
		if forward {
			n, err = m.engine.NextSibling(scratch)
		} else {
			n, err = m.engine.PreviousSibling(scratch)
		}
		if err != nil {
			return err
		}
		if n == nil {
			if n, err = m.edge(scratch, !forward); err != nil || n == nil {
				return err
			}
		}
		if engine.ComparePath(scratch, m.start) == engine.OrderSame {
			return nil
		}
		if m.enabled(n) {
			m.engine.Copy(cur, scratch)
			return nil
		}
	}
}

// edge moves c to the first (or last) visible entry of its submenu
func (m *Menu) edge(c *engine.Cursor, last bool) (domain.Node, error) {
	var n domain.Node
	var err error
	if c.Depth() == 0 {
		n, err = m.engine.GotoTop(c)
	} else {
		if _, err = m.engine.Parent(c); err != nil {
			return nil, err
		}
		n, err = m.engine.FirstChild(c)
	}
	if err != nil || n == nil || !last {
		return n, err
	}
	for {
		next, err := m.engine.NextSibling(c)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return n, nil
		}
		n = next
	}
}

// postSubmenu opens the highlighted submenu and highlights its first
// enabled entry
func (m *Menu) postSubmenu() error {
	cur := m.engine.Cursor(engine.Current)
	n := m.engine.NodeAt(cur)
	if n == nil || !m.enabled(n) || !m.engine.IsContainer(cur) {
		return nil
	}
	m.setOpen(n, true)
	if err := m.relayout(); err != nil {
		return err
	}

	scratch := m.engine.Cursor(engine.Scratch)
	m.engine.Copy(scratch, cur)
	child, err := m.engine.FirstChild(scratch)
	if err != nil || child == nil {
		return err
	}
	m.engine.Copy(cur, scratch)
	if !m.enabled(child) {
		return m.moveSibling(true)
	}
	return nil
}

// unpostSubmenu closes the submenu holding the highlight and highlights
// its parent entry
func (m *Menu) unpostSubmenu() error {
	cur := m.engine.Cursor(engine.Current)
	if cur.Depth() == 0 {
		return nil
	}
	parent, err := m.engine.Parent(cur)
	if err != nil || parent == nil {
		return err
	}
	m.setOpen(parent, false)
	return m.relayout()
}

// closeAll closes every posted submenu that is not keep or one of its
// ancestors
func (m *Menu) closeAll(keep domain.Path) error {
	exp, ok := m.engine.Provider().(domain.Expander)
	if !ok {
		return nil
	}
	walker := m.engine.Cursor(engine.Scratch)
	changed := false
	n, err := m.engine.GotoFirstRaw(walker)
	for n != nil && err == nil {
		if m.engine.Provider().IsOpen(n) {
			ord := engine.ComparePath(walker, keep)
			if keep == nil || (ord != engine.OrderAncestor && ord != engine.OrderSame) {
				exp.SetOpen(n, false)
				changed = true
			}
		}
		n, err = m.engine.NextRaw(walker)
	}
	if err != nil {
		return err
	}
	if changed {
		return m.relayout()
	}
	return nil
}

func (m *Menu) setOpen(n domain.Node, open bool) {
	if exp, ok := m.engine.Provider().(domain.Expander); ok {
		exp.SetOpen(n, open)
	}
}

// relayout re-derives the highlight's position after a submenu changed
func (m *Menu) relayout() error {
	cur := m.engine.Cursor(engine.Current)
	if !cur.IsSet() {
		return nil
	}
	focus := m.engine.Cursor(engine.Focus)
	m.engine.Copy(focus, cur)
	_, err := m.engine.GotoCursor(cur, focus)
	return err
}

func (m *Menu) enabled(n domain.Node) bool {
	if n == nil {
		return false
	}
	if en, ok := m.engine.Provider().(domain.Enabler); ok {
		return en.IsEnabled(n)
	}
	return true
}
