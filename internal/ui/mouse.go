package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"treenav/internal/engine"
	"treenav/internal/menu"
	inputtypes "treenav/internal/ui/input/types"
	"treenav/internal/ui/services/selection"
)

const wheelStep = 3

// handleMouse maps pointer events onto the list or the posted menu
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp || m.showInfo {
		if msg.Action == tea.MouseActionPress {
			m.showHelp = false
			m.showInfo = false
		}
		return nil
	}

	if m.inputHandler.CurrentMode() == inputtypes.ModeMenu {
		return m.handleMenuMouse(msg)
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.scroll(-wheelStep)
	case tea.MouseButtonWheelDown:
		return m.scroll(wheelStep)
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Shift {
				return m.extendTo(msg.Y)
			}
			m.coord.Selection.ClearAnchor()
			return m.press(msg.Y)
		case tea.MouseButtonRight:
			m.coord.Selection.ClearAnchor()
			if _, err := m.clickRow(msg.Y); err != nil {
				return m.fail("Failed to move", err)
			}
			if !m.inputContext().HasCurrent() {
				return nil
			}
			m.inputHandler.ChangeMode(inputtypes.ModeMenu, m.inputContext())
			return m.openMenu()
		}

	case tea.MouseActionMotion:
		if m.coord.Selection.Dragging() {
			return m.drag(msg.Y)
		}

	case tea.MouseActionRelease:
		if m.coord.Selection.Dragging() {
			m.coord.Selection.EndDrag()
		}
	}
	return nil
}

func (m *Model) scroll(delta int) tea.Cmd {
	if err := m.coord.Navigation.ScrollBy(delta); err != nil {
		return m.fail("Failed to scroll", err)
	}
	m.coord.Damage.NoteAll()
	return nil
}

// clickRow moves Current to the item at screen row y. It reports whether
// Current already sat there.
func (m *Model) clickRow(y int) (bool, error) {
	row := m.layout.ListRow(y, m.coord.Navigation.GetViewportHeight())
	if row < 0 {
		return false, nil
	}
	before := m.coord.Navigation.CurrentPath()
	n, err := m.coord.Navigation.ClickAt(row)
	if err != nil || n == nil {
		return false, err
	}
	return before.Equal(m.coord.Navigation.CurrentPath()), nil
}

// press handles a left button press: multi mode starts a drag-extend,
// single mode moves Current and a second click toggles a container
func (m *Model) press(y int) tea.Cmd {
	if m.coord.Selection.Mode() == selection.ModeMulti {
		row := m.layout.ListRow(y, m.coord.Navigation.GetViewportHeight())
		if row < 0 {
			return nil
		}
		c, n, err := m.coord.Navigation.PointAt(row)
		if err != nil {
			return m.fail("Failed to select", err)
		}
		if n == nil {
			return nil
		}
		m.coord.Damage.NoteChanged(m.coord.Engine.Cursor(engine.Current))
		res := m.coord.Selection.BeginDrag(c, true)
		m.coord.Damage.NoteChanged(m.coord.Engine.Cursor(engine.Current))
		return m.checkSelection("Failed to select", res)
	}

	again, err := m.clickRow(y)
	if err != nil {
		return m.fail("Failed to move", err)
	}
	if again && m.inputContext().IsOnContainer() {
		if err := m.coord.Navigation.ToggleOpen(); err != nil {
			return m.fail("Failed to toggle", err)
		}
	}
	return nil
}

// drag extends the running drag to row y, scrolling when the pointer
// leaves the list
func (m *Model) drag(y int) tea.Cmd {
	height := m.coord.Navigation.GetViewportHeight()
	row := y - m.layout.ListTop
	switch {
	case row < 0:
		if err := m.coord.Navigation.ScrollBy(-1); err != nil {
			return m.fail("Failed to scroll", err)
		}
		m.coord.Damage.NoteAll()
		row = 0
	case row >= height:
		if err := m.coord.Navigation.ScrollBy(1); err != nil {
			return m.fail("Failed to scroll", err)
		}
		m.coord.Damage.NoteAll()
		row = height - 1
	}

	c, n, err := m.coord.Navigation.PointAt(row)
	if err != nil {
		return m.fail("Failed to select", err)
	}
	if n == nil {
		return nil
	}
	m.coord.Damage.NoteChanged(m.coord.Engine.Cursor(engine.Current))
	res := m.coord.Selection.DragTo(c, true)
	m.coord.Damage.NoteChanged(m.coord.Engine.Cursor(engine.Current))
	return m.checkSelection("Failed to extend selection", res)
}

// extendTo handles a shift-click: in multi mode everything from the anchor
// to the clicked row is selected, in single mode it is a plain click
func (m *Model) extendTo(y int) tea.Cmd {
	if m.coord.Selection.Mode() != selection.ModeMulti {
		return m.press(y)
	}
	cur := m.coord.Engine.Cursor(engine.Current)
	if !m.coord.Selection.HasAnchor() && cur.IsSet() {
		m.coord.Selection.SetAnchor(cur)
	}
	if _, err := m.clickRow(y); err != nil {
		return m.fail("Failed to move", err)
	}
	return m.checkSelection("Failed to extend selection", m.coord.Selection.ExtendTo(cur, true))
}

// handleMenuMouse feeds pointer motion and releases to the posted menu.
// A press outside the menu cancels it.
func (m *Model) handleMenuMouse(msg tea.MouseMsg) tea.Cmd {
	row := m.layout.MenuRow(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		if row < 0 {
			return nil
		}
		return m.feedMenu(menu.Move(row))
	case tea.MouseActionRelease:
		if row < 0 && m.actionMenu.State() != menu.StatePointer {
			return nil
		}
		return m.feedMenu(menu.Release(row))
	case tea.MouseActionPress:
		if row < 0 {
			return m.closeMenu(nil)
		}
		return m.feedMenu(menu.Move(row))
	}
	return nil
}
