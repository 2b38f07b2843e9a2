package ui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"treenav/internal/engine"
	"treenav/internal/menu"
	inputtypes "treenav/internal/ui/input/types"
	"treenav/internal/ui/services/navigation"
	"treenav/internal/ui/services/selection"
)

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	// Range extension runs from the item where the last plain action left off
	if _, ok := action.(inputtypes.ExtendSelectionAction); !ok {
		m.coord.Selection.ClearAnchor()
	}

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if _, err := m.coord.Navigation.Navigate(navigation.Direction(a.Direction)); err != nil {
			return m.fail("Failed to move", err)
		}
		return nil

	case inputtypes.ToggleOpenAction:
		if err := m.coord.Navigation.ToggleOpen(); err != nil {
			return m.fail("Failed to toggle", err)
		}
		return nil

	case inputtypes.ExpandAllAction:
		if err := m.coord.Navigation.SetAllOpen(a.Open); err != nil {
			return m.fail("Failed to change tree", err)
		}
		return nil

	case inputtypes.SelectAction:
		cur := m.coord.Engine.Cursor(engine.Current)
		if !cur.IsSet() {
			return nil
		}
		if m.coord.Selection.Mode() == selection.ModeMulti {
			return m.checkSelection("Failed to select", m.coord.Selection.Toggle(cur, true))
		}
		return m.checkSelection("Failed to select", m.coord.Selection.SelectOnly(cur, true))

	case inputtypes.ExtendSelectionAction:
		return m.extendSelection(navigation.Direction(a.Direction))

	case inputtypes.SelectAllAction:
		return m.checkSelection("Failed to select all", m.coord.Selection.SelectAllRaw(true, true))

	case inputtypes.DeselectAllAction:
		if m.coord.Selection.Mode() == selection.ModeMulti {
			return m.checkSelection("Failed to clear selection", m.coord.Selection.DeselectAll(true))
		}
		return nil

	case inputtypes.ToggleSelectModeAction:
		mode := selection.ModeMulti
		if m.coord.Selection.Mode() == selection.ModeMulti {
			mode = selection.ModeSingle
		}
		return m.setSelectMode(mode)

	case inputtypes.ChangeModeAction:
		if a.Mode == inputtypes.ModeMenu {
			return m.openMenu()
		}
		return nil

	case inputtypes.UpdateTextAction:
		// Incremental search
		return m.search(a.Text)

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeSearch {
			return m.search(a.Text)
		}
		return nil

	case inputtypes.CancelTextAction:
		m.coord.Search.ClearSearch()
		m.coord.Damage.NoteAll()
		return nil

	case inputtypes.SearchNavigateAction:
		var err error
		if a.Direction == "prev" {
			err = m.coord.Search.NavigatePrevious()
		} else {
			err = m.coord.Search.NavigateNext()
		}
		if err != nil {
			return m.fail("Failed to jump to match", err)
		}
		return nil

	case inputtypes.MenuKeyAction:
		return m.menuKey(a.Key)

	case inputtypes.RefreshAction:
		return m.reload()

	case inputtypes.ToggleHiddenAction:
		m.showHidden = !m.showHidden
		if !m.source.SetShowHidden(m.showHidden) {
			return m.setStatus("Hidden entries only apply to directories", false)
		}
		if err := m.coord.Reload(); err != nil {
			return m.fail("Failed to reload", err)
		}
		m.coord.Damage.NoteAll()
		if m.showHidden {
			return m.setStatus("Showing hidden entries", false)
		}
		return m.setStatus("Hiding hidden entries", false)

	case inputtypes.ToggleInfoAction:
		m.showInfo = !m.showInfo
		return nil

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		return nil

	case inputtypes.OpenPagerAction:
		return m.openPager()

	case inputtypes.QuitAction:
		return func() tea.Msg { return quitMsg{saveConfig: !a.Force} }
	}

	return nil
}

// fail reports err on the status line and the domain bus
func (m *Model) fail(message string, err error) tea.Cmd {
	m.coord.PublishError(message, err)
	return m.setStatus(fmt.Sprintf("%s: %v", message, err), true)
}

// checkSelection reports a selection operation that stopped on an engine
// error. A widget destroyed during the operation is left alone.
func (m *Model) checkSelection(message string, res selection.Result) tea.Cmd {
	if !res.Completed {
		return nil
	}
	if res.Err != nil {
		return m.fail(message, res.Err)
	}
	return nil
}

// extendSelection moves one row and selects everything from the anchor,
// where extension started, to the new row. In single mode it is a plain
// move.
func (m *Model) extendSelection(dir navigation.Direction) tea.Cmd {
	if m.coord.Selection.Mode() != selection.ModeMulti {
		if _, err := m.coord.Navigation.Navigate(dir); err != nil {
			return m.fail("Failed to move", err)
		}
		return nil
	}

	cur := m.coord.Engine.Cursor(engine.Current)
	if !cur.IsSet() {
		return nil
	}
	if !m.coord.Selection.HasAnchor() {
		m.coord.Selection.SetAnchor(cur)
	}
	if _, err := m.coord.Navigation.Navigate(dir); err != nil {
		return m.fail("Failed to move", err)
	}
	return m.checkSelection("Failed to extend selection", m.coord.Selection.ExtendTo(cur, true))
}

func (m *Model) setSelectMode(mode selection.Mode) tea.Cmd {
	if err := m.coord.SetSelectMode(mode); err != nil {
		return m.fail("Failed to change selection mode", err)
	}
	m.coord.Damage.NoteAll()
	return m.setStatus(fmt.Sprintf("Selection mode: %s", mode), false)
}

func (m *Model) search(query string) tea.Cmd {
	if err := m.coord.Search.StartSearch(query); err != nil {
		return m.fail("Search failed", err)
	}
	m.coord.Damage.NoteAll()
	if m.coord.Search.GetMatchCount() == 0 {
		return nil
	}
	if err := m.coord.Search.GotoCurrentMatch(); err != nil {
		return m.fail("Failed to jump to match", err)
	}
	return nil
}

// reload reads the source again and rebuilds the layout
func (m *Model) reload() tea.Cmd {
	replaced, err := m.source.Reload()
	if err != nil {
		return m.fail("Failed to reload", err)
	}
	if replaced {
		err = m.coord.SetProvider(m.source.Provider)
	} else {
		err = m.coord.Reload()
	}
	if err != nil {
		return m.fail("Failed to reload", err)
	}
	m.coord.Damage.NoteAll()
	return m.setStatus("Reloaded", false)
}

// openPager dumps the visible tree into ov
func (m *Model) openPager() tea.Cmd {
	content, err := m.outlineText()
	if err != nil {
		return m.fail("Failed to render tree", err)
	}
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Pause rendering while the pager owns the terminal
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

var menuKeys = map[string]menu.Key{
	"up":    menu.KeyUp,
	"down":  menu.KeyDown,
	"left":  menu.KeyLeft,
	"right": menu.KeyRight,
	"enter": menu.KeyEnter,
	"esc":   menu.KeyEscape,
}

func (m *Model) menuKey(name string) tea.Cmd {
	k, ok := menuKeys[name]
	if !ok {
		return nil
	}
	return m.feedMenu(menu.Press(k))
}

// openMenu posts the action menu for the current item
func (m *Model) openMenu() tea.Cmd {
	if err := m.actionMenu.Reset(); err != nil {
		return m.closeMenu(m.fail("Failed to open menu", err))
	}
	m.updateMenuEntries()
	if _, err := m.actionMenu.Handle(menu.Post()); err != nil {
		return m.closeMenu(m.fail("Failed to open menu", err))
	}
	return nil
}

// feedMenu delivers one event to the action menu and acts on its outcome
func (m *Model) feedMenu(ev menu.Event) tea.Cmd {
	outcome, err := m.actionMenu.Handle(ev)
	if err != nil {
		return m.closeMenu(m.fail("Menu failed", err))
	}

	switch outcome {
	case menu.OutcomePicked:
		picked := m.actionMenu.Picked()
		label := m.menuEntries.Label(m.actionMenu.Highlighted())
		m.closeMenu(nil)
		m.coord.PublishMenuPick(picked, label)
		return m.runMenuAction(label)
	case menu.OutcomeCancelled:
		return m.closeMenu(nil)
	}
	return nil
}

func (m *Model) closeMenu(cmd tea.Cmd) tea.Cmd {
	if m.inputHandler.CurrentMode() == inputtypes.ModeMenu {
		m.inputHandler.ChangeMode(inputtypes.ModeNormal, m.inputContext())
	}
	if err := m.actionMenu.Reset(); err != nil {
		log.Printf("Failed to reset menu: %v", err)
	}
	return cmd
}
