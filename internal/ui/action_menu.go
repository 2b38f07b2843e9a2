package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"treenav/internal/discovery"
	"treenav/internal/outline"
	inputtypes "treenav/internal/ui/input/types"
	"treenav/internal/ui/services/selection"
)

// Action menu entries
const (
	entryToggle      = "Open / close"
	entrySelect      = "Select"
	entrySelectItem  = "Select item"
	entrySelectAll   = "Select all"
	entryDeselectAll = "Deselect all"
	entryTree        = "Tree"
	entryExpandAll   = "Expand all"
	entryCollapseAll = "Collapse all"
	entryReload      = "Reload"
	entryHidden      = "Toggle hidden"
	entryMode        = "Selection mode"
	entrySingle      = "Single"
	entryMulti       = "Multi"
	entryInfo        = "Info"
	entryPager       = "Open in pager"
	entrySeparator   = "────────"
	entryQuit        = "Quit"
)

// newActionMenu builds the entries of the popup action menu
func newActionMenu() *outline.Tree {
	return outline.New(
		outline.Leaf(entryToggle),
		outline.Branch(entrySelect, false,
			outline.Leaf(entrySelectItem),
			outline.Leaf(entrySelectAll),
			outline.Leaf(entryDeselectAll),
		),
		outline.Branch(entryTree, false,
			outline.Leaf(entryExpandAll),
			outline.Leaf(entryCollapseAll),
			outline.Leaf(entryReload),
			outline.Leaf(entryHidden),
		),
		outline.Branch(entryMode, false,
			outline.Leaf(entrySingle),
			outline.Leaf(entryMulti),
		),
		outline.Leaf(entryInfo),
		outline.Leaf(entryPager),
		outline.Leaf(entrySeparator).Disable(),
		outline.Leaf(entryQuit),
	)
}

// updateMenuEntries enables the entries that make sense for the current
// item and selection mode
func (m *Model) updateMenuEntries() {
	ctx := m.inputContext()
	multi := m.coord.Selection.Mode() == selection.ModeMulti

	enabled := map[string]bool{
		entryToggle:      ctx.IsOnContainer(),
		entrySelectItem:  ctx.HasCurrent(),
		entrySelectAll:   multi,
		entryDeselectAll: multi && ctx.HasSelection(),
		entryHidden:      m.source.Kind == discovery.KindDirectory,
		entrySingle:      multi,
		entryMulti:       !multi,
		entryInfo:        ctx.HasCurrent(),
	}
	setEnabled(m.menuEntries.Roots(), enabled)
}

func setEnabled(items []*outline.Item, enabled map[string]bool) {
	for _, it := range items {
		if on, ok := enabled[it.Label]; ok {
			it.Disabled = !on
		}
		setEnabled(it.Children, enabled)
	}
}

// runMenuAction turns a picked entry into the matching input action
func (m *Model) runMenuAction(label string) tea.Cmd {
	var action inputtypes.Action
	switch label {
	case entryToggle:
		action = inputtypes.ToggleOpenAction{}
	case entrySelectItem:
		action = inputtypes.SelectAction{}
	case entrySelectAll:
		action = inputtypes.SelectAllAction{}
	case entryDeselectAll:
		action = inputtypes.DeselectAllAction{}
	case entryExpandAll:
		action = inputtypes.ExpandAllAction{Open: true}
	case entryCollapseAll:
		action = inputtypes.ExpandAllAction{Open: false}
	case entryReload:
		action = inputtypes.RefreshAction{}
	case entryHidden:
		action = inputtypes.ToggleHiddenAction{}
	case entrySingle:
		return m.setSelectMode(selection.ModeSingle)
	case entryMulti:
		return m.setSelectMode(selection.ModeMulti)
	case entryInfo:
		action = inputtypes.ToggleInfoAction{}
	case entryPager:
		action = inputtypes.OpenPagerAction{}
	case entryQuit:
		action = inputtypes.QuitAction{}
	default:
		return nil
	}
	return m.processAction(action)
}
