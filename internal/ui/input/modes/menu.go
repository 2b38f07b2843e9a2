package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"treenav/internal/ui/input/types"
)

// MenuMode forwards keys to the popup menu state machine. The model leaves
// the mode once the menu reports a pick or a cancel.
type MenuMode struct{}

func NewMenuMode() *MenuMode {
	return &MenuMode{}
}

func (m *MenuMode) Name() string {
	return "menu"
}

func (m *MenuMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *MenuMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *MenuMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "up", "k":
		return menuKey("up"), true
	case "down", "j":
		return menuKey("down"), true
	case "left", "h":
		return menuKey("left"), true
	case "right", "l":
		return menuKey("right"), true
	case "enter", " ":
		return menuKey("enter"), true
	case "esc", "q", "m":
		return menuKey("esc"), true
	}
	// Swallow everything else while the menu is posted
	return nil, true
}

func menuKey(key string) []types.Action {
	return []types.Action{types.MenuKeyAction{Key: key}}
}
