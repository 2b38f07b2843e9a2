package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"treenav/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return navigate("up"), true

	case tea.KeyDown:
		return navigate("down"), true

	case tea.KeyLeft:
		return navigate("left"), true

	case tea.KeyRight:
		return navigate("right"), true

	case tea.KeyPgUp:
		return navigate("pageup"), true

	case tea.KeyPgDown:
		return navigate("pagedown"), true

	case tea.KeyHome:
		return navigate("home"), true

	case tea.KeyEnd:
		return navigate("end"), true

	case tea.KeyShiftUp:
		return []types.Action{types.ExtendSelectionAction{Direction: "up"}}, true

	case tea.KeyShiftDown:
		return []types.Action{types.ExtendSelectionAction{Direction: "down"}}, true

	case tea.KeyEnter:
		// Enter toggles containers and opens the action menu on leaves
		if ctx.IsOnContainer() {
			return []types.Action{types.ToggleOpenAction{}}, true
		}
		if ctx.HasCurrent() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeMenu}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "j":
		return navigate("down"), true

	case "k":
		return navigate("up"), true

	case "h":
		return navigate("left"), true

	case "l":
		return navigate("right"), true

	case "J":
		return []types.Action{types.ExtendSelectionAction{Direction: "down"}}, true

	case "K":
		return []types.Action{types.ExtendSelectionAction{Direction: "up"}}, true

	case "z", "o":
		if ctx.IsOnContainer() {
			return []types.Action{types.ToggleOpenAction{}}, true
		}
		return nil, false

	case "Z":
		return []types.Action{types.ExpandAllAction{Open: true}}, true

	case "C":
		return []types.Action{types.ExpandAllAction{Open: false}}, true

	case " ":
		if !ctx.HasCurrent() {
			return nil, true
		}
		return []types.Action{types.SelectAction{}}, true

	case "a", "A":
		if !ctx.MultiSelect() {
			return nil, true
		}
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return []types.Action{types.SelectAllAction{}}, true

	case "v":
		return []types.Action{types.ToggleSelectModeAction{}}, true

	case "m":
		if ctx.HasCurrent() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeMenu}}, true
		}
		return nil, false

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case ".":
		return []types.Action{types.ToggleHiddenAction{}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "n":
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "next"}}, true
		}
		return nil, true

	case "N":
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "prev"}}, true
		}
		return nil, true

	case "p", "P":
		return []types.Action{types.OpenPagerAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "i", "I":
		return []types.Action{types.ToggleInfoAction{}}, true

	case "esc":
		// Clear selection if any, otherwise do nothing
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return nil, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return navigate("home"), true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return navigate("end"), true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}

func navigate(direction string) []types.Action {
	return []types.Action{types.NavigateAction{Direction: direction}}
}
