package ui

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treenav/internal/config"
	"treenav/internal/discovery"
	"treenav/internal/domain"
	"treenav/internal/fstree"
	"treenav/internal/outline"
	inputtypes "treenav/internal/ui/input/types"
	"treenav/internal/ui/services/selection"
)

func newTestModel(t *testing.T) (*Model, *outline.Tree) {
	t.Helper()
	tree := outline.New(
		outline.Branch("docs", false,
			outline.Leaf("readme"),
			outline.Leaf("changelog"),
		),
		outline.Leaf("main"),
		outline.Leaf("notes"),
	)
	cfg := config.DefaultConfig()
	cfg.UISettings.AutosaveOnExit = false
	src := &discovery.Source{Kind: discovery.KindOutline, Title: "sample", Provider: tree}

	m := NewModel(nil, cfg, src)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, tree
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func selectedPaths(t *testing.T, m *Model) []domain.Path {
	t.Helper()
	paths, err := m.coord.Selection.Selected()
	require.NoError(t, err)
	return paths
}

func TestViewShowsTree(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.View()
	assert.Contains(t, out, "treenav")
	assert.Contains(t, out, "sample")
	assert.Contains(t, out, "docs")
	assert.Contains(t, out, "main")
	assert.NotContains(t, out, "readme")
}

func TestViewBeforeSize(t *testing.T) {
	tree := outline.New(outline.Leaf("a"))
	m := NewModel(nil, nil, &discovery.Source{Kind: discovery.KindOutline, Provider: tree})
	assert.Equal(t, "Loading...", m.View())
}

func TestKeysMoveAndToggle(t *testing.T) {
	m, tree := newTestModel(t)

	press(m, "enter")
	docs, err := tree.Item(domain.Path{0})
	require.NoError(t, err)
	assert.True(t, docs.Open)
	assert.Contains(t, m.View(), "readme")

	press(m, "j", "j")
	assert.Equal(t, domain.Path{0, 1}, m.coord.Navigation.CurrentPath())
	assert.Equal(t, []domain.Path{{0, 1}}, selectedPaths(t, m))

	press(m, "h")
	assert.Equal(t, domain.Path{0}, m.coord.Navigation.CurrentPath())
}

func TestMultiSelectKeys(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "v")
	assert.Equal(t, selection.ModeMulti, m.coord.Selection.Mode())

	press(m, "j", " ", "J")
	assert.Equal(t, domain.Path{2}, m.coord.Navigation.CurrentPath())
	assert.Equal(t, []domain.Path{{0}, {1}, {2}}, selectedPaths(t, m))

	press(m, "esc")
	assert.Empty(t, selectedPaths(t, m))
}

func TestShiftArrowsExtendFromAnchor(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "v", "esc")
	require.Empty(t, selectedPaths(t, m))

	m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	assert.Equal(t, domain.Path{2}, m.coord.Navigation.CurrentPath())
	assert.Equal(t, []domain.Path{{0}, {1}, {2}}, selectedPaths(t, m))

	m.Update(tea.KeyMsg{Type: tea.KeyShiftUp})
	assert.Equal(t, domain.Path{1}, m.coord.Navigation.CurrentPath())
	assert.Equal(t, []domain.Path{{0}, {1}, {2}}, selectedPaths(t, m))

	// a plain move ends the extension
	press(m, "j")
	assert.False(t, m.coord.Selection.HasAnchor())
}

func TestShiftClickSelectsRange(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "v", "esc", "j")
	m.View()
	top := m.layout.ListTop

	m.Update(tea.MouseMsg{X: 4, Y: top + 2, Shift: true, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, domain.Path{2}, m.coord.Navigation.CurrentPath())
	assert.Equal(t, []domain.Path{{1}, {2}}, selectedPaths(t, m))

	// the anchor stays on main, so clicking above it extends upward
	m.Update(tea.MouseMsg{X: 4, Y: top, Shift: true, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, domain.Path{0}, m.coord.Navigation.CurrentPath())
	assert.Equal(t, []domain.Path{{0}, {1}, {2}}, selectedPaths(t, m))
	assert.Contains(t, m.View(), "3 selected")
}

func TestActionMenuTogglesContainer(t *testing.T) {
	m, tree := newTestModel(t)

	press(m, "m")
	require.Equal(t, inputtypes.ModeMenu, m.inputHandler.CurrentMode())
	assert.Contains(t, m.View(), entryToggle)

	press(m, "enter")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
	docs, err := tree.Item(domain.Path{0})
	require.NoError(t, err)
	assert.True(t, docs.Open)
}

func TestActionMenuSubmenuPick(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "m")
	// Open / close, Select, Tree, Selection mode
	press(m, "down", "down", "down", "right")
	// Single is disabled in single mode, so Multi is highlighted
	press(m, "enter")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
	assert.Equal(t, selection.ModeMulti, m.coord.Selection.Mode())
}

func TestEnterOnLeafOpensMenu(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "j", "enter")
	require.Equal(t, inputtypes.ModeMenu, m.inputHandler.CurrentMode())

	press(m, "esc")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
	assert.NotContains(t, m.View(), entryToggle)
}

func TestIncrementalSearch(t *testing.T) {
	m, tree := newTestModel(t)

	press(m, "/", "c", "h", "a")
	assert.Equal(t, "cha", m.coord.Search.GetQuery())
	assert.Equal(t, domain.Path{0, 1}, m.coord.Navigation.CurrentPath())
	docs, err := tree.Item(domain.Path{0})
	require.NoError(t, err)
	assert.True(t, docs.Open)

	press(m, "enter")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
	assert.Contains(t, m.View(), "(1/1)")
}

func TestQuitCommand(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.processAction(inputtypes.QuitAction{})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, quitMsg{saveConfig: true}, msg)

	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestHelpPopupSwallowsKeys(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "?")
	assert.True(t, m.showHelp)
	press(m, "j")
	assert.Equal(t, domain.Path{0}, m.coord.Navigation.CurrentPath())
	press(m, "?")
	assert.False(t, m.showHelp)
}

func TestOutlineText(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "Z")

	text, err := m.outlineText()
	require.NoError(t, err)
	assert.Contains(t, text, "readme")
	assert.Contains(t, text, "notes")
}

// lockedFS refuses to list one directory
type lockedFS struct {
	fstest.MapFS
}

func (l lockedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == "locked" {
		return nil, errors.New("permission denied")
	}
	return l.MapFS.ReadDir(name)
}

func TestInfoShowsListingError(t *testing.T) {
	tree := fstree.New(lockedFS{fstest.MapFS{"locked/f": {}, "open/g": {}}}, fstree.Options{})
	cfg := config.DefaultConfig()
	cfg.UISettings.AutosaveOnExit = false
	m := NewModel(nil, cfg, &discovery.Source{Kind: discovery.KindDirectory, Title: "root", Provider: tree})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	press(m, "i")
	out := m.View()
	assert.Contains(t, out, "locked/")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "Row cache:")
}
