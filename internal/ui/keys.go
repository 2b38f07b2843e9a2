package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap describes the normal-mode bindings for the help view. Dispatch
// itself lives in the input modes.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Collapse   key.Binding
	Expand     key.Binding
	Page       key.Binding
	TopBottom  key.Binding
	Toggle     key.Binding
	ExpandAll  key.Binding
	Select     key.Binding
	Extend     key.Binding
	SelectAll  key.Binding
	SelectMode key.Binding
	Menu       key.Binding
	Search     key.Binding
	NextMatch  key.Binding
	Hidden     key.Binding
	Refresh    key.Binding
	Info       key.Binding
	Pager      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Collapse:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse / parent")),
		Expand:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand / child")),
		Page:       key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("PgUp/PgDn", "page")),
		TopBottom:  key.NewBinding(key.WithKeys("g", "G", "home", "end"), key.WithHelp("gg/G", "top / bottom")),
		Toggle:     key.NewBinding(key.WithKeys("enter", "z", "o"), key.WithHelp("enter/z", "open / close")),
		ExpandAll:  key.NewBinding(key.WithKeys("Z", "C"), key.WithHelp("Z/C", "expand / collapse all")),
		Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Extend:     key.NewBinding(key.WithKeys("shift+up", "shift+down", "J", "K"), key.WithHelp("J/K", "extend selection")),
		SelectAll:  key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "select / deselect all")),
		SelectMode: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "single / multi")),
		Menu:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "actions")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextMatch:  key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n/N", "next / previous match")),
		Hidden:     key.NewBinding(key.WithKeys("."), key.WithHelp(".", "show hidden")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Info:       key.NewBinding(key.WithKeys("i", "I"), key.WithHelp("i", "info")),
		Pager:      key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("p", "open in pager")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Select, k.Menu, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Collapse, k.Expand, k.Page, k.TopBottom},
		{k.Toggle, k.ExpandAll, k.Select, k.Extend, k.SelectAll, k.SelectMode},
		{k.Menu, k.Search, k.NextMatch, k.Hidden, k.Refresh},
		{k.Info, k.Pager, k.Help, k.Quit},
	}
}
