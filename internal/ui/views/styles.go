package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Background colours for list rows
const (
	cursorBg         = "238" // cursor row
	cursorSelectedBg = "33"  // cursor on a selected row
	selectedBg       = "240" // selected row
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Prompt      lipgloss.Style
	Search      lipgloss.Style
	InfoBox     lipgloss.Style
	MenuBox     lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Highlight   lipgloss.Style
	Description lipgloss.Style
	Disabled    lipgloss.Style
	MenuCursor  lipgloss.Style
	StatusError lipgloss.Style
	Mode        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Prompt: lipgloss.NewStyle().Bold(true),
		Search: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			Width(60).
			BorderForeground(lipgloss.Color("241")),
		MenuBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("99")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuCursor:  lipgloss.NewStyle().Background(lipgloss.Color(cursorSelectedBg)),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Mode:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
