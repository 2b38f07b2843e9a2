package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Screen rows taken by everything except the list: the main container's
// padding, the title and input lines, the status and help lines.
const (
	headerLines = 2
	footerLines = 2
	paddingRows = 1
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Source        string
	Lines         []string // list lines, already cut to the viewport
	Above, Below  int      // content rows scrolled out of view
	Empty         bool
	ModeLabel     string
	SelectedCount int

	InputPrompt  string
	TextInput    string
	SearchQuery  string
	MatchCount   int
	CurrentMatch int

	StatusMessage string
	StatusIsError bool
	HelpView      string

	ShowHelp    bool
	FullHelp    string
	ShowInfo    bool
	InfoContent string
	Menu        string
}

// Layout tells the model where things landed so pointer events can be
// mapped back onto them
type Layout struct {
	ListTop   int
	MenuShown bool
	Menu      Placement
}

// MenuRow maps a screen position to a menu content row. Positions outside
// the box map to -1.
func (l Layout) MenuRow(x, y int) int {
	if !l.MenuShown {
		return -1
	}
	inner := y - l.Menu.Y - 1
	if inner < 0 || inner >= l.Menu.Height-2 || x < l.Menu.X || x >= l.Menu.X+l.Menu.Width {
		return -1
	}
	return inner
}

// ListRow maps a screen row to a viewport row, -1 when off the list
func (l Layout) ListRow(y, viewportHeight int) int {
	row := y - l.ListTop
	if row < 0 || row >= viewportHeight {
		return -1
	}
	return row
}

// ViewportHeight returns how many list rows fit in a terminal of height
func ViewportHeight(height int) int {
	h := height - 2*paddingRows - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	rowRender   *RowRenderer
	menuRender  *MenuRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		rowRender:   NewRowRenderer(styles),
		menuRender:  NewMenuRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Rows exposes the row renderer used for list items
func (r *Renderer) Rows() *RowRenderer {
	return r.rowRender
}

// Menus exposes the popup menu renderer
func (r *Renderer) Menus() *MenuRenderer {
	return r.menuRender
}

// Styles exposes the style set
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) (string, Layout) {
	layout := Layout{ListTop: paddingRows + headerLines}
	content := &strings.Builder{}

	// Title with the source right-aligned
	logo := r.styles.Title.Render("treenav")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	right := r.styles.Dim.Render(state.Source)
	gap := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	content.WriteString(logo + strings.Repeat(" ", gap) + right)
	content.WriteString("\n")

	// Input or search summary line
	switch {
	case state.InputPrompt != "":
		content.WriteString(r.styles.Prompt.Render(state.InputPrompt) + state.TextInput)
	case state.SearchQuery != "":
		summary := fmt.Sprintf("/%s  (%d matches)", state.SearchQuery, state.MatchCount)
		if state.MatchCount > 0 {
			summary = fmt.Sprintf("/%s  (%d/%d)", state.SearchQuery, state.CurrentMatch+1, state.MatchCount)
		}
		content.WriteString(r.styles.Search.Render(summary))
	}
	content.WriteString("\n")

	// List
	viewportHeight := ViewportHeight(state.Height)
	lines := state.Lines
	if state.Empty {
		lines = []string{r.styles.Dim.Render("Nothing to show.")}
	}
	if len(lines) > viewportHeight {
		lines = lines[:viewportHeight]
	}
	content.WriteString(strings.Join(lines, "\n"))
	if missing := viewportHeight - len(lines); missing > 0 {
		content.WriteString(strings.Repeat("\n", missing))
	}
	content.WriteString("\n")

	// Status line
	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpView))

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	finalContent := mainStyle.Render(content.String())

	if state.Menu != "" {
		out, placement := r.popupRender.RenderPopupOverlay(finalContent, state.Menu, state.Height, state.Width, r.styles.MenuBox)
		layout.MenuShown = true
		layout.Menu = placement
		return out, layout
	}

	if state.ShowInfo && state.InfoContent != "" {
		out, _ := r.popupRender.RenderPopupOverlay(finalContent, state.InfoContent, state.Height, state.Width, r.styles.InfoBox)
		return out, layout
	}

	if state.ShowHelp {
		out, _ := r.popupRender.RenderPopupOverlay(finalContent, state.FullHelp, state.Height, state.Width, r.styles.InfoBox)
		return out, layout
	}

	return finalContent, layout
}

func (r *Renderer) renderStatus(state ViewState) string {
	var parts []string
	if state.Above > 0 {
		parts = append(parts, r.styles.Scroll.Render(fmt.Sprintf("↑ %d above", state.Above)))
	}
	if state.Below > 0 {
		parts = append(parts, r.styles.Scroll.Render(fmt.Sprintf("↓ %d below", state.Below)))
	}
	mode := fmt.Sprintf("[%s]", state.ModeLabel)
	if state.SelectedCount > 0 {
		mode = fmt.Sprintf("%s %d selected", mode, state.SelectedCount)
	}
	parts = append(parts, r.styles.Mode.Render(mode))

	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		parts = append(parts, style.Render(state.StatusMessage))
	}
	return strings.Join(parts, "  ")
}
