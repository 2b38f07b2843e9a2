package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"treenav/internal/domain"
	"treenav/internal/engine"
	"treenav/internal/menu"
)

// MenuRenderer draws a popup menu as one line per visible entry, posted
// submenus indented under their parent. Line i is the menu's content row i,
// so pointer rows map straight onto menu events.
type MenuRenderer struct {
	styles *Styles
}

// NewMenuRenderer creates a new menu renderer
func NewMenuRenderer(styles *Styles) *MenuRenderer {
	return &MenuRenderer{styles: styles}
}

// RenderMenu renders every visible entry of m
func (r *MenuRenderer) RenderMenu(m *menu.Menu) (string, error) {
	e := m.Engine()
	labeler, _ := e.Provider().(domain.Labeler)
	enabler, _ := e.Provider().(domain.Enabler)

	type line struct {
		text    string
		current bool
		enabled bool
	}
	var lines []line
	width := 0

	walker := e.Cursor(engine.Scratch)
	cur := e.Cursor(engine.Current)
	n, err := e.GotoTop(walker)
	for n != nil && err == nil {
		label := ""
		if labeler != nil {
			label = labeler.Label(n)
		}
		text := strings.Repeat("  ", walker.Depth()) + label
		if e.IsContainer(walker) {
			text += " ▸"
		}
		if w := lipgloss.Width(text); w > width {
			width = w
		}
		lines = append(lines, line{
			text:    text,
			current: cur.IsSet() && e.Compare(walker, cur) == engine.OrderSame,
			enabled: enabler == nil || enabler.IsEnabled(n),
		})
		n, err = e.NextVisible(walker)
	}
	if err != nil {
		return "", err
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		text := pad(l.text, width)
		switch {
		case l.current:
			out[i] = r.styles.MenuCursor.Render(text)
		case !l.enabled:
			out[i] = r.styles.Disabled.Render(text)
		default:
			out[i] = text
		}
	}
	return strings.Join(out, "\n"), nil
}
