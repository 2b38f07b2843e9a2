package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is everything needed to draw one list item
type Row struct {
	Label       string
	Description string
	Depth       int
	Container   bool
	Open        bool
	Current     bool
	Selected    bool
	Multi       bool // draw a [ ] / [x] checkbox
	Match       bool // the label matches the active search
	Query       string
	Height      int // terminal lines the item occupies
	Width       int
}

// RowRenderer handles rendering of list items
type RowRenderer struct {
	styles *Styles
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles) *RowRenderer {
	return &RowRenderer{
		styles: styles,
	}
}

// RenderRow renders an item as Height lines joined by newlines
func (r *RowRenderer) RenderRow(row Row) string {
	var parts []string

	if row.Depth > 0 {
		parts = append(parts, strings.Repeat("  ", row.Depth))
	}

	if row.Multi {
		box := "[ ]"
		if row.Selected {
			box = "[x]"
		}
		parts = append(parts, box+" ")
	}

	switch {
	case row.Container && row.Open:
		parts = append(parts, "▼ ")
	case row.Container:
		parts = append(parts, "▶ ")
	default:
		parts = append(parts, "  ")
	}

	label := row.Label
	if row.Match && row.Query != "" {
		label = highlightMatch(label, row.Query, r.styles.Highlight, lipgloss.NewStyle())
	}
	parts = append(parts, label)

	if row.Description != "" {
		parts = append(parts, "  "+r.styles.Description.Render(row.Description))
	}

	line := strings.Join(parts, "")

	bgColor := ""
	switch {
	case row.Current && row.Selected && row.Multi:
		bgColor = cursorSelectedBg
	case row.Current:
		bgColor = cursorBg
	case row.Selected:
		bgColor = selectedBg
	}
	if bgColor != "" {
		line = pad(line, row.Width)
		line = lipgloss.NewStyle().Background(lipgloss.Color(bgColor)).Render(line)
	}

	height := row.Height
	if height < 1 {
		height = 1
	}
	if height == 1 {
		return line
	}
	return line + strings.Repeat("\n", height-1)
}

// RenderRowPlain renders an item without colours, for the pager and dumps
func RenderRowPlain(row Row) string {
	marker := "  "
	switch {
	case row.Container && row.Open:
		marker = "▼ "
	case row.Container:
		marker = "▶ "
	}
	sel := ""
	if row.Selected {
		sel = "* "
	}
	line := fmt.Sprintf("%s%s%s%s", strings.Repeat("  ", row.Depth), sel, marker, row.Label)
	if row.Description != "" {
		line += "  " + row.Description
	}
	return line
}

func pad(line string, width int) string {
	if width <= 0 {
		return line
	}
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

// highlightMatch highlights matching text within a string
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 || len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
