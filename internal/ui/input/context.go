package input

import (
	"log"

	"treenav/internal/engine"
	"treenav/internal/ui/services/navigation"
	"treenav/internal/ui/services/search"
	"treenav/internal/ui/services/selection"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Engine     *engine.Engine
	Navigation *navigation.Service
	Selection  *selection.Service
	Search     *search.Service
}

// HasCurrent reports whether the cursor rests on a node
func (c *ModelContext) HasCurrent() bool {
	return c.Navigation.CurrentNode() != nil
}

// IsOnContainer reports whether the current node can be opened or closed
func (c *ModelContext) IsOnContainer() bool {
	return c.Engine.IsContainer(c.Engine.Cursor(engine.Current))
}

// HasSelection returns true if any items are selected
func (c *ModelContext) HasSelection() bool {
	return c.SelectedCount() > 0
}

// SelectedCount returns the number of selected items
func (c *ModelContext) SelectedCount() int {
	n, err := c.Selection.Count()
	if err != nil {
		log.Printf("Failed to count selection: %v", err)
	}
	return n
}

// MultiSelect reports whether arbitrary subsets can be selected
func (c *ModelContext) MultiSelect() bool {
	return c.Selection.Mode() == selection.ModeMulti
}

// SearchQuery returns the current search query
func (c *ModelContext) SearchQuery() string {
	return c.Search.GetQuery()
}
