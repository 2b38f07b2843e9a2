package navigation

import (
	"treenav/internal/domain"
	"treenav/internal/engine"
)

// State holds all navigation-related state. Offsets and heights are in
// content rows.
type State struct {
	ViewportOffset int
	ViewportHeight int
	// ContentHeight is the total height of all visible rows, -1 when it
	// must be recomputed
	ContentHeight int
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionLeft     Direction = "left"
	DirectionRight    Direction = "right"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// Noter receives redraw notes
type Noter interface {
	NoteChanged(c *engine.Cursor)
	NoteAll()
}

// CommitFunc is called with the cursor a move is about to land on, before
// Current follows it. It returns false when the widget no longer exists.
type CommitFunc func(c *engine.Cursor) bool

// Event types for navigation changes
type CursorMovedEvent struct {
	Old domain.Path
	New domain.Path
}

type ViewportChangedEvent struct {
	Offset int
	Height int
}
