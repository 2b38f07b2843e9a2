package selection

import (
	"fmt"
	"strings"

	"treenav/internal/domain"
	"treenav/internal/engine"
)

// Mode is the selection policy of a widget
type Mode int

const (
	// ModeSingle keeps at most one node selected, the one under Current
	ModeSingle Mode = iota
	// ModeMulti lets any subset be selected
	ModeMulti
)

func (m Mode) String() string {
	if m == ModeMulti {
		return "multi"
	}
	return "single"
}

// ParseMode reads a mode name as written in the config file
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return ModeSingle, nil
	case "multi", "multiple":
		return ModeMulti, nil
	default:
		return ModeSingle, fmt.Errorf("unknown select mode %q", s)
	}
}

// State holds selection state
type State struct {
	Mode     Mode
	Dragging bool
	// Polarity is the value a drag applies to items it moves onto
	Polarity bool
	// Single is the node SelectOnly selected last
	Single domain.Path
	// Anchor is where keyboard and shift-click range extension starts
	Anchor domain.Path
}

// Result reports the outcome of a selection operation. Completed is false
// when the widget was destroyed by a change handler; the caller must then
// stop touching it. Err is set when the engine failed part way; changes made
// before the failure stay applied.
type Result struct {
	Changed   bool
	Completed bool
	Err       error
}

// Liveness tells a running operation whether its widget still exists
type Liveness interface {
	Alive() bool
}

// Token is a Liveness that stays alive until killed
type Token struct {
	dead bool
}

// Alive implements Liveness
func (t *Token) Alive() bool { return t != nil && !t.dead }

// Kill marks the widget destroyed
func (t *Token) Kill() { t.dead = true }

// Noter receives redraw notes for changed items
type Noter interface {
	NoteChanged(c *engine.Cursor)
	NoteAll()
}
