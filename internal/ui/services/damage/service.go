package damage

import (
	"treenav/internal/engine"
)

var slots = [2]engine.Slot{engine.RedrawA, engine.RedrawB}

// Tracker accumulates the items changed since the last redraw in the
// RedrawA and RedrawB cursors. A third distinct item escalates to a full
// redraw.
type Tracker struct {
	engine *engine.Engine
	used   int
	full   bool
	rows   [2]Row
}

// NewTracker creates a tracker over the engine's redraw cursors
func NewTracker(e *engine.Engine) *Tracker {
	t := &Tracker{engine: e}
	t.clear()
	return t
}

// NoteChanged records that the item under c must be redrawn. Noting the
// same position twice is a no-op.
func (t *Tracker) NoteChanged(c *engine.Cursor) {
	if t.full || !c.IsSet() {
		return
	}
	for i := 0; i < t.used; i++ {
		if t.engine.Compare(t.engine.Cursor(slots[i]), c) == engine.OrderSame {
			return
		}
	}
	if t.used == len(slots) {
		t.NoteAll()
		return
	}
	t.engine.Copy(t.engine.Cursor(slots[t.used]), c)
	t.used++
}

// NoteAll forces a full redraw
func (t *Tracker) NoteAll() {
	t.full = true
}

// Pending reports the damage kind accumulated so far without clearing it
func (t *Tracker) Pending() Kind {
	switch {
	case t.full:
		return Full
	case t.used > 0:
		return Localized
	default:
		return None
	}
}

// Consume returns the accumulated damage and clears both redraw slots
func (t *Tracker) Consume() Damage {
	d := Damage{Kind: t.Pending()}
	if d.Kind == Localized {
		for i := 0; i < t.used; i++ {
			c := t.engine.Cursor(slots[i])
			t.rows[i].Path = c.AppendPath(t.rows[i].Path[:0])
			t.rows[i].Region = Region{Top: c.PixelPosition(), Height: t.engine.HeightAt(c)}
		}
		d.Rows = t.rows[:t.used]
	}
	t.clear()
	return d
}

func (t *Tracker) clear() {
	t.used = 0
	t.full = false
	for _, s := range slots {
		t.engine.Unset(t.engine.Cursor(s))
	}
}
