package menu

import "fmt"

// State is where the menu's input handling currently is
type State int

const (
	// StateIdle means the menu is not posted yet
	StateIdle State = iota
	// StateKeyboard means the highlight follows arrow keys
	StateKeyboard
	// StatePointer means the highlight follows the pointer
	StatePointer
	// StateDone means an entry was picked or the menu was dismissed
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateKeyboard:
		return "keyboard"
	case StatePointer:
		return "pointer"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome is the result a caller acts on after each event
type Outcome int

const (
	OutcomeActive Outcome = iota
	OutcomePicked
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeActive:
		return "active"
	case OutcomePicked:
		return "picked"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// EventKind says what an Event carries
type EventKind int

const (
	EventPost EventKind = iota
	EventKey
	EventPointerMove
	EventPointerRelease
)

// Key is a menu key press
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// Event is one input delivered to the menu. Row is a content row of the
// menu for pointer events.
type Event struct {
	Kind EventKind
	Key  Key
	Row  int
}

// Post returns the event that opens the menu
func Post() Event { return Event{Kind: EventPost} }

// Press returns a key event
func Press(k Key) Event { return Event{Kind: EventKey, Key: k} }

// Move returns a pointer motion event over row
func Move(row int) Event { return Event{Kind: EventPointerMove, Row: row} }

// Release returns a pointer release event over row
func Release(row int) Event { return Event{Kind: EventPointerRelease, Row: row} }
