package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventNodeToggled      EventType = "NodeToggled"
	EventMenuPicked       EventType = "MenuPicked"
	EventError            EventType = "Error"
	EventSourceLoaded     EventType = "SourceLoaded"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventConfigChanged    EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted after a selection operation changed at
// least one node. Bulk is set when a mass operation reports once for many
// nodes; Path is then empty.
type SelectionChangedEvent struct {
	Path     Path
	Selected bool
	Bulk     bool
	Count    int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// NodeToggledEvent is emitted when a container is opened or closed
type NodeToggledEvent struct {
	Path Path
	Open bool
}

func (e NodeToggledEvent) Type() EventType { return EventNodeToggled }

// MenuPickedEvent is emitted when a popup menu entry is chosen
type MenuPickedEvent struct {
	Path  Path
	Label string
}

func (e MenuPickedEvent) Type() EventType { return EventMenuPicked }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// SourceLoadedEvent is emitted when a node provider has been built from an
// outline file or directory
type SourceLoadedEvent struct {
	Source string
	Kind   string
}

func (e SourceLoadedEvent) Type() EventType { return EventSourceLoaded }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Source     string
	SelectMode string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	SelectMode string
	ShowHidden bool
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
