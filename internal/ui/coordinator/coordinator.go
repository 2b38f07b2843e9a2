package coordinator

import (
	"fmt"
	"log"

	"treenav/internal/domain"
	"treenav/internal/engine"
	"treenav/internal/eventbus"
	"treenav/internal/ui/services/damage"
	"treenav/internal/ui/services/events"
	"treenav/internal/ui/services/navigation"
	"treenav/internal/ui/services/search"
	"treenav/internal/ui/services/selection"
)

// Coordinator manages all UI services and their interactions
type Coordinator struct {
	// Services
	Engine     *engine.Engine
	Damage     *damage.Tracker
	Navigation *navigation.Service
	Selection  *selection.Service
	Search     *search.Service

	// Dependencies
	bus       events.EventBus
	domainBus eventbus.EventBus
	token     *selection.Token
}

// NewCoordinator creates a new coordinator with all services over a single
// engine. domainBus may be nil.
func NewCoordinator(bus events.EventBus, domainBus eventbus.EventBus, e *engine.Engine) *Coordinator {
	if bus == nil {
		bus = events.NewBus()
	}
	tracker := damage.NewTracker(e)
	c := &Coordinator{
		Engine:     e,
		Damage:     tracker,
		Navigation: navigation.NewService(e, bus, tracker),
		Selection:  selection.NewService(e, bus, tracker),
		Search:     search.NewService(e, bus),
		bus:        bus,
		domainBus:  domainBus,
		token:      &selection.Token{},
	}

	c.wireServices()
	c.subscribeToEvents()

	return c
}

// wireServices connects services with their dependencies
func (c *Coordinator) wireServices() {
	c.Selection.SetLiveness(c.token)

	// Single mode selects whatever Current is about to land on
	c.Navigation.SetCommitFunction(func(to *engine.Cursor) bool {
		if c.Selection.Mode() != selection.ModeSingle {
			return true
		}
		return c.Selection.SelectOnly(to, true).Completed
	})

	c.Search.SetNavigateFunction(func(p domain.Path) error {
		if err := c.Navigation.OpenAncestors(p); err != nil {
			return err
		}
		_, err := c.Navigation.GotoPath(p)
		return err
	})
}

// subscribeToEvents forwards UI events that other parts of the program
// care about to the domain bus
func (c *Coordinator) subscribeToEvents() {
	c.bus.Subscribe(events.TypeOf(domain.SelectionChangedEvent{}), func(e interface{}) {
		c.forward(e.(domain.SelectionChangedEvent))
	})

	c.bus.Subscribe(events.TypeOf(domain.NodeToggledEvent{}), func(e interface{}) {
		c.forward(e.(domain.NodeToggledEvent))
	})
}

func (c *Coordinator) forward(e domain.DomainEvent) {
	if c.domainBus != nil {
		c.domainBus.Publish(e)
	}
}

// Start places the cursor on the first item and, in single mode, selects it
func (c *Coordinator) Start() error {
	return c.Navigation.Start()
}

// SetSelectMode switches between single and multi selection. Leaving multi
// mode keeps only the current item selected.
func (c *Coordinator) SetSelectMode(mode selection.Mode) error {
	if c.Selection.Mode() == mode {
		return nil
	}
	c.Selection.SetMode(mode)
	c.Selection.ClearAnchor()
	if mode != selection.ModeSingle {
		return nil
	}

	res := c.Selection.DeselectAll(true)
	if res.Err != nil {
		return fmt.Errorf("failed to clear selection: %w", res.Err)
	}
	if !res.Completed {
		return nil
	}
	if cur := c.Engine.Cursor(engine.Current); cur.IsSet() {
		c.Selection.SelectOnly(cur, true)
	}
	return nil
}

// Reload re-derives every cursor after the provider changed shape behind
// the engine's back
func (c *Coordinator) Reload() error {
	if err := c.Navigation.Relayout(); err != nil {
		return fmt.Errorf("failed to reload tree: %w", err)
	}
	if err := c.Search.Refresh(); err != nil {
		log.Printf("Search refresh failed: %v", err)
	}
	return nil
}

// SetProvider swaps in a new tree and starts over at its first item
func (c *Coordinator) SetProvider(p domain.Provider) error {
	c.Engine.SetProvider(p)
	c.Selection.Forget()
	c.Search.ClearSearch()
	c.Damage.NoteAll()
	return c.Start()
}

// PublishConfigChange asks the config service to record the UI settings
func (c *Coordinator) PublishConfigChange(showHidden bool) {
	c.forward(domain.ConfigChangedEvent{
		SelectMode: c.Selection.Mode().String(),
		ShowHidden: showHidden,
	})
}

// PublishMenuPick reports a chosen popup menu entry on the domain bus
func (c *Coordinator) PublishMenuPick(p domain.Path, label string) {
	c.forward(domain.MenuPickedEvent{Path: p, Label: label})
}

// PublishError reports a failure on the domain bus and the log
func (c *Coordinator) PublishError(message string, err error) {
	log.Printf("%s: %v", message, err)
	c.forward(domain.ErrorEvent{Message: message, Err: err})
}

// Close marks the widget destroyed; running selection operations stop at
// their next callback
func (c *Coordinator) Close() {
	c.token.Kill()
}

// SetViewportHeight updates viewport height across services
func (c *Coordinator) SetViewportHeight(height int) {
	c.Navigation.SetViewportHeight(height)
}
