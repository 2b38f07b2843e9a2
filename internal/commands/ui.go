package commands

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"treenav/internal/discovery"
	"treenav/internal/eventbus"
	"treenav/internal/ui"
)

// runUI opens the source and runs the Bubble Tea program until quit
func runUI(so *SourceOptions) error {
	bus := eventbus.New()
	defer bus.Close()

	_, cfg, err := so.load(bus)
	if err != nil {
		return err
	}

	src, err := discovery.NewDiscoveryService(bus, cfg).Open(so.Path)
	if err != nil {
		return err
	}

	model := ui.NewModel(bus, cfg, src)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.SetProgram(p)

	// Failures reported on the bus end up in the status line
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})

	saved := make(chan struct{}, 1)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
		select {
		case saved <- struct{}{}:
		default:
		}
	})

	log.Printf("Starting UI on %s", src.Path)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	log.Printf("UI exited normally")

	// The config is saved by a bus handler; give it a moment to land
	if model.Persisted() {
		select {
		case <-saved:
		case <-time.After(time.Second):
			log.Printf("Timed out waiting for config save")
		}
	}
	return nil
}
