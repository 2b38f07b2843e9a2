package events

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"
)

// Bus is a synchronous event bus for UI services. Handlers run inline on the
// publishing goroutine, which is always the UI thread, so a handler sees the
// widget exactly as the publisher left it.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for an event type
func (b *Bus) Subscribe(eventType string, handler func(interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners and returns once they have run.
// Handlers may subscribe or publish themselves.
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	handlers := append([]func(interface{}){}, b.listeners[TypeOf(event)]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.dispatch(handler, event)
	}
}

func (b *Bus) dispatch(handler func(interface{}), event interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("UI event handler panic for %T: %v\n%s", event, r, debug.Stack())
		}
	}()
	handler(event)
}

// TypeOf returns the key an event is published under, e.g.
// "navigation.CursorMovedEvent"
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
