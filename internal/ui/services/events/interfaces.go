package events

// EventBus is a simple interface for publishing events
type EventBus interface {
	Publish(event interface{})
	Subscribe(eventType string, handler func(interface{}))
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event interface{})                            {}
func (n *NullBus) Subscribe(eventType string, handler func(interface{})) {}

// Recorder is an EventBus that keeps every published event, for tests and
// headless runs
type Recorder struct {
	*Bus
	Events []interface{}
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{Bus: NewBus()}
}

// Publish records the event and then delivers it
func (r *Recorder) Publish(event interface{}) {
	r.Events = append(r.Events, event)
	r.Bus.Publish(event)
}
