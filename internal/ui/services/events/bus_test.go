package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinged struct{ n int }

func TestPublishRunsHandlersInline(t *testing.T) {
	bus := NewBus()
	var got []int
	bus.Subscribe(TypeOf(pinged{}), func(e interface{}) {
		got = append(got, e.(pinged).n)
	})
	bus.Subscribe(TypeOf(pinged{}), func(e interface{}) {
		got = append(got, e.(pinged).n*10)
	})

	bus.Publish(pinged{n: 1})
	assert.Equal(t, []int{1, 10}, got, "handlers ran before Publish returned")

	bus.Publish("unrelated")
	assert.Len(t, got, 2)
}

func TestHandlerMayPublishAndSubscribe(t *testing.T) {
	bus := NewBus()
	var nested bool
	bus.Subscribe(TypeOf(pinged{}), func(e interface{}) {
		bus.Subscribe("string", func(interface{}) { nested = true })
		bus.Publish("hello")
	})

	require.NotPanics(t, func() { bus.Publish(pinged{}) })
	assert.True(t, nested)
}

func TestHandlerPanicIsContained(t *testing.T) {
	bus := NewBus()
	reached := false
	bus.Subscribe(TypeOf(pinged{}), func(interface{}) { panic("boom") })
	bus.Subscribe(TypeOf(pinged{}), func(interface{}) { reached = true })

	require.NotPanics(t, func() { bus.Publish(pinged{}) })
	assert.True(t, reached)
}

func TestRecorderKeepsEvents(t *testing.T) {
	r := NewRecorder()
	delivered := 0
	r.Subscribe(TypeOf(pinged{}), func(interface{}) { delivered++ })

	r.Publish(pinged{n: 3})
	r.Publish("x")

	require.Len(t, r.Events, 2)
	assert.Equal(t, pinged{n: 3}, r.Events[0])
	assert.Equal(t, 1, delivered)
	assert.Equal(t, "events.pinged", TypeOf(pinged{}))
}
