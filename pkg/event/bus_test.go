package event_test

import (
	"testing"

	"github.com/aretw0/urakawa/pkg/event"
	"github.com/stretchr/testify/assert"
)

func TestBus_PublishOrder(t *testing.T) {
	var bus event.Bus[string]
	var got []string

	bus.Subscribe(func(e string) { got = append(got, "a:"+e) })
	bus.Subscribe(func(e string) { got = append(got, "b:"+e) })

	bus.Publish("x")
	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	var bus event.Bus[int]
	count := 0
	unsubscribe := bus.Subscribe(func(int) { count++ })

	bus.Publish(1)
	unsubscribe()
	unsubscribe()
	bus.Publish(2)

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_UnsubscribeDuringPublish(t *testing.T) {
	var bus event.Bus[int]
	calls := 0
	var unsubscribe func()
	unsubscribe = bus.Subscribe(func(int) {
		calls++
		unsubscribe()
	})
	bus.Subscribe(func(int) { calls++ })

	bus.Publish(1)
	assert.Equal(t, 2, calls)

	bus.Publish(2)
	assert.Equal(t, 3, calls)
}

func TestBus_NilHandler(t *testing.T) {
	var bus event.Bus[int]
	unsubscribe := bus.Subscribe(nil)
	unsubscribe()
	assert.Equal(t, 0, bus.Len())
}
