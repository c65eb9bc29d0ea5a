// Package event provides a small typed publish/subscribe bus.
//
// Handlers run synchronously on the publisher's goroutine, in the order they
// subscribed. Publishers emit an event only after the mutation it describes has
// completed, so a handler always observes the new state.
package event

// Handler receives events of type E.
type Handler[E any] func(E)

type subscription[E any] struct {
	id int
	fn Handler[E]
}

// Bus dispatches events of type E to its subscribers.
// The zero value is ready to use. A Bus is not safe for concurrent use.
type Bus[E any] struct {
	nextID int
	subs   []subscription[E]
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (b *Bus[E]) Subscribe(fn Handler[E]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[E]{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every current subscriber.
// Subscriptions added or removed by a handler take effect on the next Publish.
func (b *Bus[E]) Publish(e E) {
	if b == nil || len(b.subs) == 0 {
		return
	}
	subs := make([]subscription[E], len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		s.fn(e)
	}
}

// Len returns the number of active subscribers.
func (b *Bus[E]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.subs)
}
