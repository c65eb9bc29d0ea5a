package xuk

import (
	"sort"
	"sync"
)

// Factory maps qualified names to constructors of T. It replaces per-call-site
// type switches when reading polymorphic children.
type Factory[T any] struct {
	mu    sync.RWMutex
	ctors map[QName]func() T
}

// NewFactory creates an empty factory.
func NewFactory[T any]() *Factory[T] {
	return &Factory[T]{
		ctors: make(map[QName]func() T),
	}
}

// Register binds qn to ctor. An existing binding is overwritten.
func (f *Factory[T]) Register(qn QName, ctor func() T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[qn] = ctor
}

// New creates an instance for qn. The boolean is false for unknown names.
func (f *Factory[T]) New(qn QName) (T, bool) {
	f.mu.RLock()
	ctor, ok := f.ctors[qn]
	f.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}
	return ctor(), true
}

// Has reports whether qn is registered.
func (f *Factory[T]) Has(qn QName) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ctors[qn]
	return ok
}

// QNames lists the registered names in a stable order.
func (f *Factory[T]) QNames() []QName {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]QName, 0, len(f.ctors))
	for qn := range f.ctors {
		names = append(names, qn)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i].Space != names[j].Space {
			return names[i].Space < names[j].Space
		}
		return names[i].Local < names[j].Local
	})
	return names
}
