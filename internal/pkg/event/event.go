// internal/pkg/event/event.go

// Package event provides a simple synchronous state-change emitter. Stores
// embed an Emitter and publish their full state snapshot after every
// mutation, so subscribers always observe a wholesale replacement rather
// than a partial patch.
package event

import "sync"

// Emitter fans a payload out to registered subscribers.
type Emitter[T any] struct {
	mu       sync.RWMutex
	handlers []func(T)
}

// Subscribe registers a handler for future emissions.
func (e *Emitter[T]) Subscribe(handler func(T)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
}

// Emit dispatches the payload synchronously to all subscribers in
// registration order.
func (e *Emitter[T]) Emit(payload T) {
	e.mu.RLock()
	hs := make([]func(T), len(e.handlers))
	copy(hs, e.handlers)
	e.mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
}
