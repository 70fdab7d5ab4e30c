package wsguard

import (
	"sync"
)

type listener func(Event)

// eventEmitter fans supervisor events out to any number of listeners per
// event type. Emission is synchronous: Emit returns once every listener for
// the event has run.
type eventEmitter struct {
	listeners map[EventType][]listener
	lock      sync.RWMutex
}

func newEventEmitter() *eventEmitter {
	return &eventEmitter{
		listeners: make(map[EventType][]listener),
	}
}

// On registers a new listener for the given event type.
func (e *eventEmitter) On(t EventType, fn listener) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.listeners[t] = append(e.listeners[t], fn)
}

// Emit invokes every listener registered for ev.Type with ev.
func (e *eventEmitter) Emit(ev Event) {
	e.lock.RLock()
	defer e.lock.RUnlock()

	for _, fn := range e.listeners[ev.Type] {
		fn(ev)
	}
}

// Close drops all listeners to prevent leaks once the supervisor is done.
func (e *eventEmitter) Close() {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.listeners = make(map[EventType][]listener)
}
