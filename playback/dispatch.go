package playback

import (
	"sync"

	"github.com/melodeck/melodeck/log"
)

// Dispatcher delivers events to a sink in order on its own goroutine.
// Emit never blocks: events that do not fit the queue are dropped.
type Dispatcher struct {
	mu     sync.Mutex
	events chan Event
	closed bool
}

// NewDispatcher starts a dispatcher feeding sink with a queue of size events.
func NewDispatcher(sink EventSink, size int) *Dispatcher {
	d := &Dispatcher{events: make(chan Event, size)}

	go func() {
		for event := range d.events {
			sink(event)
		}
	}()

	return d
}

// Emit queues event. It reports false if the event was dropped.
func (d *Dispatcher) Emit(event Event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}

	select {
	case d.events <- event:
		return true
	default:
		log.Warnf("dropping %s event: queue full", event.Kind)
		return false
	}
}

// Closed reports whether Close was called.
func (d *Dispatcher) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Close stops the dispatcher once the queued events are delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
}
