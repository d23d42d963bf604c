package playback

import (
	"context"
	"sync"
)

// Loop serializes every mutation of a Machine and its peers onto one goroutine.
// Backends hand their events to Post; Run executes them in order.
type Loop struct {
	queue chan func()

	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop. Posted funcs wait until Run is called.
func NewLoop() *Loop {
	return &Loop{
		queue: make(chan func(), 256),
		done:  make(chan struct{}),
	}
}

// Post schedules fn on the loop. It reports false once the loop has stopped.
// It must not be called from the loop goroutine while the queue may be full.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Sink returns an EventSink that hands events to handle on the loop.
func (l *Loop) Sink(handle func(Event)) EventSink {
	return func(event Event) {
		l.Post(func() { handle(event) })
	}
}

// Run executes posted funcs until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Stop ends Run. Calling it more than once is a no-op.
func (l *Loop) Stop() {
	l.doneOnce.Do(func() { close(l.done) })
}
