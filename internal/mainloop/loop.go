// Package mainloop serializes work onto a single logical UI goroutine.
package mainloop

import (
	"context"
	"errors"
	"log/slog"
)

const DefaultQueueSize = 256

var ErrStopped = errors.New("mainloop: stopped")

// Loop runs posted functions one at a time, in order, on the goroutine that
// called Run.
type Loop struct {
	queue   chan func()
	stopped chan struct{}
}

func New(size int) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Loop{
		queue:   make(chan func(), size),
		stopped: make(chan struct{}),
	}
}

// Post queues fn without blocking. It reports false and drops fn when the
// queue is full or the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopped:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	default:
		slog.Warn("Main loop queue full, dropping work", "capacity", cap(l.queue))
		return false
	}
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case l.queue <- wrapped:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes queued work until ctx is cancelled. Work still queued at that
// point is discarded.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}
