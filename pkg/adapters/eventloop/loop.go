// Package eventloop provides a single-goroutine event loop implementing ports.Scheduler.
//
// Timers fire on runtime goroutines but their callbacks are queued and executed one at a time on the
// goroutine running Run, so callers never need locks around state touched only by callbacks.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/user/roiplayer/pkg/ports"
)

// ErrStopped is returned by Post after the loop has been stopped.
var ErrStopped = errors.New("eventloop: stopped")

type task struct {
	handle ports.TimerHandle
	fn     func()
}

// Loop serialises callbacks onto one goroutine.
type Loop struct {
	mu     sync.Mutex
	next   ports.TimerHandle
	timers map[ports.TimerHandle]*time.Timer

	queue    chan task
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a loop with room for queueSize callbacks waiting to run.
func New(queueSize int) *Loop {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Loop{
		timers: make(map[ports.TimerHandle]*time.Timer),
		queue:  make(chan task, queueSize),
		done:   make(chan struct{}),
	}
}

// Post queues fn to run on the loop as soon as possible.
func (l *Loop) Post(fn func()) error {
	if !l.enqueue(task{fn: fn}) {
		return ErrStopped
	}
	return nil
}

// After schedules fn to run on the loop once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) ports.TimerHandle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	h := l.next
	l.timers[h] = time.AfterFunc(d, func() {
		l.enqueue(task{handle: h, fn: fn})
	})
	return h
}

// Cancel stops a pending callback. A callback already queued is dropped when dequeued.
func (l *Loop) Cancel(h ports.TimerHandle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[h]; ok {
		t.Stop()
		delete(l.timers, h)
	}
}

// Pending returns the number of timers not yet run or cancelled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Run executes callbacks until Stop is called or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.cancelAll()
			return ctx.Err()
		case <-l.done:
			l.cancelAll()
			return nil
		case t := <-l.queue:
			if t.handle != 0 && !l.claim(t.handle) {
				continue
			}
			t.fn()
		}
	}
}

// Stop makes Run return after the callback in progress. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// claim removes h from the pending set, reporting whether it was still pending.
func (l *Loop) claim(h ports.TimerHandle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.timers[h]; !ok {
		return false
	}
	delete(l.timers, h)
	return true
}

func (l *Loop) enqueue(t task) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- t:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) cancelAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for h, t := range l.timers {
		t.Stop()
		delete(l.timers, h)
	}
}

// Ensure Loop implements ports.Scheduler
var _ ports.Scheduler = (*Loop)(nil)
