// Package queue implements the unbounded FIFO buffer shared by the pull side
// of an event channel.
//
// Readers compete for entries: every value is handed to exactly one of
// Poll, PollTimeout or Take. Blocked readers park on a notification channel
// that is closed whenever a value arrives, so waiting never spins.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	list "github.com/bahlo/generic-list-go"
	"github.com/benbjohnson/clock"
)

// ErrClosed is returned by operations on a queue that has been closed.
var ErrClosed = errors.New("queue closed")

type Queue[T any] struct {
	mu     sync.Mutex
	items  *list.List[T]
	ready  chan struct{}
	done   chan struct{}
	closed bool
	clock  clock.Clock
}

// New creates an empty queue. A nil clock means the wall clock.
func New[T any](clk clock.Clock) *Queue[T] {
	if clk == nil {
		clk = clock.New()
	}
	return &Queue[T]{
		items: list.New[T](),
		done:  make(chan struct{}),
		clock: clk,
	}
}

// Push appends a value to the tail and wakes any blocked readers.
func (q *Queue[T]) Push(value T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.items.PushBack(value)
	if q.ready != nil {
		close(q.ready)
		q.ready = nil
	}
	return nil
}

// Poll removes and returns the head without blocking.
func (q *Queue[T]) Poll() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// Take blocks until a value is available, the context is done or the queue
// is closed.
func (q *Queue[T]) Take(ctx context.Context) (T, error) {
	return q.take(ctx, nil)
}

// PollTimeout waits at most timeout for a value. It reports false once the
// bound elapses; a non-positive timeout behaves like Poll.
func (q *Queue[T]) PollTimeout(ctx context.Context, timeout time.Duration) (T, bool, error) {
	if timeout <= 0 {
		v, ok := q.Poll()
		return v, ok, nil
	}

	timer := q.clock.Timer(timeout)
	defer timer.Stop()

	v, err := q.take(ctx, timer.C)
	if errors.Is(err, errTimedOut) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

var errTimedOut = errors.New("timed out")

func (q *Queue[T]) take(ctx context.Context, deadline <-chan time.Time) (T, error) {
	var zero T
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return zero, ErrClosed
		}
		if v, ok := q.popLocked(); ok {
			q.mu.Unlock()
			return v, nil
		}
		if q.ready == nil {
			q.ready = make(chan struct{})
		}
		ready := q.ready
		q.mu.Unlock()

		select {
		case <-ready:
		case <-q.done:
			return zero, ErrClosed
		case <-deadline:
			return zero, errTimedOut
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

func (q *Queue[T]) popLocked() (T, bool) {
	front := q.items.Front()
	if front == nil {
		var zero T
		return zero, false
	}
	return q.items.Remove(front), true
}

// Len reports the number of buffered values.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Clear drops every buffered value.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items.Init()
}

// Close drops buffered values and releases blocked readers with ErrClosed.
// Closing twice is a no-op.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.items.Init()
	close(q.done)
}
