package serial

import (
	"context"
	"sync"
	"time"
)

// fifo is an unbounded, goroutine-safe FIFO. Push never blocks; consumers
// either poll with TryPop or wait with Pop/PopContext.
type fifo[T any] struct {
	mu    sync.Mutex
	items []T
	// ready holds at most one token and is signalled whenever items may be
	// non-empty.
	ready chan struct{}
}

func newFIFO[T any]() *fifo[T] {
	return &fifo[T]{ready: make(chan struct{}, 1)}
}

func (q *fifo[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.signal()
}

func (q *fifo[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *fifo[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) > 0 {
		// pass the wakeup on to any other waiter
		q.signal()
	} else {
		q.items = nil
	}
	return v, true
}

// Pop waits up to timeout for an item. It returns early with ok=false when
// stop is closed.
func (q *fifo[T]) Pop(timeout time.Duration, stop <-chan struct{}) (T, bool) {
	if v, ok := q.TryPop(); ok {
		return v, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-q.ready:
			if v, ok := q.TryPop(); ok {
				return v, true
			}
		case <-stop:
			var zero T
			return zero, false
		case <-timer.C:
			return q.TryPop()
		}
	}
}

// PopContext blocks until an item is available or ctx is done.
func (q *fifo[T]) PopContext(ctx context.Context) (T, error) {
	for {
		if v, ok := q.TryPop(); ok {
			return v, nil
		}
		select {
		case <-q.ready:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

func (q *fifo[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Reset discards every queued item and returns how many were dropped.
func (q *fifo[T]) Reset() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	q.items = nil
	return n
}
