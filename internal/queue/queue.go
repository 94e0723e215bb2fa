// Package queue provides the guarded FIFO shared between producers of
// protocol frames and the single goroutine that sends them.
package queue

import "sync"

// Queue is an unbounded FIFO safe for any number of concurrent producers.
// It is drained by a consumer calling Pop or Drain, typically after a
// signal on Ready.
type Queue[T any] struct {
	mu       sync.Mutex
	buf      []T
	head     int // read position
	tail     int // write position
	count    int
	capacity int

	ready chan struct{}

	// Stats
	pushed int64
	popped int64
}

// Stats is a consistent snapshot of a queue's counters.
// Pushed == Popped + Len always holds.
type Stats struct {
	Pushed   int64 `json:"pushed"`
	Popped   int64 `json:"popped"`
	Len      int   `json:"len"`
	Capacity int   `json:"capacity"`
}

// New creates a queue with the given initial capacity.
func New[T any](initialCapacity int) *Queue[T] {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return &Queue[T]{
		buf:      make([]T, initialCapacity),
		capacity: initialCapacity,
		ready:    make(chan struct{}, 1),
	}
}

// Push appends v to the tail and wakes a waiting consumer.
func (q *Queue[T]) Push(v T) {
	q.push(v)

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *Queue[T]) push(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == q.capacity {
		q.grow()
	}
	q.buf[q.tail] = v
	q.tail = (q.tail + 1) % q.capacity
	q.count++
	q.pushed++
}

// Pop removes and returns the head. It returns false, and leaves the queue
// untouched, when the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.count == 0 {
		return zero, false
	}
	return q.take(), true
}

// Drain removes up to limit items (all of them if limit <= 0) in one
// critical section and returns them oldest first.
func (q *Queue[T]) Drain(limit int) []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return nil
	}
	n := q.count
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]T, n)
	for i := range out {
		out[i] = q.take()
	}
	return out
}

// Ready is signalled after every Push. A consumer that receives from it
// should drain until Pop reports empty, since signals coalesce.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Stats returns the queue counters.
func (q *Queue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Pushed:   q.pushed,
		Popped:   q.popped,
		Len:      q.count,
		Capacity: q.capacity,
	}
}

// take removes the head. Must be called with lock held and count > 0.
func (q *Queue[T]) take() T {
	var zero T
	v := q.buf[q.head]
	q.buf[q.head] = zero // release reference for GC
	q.head = (q.head + 1) % q.capacity
	q.count--
	q.popped++
	return v
}

// grow doubles the capacity. Must be called with lock held.
func (q *Queue[T]) grow() {
	newCapacity := q.capacity * 2
	newBuf := make([]T, newCapacity)

	if q.count > 0 {
		if q.head < q.tail {
			copy(newBuf, q.buf[q.head:q.tail])
		} else {
			n := copy(newBuf, q.buf[q.head:])
			copy(newBuf[n:], q.buf[:q.tail])
		}
	}

	q.buf = newBuf
	q.head = 0
	q.tail = q.count
	q.capacity = newCapacity
}
