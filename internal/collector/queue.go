package collector

import "sync"

// Queue is the unbounded multi-producer/single-consumer FIFO between
// connection handlers and the log writer. Enqueue never blocks; Dequeue
// suspends the single consumer until an item arrives or the queue is closed
// and drained. Items leave in exactly the order their enqueues completed.
//
// A mutex-guarded slice rather than a channel: a channel of any fixed size can
// block a producer, and producer availability is the point of the unbounded
// hand-off.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Event
	closed bool
}

func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends one event. It never blocks. Events enqueued after Close are
// discarded; producers are stopped before the queue is closed, so this only
// guards against stragglers during teardown.
func (q *Queue) Enqueue(evt Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, evt)
	q.cond.Signal()
}

// Dequeue removes the oldest event, blocking while the queue is open and
// empty. The second return is false once the queue is closed and fully
// drained.
func (q *Queue) Dequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.closed {
			return Event{}, false
		}
		q.cond.Wait()
	}
	evt := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// Let the backing array go once drained so a burst does not pin memory.
		q.items = nil
	}
	return evt, true
}

// Close marks the queue complete. The consumer still drains whatever is
// buffered; only then does Dequeue report completion. Idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// Len reports the number of buffered events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
