package collector

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 100; i++ {
		q.Enqueue(Event{Timestamp: "t", Source: "a", EventType: fmt.Sprintf("e%d", i)})
	}

	for i := 0; i < 100; i++ {
		evt, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("e%d", i), evt.EventType)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DequeueBlocksUntilEnqueue(t *testing.T) {
	q := NewQueue()

	done := make(chan Event, 1)
	go func() {
		evt, ok := q.Dequeue()
		require.True(t, ok)
		done <- evt
	}()

	select {
	case <-done:
		t.Fatal("dequeue returned before anything was enqueued")
	case <-time.After(20 * time.Millisecond):
	}

	q.Enqueue(Event{Timestamp: "t", Source: "a", EventType: "x"})

	select {
	case evt := <-done:
		assert.Equal(t, "x", evt.EventType)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not observe the enqueue")
	}
}

func TestQueue_CloseDrainsBufferedItems(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 10; i++ {
		q.Enqueue(Event{Timestamp: "t", Source: "a", EventType: fmt.Sprintf("e%d", i)})
	}
	q.Close()

	// Everything enqueued before Close is still delivered, in order.
	for i := 0; i < 10; i++ {
		evt, ok := q.Dequeue()
		require.True(t, ok, "event %d should still be delivered after close", i)
		assert.Equal(t, fmt.Sprintf("e%d", i), evt.EventType)
	}

	_, ok := q.Dequeue()
	assert.False(t, ok, "drained closed queue should report completion")
}

func TestQueue_CloseUnblocksWaitingConsumer(t *testing.T) {
	q := NewQueue()

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Dequeue()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("close did not unblock the consumer")
	}
}

func TestQueue_EnqueueAfterCloseIsDiscarded(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Enqueue(Event{Timestamp: "t", Source: "a", EventType: "late"})

	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestQueue_ConcurrentProducersLoseNothing(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(Event{
					Timestamp: "t",
					Source:    fmt.Sprintf("p%d", p),
					EventType: fmt.Sprintf("e%d", i),
				})
			}
		}(p)
	}
	wg.Wait()
	q.Close()

	// Per-producer order must survive; interleaving across producers is free.
	next := make(map[string]int)
	total := 0
	for {
		evt, ok := q.Dequeue()
		if !ok {
			break
		}
		total++
		want := fmt.Sprintf("e%d", next[evt.Source])
		require.Equal(t, want, evt.EventType, "producer %s out of order", evt.Source)
		next[evt.Source]++
	}
	assert.Equal(t, producers*perProducer, total)
}
