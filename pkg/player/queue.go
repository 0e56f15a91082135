// ABOUTME: Bounded chunk queue between producer and playback worker
// ABOUTME: Non-blocking enqueue, bounded-wait dequeue, sentinel stop signal
package player

import (
	"sync"
	"time"
)

// DefaultQueueCapacity is the chunk capacity used when none is configured.
const DefaultQueueCapacity = 100

// Item is one queue element: either a PCM chunk or the stop sentinel.
type Item struct {
	Chunk []byte
	Stop  bool
}

// ChunkQueue is a bounded FIFO transferring chunk ownership from the
// producer to the playback worker. Enqueue never blocks; dequeue waits
// with a bound so the worker can re-check its run flag. The channel is
// sized one beyond the chunk capacity so the stop sentinel always fits.
type ChunkQueue struct {
	ch       chan Item
	mu       sync.Mutex
	size     int
	capacity int
}

// NewChunkQueue creates a queue holding at most capacity chunks.
func NewChunkQueue(capacity int) *ChunkQueue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &ChunkQueue{
		ch:       make(chan Item, capacity+1),
		capacity: capacity,
	}
}

// TryEnqueue appends chunk at the tail if the queue has room. It returns
// false immediately when the queue is full; the producer decides how to
// react to the backpressure.
func (q *ChunkQueue) TryEnqueue(chunk []byte) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size >= q.capacity {
		return false
	}
	q.ch <- Item{Chunk: chunk}
	q.size++
	return true
}

// SignalStop enqueues the stop sentinel. It is ordered like a normal
// element: the worker sees it only after every chunk enqueued before it.
// Signaling more than once is harmless.
func (q *ChunkQueue) SignalStop() {
	select {
	case q.ch <- Item{Stop: true}:
	default:
		// Sentinel slot already taken by a previous SignalStop.
	}
}

// Dequeue removes the head element, waiting up to timeout for one to
// arrive. The second return value is false on timeout.
func (q *ChunkQueue) Dequeue(timeout time.Duration) (Item, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case item := <-q.ch:
		if !item.Stop {
			q.mu.Lock()
			q.size--
			q.mu.Unlock()
		}
		return item, true
	case <-timer.C:
		return Item{}, false
	}
}

// Drain removes and discards all remaining elements without processing
// them, returning the number of chunks discarded.
func (q *ChunkQueue) Drain() int {
	discarded := 0
	for {
		select {
		case item := <-q.ch:
			if !item.Stop {
				q.mu.Lock()
				q.size--
				q.mu.Unlock()
				discarded++
			}
		default:
			return discarded
		}
	}
}

// Len returns the number of chunks currently queued.
func (q *ChunkQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Cap returns the queue's chunk capacity.
func (q *ChunkQueue) Cap() int {
	return q.capacity
}
