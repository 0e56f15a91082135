// ABOUTME: Tests for the bounded chunk queue
// ABOUTME: Covers capacity, ordering, sentinel and drain behavior
package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryEnqueueRespectsCapacity(t *testing.T) {
	q := NewChunkQueue(100)

	// 150 chunks enqueued faster than anyone drains: the first 100
	// succeed, the rest are refused, and no element is discarded.
	for i := 0; i < 150; i++ {
		ok := q.TryEnqueue([]byte{byte(i)})
		if i < 100 {
			assert.True(t, ok, "enqueue %d should succeed", i)
		} else {
			assert.False(t, ok, "enqueue %d should be refused", i)
		}
	}
	assert.Equal(t, 100, q.Len())
}

func TestDequeuePreservesOrder(t *testing.T) {
	q := NewChunkQueue(10)

	for i := 0; i < 10; i++ {
		require.True(t, q.TryEnqueue([]byte{byte(i)}))
	}

	for i := 0; i < 10; i++ {
		item, ok := q.Dequeue(time.Second)
		require.True(t, ok)
		require.False(t, item.Stop)
		assert.Equal(t, []byte{byte(i)}, item.Chunk)
	}
	assert.Equal(t, 0, q.Len())
}

func TestEnqueueAfterDrainSucceeds(t *testing.T) {
	q := NewChunkQueue(2)

	require.True(t, q.TryEnqueue([]byte{1}))
	require.True(t, q.TryEnqueue([]byte{2}))
	require.False(t, q.TryEnqueue([]byte{3}))

	_, ok := q.Dequeue(time.Second)
	require.True(t, ok)

	assert.True(t, q.TryEnqueue([]byte{3}))
}

func TestDequeueTimeout(t *testing.T) {
	q := NewChunkQueue(4)

	start := time.Now()
	_, ok := q.Dequeue(20 * time.Millisecond)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSentinelOrderedAfterChunks(t *testing.T) {
	q := NewChunkQueue(4)

	require.True(t, q.TryEnqueue([]byte{1}))
	require.True(t, q.TryEnqueue([]byte{2}))
	q.SignalStop()

	item, ok := q.Dequeue(time.Second)
	require.True(t, ok)
	assert.Equal(t, []byte{1}, item.Chunk)

	item, ok = q.Dequeue(time.Second)
	require.True(t, ok)
	assert.Equal(t, []byte{2}, item.Chunk)

	item, ok = q.Dequeue(time.Second)
	require.True(t, ok)
	assert.True(t, item.Stop)
}

func TestSentinelFitsInFullQueue(t *testing.T) {
	q := NewChunkQueue(2)

	require.True(t, q.TryEnqueue([]byte{1}))
	require.True(t, q.TryEnqueue([]byte{2}))

	// The queue is at chunk capacity; the sentinel still fits.
	q.SignalStop()
	// A second signal is harmless.
	q.SignalStop()

	q.Dequeue(time.Second)
	q.Dequeue(time.Second)
	item, ok := q.Dequeue(time.Second)
	require.True(t, ok)
	assert.True(t, item.Stop)
}

func TestDrainDiscardsEverything(t *testing.T) {
	q := NewChunkQueue(8)

	for i := 0; i < 5; i++ {
		require.True(t, q.TryEnqueue([]byte{byte(i)}))
	}
	q.SignalStop()

	assert.Equal(t, 5, q.Drain())
	assert.Equal(t, 0, q.Len())

	_, ok := q.Dequeue(10 * time.Millisecond)
	assert.False(t, ok)
}

func TestZeroCapacityUsesDefault(t *testing.T) {
	q := NewChunkQueue(0)
	assert.Equal(t, DefaultQueueCapacity, q.Cap())
}

func TestConcurrentProducerConsumer(t *testing.T) {
	q := NewChunkQueue(10)
	const total = 200

	received := make(chan []byte, total)
	go func() {
		for {
			item, ok := q.Dequeue(time.Second)
			if !ok {
				close(received)
				return
			}
			if item.Stop {
				close(received)
				return
			}
			received <- item.Chunk
		}
	}()

	sent := 0
	for sent < total {
		if q.TryEnqueue([]byte{byte(sent), byte(sent >> 8)}) {
			sent++
		} else {
			time.Sleep(time.Millisecond)
		}
	}
	q.SignalStop()

	i := 0
	for chunk := range received {
		assert.Equal(t, []byte{byte(i), byte(i >> 8)}, chunk, "chunk %d out of order", i)
		i++
	}
	assert.Equal(t, total, i)
}
