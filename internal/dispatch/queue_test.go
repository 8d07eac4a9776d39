package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueStartsDisabled(t *testing.T) {
	q := NewQueue(4)
	assert.False(t, q.Enabled())
	assert.ErrorIs(t, q.TryEnqueue(Entry{Code: CmdCopy}), ErrDisabled)
	assert.Equal(t, 0, q.Depth())
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(4)
	q.Enable()

	for i := 0; i < 3; i++ {
		require.NoError(t, q.TryEnqueue(Entry{Code: CmdCopy, Source1: string(rune('a' + i))}))
	}
	assert.Equal(t, 3, q.Depth())

	for i := 0; i < 3; i++ {
		e, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, string(rune('a'+i)), e.Source1)
	}
	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestQueueWrapAround(t *testing.T) {
	q := NewQueue(2)
	q.Enable()

	// Cycle through more entries than the capacity so both indices wrap.
	for i := 0; i < 7; i++ {
		require.NoError(t, q.TryEnqueue(Entry{Code: CmdDelete, Source1: string(rune('0' + i))}))
		e, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, string(rune('0'+i)), e.Source1)
	}
	assert.Equal(t, 0, q.Depth())
}

// TestQueueFullRejection covers the capacity contract: a queue of depth
// four accepts four entries and rejects the fifth without losing any of
// the first four.
func TestQueueFullRejection(t *testing.T) {
	q := NewQueue(4)
	q.Enable()

	for i := 0; i < 4; i++ {
		require.NoError(t, q.TryEnqueue(Entry{Code: CmdMove, Source1: string(rune('a' + i))}))
	}
	assert.ErrorIs(t, q.TryEnqueue(Entry{Code: CmdMove, Source1: "e"}), ErrFull)
	assert.Equal(t, 4, q.Depth())

	// The rejected entry is gone for good; re-enabling changes nothing.
	q.Disable()
	q.Enable()
	for i := 0; i < 4; i++ {
		e, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, string(rune('a'+i)), e.Source1)
	}
	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestQueueDisableKeepsEntries(t *testing.T) {
	q := NewQueue(4)
	q.Enable()
	require.NoError(t, q.TryEnqueue(Entry{Code: CmdRename, Source1: "kept"}))

	q.Disable()
	assert.ErrorIs(t, q.TryEnqueue(Entry{Code: CmdRename}), ErrDisabled)
	assert.Equal(t, 1, q.Depth())

	e, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "kept", e.Source1)
}

func TestQueueBroken(t *testing.T) {
	q := NewQueue(4)
	q.Enable()

	q.corrupt(5)
	assert.ErrorIs(t, q.TryEnqueue(Entry{Code: CmdCopy}), ErrBroken)
	// The inconsistency is not self-healing.
	assert.ErrorIs(t, q.TryEnqueue(Entry{Code: CmdCopy}), ErrBroken)
}

func TestQueueWakeSignalPerEnqueue(t *testing.T) {
	q := NewQueue(4)
	q.Enable()

	require.NoError(t, q.TryEnqueue(Entry{Code: CmdConcat}))
	require.NoError(t, q.TryEnqueue(Entry{Code: CmdConcat}))

	assert.Len(t, q.Wake(), 2)
	<-q.Wake()
	<-q.Wake()
	select {
	case <-q.Wake():
		t.Fatal("unexpected wake signal")
	default:
	}
}

func TestNewQueueDepthFallback(t *testing.T) {
	assert.Equal(t, DefaultQueueDepth, NewQueue(0).Capacity())
	assert.Equal(t, DefaultQueueDepth, NewQueue(-3).Capacity())
	assert.Equal(t, 16, NewQueue(16).Capacity())
}
