// Package dispatch hands filesystem commands from the command context to a
// dedicated worker without blocking the producer. A fixed-depth circular
// buffer carries the entries; a counting wake signal drives the consumer.
package dispatch

import (
	"errors"
	"sync"
	"sync/atomic"
)

// DefaultQueueDepth is the queue capacity used when no explicit depth is
// configured.
const DefaultQueueDepth = 8

var (
	// ErrDisabled rejects enqueues while no worker is attached.
	ErrDisabled = errors.New("command queue is disabled")
	// ErrFull rejects enqueues while the queue is at capacity.
	ErrFull = errors.New("command queue is full")
	// ErrBroken rejects enqueues when the counters have desynchronized.
	// It indicates an internal bug, not caller error, and every subsequent
	// attempt keeps failing rather than masking the inconsistency.
	ErrBroken = errors.New("command queue interface is broken")
)

// Queue is a single-producer/single-consumer bounded command queue.
//
// writeIdx is owned by the producer and readIdx by the consumer; neither is
// locked. Only depth is shared between the two sides and it is guarded by
// the mutex. The wake channel carries one signal per successful enqueue and
// doubles as the happens-before edge between the producer's slot write and
// the consumer's read.
type Queue struct {
	entries  []Entry
	writeIdx int
	readIdx  int

	mu    sync.Mutex
	depth int

	wake    chan struct{}
	enabled atomic.Bool
}

// NewQueue creates a queue with the given capacity. Depths below one fall
// back to DefaultQueueDepth. The queue starts disabled; the worker enables
// it when it attaches.
func NewQueue(depth int) *Queue {
	if depth < 1 {
		depth = DefaultQueueDepth
	}
	return &Queue{
		entries: make([]Entry, depth),
		wake:    make(chan struct{}, depth),
	}
}

// Capacity returns the fixed queue depth.
func (q *Queue) Capacity() int {
	return len(q.entries)
}

// Depth returns the number of entries currently queued.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.depth
}

// Enabled reports whether a worker is attached.
func (q *Queue) Enabled() bool {
	return q.enabled.Load()
}

// Enable marks the worker as attached. Called by the worker on startup.
func (q *Queue) Enable() {
	q.enabled.Store(true)
}

// Disable marks the worker as absent. Every enqueue attempt fails cleanly
// with ErrDisabled until the worker re-attaches; already-queued entries are
// kept for it.
func (q *Queue) Disable() {
	q.enabled.Store(false)
}

// TryEnqueue adds one entry. It never blocks: the entry is either accepted
// and FIFO-ordered behind every prior acceptance, or rejected with
// ErrDisabled, ErrFull, or ErrBroken.
func (q *Queue) TryEnqueue(e Entry) error {
	if !q.enabled.Load() {
		return ErrDisabled
	}

	q.mu.Lock()
	depth := q.depth
	q.mu.Unlock()

	if depth == len(q.entries) {
		return ErrFull
	}
	if depth > len(q.entries) || q.writeIdx >= len(q.entries) {
		return ErrBroken
	}

	q.entries[q.writeIdx] = e
	q.writeIdx++
	if q.writeIdx >= len(q.entries) {
		q.writeIdx = 0
	}

	q.mu.Lock()
	q.depth++
	q.mu.Unlock()

	// Capacity of the wake channel equals the queue depth, so this send
	// cannot block after a successful depth reservation.
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Wake returns the channel the consumer blocks on; one receive corresponds
// to at most one queued entry.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

// Dequeue removes the oldest entry. It reports false on an empty queue and
// never blocks; the consumer is expected to have received a wake signal
// first.
func (q *Queue) Dequeue() (Entry, bool) {
	q.mu.Lock()
	depth := q.depth
	q.mu.Unlock()

	if depth == 0 {
		return Entry{}, false
	}

	e := q.entries[q.readIdx]
	q.entries[q.readIdx] = Entry{}
	q.readIdx++
	if q.readIdx >= len(q.entries) {
		q.readIdx = 0
	}

	q.mu.Lock()
	q.depth--
	q.mu.Unlock()

	return e, true
}

// corrupt forces the depth counter out of range. Test hook for the broken
// invariant path.
func (q *Queue) corrupt(depth int) {
	q.mu.Lock()
	q.depth = depth
	q.mu.Unlock()
}
