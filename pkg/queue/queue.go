// Package queue implements the chunk-request queue: an ordered set of
// pending ChunkCoords with deduplication, non-blocking enqueue, and a
// blocking dequeue/drain protocol built on the classic Go monitor
// pattern — one mutex guarding the state, two condition variables
// signaling "an item was added" and "an item was removed". This is
// the one component of the module specified down to its concurrency
// primitive shape (see DESIGN.md).
package queue

import (
	"sync"

	"github.com/blockforge/chunkgen/pkg/voxel"
)

// Queue is an ordered set of pending voxel.Coords: enqueue appends to
// the tail unless the coord is already present, dequeue removes the
// head, blocking until work arrives or Stop is called.
type Queue struct {
	mu      sync.Mutex
	added   *sync.Cond
	removed *sync.Cond

	items   []voxel.Coord
	present map[voxel.Coord]struct{}
	stopped bool
}

// New creates an empty, running Queue.
func New() *Queue {
	q := &Queue{
		present: make(map[voxel.Coord]struct{}),
	}
	q.added = sync.NewCond(&q.mu)
	q.removed = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends coord to the tail if it is not already present.
// Never blocks on work; only briefly holds the lock.
func (q *Queue) Enqueue(coord voxel.Coord) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return
	}
	if _, ok := q.present[coord]; ok {
		return
	}
	q.present[coord] = struct{}{}
	q.items = append(q.items, coord)
	q.added.Signal()
}

// DequeueBlocking removes and returns the head coordinate, blocking
// until one is available or Stop is called. ok is false only when
// woken by Stop with an empty queue — the sentinel the worker loop
// uses to exit.
func (q *Queue) DequeueBlocking() (coord voxel.Coord, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.stopped {
		q.added.Wait()
	}
	if len(q.items) == 0 {
		return voxel.Coord{}, false
	}
	coord = q.items[0]
	q.items = q.items[1:]
	delete(q.present, coord)
	q.removed.Broadcast()
	return coord, true
}

// Length reports the current number of pending, distinct coordinates.
func (q *Queue) Length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// WaitUntilEmpty blocks until the queue is empty, or returns
// immediately if Stop has already been signaled.
func (q *Queue) WaitUntilEmpty() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) > 0 && !q.stopped {
		q.removed.Wait()
	}
}

// Stop marks the queue stopped, discards every pending coordinate, and
// wakes every blocked caller: DequeueBlocking callers see the stop
// sentinel, WaitUntilEmpty callers return immediately. Idempotent —
// repeat calls are no-ops.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return
	}
	q.stopped = true
	q.items = nil
	q.present = make(map[voxel.Coord]struct{})
	q.added.Broadcast()
	q.removed.Broadcast()
}

// SignalRemoved wakes WaitUntilEmpty callers without removing an item.
// The worker calls this after a skip or stage fault — cases where a
// coord leaves the queue's conceptual "in flight" set without passing
// back through DequeueBlocking's own removed.Broadcast (it already
// left the slice there; this covers the "observed empty" recheck the
// worker performs once it finishes with the dequeued item).
func (q *Queue) SignalRemoved() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removed.Broadcast()
}
