// Package worldapi defines the external collaborator contract the
// generator consumes: chunk-availability and client-presence queries,
// and the sink that finished chunks are delivered to. MemWorld is a
// reference implementation, grounded on the teacher's World double-
// checked-locking chunk cache, adapted from a block-level accessor to
// a chunk-level one.
package worldapi

import (
	"sync"

	"github.com/blockforge/chunkgen/pkg/voxel"
)

// World is the generator's view of its host: whether a chunk is
// already known, whether any client cares about it, and where to
// deliver a finished one. Implementations must be safe for concurrent
// use: the generator treats them as thread-safe. Within the generator
// only the single background worker goroutine calls them;
// GenerateBiomes and BiomeAt never do.
type World struct {
	// IsChunkAvailable reports whether (x, z) is already stored or
	// loaded, so the worker can skip regenerating it.
	IsChunkAvailable func(x, z int32) bool

	// AnyClientWithinView reports whether any client currently has
	// (x, z) in view, consulted only under the overload policy.
	AnyClientWithinView func(x, z int32) bool

	// DeliverChunk hands a finished chunk to the sink. Called on the
	// worker goroutine; must not block for long — any queuing for
	// persistence is the sink's own responsibility.
	DeliverChunk func(chunk *voxel.Chunk)
}

// MemWorld is an in-memory World implementation: a chunk map guarded
// by a sync.RWMutex (adapted from the teacher's World chunk cache),
// plus a settable client-view predicate, for tests and the demo
// binary.
type MemWorld struct {
	mu       sync.RWMutex
	chunks    map[voxel.Coord]*voxel.Chunk
	inView    map[voxel.Coord]bool
	delivered []*voxel.Chunk
}

// NewMemWorld creates an empty MemWorld.
func NewMemWorld() *MemWorld {
	return &MemWorld{
		chunks: make(map[voxel.Coord]*voxel.Chunk),
		inView: make(map[voxel.Coord]bool),
	}
}

// IsChunkAvailable reports whether coord has already been delivered.
func (m *MemWorld) IsChunkAvailable(x, z int32) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.chunks[voxel.Coord{X: x, Z: z}]
	return ok
}

// SetInView marks whether a client currently has coord in view.
// Defaults to false for coordinates never explicitly set.
func (m *MemWorld) SetInView(x, z int32, inView bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inView[voxel.Coord{X: x, Z: z}] = inView
}

// AnyClientWithinView reports whether some client has coord in view.
func (m *MemWorld) AnyClientWithinView(x, z int32) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inView[voxel.Coord{X: x, Z: z}]
}

// DeliverChunk stores the chunk in the cache (so later
// IsChunkAvailable calls see it) and records it for test assertions.
func (m *MemWorld) DeliverChunk(chunk *voxel.Chunk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks[chunk.Coord] = chunk
	m.delivered = append(m.delivered, chunk)
}

// Delivered returns every chunk handed to DeliverChunk so far, in
// delivery order.
func (m *MemWorld) Delivered() []*voxel.Chunk {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*voxel.Chunk, len(m.delivered))
	copy(out, m.delivered)
	return out
}

// Chunk looks up a previously delivered chunk by coordinate.
func (m *MemWorld) Chunk(x, z int32) (*voxel.Chunk, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chunks[voxel.Coord{X: x, Z: z}]
	return c, ok
}

// AsWorld adapts this MemWorld to the World collaborator struct the
// generator consumes.
func (m *MemWorld) AsWorld() World {
	return World{
		IsChunkAvailable:    m.IsChunkAvailable,
		AnyClientWithinView: m.AnyClientWithinView,
		DeliverChunk:        m.DeliverChunk,
	}
}
