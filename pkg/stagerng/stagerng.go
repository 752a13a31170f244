// Package stagerng derives independent, deterministic pseudo-random
// streams for pipeline stages that need more than a single hashed
// density roll per column. OreVeins uses it for its vein walks.
//
// Each stream is a pure function of (seed, stage name, chunk coordinate):
// same inputs always produce the same sequence, and distinct stages
// never share a sequence even when invoked for the same chunk.
package stagerng

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/blockforge/chunkgen/pkg/voxel"
)

// RNG is a stage-local deterministic random source.
type RNG struct {
	seed   uint64
	source *rand.Rand
}

// New derives a stage-local RNG from the world seed, a stage name, and
// the chunk coordinate the stage is currently generating for.
func New(seed int32, stageName string, coord voxel.Coord) *RNG {
	h := sha256.New()

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(seed))
	h.Write(buf[:])

	h.Write([]byte(stageName))
	h.Write([]byte(fmt.Sprintf("%d,%d", coord.X, coord.Z)))

	sum := h.Sum(nil)
	derived := binary.BigEndian.Uint64(sum[:8])

	return &RNG{
		seed:   derived,
		source: rand.New(rand.NewSource(int64(derived))),
	}
}

// Seed returns the derived stream seed, useful for logging.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Intn returns a pseudo-random integer in [0, n). Panics if n <= 0.
func (r *RNG) Intn(n int) int {
	return r.source.Intn(n)
}

// IntRange returns a pseudo-random integer in [lo, hi]. Panics if lo > hi.
func (r *RNG) IntRange(lo, hi int) int {
	if lo > hi {
		panic("stagerng: IntRange lo must be <= hi")
	}
	if lo == hi {
		return lo
	}
	return lo + r.source.Intn(hi-lo+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	return r.source.Float64()
}

// Bool returns a pseudo-random boolean.
func (r *RNG) Bool() bool {
	return r.source.Intn(2) == 1
}
