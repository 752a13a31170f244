package structure

import (
	"github.com/blockforge/chunkgen/pkg/pipeline"
	"github.com/blockforge/chunkgen/pkg/voxel"
)

// Village places a single representative house structure on a sparse,
// deterministic grid, condensed from the teacher's ~1800-line village
// generator (which rolled whole settlements of houses, halls, a
// church, a marketplace and branching roads) down to one stamped
// building per village. The grid math — cellHash, divFloor, the
// priority-ordered neighbor-suppression check in villageCenter — is
// carried over unchanged; only the thing stamped at each center was
// condensed.
const villageCellSize = 96

// Block IDs used by the stamped house, distinct from composition's and
// ore's palettes.
const (
	Air         byte = 0
	Log         byte = 17
	Cobblestone byte = 4
	Planks      byte = 5
	GlassPane   byte = 20
)

// Village is a StructureGen that stamps a small house onto a sparse
// grid of candidate village centers.
type Village struct {
	seed   int64
	height pipeline.TerrainHeightGen
}

// NewVillage creates a Village structure generator for the given seed,
// consulting height for each candidate center's surface height.
func NewVillage(seed int32, height pipeline.TerrainHeightGen) *Village {
	return &Village{seed: int64(seed), height: height}
}

// cellHash returns a deterministic value in [0, mod) for cell (cx, cz),
// ported verbatim from the teacher's splitmix64-style mixer.
func (v *Village) cellHash(cx, cz, mod int64) int64 {
	const k1 int64 = -7046029254386353131
	const k2 int64 = -4265267296055464877
	h := v.seed ^ (cx * k1) ^ (cz * 7823434773480878946)
	h ^= h >> 33
	h *= k1
	h ^= h >> 27
	h *= k2
	h ^= h >> 31
	if h < 0 {
		h = -h
	}
	return h % mod
}

// divFloor returns a / b, rounding towards negative infinity.
func divFloor(a, b int) int {
	if a < 0 && a%b != 0 {
		return a/b - 1
	}
	return a / b
}

// villageCenter reports the world (x, z) center of a village in grid
// cell (cellX, cellZ), and ok=true if that cell has one (25% chance)
// and no closer-priority neighbor suppresses it.
func (v *Village) villageCenter(cellX, cellZ int) (wx, wz int, ok bool) {
	cx := int64(cellX)
	cz := int64(cellZ)
	if v.cellHash(cx, cz, 4) != 0 {
		return 0, 0, false
	}
	ox := int(v.cellHash(cx^0xDEAD, cz^0xBEEF, int64(villageCellSize-20))) + 10
	oz := int(v.cellHash(cx^0xCAFE, cz^0xF00D, int64(villageCellSize-20))) + 10
	wx = cellX*villageCellSize + ox
	wz = cellZ*villageCellSize + oz

	const minDist = 80
	myPriority := v.cellHash(cx^0x1234, cz^0x5678, 1000)
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			ncx := int64(cellX + dx)
			ncz := int64(cellZ + dz)
			if v.cellHash(ncx, ncz, 4) != 0 {
				continue
			}
			nox := int(v.cellHash(ncx^0xDEAD, ncz^0xBEEF, int64(villageCellSize-20))) + 10
			noz := int(v.cellHash(ncx^0xCAFE, ncz^0xF00D, int64(villageCellSize-20))) + 10
			nwx := (cellX+dx)*villageCellSize + nox
			nwz := (cellZ+dz)*villageCellSize + noz

			ddx := wx - nwx
			ddz := wz - nwz
			if ddx < 0 {
				ddx = -ddx
			}
			if ddz < 0 {
				ddz = -ddz
			}
			if ddx+ddz < minDist {
				neighborPriority := v.cellHash(ncx^0x1234, ncz^0x5678, 1000)
				if myPriority >= neighborPriority {
					return 0, 0, false
				}
			}
		}
	}

	return wx, wz, true
}

// GenStructures implements pipeline.StructureGen.
func (v *Village) GenStructures(cx, cz int32, blocks *voxel.BlockTypes, metas *voxel.BlockNibbles, heights *voxel.HeightMap, entities *voxel.Entities, blockEntities *voxel.BlockEntities) error {
	minWX := int(cx) * voxel.Width
	minWZ := int(cz) * voxel.Width

	const radius = 8 // house footprint is small; no branching roads to reach for
	cellMinX := divFloor(minWX-radius, villageCellSize)
	cellMaxX := divFloor(minWX+voxel.Width-1+radius, villageCellSize)
	cellMinZ := divFloor(minWZ-radius, villageCellSize)
	cellMaxZ := divFloor(minWZ+voxel.Width-1+radius, villageCellSize)

	for gx := cellMinX; gx <= cellMaxX; gx++ {
		for gz := cellMinZ; gz <= cellMaxZ; gz++ {
			vx, vz, ok := v.villageCenter(gx, gz)
			if !ok {
				continue
			}
			v.stampHouse(vx, vz, minWX, minWZ, blocks)
		}
	}
	return nil
}

// stampHouse writes a simple 5x5 single-story house anchored at world
// (vx, vz), clipping to whatever part of it falls in this chunk.
func (v *Village) stampHouse(vx, vz, originX, originZ int, blocks *voxel.BlockTypes) {
	const size = 5
	const wallHeight = 4
	surfH, err := v.height.GenHeightMap(int32(divFloor(vx, voxel.Width)), int32(divFloor(vz, voxel.Width)))
	baseY := 64
	if err == nil {
		lx := ((vx % voxel.Width) + voxel.Width) % voxel.Width
		lz := ((vz % voxel.Width) + voxel.Width) % voxel.Width
		baseY = int(surfH.At(lx, lz)) + 1
	}

	for dx := 0; dx < size; dx++ {
		for dz := 0; dz < size; dz++ {
			wx := vx + dx
			wz := vz + dz
			lx := wx - originX
			lz := wz - originZ
			if lx < 0 || lx >= voxel.Width || lz < 0 || lz >= voxel.Width {
				continue
			}
			edge := dx == 0 || dx == size-1 || dz == 0 || dz == size-1
			for dy := 0; dy < wallHeight; dy++ {
				ly := baseY + dy
				if ly < 0 || ly >= voxel.Height {
					continue
				}
				switch {
				case !edge:
					blocks.Set(lx, ly, lz, Air)
				case dx == size/2 && dz == 0 && dy < 2:
					blocks.Set(lx, ly, lz, Air) // doorway
				case dy == wallHeight-1:
					blocks.Set(lx, ly, lz, Planks)
				case (dx+dz)%4 == 0 && dy == 1:
					blocks.Set(lx, ly, lz, GlassPane)
				default:
					blocks.Set(lx, ly, lz, Log)
				}
			}
			if roofY := baseY + wallHeight; roofY >= 0 && roofY < voxel.Height {
				blocks.Set(lx, roofY, lz, Cobblestone) // flat roof cap
			}
			if floorY := baseY - 1; !edge && floorY >= 0 && floorY < voxel.Height {
				blocks.Set(lx, floorY, lz, Planks) // floor
			}
		}
	}
}

func init() {
	pipeline.RegisterStructureGen("village", func(seed int32, arg string, _ pipeline.BiomeGen, height pipeline.TerrainHeightGen) (pipeline.StructureGen, error) {
		return NewVillage(seed, height), nil
	})
}
