// Package finish implements FinishGen stages: Trees, adapted from the
// teacher's generateTrees/buildGenericTree/buildSpruceTree family, and
// SnowCover, a new snow-capping finisher. They run in the order the
// caller lists them so later finishers see earlier finishers' output.
package finish

import (
	"github.com/blockforge/chunkgen/pkg/biome"
	"github.com/blockforge/chunkgen/pkg/noise"
	"github.com/blockforge/chunkgen/pkg/pipeline"
	"github.com/blockforge/chunkgen/pkg/voxel"
)

// Block IDs used by this package, sharing the teacher's log/leaves
// numbering (17/18) so the values already seen in pkg/structure mean
// the same material here.
const (
	Log    byte = 17
	Leaves byte = 18
	Cactus byte = 81
)

const (
	oakMeta    byte = 0
	birchMeta  byte = 2
	spruceMeta byte = 1
)

// Trees is a FinishGen that places trees over grass/dirt/sand surfaces,
// shaped by each biome's TreeDensity and a low-frequency cluster noise
// that creates forest clumps and clearings, condensed from the
// teacher's shouldPlaceTree/generateTrees/buildGenericTree/
// buildSpruceTree. Jungle and dark-oak variants are folded into two
// tree shapes (generic round-canopy and spruce-cone) selected per
// biome; Desert gets a cactus instead of a tree.
type Trees struct {
	seed    int32
	cluster *noise.Perlin
}

// NewTrees creates a Trees finisher for the given seed.
func NewTrees(seed int32) *Trees {
	return &Trees{seed: seed, cluster: noise.New(int64(seed) + 900)}
}

// GenFinish implements pipeline.FinishGen.
func (t *Trees) GenFinish(cx, cz int32, blocks *voxel.BlockTypes, metas *voxel.BlockNibbles, heights *voxel.HeightMap, biomes voxel.BiomeMap, entities *voxel.Entities, blockEntities *voxel.BlockEntities) error {
	for lx := 2; lx < voxel.Width-2; lx++ {
		for lz := 2; lz < voxel.Width-2; lz++ {
			b := biome.ByTag(biomes.At(lx, lz))
			if b.TreeDensity <= 0 {
				continue
			}
			wx := cx*voxel.Width + int32(lx)
			wz := cz*voxel.Width + int32(lz)
			if !t.shouldPlaceTree(wx, wz, b) {
				continue
			}

			surfH := int(heights.At(lx, lz))
			if surfH <= 0 || surfH > 240 {
				continue
			}
			surf := blocks.At(lx, surfH, lz)
			if surf != 2 && surf != 80 && surf != 3 && surf != 12 {
				continue
			}

			switch {
			case b == biome.Desert:
				if (wx*13+wz*7)%10 < 4 {
					t.buildCactus(lx, surfH+1, lz, blocks)
				}
			case b == biome.ExtremeHills || b == biome.SnowyTundra:
				t.buildSpruceTree(lx, surfH+1, lz, blocks)
			case b == biome.Forest && (wx*31+wz*17)%10 < 3:
				t.buildGenericTree(lx, surfH+1, lz, birchMeta, blocks)
			default:
				t.buildGenericTree(lx, surfH+1, lz, oakMeta, blocks)
			}
		}
	}
	return nil
}

// shouldPlaceTree ported from the teacher's hash+cluster-noise density check.
func (t *Trees) shouldPlaceTree(x, z int32, b *biome.Biome) bool {
	const clusterScale = 0.02
	clusterVal := t.cluster.Noise2D(float64(x)*clusterScale, float64(z)*clusterScale)
	clusterVal = (clusterVal + 1) / 2

	effectiveDensity := b.TreeDensity * (clusterVal * 1.5)

	hash := uint32(x)*73856093 ^ uint32(z)*191152071 ^ uint32(t.seed)
	hash ^= hash >> 16
	hash *= 0x85ebca6b
	hash ^= hash >> 13
	hash *= 0xc2b2ae35
	hash ^= hash >> 16

	randVal := float64(hash) / float64(0xFFFFFFFF)
	return randVal < effectiveDensity
}

func (t *Trees) buildGenericTree(lx, y, lz int, meta byte, blocks *voxel.BlockTypes) {
	trunkTop := y + 3
	for ty := y; ty <= trunkTop+1 && ty < voxel.Height; ty++ {
		if cur := blocks.At(lx, ty, lz); cur == 0 {
			blocks.Set(lx, ty, lz, Log)
		}
	}
	place := func(ly, dx, dz int) {
		nlx, nlz := lx+dx, lz+dz
		if ly < 0 || ly >= voxel.Height || nlx < 0 || nlx >= voxel.Width || nlz < 0 || nlz >= voxel.Width {
			return
		}
		if blocks.At(nlx, ly, nlz) == 0 {
			blocks.Set(nlx, ly, nlz, Leaves)
		}
	}
	for dy := -1; dy <= 0; dy++ {
		ly := trunkTop + dy
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				if (dx == -2 || dx == 2) && (dz == -2 || dz == 2) {
					continue
				}
				place(ly, dx, dz)
			}
		}
	}
	for dy := 1; dy <= 2; dy++ {
		ly := trunkTop + dy
		for dx := -1; dx <= 1; dx++ {
			for dz := -1; dz <= 1; dz++ {
				if dy == 2 && dx != 0 && dz != 0 {
					continue
				}
				place(ly, dx, dz)
			}
		}
	}
	_ = meta // block metadata for oak/birch variants is not modeled separately in this palette
}

func (t *Trees) buildSpruceTree(lx, y, lz int, blocks *voxel.BlockTypes) {
	height := 5 + (lx*13+lz*7)%3
	trunkTop := y + height - 1
	for ty := y; ty <= trunkTop && ty < voxel.Height; ty++ {
		if cur := blocks.At(lx, ty, lz); cur == 0 {
			blocks.Set(lx, ty, lz, Log)
		}
	}
	for dy := 2; dy <= height; dy++ {
		ly := y + dy
		if ly >= voxel.Height {
			continue
		}
		radius := 2
		if dy > height-2 {
			radius = 0
		} else if dy > height-4 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if radius > 1 && (dx == -radius || dx == radius) && (dz == -radius || dz == radius) {
					continue
				}
				nlx, nlz := lx+dx, lz+dz
				if nlx < 0 || nlx >= voxel.Width || nlz < 0 || nlz >= voxel.Width {
					continue
				}
				if blocks.At(nlx, ly, nlz) == 0 {
					blocks.Set(nlx, ly, nlz, Leaves)
				}
			}
		}
	}
}

func (t *Trees) buildCactus(lx, y, lz int, blocks *voxel.BlockTypes) {
	height := 2 + (lx*3+lz*5)%2
	for dy := 0; dy < height; dy++ {
		ly := y + dy
		if ly >= voxel.Height {
			break
		}
		blocks.Set(lx, ly, lz, Cactus)
	}
}

func init() {
	pipeline.RegisterFinishGen("trees", func(seed int32, arg string, _ pipeline.BiomeGen, _ pipeline.TerrainHeightGen) (pipeline.FinishGen, error) {
		return NewTrees(seed), nil
	})
}
