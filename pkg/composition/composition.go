// Package composition implements TerrainCompositionGen stages. Classic
// fills bedrock, Stone, the biome's surface block, and a water table,
// adapted from the teacher's BlockAt/GenerateInternal fill loop.
package composition

import (
	"fmt"

	"github.com/blockforge/chunkgen/pkg/biome"
	"github.com/blockforge/chunkgen/pkg/pipeline"
	"github.com/blockforge/chunkgen/pkg/voxel"
)

// Block type bytes used by this package's stages. These are a small,
// self-contained palette rather than the full vanilla block table —
// later stages (structure/finish) extend it with their own IDs.
const (
	Air       byte = 0
	Stone     byte = 1
	Grass     byte = 2
	Dirt      byte = 3
	Bedrock   byte = 7
	Water     byte = 8
	Sand      byte = 12
	Sandstone byte = 24
	SnowBlock byte = 80
)

// WaterLevel is sea level: columns whose surface falls below it are
// flooded up to this height.
const WaterLevel = 62

// Classic is a TerrainCompositionGen that fills a simple layered
// terrain: bedrock at y=0, Stone everywhere below the surface block,
// the biome's surface block (or sand, if submerged) at the surface,
// water up to WaterLevel, air above. Unlike the teacher's BlockAt/
// GenerateInternal — which fill the whole sub-surface column with the
// biome's filler block (e.g. dirt for Plains) — Classic uses Stone
// uniformly below the surface, per spec.md §8 scenario S1's explicit
// "BlockTypes below y=64 are stone" acceptance check.
type Classic struct {
	biomeGen pipeline.BiomeGen
}

// NewClassic creates a Classic composition generator bound to a
// BiomeGen for per-column surface-block lookups.
func NewClassic(biomeGen pipeline.BiomeGen) *Classic {
	return &Classic{biomeGen: biomeGen}
}

// ComposeTerrain implements pipeline.TerrainCompositionGen.
func (c *Classic) ComposeTerrain(cx, cz int32, heights voxel.HeightMap) (voxel.BlockTypes, voxel.BlockNibbles, voxel.Entities, voxel.BlockEntities, error) {
	var blocks voxel.BlockTypes
	var metas voxel.BlockNibbles

	biomes, err := c.biomeGen.GenBiomes(cx, cz)
	if err != nil {
		return blocks, metas, nil, nil, fmt.Errorf("composition: querying biomes: %w", err)
	}

	for lx := 0; lx < voxel.Width; lx++ {
		for lz := 0; lz < voxel.Width; lz++ {
			b := biome.ByTag(biomes.At(lx, lz))
			surfH := int(heights.At(lx, lz))

			for ly := 0; ly < voxel.Height; ly++ {
				switch {
				case ly == 0:
					blocks.Set(lx, ly, lz, Bedrock)
				case ly < surfH:
					blocks.Set(lx, ly, lz, Stone)
				case ly == surfH:
					if surfH < WaterLevel {
						blocks.Set(lx, ly, lz, Sand)
					} else {
						blocks.Set(lx, ly, lz, b.SurfaceBlock)
						metas.Set(lx, ly, lz, b.SurfaceMeta)
					}
				case ly <= WaterLevel:
					blocks.Set(lx, ly, lz, Water)
				default:
					blocks.Set(lx, ly, lz, Air)
				}
			}
		}
	}

	return blocks, metas, nil, nil, nil
}

func init() {
	pipeline.RegisterCompositionGen("classic", func(seed int32, arg string, biomeGen pipeline.BiomeGen, _ pipeline.TerrainHeightGen) (pipeline.TerrainCompositionGen, error) {
		return NewClassic(biomeGen), nil
	})
}
