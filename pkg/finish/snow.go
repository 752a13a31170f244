package finish

import (
	"github.com/blockforge/chunkgen/pkg/biome"
	"github.com/blockforge/chunkgen/pkg/pipeline"
	"github.com/blockforge/chunkgen/pkg/voxel"
)

// SnowLayer is the thin snow-layer block placed on cold biomes'
// surfaces. It is distinct from composition.SnowBlock (a full solid
// snow block, used as SnowyTundra's surface block) — this is a
// cosmetic single-layer placed on top of whatever the surface already
// is, the way snow accumulates on grass, logs and leaves alike.
const SnowLayer byte = 78

// SnowCover is a small FinishGen that caps cold-biome surfaces —
// including any tree canopy Trees already placed — with a snow layer.
// It exists mainly to exercise the "finishers run in the order
// configured" contract: SnowCover must run after Trees to snow-cap
// leaves, not before.
type SnowCover struct{}

// NewSnowCover creates a SnowCover finisher. It takes no seed-derived
// state: snow coverage is a deterministic function of biome alone.
func NewSnowCover() *SnowCover { return &SnowCover{} }

// GenFinish implements pipeline.FinishGen.
func (s *SnowCover) GenFinish(cx, cz int32, blocks *voxel.BlockTypes, metas *voxel.BlockNibbles, heights *voxel.HeightMap, biomes voxel.BiomeMap, entities *voxel.Entities, blockEntities *voxel.BlockEntities) error {
	for lx := 0; lx < voxel.Width; lx++ {
		for lz := 0; lz < voxel.Width; lz++ {
			b := biome.ByTag(biomes.At(lx, lz))
			if b != biome.SnowyTundra && b != biome.ExtremeHills {
				continue
			}
			top := s.topSolidBlock(blocks, lx, lz)
			if top < 0 || top+1 >= voxel.Height {
				continue
			}
			if blocks.At(lx, top+1, lz) == 0 {
				blocks.Set(lx, top+1, lz, SnowLayer)
			}
		}
	}
	return nil
}

// topSolidBlock finds the highest non-air block in a column, searching
// down from the world ceiling so it correctly caps tree canopies that
// reach above the terrain surface.
func (s *SnowCover) topSolidBlock(blocks *voxel.BlockTypes, lx, lz int) int {
	for ly := voxel.Height - 1; ly >= 0; ly-- {
		if blocks.At(lx, ly, lz) != 0 {
			return ly
		}
	}
	return -1
}

func init() {
	pipeline.RegisterFinishGen("snowcover", func(seed int32, arg string, _ pipeline.BiomeGen, _ pipeline.TerrainHeightGen) (pipeline.FinishGen, error) {
		return NewSnowCover(), nil
	})
}
