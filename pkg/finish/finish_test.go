package finish

import (
	"testing"

	"github.com/blockforge/chunkgen/pkg/biome"
	"github.com/blockforge/chunkgen/pkg/voxel"
)

func flatGrassChunk(surfaceH int) (*voxel.BlockTypes, *voxel.HeightMap, voxel.BiomeMap) {
	var blocks voxel.BlockTypes
	var heights voxel.HeightMap
	var biomes voxel.BiomeMap
	for lx := 0; lx < voxel.Width; lx++ {
		for lz := 0; lz < voxel.Width; lz++ {
			heights.Set(lx, lz, int16(surfaceH))
			for ly := 0; ly <= surfaceH; ly++ {
				blocks.Set(lx, ly, lz, 2) // grass
			}
		}
	}
	return &blocks, &heights, biomes
}

func TestTreesDeterministic(t *testing.T) {
	trees := NewTrees(11)

	run := func() voxel.BlockTypes {
		blocks, heights, biomes := flatGrassChunk(64)
		for i := range biomes {
			biomes[i] = biome.Forest.ID
		}
		var metas voxel.BlockNibbles
		var entities voxel.Entities
		var blockEntities voxel.BlockEntities
		if err := trees.GenFinish(4, -2, blocks, &metas, heights, biomes, &entities, &blockEntities); err != nil {
			t.Fatalf("GenFinish: %v", err)
		}
		return *blocks
	}

	a, b := run(), run()
	if a != b {
		t.Fatal("Trees placement must be a deterministic function of (seed, chunk)")
	}
}

func TestTreesNoneWhenDensityZero(t *testing.T) {
	trees := NewTrees(1)
	blocks, heights, biomes := flatGrassChunk(64)
	for i := range biomes {
		biomes[i] = biome.Ocean.ID // TreeDensity is zero for Ocean
	}
	var metas voxel.BlockNibbles
	var entities voxel.Entities
	var blockEntities voxel.BlockEntities
	if err := trees.GenFinish(0, 0, blocks, &metas, heights, biomes, &entities, &blockEntities); err != nil {
		t.Fatalf("GenFinish: %v", err)
	}
	for lx := 0; lx < voxel.Width; lx++ {
		for lz := 0; lz < voxel.Width; lz++ {
			for ly := 0; ly < voxel.Height; ly++ {
				if blocks.At(lx, ly, lz) == Log || blocks.At(lx, ly, lz) == Leaves {
					t.Fatalf("no trees should be placed in a zero-density biome")
				}
			}
		}
	}
}

func TestSnowCoverCapsSurfaceInColdBiome(t *testing.T) {
	blocks, heights, biomes := flatGrassChunk(64)
	for i := range biomes {
		biomes[i] = biome.SnowyTundra.ID
	}
	sc := NewSnowCover()
	var metas voxel.BlockNibbles
	var entities voxel.Entities
	var blockEntities voxel.BlockEntities
	if err := sc.GenFinish(0, 0, blocks, &metas, heights, biomes, &entities, &blockEntities); err != nil {
		t.Fatalf("GenFinish: %v", err)
	}
	if blocks.At(5, 65, 5) != SnowLayer {
		t.Fatalf("expected a snow layer above the surface, got %d", blocks.At(5, 65, 5))
	}
}

func TestSnowCoverSkipsWarmBiome(t *testing.T) {
	blocks, heights, biomes := flatGrassChunk(64)
	for i := range biomes {
		biomes[i] = biome.Plains.ID
	}
	sc := NewSnowCover()
	var metas voxel.BlockNibbles
	var entities voxel.Entities
	var blockEntities voxel.BlockEntities
	if err := sc.GenFinish(0, 0, blocks, &metas, heights, biomes, &entities, &blockEntities); err != nil {
		t.Fatalf("GenFinish: %v", err)
	}
	if blocks.At(5, 65, 5) == SnowLayer {
		t.Fatal("snow must not be placed in warm biomes")
	}
}

func TestSnowCoverRunsAfterTreesCapsCanopy(t *testing.T) {
	blocks, heights, biomes := flatGrassChunk(64)
	for i := range biomes {
		biomes[i] = biome.SnowyTundra.ID
	}
	trees := NewTrees(5)
	sc := NewSnowCover()
	var metas voxel.BlockNibbles
	var entities voxel.Entities
	var blockEntities voxel.BlockEntities
	if err := trees.GenFinish(0, 0, blocks, &metas, heights, biomes, &entities, &blockEntities); err != nil {
		t.Fatalf("trees GenFinish: %v", err)
	}
	if err := sc.GenFinish(0, 0, blocks, &metas, heights, biomes, &entities, &blockEntities); err != nil {
		t.Fatalf("snow GenFinish: %v", err)
	}
	// Whatever the true top of each column became (grass or tree canopy),
	// SnowCover must have found and capped it somewhere in the chunk.
	foundSnow := false
	for lx := 0; lx < voxel.Width; lx++ {
		for lz := 0; lz < voxel.Width; lz++ {
			for ly := voxel.Height - 1; ly >= 0; ly-- {
				if blocks.At(lx, ly, lz) == SnowLayer {
					foundSnow = true
				}
			}
		}
	}
	if !foundSnow {
		t.Fatal("expected SnowCover to cap at least one column after Trees ran")
	}
}
