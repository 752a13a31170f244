package structure

import (
	"github.com/blockforge/chunkgen/pkg/composition"
	"github.com/blockforge/chunkgen/pkg/pipeline"
	"github.com/blockforge/chunkgen/pkg/stagerng"
	"github.com/blockforge/chunkgen/pkg/voxel"
)

// oreKind describes one ore's block ID and the vertical band and
// abundance it generates in, following vanilla Minecraft's classic
// ore distribution bands.
type oreKind struct {
	name     string
	block    byte
	minY     int
	maxY     int
	veins    int
	veinSize int
}

var oreTable = []oreKind{
	{name: "coal", block: 16, minY: 5, maxY: 128, veins: 10, veinSize: 8},
	{name: "iron", block: 15, minY: 5, maxY: 64, veins: 6, veinSize: 6},
	{name: "gold", block: 14, minY: 5, maxY: 32, veins: 2, veinSize: 4},
	{name: "redstone", block: 73, minY: 5, maxY: 16, veins: 4, veinSize: 6},
	{name: "diamond", block: 56, minY: 5, maxY: 16, veins: 1, veinSize: 3},
}

// OreVeins is a StructureGen that carves ore veins out of stone, in
// the vertical bands and abundances of oreTable. It has no direct
// teacher analogue — the teacher only ever carves caves — but ores are
// named explicitly by the generator's contract as structure generators,
// so this fills that gap, grounded on the teacher's cave/boulder
// placement style (3D-local replacement walk seeded per chunk).
type OreVeins struct {
	seed int32
}

// NewOreVeins creates an OreVeins structure generator for the given seed.
func NewOreVeins(seed int32) *OreVeins {
	return &OreVeins{seed: seed}
}

// GenStructures implements pipeline.StructureGen.
func (o *OreVeins) GenStructures(cx, cz int32, blocks *voxel.BlockTypes, metas *voxel.BlockNibbles, heights *voxel.HeightMap, entities *voxel.Entities, blockEntities *voxel.BlockEntities) error {
	coord := voxel.Coord{X: cx, Z: cz}
	for _, ore := range oreTable {
		rng := stagerng.New(o.seed, "orevein:"+ore.name, coord)
		for v := 0; v < ore.veins; v++ {
			o.carveVein(blocks, rng, ore)
		}
	}
	return nil
}

func (o *OreVeins) carveVein(blocks *voxel.BlockTypes, rng *stagerng.RNG, ore oreKind) {
	lx := rng.Intn(voxel.Width)
	lz := rng.Intn(voxel.Width)
	ly := rng.IntRange(ore.minY, ore.maxY)

	for i := 0; i < ore.veinSize; i++ {
		if lx >= 0 && lx < voxel.Width && lz >= 0 && lz < voxel.Width && ly >= 1 && ly < voxel.Height {
			if blocks.At(lx, ly, lz) == composition.Stone {
				blocks.Set(lx, ly, lz, ore.block)
			}
		}
		// Random walk to the next cell in the vein.
		lx += rng.IntRange(-1, 1)
		ly += rng.IntRange(-1, 1)
		lz += rng.IntRange(-1, 1)
	}
}

func init() {
	pipeline.RegisterStructureGen("oreveins", func(seed int32, arg string, _ pipeline.BiomeGen, _ pipeline.TerrainHeightGen) (pipeline.StructureGen, error) {
		return NewOreVeins(seed), nil
	})
}
