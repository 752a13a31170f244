package pipeline

import (
	"github.com/blockforge/chunkgen/pkg/voxel"
)

// Pipeline is the assembled, seed-bound sequence Biome -> Height ->
// Composition -> Structures* -> Finishers*. It owns its stage
// instances exclusively; they are created at Assemble and never
// reassigned while a pipeline is in use.
type Pipeline struct {
	seed        int32
	biome       BiomeGen
	height      TerrainHeightGen
	composition TerrainCompositionGen
	structures  []namedStructureGen
	finishers   []namedFinishGen
}

type namedStructureGen struct {
	name string
	gen  StructureGen
}

type namedFinishGen struct {
	name string
	gen  FinishGen
}

// Seed returns the seed this pipeline was assembled with.
func (p *Pipeline) Seed() int32 { return p.seed }

// Biome exposes the assembled BiomeGen for the direct-query API, which
// needs to invoke biome generation without running the full pipeline.
func (p *Pipeline) Biome() BiomeGen { return p.biome }

// Generate runs every stage in fixed order for one chunk coordinate and
// returns the fully populated chunk. Any stage fault aborts generation
// of this chunk only and is returned wrapped in a *StageFaultError; the
// caller is expected to log it and move on rather than retry.
func (p *Pipeline) Generate(cx, cz int32) (*voxel.Chunk, error) {
	biomes, err := p.biome.GenBiomes(cx, cz)
	if err != nil {
		return nil, &StageFaultError{Stage: "biome", Cx: cx, Cz: cz, Err: err}
	}

	heights, err := p.height.GenHeightMap(cx, cz)
	if err != nil {
		return nil, &StageFaultError{Stage: "height", Cx: cx, Cz: cz, Err: err}
	}

	blocks, metas, entities, blockEntities, err := p.composition.ComposeTerrain(cx, cz, heights)
	if err != nil {
		return nil, &StageFaultError{Stage: "composition", Cx: cx, Cz: cz, Err: err}
	}

	for _, s := range p.structures {
		if err := s.gen.GenStructures(cx, cz, &blocks, &metas, &heights, &entities, &blockEntities); err != nil {
			return nil, &StageFaultError{Stage: "structure:" + s.name, Cx: cx, Cz: cz, Err: err}
		}
	}

	for _, f := range p.finishers {
		if err := f.gen.GenFinish(cx, cz, &blocks, &metas, &heights, biomes, &entities, &blockEntities); err != nil {
			return nil, &StageFaultError{Stage: "finish:" + f.name, Cx: cx, Cz: cz, Err: err}
		}
	}

	return &voxel.Chunk{
		Coord:         voxel.Coord{X: cx, Z: cz},
		Blocks:        blocks,
		Metas:         metas,
		Heights:       heights,
		Biomes:        biomes,
		Entities:      entities,
		BlockEntities: blockEntities,
	}, nil
}

// BiomeAt converts a world-block coordinate to its chunk and column,
// invokes the BiomeGen, and returns that column's biome tag. It is
// safe to call from any goroutine: BiomeGen implementations are
// required to be re-entrant or internally synchronized.
func (p *Pipeline) BiomeAt(blockX, blockZ int32) (byte, error) {
	cx, cz := blockX>>4, blockZ>>4
	lx, lz := int(blockX&0x0F), int(blockZ&0x0F)

	biomes, err := p.biome.GenBiomes(cx, cz)
	if err != nil {
		return 0, &StageFaultError{Stage: "biome", Cx: cx, Cz: cz, Err: err}
	}
	return biomes.At(lx, lz), nil
}
