// Package pipeline defines the five stage contracts of the chunk
// generation pipeline (biome, height, composition, structure, finish),
// the selector-string registries concrete stage implementations plug
// into, and the Assembler that wires a PipelineConfig into a runnable
// Pipeline.
package pipeline

import "github.com/blockforge/chunkgen/pkg/voxel"

// BiomeGen assigns a biome tag to every column of a chunk. Implementations
// must be pure in (seed, chunk coordinate) and safe for concurrent use —
// the direct-query API and the worker may call into the same BiomeGen
// from different goroutines at the same time.
type BiomeGen interface {
	GenBiomes(cx, cz int32) (voxel.BiomeMap, error)
}

// TerrainHeightGen derives a surface-height map for a chunk. It may hold
// a reference to the pipeline's BiomeGen to query the target chunk or
// its neighbors (e.g. to average height across a biome boundary); any
// internal caching must be keyed on coordinates so it never diverges
// from an uncached computation.
type TerrainHeightGen interface {
	GenHeightMap(cx, cz int32) (voxel.HeightMap, error)
}

// TerrainCompositionGen fills in block types, metadata, and any entities
// implied directly by the terrain shape (e.g. water in flooded columns).
// It must initialize every cell of the returned BlockTypes/BlockNibbles,
// air included.
type TerrainCompositionGen interface {
	ComposeTerrain(cx, cz int32, heights voxel.HeightMap) (voxel.BlockTypes, voxel.BlockNibbles, voxel.Entities, voxel.BlockEntities, error)
}

// StructureGen reads and mutates the composed chunk to add a larger
// feature — a village, an ore vein, anything bigger than a single-column
// decoration. Ore bodies are modeled as structure generators. Multiple
// structure generators run in the order configured; that order is part
// of the deterministic contract.
type StructureGen interface {
	GenStructures(cx, cz int32, blocks *voxel.BlockTypes, metas *voxel.BlockNibbles, heights *voxel.HeightMap, entities *voxel.Entities, blockEntities *voxel.BlockEntities) error
}

// FinishGen is like StructureGen but intended for small cosmetic
// additions (trees, snow cover, surface clutter). It receives an
// immutable view of the biome map to make biome-sensitive decisions.
type FinishGen interface {
	GenFinish(cx, cz int32, blocks *voxel.BlockTypes, metas *voxel.BlockNibbles, heights *voxel.HeightMap, biomes voxel.BiomeMap, entities *voxel.Entities, blockEntities *voxel.BlockEntities) error
}
