// Package terrain implements TerrainHeightGen stages: Flat (a constant
// surface height, for tests and superflat worlds) and Noise (octave
// terrain noise shaped by the biome at each column, with rare rivers
// and lakes carved in, adapted from the teacher's SurfaceHeight).
package terrain

import (
	"fmt"
	"math"
	"strconv"

	"github.com/blockforge/chunkgen/pkg/biome"
	"github.com/blockforge/chunkgen/pkg/noise"
	"github.com/blockforge/chunkgen/pkg/pipeline"
	"github.com/blockforge/chunkgen/pkg/voxel"
)

// Flat is a TerrainHeightGen that reports the same surface height for
// every column. Its selector argument is that height, e.g. "Flat:64".
type Flat struct {
	height int16
}

// NewFlat creates a Flat height generator at the given surface height.
func NewFlat(height int16) *Flat {
	return &Flat{height: height}
}

// GenHeightMap implements pipeline.TerrainHeightGen.
func (f *Flat) GenHeightMap(cx, cz int32) (voxel.HeightMap, error) {
	var m voxel.HeightMap
	for i := range m {
		m[i] = f.height
	}
	return m, nil
}

// Noise is a TerrainHeightGen that combines octave Perlin noise with
// the biome's base height and variation, plus rare ridged-river and
// threshold-lake carving, adapted from the teacher's SurfaceHeight.
type Noise struct {
	biome   pipeline.BiomeGen
	terrain *noise.Perlin
	river   *noise.Perlin
	lake    *noise.Perlin
}

// NewNoise creates a Noise height generator bound to the given seed and
// BiomeGen. The BiomeGen reference lets Noise look up each column's
// biome-specific base height and variation.
func NewNoise(seed int32, biomeGen pipeline.BiomeGen) *Noise {
	return &Noise{
		biome:   biomeGen,
		terrain: noise.New(int64(seed)),
		river:   noise.New(int64(seed) + 400),
		lake:    noise.New(int64(seed) + 300),
	}
}

// GenHeightMap implements pipeline.TerrainHeightGen. It queries the
// associated BiomeGen for this chunk's biomes, then shapes a height
// per column.
func (n *Noise) GenHeightMap(cx, cz int32) (voxel.HeightMap, error) {
	biomes, err := n.biome.GenBiomes(cx, cz)
	if err != nil {
		return voxel.HeightMap{}, fmt.Errorf("terrain: querying biomes: %w", err)
	}

	var m voxel.HeightMap
	for lx := 0; lx < voxel.Width; lx++ {
		for lz := 0; lz < voxel.Width; lz++ {
			wx := cx*voxel.Width + int32(lx)
			wz := cz*voxel.Width + int32(lz)
			b := biome.ByTag(biomes.At(lx, lz))
			m.Set(lx, lz, int16(n.heightAt(wx, wz, b)))
		}
	}
	return m, nil
}

func (n *Noise) heightAt(x, z int32, b *biome.Biome) float64 {
	const noiseScale = 0.015
	h := n.terrain.OctaveNoise2D(float64(x)*noiseScale, float64(z)*noiseScale, 3, 2.0, 0.5)
	height := float64(b.BaseHeight) + h*b.HeightVariation

	const riverScale = 0.003
	rv := math.Abs(n.river.Noise2D(float64(x)*riverScale, float64(z)*riverScale))
	if rv < 0.04 {
		height -= (0.04 - rv) / 0.04 * 15.0
	}

	const lakeScale = 0.01
	lv := n.lake.Noise2D(float64(x)*lakeScale, float64(z)*lakeScale)
	if lv > 0.82 {
		height -= (lv - 0.82) / (1.0 - 0.82) * 12.0
	}

	return height
}

func init() {
	pipeline.RegisterTerrainHeightGen("flat", func(seed int32, arg string, _ pipeline.BiomeGen) (pipeline.TerrainHeightGen, error) {
		if arg == "" {
			return NewFlat(64), nil
		}
		h, err := strconv.ParseInt(arg, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("terrain: parsing Flat height %q: %w", arg, err)
		}
		return NewFlat(int16(h)), nil
	})
	pipeline.RegisterTerrainHeightGen("noise", func(seed int32, arg string, biomeGen pipeline.BiomeGen) (pipeline.TerrainHeightGen, error) {
		return NewNoise(seed, biomeGen), nil
	})
}
