// Package biome implements BiomeGen stages: Constant (a single biome
// tag everywhere, for tests and flat worlds) and Climate (temperature/
// rainfall noise selecting among a fixed biome table, in the teacher's
// manner).
package biome

import (
	"fmt"
	"strings"

	"github.com/blockforge/chunkgen/pkg/noise"
	"github.com/blockforge/chunkgen/pkg/pipeline"
	"github.com/blockforge/chunkgen/pkg/voxel"
)

// Biome describes the terrain parameters associated with one biome tag.
// There is deliberately no filler-block field: Classic composition
// fills everything below the surface block with Stone, per spec.md §8
// scenario S1.
type Biome struct {
	ID              byte
	Name            string
	SurfaceBlock    byte
	SurfaceMeta     byte
	BaseHeight      int
	HeightVariation float64
	TreeDensity     float64
}

// Predefined biome table, adapted from the teacher's biome catalogue.
var (
	Ocean        = &Biome{ID: 0, Name: "Ocean", SurfaceBlock: 12, BaseHeight: 38, HeightVariation: 8}
	Plains       = &Biome{ID: 1, Name: "Plains", SurfaceBlock: 2, BaseHeight: 66, HeightVariation: 12, TreeDensity: 0.006}
	Desert       = &Biome{ID: 2, Name: "Desert", SurfaceBlock: 12, BaseHeight: 64, HeightVariation: 10}
	ExtremeHills = &Biome{ID: 3, Name: "ExtremeHills", SurfaceBlock: 2, BaseHeight: 72, HeightVariation: 50, TreeDensity: 0.015}
	Forest       = &Biome{ID: 4, Name: "Forest", SurfaceBlock: 2, BaseHeight: 68, HeightVariation: 14, TreeDensity: 0.05}
	Jungle       = &Biome{ID: 21, Name: "Jungle", SurfaceBlock: 2, BaseHeight: 70, HeightVariation: 20, TreeDensity: 0.12}
	SnowyTundra  = &Biome{ID: 12, Name: "SnowyTundra", SurfaceBlock: 80, BaseHeight: 66, HeightVariation: 8, TreeDensity: 0.004}
)

// ByName resolves a biome's name to its Biome value, case-insensitively.
// Used by Constant's selector argument.
func ByName(name string) (*Biome, bool) {
	for _, b := range []*Biome{Ocean, Plains, Desert, ExtremeHills, Forest, Jungle, SnowyTundra} {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return nil, false
}

// ByTag resolves a biome tag byte back to its Biome value.
func ByTag(tag byte) *Biome {
	for _, b := range []*Biome{Ocean, Plains, Desert, ExtremeHills, Forest, Jungle, SnowyTundra} {
		if b.ID == tag {
			return b
		}
	}
	return Plains
}

// Constant is a BiomeGen that reports the same biome for every column
// of every chunk. Its selector argument is the biome name, e.g.
// "Constant:plains".
type Constant struct {
	tag byte
}

// NewConstant creates a Constant BiomeGen for the named biome.
func NewConstant(name string) (*Constant, error) {
	b, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("biome: unknown constant biome %q", name)
	}
	return &Constant{tag: b.ID}, nil
}

// GenBiomes implements pipeline.BiomeGen.
func (c *Constant) GenBiomes(cx, cz int32) (voxel.BiomeMap, error) {
	var m voxel.BiomeMap
	for i := range m {
		m[i] = c.tag
	}
	return m, nil
}

// Climate is a BiomeGen that selects a biome per column from
// low-frequency temperature and rainfall noise, adapted from the
// teacher's BiomeAt.
type Climate struct {
	temp *noise.Perlin
	rain *noise.Perlin
}

// NewClimate creates a Climate BiomeGen bound to the given seed.
func NewClimate(seed int32) *Climate {
	return &Climate{
		temp: noise.New(int64(seed) + 1),
		rain: noise.New(int64(seed) + 2),
	}
}

// At returns the Biome for a single world-block column, without
// allocating a full BiomeMap. Exposed so TerrainHeightGen/
// TerrainCompositionGen implementations can query neighboring columns
// cheaply.
func (c *Climate) At(worldX, worldZ int32) *Biome {
	const scale = 0.003
	bx := float64(worldX) * scale
	bz := float64(worldZ) * scale

	temp := (c.temp.OctaveNoise2D(bx, bz, 4, 2.0, 0.5) + 1) / 2
	rain := (c.rain.OctaveNoise2D(bx+500, bz+500, 4, 2.0, 0.5) + 1) / 2

	switch {
	case temp < 0.25:
		return SnowyTundra
	case temp < 0.45:
		if rain > 0.4 {
			return Forest
		}
		return Plains
	case temp < 0.75:
		if rain > 0.8 {
			return Jungle
		}
		if rain > 0.3 {
			return Forest
		}
		if rain < 0.2 {
			return ExtremeHills
		}
		return Plains
	default:
		if rain > 0.7 {
			return Jungle
		}
		if rain < 0.3 {
			return Desert
		}
		return Plains
	}
}

// GenBiomes implements pipeline.BiomeGen.
func (c *Climate) GenBiomes(cx, cz int32) (voxel.BiomeMap, error) {
	var m voxel.BiomeMap
	for lx := 0; lx < voxel.Width; lx++ {
		for lz := 0; lz < voxel.Width; lz++ {
			wx := cx*voxel.Width + int32(lx)
			wz := cz*voxel.Width + int32(lz)
			m.Set(lx, lz, c.At(wx, wz).ID)
		}
	}
	return m, nil
}

func init() {
	pipeline.RegisterBiomeGen("constant", func(seed int32, arg string) (pipeline.BiomeGen, error) {
		return NewConstant(arg)
	})
	pipeline.RegisterBiomeGen("climate", func(seed int32, arg string) (pipeline.BiomeGen, error) {
		return NewClimate(seed), nil
	})
}
