package terrain

import (
	"testing"

	"github.com/blockforge/chunkgen/pkg/biome"
)

func TestFlatReportsConstantHeight(t *testing.T) {
	f := NewFlat(64)
	m, err := f.GenHeightMap(3, -2)
	if err != nil {
		t.Fatalf("GenHeightMap: %v", err)
	}
	for i := range m {
		if m[i] != 64 {
			t.Fatalf("height[%d] = %d, want 64", i, m[i])
		}
	}
}

// TestNoiseDeterministic checks spec.md §3's purity requirement for
// TerrainHeightGen: pure in (seed, coord), including any internal
// caching.
func TestNoiseDeterministic(t *testing.T) {
	b := biome.NewClimate(11)
	n := NewNoise(11, b)

	a, err := n.GenHeightMap(2, 5)
	if err != nil {
		t.Fatalf("GenHeightMap: %v", err)
	}
	c, err := n.GenHeightMap(2, 5)
	if err != nil {
		t.Fatalf("GenHeightMap: %v", err)
	}
	if a != c {
		t.Fatal("Noise.GenHeightMap is not deterministic for the same coordinate")
	}
}

func TestNoiseHeightsStayWithinChunkBounds(t *testing.T) {
	b := biome.NewClimate(22)
	n := NewNoise(22, b)

	for cx := int32(-2); cx <= 2; cx++ {
		for cz := int32(-2); cz <= 2; cz++ {
			m, err := n.GenHeightMap(cx, cz)
			if err != nil {
				t.Fatalf("GenHeightMap(%d,%d): %v", cx, cz, err)
			}
			for _, h := range m {
				if h < 0 || int(h) >= 256 {
					t.Fatalf("height %d out of chunk bounds at (%d,%d)", h, cx, cz)
				}
			}
		}
	}
}

func TestNoiseSeedIsolation(t *testing.T) {
	ba := biome.NewClimate(1)
	bb := biome.NewClimate(2)
	na := NewNoise(1, ba)
	nb := NewNoise(2, bb)

	differs := false
	for cx := int32(-3); cx <= 3 && !differs; cx++ {
		for cz := int32(-3); cz <= 3; cz++ {
			ma, err := na.GenHeightMap(cx, cz)
			if err != nil {
				t.Fatalf("GenHeightMap: %v", err)
			}
			mb, err := nb.GenHeightMap(cx, cz)
			if err != nil {
				t.Fatalf("GenHeightMap: %v", err)
			}
			if ma != mb {
				differs = true
				break
			}
		}
	}
	if !differs {
		t.Fatal("two distinct seeds produced identical height maps across every sampled chunk")
	}
}
