package generator

import (
	"sync"
	"testing"
	"time"

	"github.com/blockforge/chunkgen/pkg/composition"
	"github.com/blockforge/chunkgen/pkg/config"
	"github.com/blockforge/chunkgen/pkg/voxel"
	"github.com/blockforge/chunkgen/pkg/worldapi"

	_ "github.com/blockforge/chunkgen/pkg/biome"
	_ "github.com/blockforge/chunkgen/pkg/composition"
	_ "github.com/blockforge/chunkgen/pkg/terrain"
)

func plainsConfig(seed int32) config.PipelineConfig {
	return config.PipelineConfig{
		BiomeGen:       "Constant:plains",
		HeightGen:      "Flat:64",
		CompositionGen: "Classic",
		Seed:           seed,
	}
}

func newStarted(t *testing.T, mw *worldapi.MemWorld, cfg config.PipelineConfig, opts Options) *Generator {
	t.Helper()
	g, err := New(mw.AsWorld(), cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Start()
	t.Cleanup(g.Stop)
	return g
}

// S1
func TestScenario_PlainsFlatClassic(t *testing.T) {
	mw := worldapi.NewMemWorld()
	g := newStarted(t, mw, plainsConfig(1), Options{})

	g.QueueGenerateChunk(0, 0, 0)
	g.WaitForQueueEmpty()

	deadline := time.After(2 * time.Second)
	for {
		if c, ok := mw.Chunk(0, 0); ok {
			for i := range c.Biomes {
				if c.Biomes[i] != 1 { // Plains.ID
					t.Fatalf("biome[%d] = %d, want Plains (1)", i, c.Biomes[i])
				}
			}
			for i := range c.Heights {
				if c.Heights[i] != 64 {
					t.Fatalf("height[%d] = %d, want 64", i, c.Heights[i])
				}
			}
			for ly := 1; ly < 64; ly++ {
				if c.Blocks.At(5, ly, 5) != composition.Stone {
					t.Fatalf("block[%d] = %d, want Stone below the surface (spec.md S1)", ly, c.Blocks.At(5, ly, 5))
				}
			}
			if c.Blocks.At(5, 64, 5) != composition.Grass {
				t.Fatal("expected grass at the surface")
			}
			if c.Blocks.At(5, 100, 5) != composition.Air {
				t.Fatal("expected air above the surface")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("chunk never delivered")
		case <-time.After(time.Millisecond):
		}
	}
}

// S2
func TestScenario_RapidDuplicateEnqueueDedups(t *testing.T) {
	mw := worldapi.NewMemWorld()
	g := newStarted(t, mw, plainsConfig(2), Options{})

	for i := 0; i < 3; i++ {
		g.QueueGenerateChunk(5, 0, 5)
		if l := g.QueueLength(); l > 1 {
			t.Fatalf("queue length = %d, want <= 1", l)
		}
	}
	g.WaitForQueueEmpty()

	deadline := time.After(2 * time.Second)
	for {
		delivered := mw.Delivered()
		if len(delivered) > 0 {
			if len(delivered) != 1 {
				t.Fatalf("got %d deliveries, want exactly 1", len(delivered))
			}
			if delivered[0].Coord != (voxel.Coord{X: 5, Z: 5}) {
				t.Fatalf("delivered coord = %v, want (5,5)", delivered[0].Coord)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("chunk (5,5) never delivered")
		case <-time.After(time.Millisecond):
		}
	}
}

// S3
func TestScenario_AlreadyAvailableSkipsGeneration(t *testing.T) {
	mw := worldapi.NewMemWorld()
	mw.DeliverChunk(&voxel.Chunk{Coord: voxel.Coord{X: 0, Z: 0}})

	g := newStarted(t, mw, plainsConfig(3), Options{})
	g.QueueGenerateChunk(0, 0, 0)
	g.WaitForQueueEmpty()

	time.Sleep(20 * time.Millisecond)
	if len(mw.Delivered()) != 1 {
		t.Fatalf("got %d deliveries, want exactly the pre-seeded one (no regeneration)", len(mw.Delivered()))
	}
}

// S4
func TestScenario_OverloadSkipsClientlessChunks(t *testing.T) {
	mw := worldapi.NewMemWorld()
	g := newStarted(t, mw, plainsConfig(4), Options{HighWaterMark: 2})

	for i := int32(0); i < 20; i++ {
		g.QueueGenerateChunk(i, 0, 0) // AnyClientWithinView defaults false
	}
	g.WaitForQueueEmpty()

	time.Sleep(50 * time.Millisecond)
	if g.QueueLength() != 0 {
		t.Fatalf("queue length = %d, want 0 after drain", g.QueueLength())
	}
}

// S5
func TestScenario_StopAbandonsRemainingWork(t *testing.T) {
	mw := worldapi.NewMemWorld()
	g, err := New(mw.AsWorld(), plainsConfig(5), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Start()

	for i := int32(0); i < 10; i++ {
		g.QueueGenerateChunk(i, 0, 0)
	}
	g.Stop()

	countAfterStop := len(mw.Delivered())
	time.Sleep(50 * time.Millisecond)
	if len(mw.Delivered()) != countAfterStop {
		t.Fatal("sink received deliveries after Stop's join returned")
	}
}

// S6
func TestScenario_ConcurrentGenerateBiomesAgree(t *testing.T) {
	mw := worldapi.NewMemWorld()
	g, err := New(mw.AsWorld(), config.PipelineConfig{
		BiomeGen:  "Climate",
		HeightGen: "Flat:64",
		CompositionGen: "Classic",
		Seed:      6,
	}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]voxel.BiomeMap, 8)
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.GenerateBiomes(3, 7)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("GenerateBiomes call %d: %v", i, err)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("GenerateBiomes call %d disagreed with call 0", i)
		}
	}
}

func TestStopIsIdempotent(t *testing.T) {
	mw := worldapi.NewMemWorld()
	g, err := New(mw.AsWorld(), plainsConfig(7), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Start()
	g.Stop()
	g.Stop()
	g.Stop()
}

func TestSeedAndBiomeAt(t *testing.T) {
	mw := worldapi.NewMemWorld()
	g, err := New(mw.AsWorld(), plainsConfig(42), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Seed() != 42 {
		t.Fatalf("Seed() = %d, want 42", g.Seed())
	}
	tag, err := g.BiomeAt(17, -3)
	if err != nil {
		t.Fatalf("BiomeAt: %v", err)
	}
	if tag != 1 { // Plains.ID
		t.Fatalf("BiomeAt = %d, want Plains (1)", tag)
	}
}

func TestInvalidConfigRejectedAtNew(t *testing.T) {
	mw := worldapi.NewMemWorld()
	_, err := New(mw.AsWorld(), config.PipelineConfig{
		BiomeGen:       "NoSuchBiome",
		HeightGen:      "Flat:64",
		CompositionGen: "Classic",
		Seed:           1,
	}, Options{})
	if err == nil {
		t.Fatal("expected an error for an unknown biome selector")
	}
}
