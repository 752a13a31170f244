// Package generator is the public API (§6): Start/Stop lifecycle, the
// request queue, the background worker, and the direct-query surface.
// The worker's goroutine-plus-WaitGroup shape is adapted from the
// teacher's pkg/server loop/shutdown idiom (regenerationLoop/
// keepAliveLoop paired with Server.Stop's close(stopCh)), generalized
// from "one loop per player" to "one loop, period" — §4.D's
// single-worker constraint forbids more than one. There is no stop
// channel: the stop signal reaches the worker through queue.Stop.
package generator

import (
	"sync"
	"time"

	"github.com/blockforge/chunkgen/pkg/config"
	"github.com/blockforge/chunkgen/pkg/metrics"
	"github.com/blockforge/chunkgen/pkg/pipeline"
	"github.com/blockforge/chunkgen/pkg/queue"
	"github.com/blockforge/chunkgen/pkg/voxel"
	"github.com/blockforge/chunkgen/pkg/worldapi"
	"go.uber.org/zap"
)

// DefaultHighWaterMark is the queue-length threshold above which the
// worker may skip a dequeued coordinate nobody is watching. spec.md
// names the overload policy but not a default value; see DESIGN.md.
const DefaultHighWaterMark = 64

// Options configures a Generator beyond the stage-selector
// PipelineConfig: the overload-skip threshold and the logger.
type Options struct {
	HighWaterMark int
	Logger        *zap.Logger
	Metrics       *metrics.Collectors
}

// Generator is the chunk generator: a request queue, one background
// worker, and a pipeline assembled from PipelineConfig. It holds no
// persistent state beyond the queue — see spec.md §6.
type Generator struct {
	seed int32

	world World
	q     *queue.Queue
	pipe  *pipeline.Pipeline

	highWaterMark int
	logger        *zap.Logger
	metrics       *metrics.Collectors

	stopOnce sync.Once
	wg       sync.WaitGroup
}

// World is a local alias of worldapi.World, kept so callers can
// construct a Generator without importing worldapi directly if they
// only need the function fields.
type World = worldapi.World

// New assembles a Pipeline from cfg and returns a Generator bound to
// world, but does not start the worker — call Start for that. Kept
// distinct from Start so tests can inspect pipeline-assembly failures
// (*pipeline.InvalidConfigError) without a goroutine in flight.
func New(world World, cfg config.PipelineConfig, opts Options) (*Generator, error) {
	pipe, err := pipeline.Assemble(cfg)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	hwm := opts.HighWaterMark
	if hwm <= 0 {
		hwm = DefaultHighWaterMark
	}

	return &Generator{
		seed:          cfg.Seed,
		world:         world,
		q:             queue.New(),
		pipe:          pipe,
		highWaterMark: hwm,
		logger:        logger,
		metrics:       opts.Metrics,
	}, nil
}

// Start launches the single background worker goroutine. Safe to call
// at most once per Generator.
func (g *Generator) Start() {
	g.wg.Add(1)
	go g.workerLoop()
}

// QueueGenerateChunk enqueues (x, z) for background generation. y is
// accepted for call-site source-compatibility and discarded — see
// spec.md §9 and DESIGN.md's Open Question decision on this point.
func (g *Generator) QueueGenerateChunk(x, y, z int32) {
	_ = y
	g.q.Enqueue(voxel.Coord{X: x, Z: z})
	if g.metrics != nil {
		g.metrics.QueueDepth.Set(float64(g.q.Length()))
	}
}

// WaitForQueueEmpty blocks until the queue drains, or returns
// immediately if Stop has been called.
func (g *Generator) WaitForQueueEmpty() {
	g.q.WaitUntilEmpty()
}

// QueueLength reports the number of distinct pending coordinates.
func (g *Generator) QueueLength() int {
	return g.q.Length()
}

// Seed returns the generator's world seed.
func (g *Generator) Seed() int32 {
	return g.seed
}

// GenerateBiomes invokes BiomeGen synchronously on the caller's
// goroutine, bypassing the queue entirely. Safe under concurrent calls
// and concurrent worker activity since BiomeGen implementations are
// required to be re-entrant or internally synchronized (spec.md §4.E).
func (g *Generator) GenerateBiomes(cx, cz int32) (voxel.BiomeMap, error) {
	return g.pipe.Biome().GenBiomes(cx, cz)
}

// BiomeAt converts a world block coordinate to its containing chunk
// and column and returns that column's biome tag.
func (g *Generator) BiomeAt(blockX, blockZ int32) (byte, error) {
	return g.pipe.BiomeAt(blockX, blockZ)
}

// Stop runs the shutdown protocol (§4.F): it signals the queue's two
// conditions, joins the worker, and discards any still-pending
// requests. Idempotent and safe to call from any goroutine other than
// the worker itself.
func (g *Generator) Stop() {
	g.stopOnce.Do(func() {
		g.q.Stop()
		g.wg.Wait()
	})
}

// workerLoop is the single dedicated background worker (§4.D). It
// never recovers from the "multiple workers" temptation — the loop
// is written so a second instance of it would double-generate a
// coord in the dequeue-to-deliver window spec.md's Design Notes warn
// about, which is exactly why Start only ever launches one.
func (g *Generator) workerLoop() {
	defer g.wg.Done()
	for {
		coord, ok := g.q.DequeueBlocking()
		if !ok {
			return // stop sentinel
		}
		g.processOne(coord)
	}
}

func (g *Generator) processOne(coord voxel.Coord) {
	if g.world.IsChunkAvailable(coord.X, coord.Z) {
		g.q.SignalRemoved()
		return
	}

	if g.q.Length() > g.highWaterMark && !g.world.AnyClientWithinView(coord.X, coord.Z) {
		g.logger.Debug("skipping overloaded chunk with no interested client",
			zap.Int32("x", coord.X), zap.Int32("z", coord.Z))
		if g.metrics != nil {
			g.metrics.ChunksSkipped.Inc()
		}
		g.q.SignalRemoved()
		return
	}

	start := time.Now()
	chunk, err := g.pipe.Generate(coord.X, coord.Z)
	if g.metrics != nil {
		g.metrics.GenerationSeconds.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		g.logger.Warn("stage fault generating chunk",
			zap.Int32("x", coord.X), zap.Int32("z", coord.Z), zap.Error(err))
		if g.metrics != nil {
			g.metrics.ChunksFaulted.Inc()
		}
		g.q.SignalRemoved()
		return
	}

	if g.deliver(chunk) {
		if g.metrics != nil {
			g.metrics.ChunksDelivered.Inc()
		}
	} else if g.metrics != nil {
		g.metrics.ChunksFaulted.Inc()
	}
	if g.metrics != nil {
		g.metrics.QueueDepth.Set(float64(g.q.Length()))
	}
	g.q.SignalRemoved()
}

// deliver hands the chunk to the sink, converting a sink panic into a
// logged StageFault-equivalent rather than crashing the worker — the
// spec treats SinkBusy/sink failures as the sink's problem but still
// requires the worker to survive them (§7). Reports false when the
// sink panicked, so the caller counts it as a fault rather than a
// delivery.
func (g *Generator) deliver(chunk *voxel.Chunk) (delivered bool) {
	delivered = true
	defer func() {
		if r := recover(); r != nil {
			delivered = false
			g.logger.Warn("sink panicked delivering chunk",
				zap.Int32("x", chunk.Coord.X), zap.Int32("z", chunk.Coord.Z),
				zap.Any("panic", r))
		}
	}()
	g.world.DeliverChunk(chunk)
	return
}
