// Command chunkgend is a small demo binary: it starts a Generator
// against an in-memory MemWorld, enqueues a square of chunks around
// the origin, waits for the queue to drain, and reports what was
// delivered. Grounded on the teacher's cmd/server/main.go (stdlib
// flag parsing, signal channel raced against an internal stop
// channel) — chunkgend has no listener to stop, so its select races
// the OS signal against the queue simply finishing.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blockforge/chunkgen/pkg/config"
	"github.com/blockforge/chunkgen/pkg/generator"
	"github.com/blockforge/chunkgen/pkg/metrics"
	"github.com/blockforge/chunkgen/pkg/worldapi"

	_ "github.com/blockforge/chunkgen/pkg/biome"
	_ "github.com/blockforge/chunkgen/pkg/composition"
	_ "github.com/blockforge/chunkgen/pkg/finish"
	_ "github.com/blockforge/chunkgen/pkg/structure"
	_ "github.com/blockforge/chunkgen/pkg/terrain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a PipelineConfig YAML file (if empty, flags below are used instead)")
	biomeGen := flag.String("biome-gen", "Constant:plains", "Biome generator selector")
	heightGen := flag.String("height-gen", "Flat:64", "Terrain height generator selector")
	compositionGen := flag.String("composition-gen", "Classic", "Terrain composition generator selector")
	structures := flag.String("structures", "", "Comma-separated structure generator selectors")
	finishers := flag.String("finishers", "Trees,SnowCover", "Comma-separated finisher selectors")
	seed := flag.Int("seed", 1, "World seed")
	radius := flag.Int("radius", 4, "Chunk radius around the origin to generate")
	metricsAddr := flag.String("metrics-address", "", "If set, serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := loadConfig(*configPath, *biomeGen, *heightGen, *compositionGen, *structures, *finishers, *seed)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	collectors := metrics.NewCollectors()
	reg := prometheus.NewRegistry()
	collectors.MustRegister(reg)

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		logger.Info("serving metrics", zap.String("address", *metricsAddr))
	}

	world := worldapi.NewMemWorld()
	gen, err := generator.New(world.AsWorld(), cfg, generator.Options{
		Logger:  logger,
		Metrics: collectors,
	})
	if err != nil {
		logger.Fatal("failed to assemble pipeline", zap.Error(err))
	}
	gen.Start()

	logger.Info("chunkgend started",
		zap.Int32("seed", gen.Seed()),
		zap.String("biome_gen", cfg.BiomeGen),
		zap.String("height_gen", cfg.HeightGen),
		zap.String("composition_gen", cfg.CompositionGen))

	for x := -*radius; x <= *radius; x++ {
		for z := -*radius; z <= *radius; z++ {
			gen.QueueGenerateChunk(int32(x), 0, int32(z))
		}
	}

	done := make(chan struct{})
	go func() {
		gen.WaitForQueueEmpty()
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down (signal received)", zap.String("signal", sig.String()))
	case <-done:
		logger.Info("queue drained", zap.Int("chunks_delivered", len(world.Delivered())))
	}

	gen.Stop()
	logger.Info("chunkgend stopped")
}

func loadConfig(path, biomeGen, heightGen, compositionGen, structures, finishers string, seed int) (config.PipelineConfig, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromView(config.View{
		"biome_gen":       biomeGen,
		"height_gen":      heightGen,
		"composition_gen": compositionGen,
		"structures":      structures,
		"finishers":       finishers,
		"seed":            fmt.Sprintf("%d", seed),
	})
}
