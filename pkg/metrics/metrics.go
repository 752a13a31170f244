// Package metrics exposes the generator's Prometheus collectors:
// queue depth, per-chunk generation latency, and skip/fault counts.
// No corpus call site was retrieved for client_golang (see DESIGN.md);
// this follows the library's own standard New*/MustRegister
// convention instead of a specific grounded example.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors holds every metric the generator updates. Construct one
// with NewCollectors and register it with a prometheus.Registerer.
type Collectors struct {
	QueueDepth        prometheus.Gauge
	GenerationSeconds prometheus.Histogram
	ChunksSkipped     prometheus.Counter
	ChunksFaulted     prometheus.Counter
	ChunksDelivered   prometheus.Counter
}

// NewCollectors creates a fresh, unregistered set of collectors.
func NewCollectors() *Collectors {
	return &Collectors{
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chunkgen",
			Name:      "queue_depth",
			Help:      "Number of distinct chunk coordinates currently pending in the request queue.",
		}),
		GenerationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chunkgen",
			Name:      "generation_seconds",
			Help:      "Wall-clock time spent running the pipeline for one chunk.",
			Buckets:   prometheus.DefBuckets,
		}),
		ChunksSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chunkgen",
			Name:      "chunks_skipped_total",
			Help:      "Chunks skipped under the overload policy (queue above high-water, no client in view).",
		}),
		ChunksFaulted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chunkgen",
			Name:      "chunks_faulted_total",
			Help:      "Chunks abandoned because a pipeline stage faulted or the sink panicked.",
		}),
		ChunksDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chunkgen",
			Name:      "chunks_delivered_total",
			Help:      "Chunks successfully generated and handed to the sink.",
		}),
	}
}

// MustRegister registers every collector with reg, panicking on
// collision — the standard client_golang startup-time convention.
func (c *Collectors) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		c.QueueDepth,
		c.GenerationSeconds,
		c.ChunksSkipped,
		c.ChunksFaulted,
		c.ChunksDelivered,
	)
}
