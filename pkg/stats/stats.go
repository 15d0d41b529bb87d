// Package stats implements the stats component (C10): node/edge counts,
// index bucket counts, and advisory memory-size estimates, optionally
// exported as Prometheus gauges through a MetricsCollector.
package stats

import (
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gocoreio/graphcore/pkg/graph"
	"github.com/gocoreio/graphcore/pkg/index"
)

// MemoryEstimate holds advisory byte counts for nodes, edges, and index
// buckets. These are per-entry size multiplied by live count, not a true
// allocator introspection (Go exposes no per-object accounting the way
// some runtimes do), so they are explicitly advisory.
type MemoryEstimate struct {
	Nodes   int64
	Edges   int64
	Indices int64
}

// Snapshot is the stats() return value: total_nodes, total_edges, memory.
type Snapshot struct {
	TotalNodes int
	TotalEdges int
	Memory     MemoryEstimate
}

// sizeOfNode and sizeOfEdge approximate the per-entry footprint of the
// struct header only; PropertyMap contents vary per node and are not
// walked here, so these are advisory rather than exact.
var (
	sizeOfNode  = int64(unsafe.Sizeof(graph.Node{}))
	sizeOfEdge  = int64(unsafe.Sizeof(graph.Edge{}))
	sizeOfEntry = int64(16) // one propertyBucketKey / one map bucket overhead estimate
)

// Collect builds a Snapshot from the live store and index, taking no lock
// itself beyond whatever each read method already takes internally.
func Collect(store *graph.Store, idx *index.Layer) Snapshot {
	nodeCount := store.NodeCount()
	edgeCount := store.EdgeCount()
	bucketCount := idx.PropertyBucketCount() + idx.LabelBucketCount()

	return Snapshot{
		TotalNodes: nodeCount,
		TotalEdges: edgeCount,
		Memory: MemoryEstimate{
			Nodes:   int64(nodeCount) * sizeOfNode,
			Edges:   int64(edgeCount) * sizeOfEdge,
			Indices: int64(bucketCount) * sizeOfEntry,
		},
	}
}

// MetricsCollector exports Snapshot values as Prometheus gauges, for hosts
// that scrape graphcore rather than polling Collect directly. It carries
// its own Registry so embedding does not collide with a host's default
// Prometheus registry.
type MetricsCollector struct {
	totalNodes  prometheus.Gauge
	totalEdges  prometheus.Gauge
	memoryBytes *prometheus.GaugeVec
	registry    *prometheus.Registry
}

// NewCollector builds a MetricsCollector with its own registry.
func NewCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	totalNodes := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graphcore_total_nodes",
		Help: "Current number of live nodes in the store.",
	})
	totalEdges := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graphcore_total_edges",
		Help: "Current number of live edges in the store.",
	})
	memoryBytes := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "graphcore_memory_bytes",
		Help: "Advisory byte-size estimate by table.",
	}, []string{"table"})

	registry.MustRegister(totalNodes)
	registry.MustRegister(totalEdges)
	registry.MustRegister(memoryBytes)

	return &MetricsCollector{
		totalNodes:  totalNodes,
		totalEdges:  totalEdges,
		memoryBytes: memoryBytes,
		registry:    registry,
	}
}

// Observe pushes a Snapshot's values into the collector's gauges. Callers
// are expected to call this on whatever cadence their scrape interval (or
// test) needs; the collector holds no reference back to the engine.
func (m *MetricsCollector) Observe(s Snapshot) {
	m.totalNodes.Set(float64(s.TotalNodes))
	m.totalEdges.Set(float64(s.TotalEdges))
	m.memoryBytes.WithLabelValues("nodes").Set(float64(s.Memory.Nodes))
	m.memoryBytes.WithLabelValues("edges").Set(float64(s.Memory.Edges))
	m.memoryBytes.WithLabelValues("indices").Set(float64(s.Memory.Indices))
}

// Registry returns the Prometheus registry for HTTP exposure (e.g. via
// promhttp.HandlerFor in a host process).
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}
