package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocoreio/graphcore/pkg/graph"
	"github.com/gocoreio/graphcore/pkg/index"
)

func TestCollectEmptyStore(t *testing.T) {
	s := graph.NewStore()
	idx := index.New()
	snap := Collect(s, idx)
	assert.Zero(t, snap.TotalNodes)
	assert.Zero(t, snap.TotalEdges)
	assert.Zero(t, snap.Memory.Nodes)
}

func TestCollectCountsNodesEdgesAndBuckets(t *testing.T) {
	s := graph.NewStore()
	idx := index.New()

	a := &graph.Node{ID: 1, Properties: graph.PropertyMap{"role": graph.StringValue("Engineer")}}
	b := &graph.Node{ID: 2}
	s.InsertNode(a)
	s.InsertNode(b)
	idx.IndexProperty(a.ID, "role", graph.StringValue("Engineer"))

	e := &graph.Edge{ID: 1, From: 1, To: 2, Label: "knows"}
	s.InsertEdge(e)
	idx.IndexLabel(e.ID, "knows")

	snap := Collect(s, idx)
	assert.Equal(t, 2, snap.TotalNodes)
	assert.Equal(t, 1, snap.TotalEdges)
	assert.Positive(t, snap.Memory.Nodes)
	assert.Positive(t, snap.Memory.Edges)
	assert.Positive(t, snap.Memory.Indices)
}

func TestMetricsCollectorObserveUpdatesGauges(t *testing.T) {
	mc := NewCollector()
	mc.Observe(Snapshot{TotalNodes: 3, TotalEdges: 2, Memory: MemoryEstimate{Nodes: 100, Edges: 50, Indices: 10}})

	mfs, err := mc.Registry().Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "graphcore_total_nodes" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, float64(3), mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found, "expected graphcore_total_nodes to be registered")
}
