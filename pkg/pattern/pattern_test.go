package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocoreio/graphcore/pkg/graph"
	"github.com/gocoreio/graphcore/pkg/index"
)

type fixture struct {
	store *graph.Store
	idx   *index.Layer
}

func buildFixture(t *testing.T) *fixture {
	t.Helper()
	s := graph.NewStore()
	idx := index.New()

	alice := &graph.Node{ID: 1, Properties: graph.PropertyMap{"name": graph.StringValue("alice")}}
	bob := &graph.Node{ID: 2, Properties: graph.PropertyMap{"name": graph.StringValue("bob")}}
	s.InsertNode(alice)
	s.InsertNode(bob)
	idx.IndexProperty(alice.ID, "name", graph.StringValue("alice"))
	idx.IndexProperty(bob.ID, "name", graph.StringValue("bob"))

	e := &graph.Edge{ID: 1, From: 1, To: 2, Label: "knows"}
	s.InsertEdge(e)
	idx.IndexLabel(e.ID, "knows")

	return &fixture{store: s, idx: idx}
}

func TestDispatchBareNodeMatch(t *testing.T) {
	f := buildFixture(t)
	res, err := Dispatch("MATCH (n) RETURN n", f.store, f.idx)
	require.NoError(t, err)
	assert.Equal(t, ResultNodes, res.Kind)
	assert.Len(t, res.Nodes, 2)
}

func TestDispatchPropertyNodeMatch(t *testing.T) {
	f := buildFixture(t)
	res, err := Dispatch(`MATCH (n {name: "alice"}) RETURN n`, f.store, f.idx)
	require.NoError(t, err)
	assert.Equal(t, ResultNodes, res.Kind)
	require.Len(t, res.Nodes, 1)
	assert.Equal(t, graph.NodeID(1), res.Nodes[0].ID)
}

func TestDispatchPropertyNodeMatchNoHits(t *testing.T) {
	f := buildFixture(t)
	res, err := Dispatch(`MATCH (n {name: "carol"}) RETURN n`, f.store, f.idx)
	require.NoError(t, err)
	assert.Empty(t, res.Nodes)
}

func TestDispatchLabelEdgeMatch(t *testing.T) {
	f := buildFixture(t)
	res, err := Dispatch("MATCH ()-[:knows]-() RETURN r", f.store, f.idx)
	require.NoError(t, err)
	assert.Equal(t, ResultEdges, res.Kind)
	require.Len(t, res.Edges, 1)
	assert.Equal(t, graph.EdgeID(1), res.Edges[0].ID)
}

func TestDispatchCountNodes(t *testing.T) {
	f := buildFixture(t)
	res, err := Dispatch("COUNT(n)", f.store, f.idx)
	require.NoError(t, err)
	assert.Equal(t, ResultCount, res.Kind)
	assert.Equal(t, 2, res.Count)
}

func TestDispatchCountEdges(t *testing.T) {
	f := buildFixture(t)
	res, err := Dispatch("COUNT(e)", f.store, f.idx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestDispatchUnsupportedPattern(t *testing.T) {
	f := buildFixture(t)
	_, err := Dispatch(`MATCH (n)-[:knows]->(m) RETURN n, m`, f.store, f.idx)
	require.Error(t, err)
	var coreErr *graph.CoreError
	require.ErrorAs(t, err, &coreErr)
	assert.Equal(t, graph.KindUnsupportedPattern, coreErr.Kind)
}

func TestDispatchCaseInsensitiveKeywords(t *testing.T) {
	f := buildFixture(t)
	res, err := Dispatch("match (n) return n", f.store, f.idx)
	require.NoError(t, err)
	assert.Len(t, res.Nodes, 2)
}

func TestDispatchRejectsEmptyInput(t *testing.T) {
	f := buildFixture(t)
	_, err := Dispatch("", f.store, f.idx)
	assert.Error(t, err)
}
