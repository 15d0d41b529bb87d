package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocoreio/graphcore/pkg/graph"
)

func TestIndexPropertyRoundTrip(t *testing.T) {
	l := New()
	l.IndexProperty(1, "role", graph.StringValue("Engineer"))
	l.IndexProperty(2, "role", graph.StringValue("Engineer"))
	l.IndexProperty(3, "role", graph.StringValue("Manager"))

	engineers := l.FindNodesByProperty("role", graph.StringValue("Engineer"))
	assert.ElementsMatch(t, []graph.NodeID{1, 2}, engineers)

	managers := l.FindNodesByProperty("role", graph.StringValue("Manager"))
	assert.Equal(t, []graph.NodeID{3}, managers)
}

func TestUnindexPropertyDropsEmptyBucket(t *testing.T) {
	l := New()
	l.IndexProperty(1, "role", graph.StringValue("Engineer"))
	l.UnindexProperty(1, "role", graph.StringValue("Engineer"))

	assert.Empty(t, l.FindNodesByProperty("role", graph.StringValue("Engineer")))
	assert.Equal(t, 0, l.PropertyBucketCount())
}

func TestIndexPropertyDoesNotAccumulateDuplicates(t *testing.T) {
	l := New()
	l.IndexProperty(1, "role", graph.StringValue("Engineer"))
	l.IndexProperty(1, "role", graph.StringValue("Engineer"))

	assert.Len(t, l.FindNodesByProperty("role", graph.StringValue("Engineer")), 1)
}

func TestIndexLabelRoundTrip(t *testing.T) {
	l := New()
	l.IndexLabel(10, "knows")
	l.IndexLabel(11, "knows")
	l.IndexLabel(12, "owns")

	assert.ElementsMatch(t, []graph.EdgeID{10, 11}, l.FindEdgesByLabel("knows"))
	assert.ElementsMatch(t, []graph.EdgeID{12}, l.FindEdgesByLabel("owns"))
}

func TestDistinctValuesHashToDistinctBuckets(t *testing.T) {
	a := debugKeyHex("role", graph.StringValue("Engineer"))
	b := debugKeyHex("role", graph.StringValue("Manager"))
	require.NotEqual(t, a, b)
}

func TestDistinctKindsOfSameTextHashDistinctly(t *testing.T) {
	// "1" as a string vs 1 as an int must not collide in the same bucket.
	a := debugKeyHex("age", graph.StringValue("1"))
	b := debugKeyHex("age", graph.IntValue(1))
	require.NotEqual(t, a, b)
}
