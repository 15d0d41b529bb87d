package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocoreio/graphcore/pkg/graph"
)

func TestGetNodeIDSliceIsEmpty(t *testing.T) {
	s := GetNodeIDSlice()
	assert.Empty(t, s)
	PutNodeIDSlice(s)
}

func TestNodeIDSliceRoundTripDoesNotLeakPriorContents(t *testing.T) {
	s := GetNodeIDSlice()
	s = append(s, graph.NodeID(1), graph.NodeID(2))
	PutNodeIDSlice(s)

	reused := GetNodeIDSlice()
	assert.Empty(t, reused, "a slice returned to the pool must come back zero-length")
}
