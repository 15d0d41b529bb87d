// Package pool provides a small sync.Pool-backed allocator for the NodeID
// slices the traversal and path kernels allocate on every BFS level. The
// matching edge-id pool lives in pkg/graph.Store itself (ReleaseEdgeIDs),
// since pkg/graph can't depend on this package without an import cycle.
package pool

import (
	"sync"

	"github.com/gocoreio/graphcore/pkg/graph"
)

const defaultSliceCap = 16

var nodeIDSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]graph.NodeID, 0, defaultSliceCap)
		return &s
	},
}

// GetNodeIDSlice returns a zero-length []graph.NodeID ready for appends.
func GetNodeIDSlice() []graph.NodeID {
	p := nodeIDSlicePool.Get().(*[]graph.NodeID)
	return (*p)[:0]
}

// PutNodeIDSlice returns s to the pool. Callers must not read or write s
// afterward.
func PutNodeIDSlice(s []graph.NodeID) {
	if s == nil {
		return
	}
	s = s[:0]
	nodeIDSlicePool.Put(&s)
}