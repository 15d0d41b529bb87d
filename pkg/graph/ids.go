package graph

import (
	"fmt"
	"sync/atomic"
)

// IDAllocator hands out strictly increasing NodeID/EdgeID values, one
// counter per kind, starting at 1. It is exclusively called by the
// mutation engine's single writer, but uses atomic operations so it is
// safe to share even if that changes.
type IDAllocator struct {
	nextNode atomic.Uint64
	nextEdge atomic.Uint64
}

// NewIDAllocator returns an allocator with both counters seeded at 1.
func NewIDAllocator() *IDAllocator {
	a := &IDAllocator{}
	a.nextNode.Store(1)
	a.nextEdge.Store(1)
	return a
}

// NextNodeID returns and advances the node id counter.
func (a *IDAllocator) NextNodeID() (NodeID, error) {
	for {
		cur := a.nextNode.Load()
		if cur == ^uint64(0) {
			return 0, fmt.Errorf("graph: node id space exhausted")
		}
		if a.nextNode.CompareAndSwap(cur, cur+1) {
			return NodeID(cur), nil
		}
	}
}

// NextEdgeID returns and advances the edge id counter.
func (a *IDAllocator) NextEdgeID() (EdgeID, error) {
	for {
		cur := a.nextEdge.Load()
		if cur == ^uint64(0) {
			return 0, fmt.Errorf("graph: edge id space exhausted")
		}
		if a.nextEdge.CompareAndSwap(cur, cur+1) {
			return EdgeID(cur), nil
		}
	}
}
