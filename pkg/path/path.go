// Package path implements the path kernel (C8): bidirectional breadth-first
// shortest-path search with a depth cap. Path search always treats edges
// as undirected — it expands both outgoing and incoming adjacency from
// each frontier — even though pkg/traverse respects direction.
package path

import (
	"context"
	"sort"

	"github.com/gocoreio/graphcore/pkg/graph"
	"github.com/gocoreio/graphcore/pkg/pool"
)

// DefaultMaxDepth is used by callers that do not specify one explicitly.
const DefaultMaxDepth = 10

// undirectedNeighbors returns every node reachable from id in one hop,
// following edges in either direction, deduplicated.
func undirectedNeighbors(store *graph.Store, id graph.NodeID) []graph.NodeID {
	seen := make(map[graph.NodeID]struct{})
	out := pool.GetNodeIDSlice()
	add := func(n graph.NodeID) {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	outEdges := store.Outgoing(id)
	for _, eid := range outEdges {
		if e, err := store.GetEdge(eid); err == nil {
			add(e.To)
		}
	}
	store.ReleaseEdgeIDs(outEdges)

	inEdges := store.Incoming(id)
	for _, eid := range inEdges {
		if e, err := store.GetEdge(eid); err == nil {
			add(e.From)
		}
	}
	store.ReleaseEdgeIDs(inEdges)

	return out
}

// frontier tracks one side of the bidirectional search: the set of nodes
// reached so far and the parent pointer used to reconstruct the path back
// to that side's root.
type frontier struct {
	visited map[graph.NodeID]graph.NodeID // node -> parent (root maps to itself)
	level   []graph.NodeID                // nodes discovered at the current depth
}

func newFrontier(root graph.NodeID) *frontier {
	return &frontier{
		visited: map[graph.NodeID]graph.NodeID{root: root},
		level:   []graph.NodeID{root},
	}
}

// expand advances the frontier by one level, returning the newly
// discovered nodes.
func (f *frontier) expand(store *graph.Store) []graph.NodeID {
	next := make([]graph.NodeID, 0)
	for _, id := range f.level {
		ns := undirectedNeighbors(store, id)
		for _, n := range ns {
			if _, ok := f.visited[n]; !ok {
				f.visited[n] = id
				next = append(next, n)
			}
		}
		pool.PutNodeIDSlice(ns)
	}
	f.level = next
	return next
}

func (f *frontier) chainTo(root, node graph.NodeID) []graph.NodeID {
	chain := []graph.NodeID{node}
	for chain[len(chain)-1] != root {
		chain = append(chain, f.visited[chain[len(chain)-1]])
	}
	return chain
}

// ShortestPath returns any one shortest path from 'from' to 'to', treating
// edges as undirected, with a total search budget of maxDepth hops. Ties on
// the first intersection node are broken by picking the lowest node id
// among all nodes common to both frontiers at that depth, so the result is
// deterministic.
func ShortestPath(ctx context.Context, store *graph.Store, from, to graph.NodeID, maxDepth int) ([]graph.NodeID, error) {
	if !store.HasNode(from) || !store.HasNode(to) {
		return nil, graph.ErrNodeNotFound
	}
	if from == to {
		return []graph.NodeID{from}, nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	fwd := newFrontier(from)
	bwd := newFrontier(to)
	depth := 0
	preferForward := true // breaks ties in frontier size, alternating each tie

	for depth < maxDepth {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		expandForward := len(fwd.level) < len(bwd.level) || (len(fwd.level) == len(bwd.level) && preferForward)
		if len(fwd.level) == len(bwd.level) {
			preferForward = !preferForward
		}

		// Expand the smaller frontier first, to keep the shared depth budget spent efficiently.
		if expandForward {
			newly := fwd.expand(store)
			depth++
			if m, ok := firstIntersection(newly, bwd.visited); ok {
				return reconstruct(fwd, bwd, from, to, m), nil
			}
		} else {
			newly := bwd.expand(store)
			depth++
			if m, ok := firstIntersection(newly, fwd.visited); ok {
				return reconstruct(fwd, bwd, from, to, m), nil
			}
		}

		if len(fwd.level) == 0 && len(bwd.level) == 0 {
			break
		}
	}

	return nil, graph.ErrPathNotFound
}

// firstIntersection picks the lowest-id node present in both newly and the
// other frontier's visited set, for deterministic tie-breaking.
func firstIntersection(newly []graph.NodeID, otherVisited map[graph.NodeID]graph.NodeID) (graph.NodeID, bool) {
	var candidates []graph.NodeID
	for _, n := range newly {
		if _, ok := otherVisited[n]; ok {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	return candidates[0], true
}

// reconstruct walks m's parent chain back to from and to to, reversing the
// former, and concatenates with m appearing exactly once.
func reconstruct(fwd, bwd *frontier, from, to, m graph.NodeID) []graph.NodeID {
	head := fwd.chainTo(from, m) // m ... from
	tail := bwd.chainTo(to, m)   // m ... to

	// head is [m, ..., from]; reverse to [from, ..., m]
	for i, j := 0, len(head)-1; i < j; i, j = i+1, j-1 {
		head[i], head[j] = head[j], head[i]
	}
	// tail is [m, p1, p2, ..., to]: chainTo walked from m toward the root
	// to, which is already the forward order from m to to. Drop the
	// leading m (already in head) and keep the rest as-is.
	return append(head, tail[1:]...)
}
