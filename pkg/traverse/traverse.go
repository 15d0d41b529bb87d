// Package traverse implements the traversal kernel (C7): breadth-first
// exploration of the graph with a direction and a depth cap, reading
// directly from pkg/graph.Store and pkg/graph's adjacency with no
// coordination with the mutation engine beyond whatever point-in-time
// consistency the Store itself guarantees to readers.
package traverse

import (
	"context"

	"github.com/gocoreio/graphcore/pkg/graph"
	"github.com/gocoreio/graphcore/pkg/pool"
)

// Direction selects which adjacency a traversal follows.
type Direction int

const (
	// Out follows outgoing edges (from -> to).
	Out Direction = iota
	// In follows incoming edges (to -> from).
	In
	// Both unions outgoing and incoming, deduplicated.
	Both
)

// neighbors returns every node id reachable from id in one hop under dir.
// The returned slice is pool-backed; callers must return it with
// pool.PutNodeIDSlice once they are done iterating it.
func neighbors(store *graph.Store, id graph.NodeID, dir Direction) []graph.NodeID {
	switch dir {
	case Out:
		return edgeTargets(store, store.Outgoing(id), true)
	case In:
		return edgeTargets(store, store.Incoming(id), false)
	default: // Both
		outEdges := edgeTargets(store, store.Outgoing(id), true)
		inEdges := edgeTargets(store, store.Incoming(id), false)
		defer pool.PutNodeIDSlice(outEdges)
		defer pool.PutNodeIDSlice(inEdges)

		seen := make(map[graph.NodeID]struct{}, len(outEdges)+len(inEdges))
		out := pool.GetNodeIDSlice()
		for _, n := range outEdges {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
		for _, n := range inEdges {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
		return out
	}
}

// edgeTargets resolves a set of edge ids to the node at their "far" end:
// To for outgoing edges, From for incoming edges. Edges that vanished
// between the adjacency snapshot and this lookup (a concurrent delete) are
// silently skipped rather than surfaced as an error — the traversal simply
// reflects whichever point-in-time view it happened to observe. edgeIDs is
// expected to come from Store.Outgoing/Incoming and is released back to
// the store's edge-id pool before returning. The returned slice comes from
// the NodeID pool.
func edgeTargets(store *graph.Store, edgeIDs []graph.EdgeID, outgoing bool) []graph.NodeID {
	defer store.ReleaseEdgeIDs(edgeIDs)
	out := pool.GetNodeIDSlice()
	for _, eid := range edgeIDs {
		e, err := store.GetEdge(eid)
		if err != nil {
			continue
		}
		if outgoing {
			out = append(out, e.To)
		} else {
			out = append(out, e.From)
		}
	}
	return out
}

type queueItem struct {
	id    graph.NodeID
	level int
}

// Traverse performs breadth-first exploration from start, in direction dir,
// to at most depth hops, excluding start itself from the result. Ordering
// of the returned nodes is unspecified. ctx is checked between BFS levels
// so a caller can cancel a traversal of an unexpectedly large fan-out.
func Traverse(ctx context.Context, store *graph.Store, start graph.NodeID, dir Direction, depth int) ([]*graph.Node, error) {
	if !store.HasNode(start) {
		return nil, graph.ErrNodeNotFound
	}
	if depth <= 0 {
		return []*graph.Node{}, nil
	}

	visited := map[graph.NodeID]struct{}{start: {}}
	queue := []queueItem{{id: start, level: 0}}
	resultIDs := make([]graph.NodeID, 0)

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		levelStart := 0
		levelEnd := len(queue)
		currentLevel := queue[0].level

		// Process one full BFS level at a time so the cancellation check
		// above runs once per level rather than once per node.
		for levelStart < levelEnd && queue[levelStart].level == currentLevel {
			item := queue[levelStart]
			levelStart++

			if item.id != start {
				resultIDs = append(resultIDs, item.id)
			}

			if item.level < depth {
				ns := neighbors(store, item.id, dir)
				for _, n := range ns {
					if _, ok := visited[n]; !ok {
						visited[n] = struct{}{}
						queue = append(queue, queueItem{id: n, level: item.level + 1})
					}
				}
				pool.PutNodeIDSlice(ns)
			}
		}
		queue = queue[levelStart:]
	}

	out := make([]*graph.Node, 0, len(resultIDs))
	for _, id := range resultIDs {
		n, err := store.GetNode(id)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
