package graph

import "sync"

// Store owns the four logical tables that make up the graph: nodes, edges,
// and the two adjacency directions. Every exported read method takes the
// RLock, copies what it needs, and returns — no reference to live state
// ever escapes to a caller. Readers are not lock-free: a reader waits while
// a writer-only method holds the write lock. Only the mutation
// engine (via the writer-only methods below) holds the write lock, and it
// holds it only long enough to keep a single mutation's effects atomic.
type Store struct {
	mu sync.RWMutex

	nodes map[NodeID]*Node
	edges map[EdgeID]*Edge

	outAdj map[NodeID]map[EdgeID]struct{}
	inAdj  map[NodeID]map[EdgeID]struct{}
}

// NewStore returns an empty Store ready for use.
func NewStore() *Store {
	return &Store{
		nodes:  make(map[NodeID]*Node),
		edges:  make(map[EdgeID]*Edge),
		outAdj: make(map[NodeID]map[EdgeID]struct{}),
		inAdj:  make(map[NodeID]map[EdgeID]struct{}),
	}
}

// GetNode returns a snapshot copy of the node, or ErrNodeNotFound.
func (s *Store) GetNode(id NodeID) (*Node, error) {
	s.mu.RLock()
	n, ok := s.nodes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNodeNotFound
	}
	return n.Clone(), nil
}

// GetEdge returns a snapshot copy of the edge, or ErrNotFound.
func (s *Store) GetEdge(id EdgeID) (*Edge, error) {
	s.mu.RLock()
	e, ok := s.edges[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return e.Clone(), nil
}

// HasNode reports whether id names a live node, without copying it.
func (s *Store) HasNode(id NodeID) bool {
	s.mu.RLock()
	_, ok := s.nodes[id]
	s.mu.RUnlock()
	return ok
}

// Outgoing returns a snapshot of the set of edge ids leaving id. Empty
// (never nil) if the node is absent. The slice comes from an internal pool;
// callers are expected to pass it to ReleaseEdgeIDs once done with it.
func (s *Store) Outgoing(id NodeID) []EdgeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotEdgeSet(s.outAdj[id])
}

// Incoming returns a snapshot of the set of edge ids arriving at id. See
// Outgoing for the pooling contract.
func (s *Store) Incoming(id NodeID) []EdgeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotEdgeSet(s.inAdj[id])
}

// ReleaseEdgeIDs returns a slice obtained from Outgoing or Incoming to the
// pool backing them. Safe to call with nil. Callers must not read or write
// the slice afterward.
//
// This pool lives in Store rather than in pkg/pool because pkg/pool
// imports pkg/graph for the NodeID/EdgeID types; Store depending on
// pkg/pool in turn would be an import cycle.
func (s *Store) ReleaseEdgeIDs(ids []EdgeID) {
	if ids == nil {
		return
	}
	ids = ids[:0]
	edgeIDSlicePool.Put(&ids)
}

const edgeIDSliceDefaultCap = 16

var edgeIDSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]EdgeID, 0, edgeIDSliceDefaultCap)
		return &s
	},
}

func snapshotEdgeSet(set map[EdgeID]struct{}) []EdgeID {
	p := edgeIDSlicePool.Get().(*[]EdgeID)
	out := (*p)[:0]
	for id := range set {
		out = append(out, id)
	}
	return out
}

// ListNodes returns a snapshot slice of every live node.
func (s *Store) ListNodes() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n.Clone())
	}
	return out
}

// ListEdges returns a snapshot slice of every live edge.
func (s *Store) ListEdges() []*Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Edge, 0, len(s.edges))
	for _, e := range s.edges {
		out = append(out, e.Clone())
	}
	return out
}

// NodeCount and EdgeCount back the stats component; they take the read
// lock rather than an atomic counter so they always agree with the live
// maps, at the cost of being O(1) but not lock-free.
func (s *Store) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

// --- Writer-only methods below. Callers outside pkg/engine must not use
// these directly; they assume the single-writer discipline is already
// being enforced by the caller and take the write lock themselves. ---

// InsertNode adds a node and initializes its (empty) adjacency buckets.
func (s *Store) InsertNode(n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[n.ID] = n
	s.outAdj[n.ID] = make(map[EdgeID]struct{})
	s.inAdj[n.ID] = make(map[EdgeID]struct{})
}

// InsertEdge adds an edge and wires its adjacency entries. Callers must
// have already verified both endpoints exist.
func (s *Store) InsertEdge(e *Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[e.ID] = e
	s.adjAddLocked(s.outAdj, e.From, e.ID)
	s.adjAddLocked(s.inAdj, e.To, e.ID)
}

// RemoveEdgeEntry deletes an edge's record and its adjacency entries. It
// does not validate that the edge exists; callers check first so they can
// surface NotFound with their own semantics.
func (s *Store) RemoveEdgeEntry(e *Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edges, e.ID)
	s.adjRemoveLocked(s.outAdj, e.From, e.ID)
	s.adjRemoveLocked(s.inAdj, e.To, e.ID)
}

// RemoveNodeEntry deletes a node's record and its two adjacency buckets.
// Callers must have already removed every incident edge.
func (s *Store) RemoveNodeEntry(id NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, id)
	delete(s.outAdj, id)
	delete(s.inAdj, id)
}

func (s *Store) adjAddLocked(adj map[NodeID]map[EdgeID]struct{}, node NodeID, edge EdgeID) {
	bucket, ok := adj[node]
	if !ok {
		bucket = make(map[EdgeID]struct{})
		adj[node] = bucket
	}
	bucket[edge] = struct{}{}
}

func (s *Store) adjRemoveLocked(adj map[NodeID]map[EdgeID]struct{}, node NodeID, edge EdgeID) {
	if bucket, ok := adj[node]; ok {
		delete(bucket, edge)
	}
}
