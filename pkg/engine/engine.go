// Package engine implements the mutation engine (C5): the single writer
// that owns pkg/graph.Store, pkg/index.Layer and pkg/cache.QueryCache, and
// the only component in graphcore that dispatches to the read-only kernels
// in pkg/traverse, pkg/path and pkg/pattern. Every exported method here is
// the public API surface a host process embeds.
package engine

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gocoreio/graphcore/pkg/cache"
	"github.com/gocoreio/graphcore/pkg/config"
	"github.com/gocoreio/graphcore/pkg/graph"
	"github.com/gocoreio/graphcore/pkg/index"
	"github.com/gocoreio/graphcore/pkg/path"
	"github.com/gocoreio/graphcore/pkg/pattern"
	"github.com/gocoreio/graphcore/pkg/stats"
	"github.com/gocoreio/graphcore/pkg/traverse"
)

// Engine is the single writer over the graph's shared state. Every mutating
// method takes writeMu, so only one mutation is ever in flight; readers
// never take writeMu, but they do wait on the Store's and Layer's own
// RWMutex while one write step of a mutation holds it.
type Engine struct {
	writeMu sync.Mutex

	store *graph.Store
	index *index.Layer
	cache *cache.QueryCache
	ids   *graph.IDAllocator

	version atomic.Uint64
	cfg     config.EngineConfig
	log     *slog.Logger
}

// New constructs an Engine with a fresh Store, IndexLayer and QueryCache.
// A nil logger falls back to slog.Default().
func New(cfg config.EngineConfig, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	qc, err := cache.New(cfg.QueryCacheSize, cfg.QueryCacheTTL)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		store: graph.NewStore(),
		index: index.New(),
		cache: qc,
		ids:   graph.NewIDAllocator(),
		cfg:   cfg,
		log:   logger,
	}
	e.log.Info("engine started", "query_cache_size", cfg.QueryCacheSize, "query_cache_ttl", cfg.QueryCacheTTL)
	return e, nil
}

// Close releases the engine's background resources (the query cache's
// Ristretto goroutines). The engine is not usable afterward.
func (e *Engine) Close() {
	e.cache.Close()
	e.log.Info("engine stopped")
}

// Version returns the current mutation version, bumped exactly once per
// successful top-level mutation. Two reads in the same goroutine observe a
// non-decreasing value.
func (e *Engine) Version() uint64 {
	return e.version.Load()
}

// CreateNode validates props, allocates an id, inserts the node, and
// indexes every (key, value) pair. Failure mode: InvalidProperty.
func (e *Engine) CreateNode(props graph.PropertyMap) (graph.NodeID, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	canonical := graph.CanonicalizeProperties(props)
	if err := graph.ValidateProperties(canonical); err != nil {
		return 0, err
	}

	id, err := e.ids.NextNodeID()
	if err != nil {
		return 0, err
	}

	node := &graph.Node{ID: id, Properties: canonical}
	e.store.InsertNode(node)
	for k, v := range canonical {
		e.index.IndexProperty(id, k, v)
	}

	e.bumpVersion("create_node", uuid.New())
	return id, nil
}

// CreateEdge validates ids/label/props, verifies both endpoints exist,
// allocates an id, wires adjacency, and indexes the label. Self-loops and
// parallel edges are both permitted; each call gets a distinct id.
func (e *Engine) CreateEdge(from, to graph.NodeID, label string, props graph.PropertyMap) (graph.EdgeID, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := graph.ValidateID(uint64(from)); err != nil {
		return 0, err
	}
	if err := graph.ValidateID(uint64(to)); err != nil {
		return 0, err
	}
	if err := graph.ValidateEdgeLabel(label); err != nil {
		return 0, err
	}
	canonical := graph.CanonicalizeProperties(props)
	if err := graph.ValidateProperties(canonical); err != nil {
		return 0, err
	}
	if !e.store.HasNode(from) || !e.store.HasNode(to) {
		return 0, graph.ErrNodeNotFound
	}

	id, err := e.ids.NextEdgeID()
	if err != nil {
		return 0, err
	}

	edge := &graph.Edge{ID: id, From: from, To: to, Label: label, Properties: canonical}
	e.store.InsertEdge(edge)
	e.index.IndexLabel(id, label)

	e.bumpVersion("create_edge", uuid.New())
	return id, nil
}

// DeleteNode removes a node and cascades deletion to every incident edge
// before removing the node's own entry and adjacency buckets, so a reader
// never observes an edge whose endpoint has vanished.
func (e *Engine) DeleteNode(id graph.NodeID) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	node, err := e.store.GetNode(id)
	if err != nil {
		return graph.ErrNodeNotFound
	}

	incident := make(map[graph.EdgeID]struct{})
	for _, eid := range e.store.Outgoing(id) {
		incident[eid] = struct{}{}
	}
	for _, eid := range e.store.Incoming(id) {
		incident[eid] = struct{}{}
	}
	for eid := range incident {
		e.deleteEdgeLocked(eid)
	}

	for k, v := range node.Properties {
		e.index.UnindexProperty(id, k, v)
	}
	e.store.RemoveNodeEntry(id)

	e.bumpVersion("delete_node", uuid.New())
	return nil
}

// DeleteEdge removes a single edge: adjacency entries, label index entry,
// and the edge's own record.
func (e *Engine) DeleteEdge(id graph.EdgeID) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if _, err := e.store.GetEdge(id); err != nil {
		return graph.ErrNotFound
	}
	e.deleteEdgeLocked(id)
	e.bumpVersion("delete_edge", uuid.New())
	return nil
}

// deleteEdgeLocked performs the edge-removal transition without bumping
// the version itself, so DeleteNode's cascade and DeleteEdge's single-edge
// path share one implementation but the version bumps exactly once per
// top-level call.
func (e *Engine) deleteEdgeLocked(id graph.EdgeID) {
	edge, err := e.store.GetEdge(id)
	if err != nil {
		return
	}
	e.index.UnindexLabel(id, edge.Label)
	e.store.RemoveEdgeEntry(edge)
}

// bumpVersion advances the version counter exactly once and logs the
// mutation at a level low enough not to spam a hot path.
func (e *Engine) bumpVersion(op string, correlationID uuid.UUID) {
	e.version.Add(1)
	e.log.Debug("mutation applied", "op", op, "correlation_id", correlationID.String(), "version", e.version.Load())
}

// GetNode and GetEdge are thin passthroughs to the Store; they take no
// write lock because they never mutate.
func (e *Engine) GetNode(id graph.NodeID) (*graph.Node, error) { return e.store.GetNode(id) }
func (e *Engine) GetEdge(id graph.EdgeID) (*graph.Edge, error) { return e.store.GetEdge(id) }

// FindNodesByProperty resolves index hits to live nodes, skipping any id
// that the index still carries but the store has already dropped (there
// is no such window under the single-writer discipline, but resolution
// stays defensive rather than assuming it).
func (e *Engine) FindNodesByProperty(key string, value graph.PropertyValue) []*graph.Node {
	ids := e.index.FindNodesByProperty(key, value)
	out := make([]*graph.Node, 0, len(ids))
	for _, id := range ids {
		if n, err := e.store.GetNode(id); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// FindEdgesByLabel resolves label-index hits to live edges.
func (e *Engine) FindEdgesByLabel(label string) []*graph.Edge {
	ids := e.index.FindEdgesByLabel(label)
	out := make([]*graph.Edge, 0, len(ids))
	for _, id := range ids {
		if ed, err := e.store.GetEdge(id); err == nil {
			out = append(out, ed)
		}
	}
	return out
}

// Traverse memoizes traverse(start, direction, depth) in the query cache,
// keyed by the canonical argument tuple and checked against the current
// version so a concurrent mutation invalidates any in-flight cache entry.
func (e *Engine) Traverse(ctx context.Context, start graph.NodeID, dir traverse.Direction, depth int) ([]*graph.Node, error) {
	if max := e.cfg.MaxTraversalDepth; max > 0 && depth > max {
		depth = max
	}
	key := cache.Key(cache.OpTraverse, canonicalTraverseArgs(start, dir, depth))
	version := e.Version()
	if cached, ok := e.cache.Get(key, version); ok {
		return cached.([]*graph.Node), nil
	}

	result, err := traverse.Traverse(ctx, e.store, start, dir, depth)
	if err != nil {
		return nil, err
	}
	e.cache.Put(key, result, version)
	return result, nil
}

// ShortestPath memoizes shortest_path(from, to, maxDepth) the same way
// Traverse does.
func (e *Engine) ShortestPath(ctx context.Context, from, to graph.NodeID, maxDepth int) ([]graph.NodeID, error) {
	if maxDepth <= 0 {
		maxDepth = e.cfg.DefaultMaxPathDepth
	}
	key := cache.Key(cache.OpShortestPath, canonicalPathArgs(from, to, maxDepth))
	version := e.Version()
	if cached, ok := e.cache.Get(key, version); ok {
		return cached.([]graph.NodeID), nil
	}

	result, err := path.ShortestPath(ctx, e.store, from, to, maxDepth)
	if err != nil {
		return nil, err
	}
	e.cache.Put(key, result, version)
	return result, nil
}

// Query dispatches pattern through pkg/pattern against the live store and
// index. Query results are not cached: the dispatcher's own lookups are
// already O(1) index hits, so memoizing them would add bookkeeping cost
// without a performance win worth the cache-coherence risk.
func (e *Engine) Query(patternText string) (*pattern.Result, error) {
	return pattern.Dispatch(patternText, e.store, e.index)
}

// Stats returns the current counts and advisory memory estimate.
func (e *Engine) Stats() stats.Snapshot {
	return stats.Collect(e.store, e.index)
}

// SetCacheEnabled toggles the query cache at runtime; per the cache's
// contract, disabling it must never change a Traverse/ShortestPath result.
func (e *Engine) SetCacheEnabled(enabled bool) {
	e.cache.SetEnabled(enabled)
}

func canonicalTraverseArgs(start graph.NodeID, dir traverse.Direction, depth int) string {
	return strconv.FormatUint(uint64(start), 10) + "|" + directionLabel(dir) + "|" + strconv.Itoa(depth)
}

func canonicalPathArgs(from, to graph.NodeID, maxDepth int) string {
	return strconv.FormatUint(uint64(from), 10) + "|" + strconv.FormatUint(uint64(to), 10) + "|" + strconv.Itoa(maxDepth)
}

func directionLabel(dir traverse.Direction) string {
	switch dir {
	case traverse.Out:
		return "out"
	case traverse.In:
		return "in"
	default:
		return "both"
	}
}
