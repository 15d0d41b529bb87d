// Package index implements the secondary index layer: a property index
// mapping (key, value) to node ids, and a label index mapping edge labels
// to edge ids. Both are writer-only for mutation, reader-safe for lookup,
// and kept coherent with pkg/graph.Store by the mutation engine — never by
// the index layer itself, which has no notion of "coherent with what".
package index

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/gocoreio/graphcore/pkg/graph"
)

// propertyBucketKey is the first 128 bits of the blake2b-256 hash of the
// property key, a NUL byte, and value.String() ("kind:value"), used as a map key because PropertyValue itself is not directly
// comparable-as-a-map-key across all four kinds without boxing. Hashing
// plays the same role here that CompositeKey's sha256 hash plays for
// multi-property composite indexes: a fixed-size, comparable bucket key.
type propertyBucketKey [16]byte

func bucketKeyFor(key string, value graph.PropertyValue) propertyBucketKey {
	sum := blake2b.Sum256([]byte(key + "\x00" + value.String()))
	var out propertyBucketKey
	copy(out[:], sum[:16])
	return out
}

// Layer is the secondary index layer (C3). It holds no reference to the
// Store; every write call here is paired with a Store mutation by the
// mutation engine under its single writer discipline.
type Layer struct {
	mu sync.RWMutex

	propertyIndex map[propertyBucketKey]map[graph.NodeID]struct{}
	labelIndex    map[string]map[graph.EdgeID]struct{}
}

// New returns an empty index Layer.
func New() *Layer {
	return &Layer{
		propertyIndex: make(map[propertyBucketKey]map[graph.NodeID]struct{}),
		labelIndex:    make(map[string]map[graph.EdgeID]struct{}),
	}
}

// FindNodesByProperty returns every node id indexed under (key, value).
// Bucket order is unspecified; callers needing a deterministic order must
// sort the result themselves.
func (l *Layer) FindNodesByProperty(key string, value graph.PropertyValue) []graph.NodeID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bucket := l.propertyIndex[bucketKeyFor(key, value)]
	out := make([]graph.NodeID, 0, len(bucket))
	for id := range bucket {
		out = append(out, id)
	}
	return out
}

// FindEdgesByLabel returns every edge id indexed under label.
func (l *Layer) FindEdgesByLabel(label string) []graph.EdgeID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bucket := l.labelIndex[label]
	out := make([]graph.EdgeID, 0, len(bucket))
	for id := range bucket {
		out = append(out, id)
	}
	return out
}

// PropertyBucketCount and LabelBucketCount back the stats component's
// advisory memory estimate for the index tables.
func (l *Layer) PropertyBucketCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.propertyIndex)
}

func (l *Layer) LabelBucketCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.labelIndex)
}

// --- Writer-only methods, called only by pkg/engine under its write lock. ---

// IndexProperty adds node to the bucket for (key, value). A set, not a
// slice, so duplicate (bucket, id) pairs never accumulate.
func (l *Layer) IndexProperty(node graph.NodeID, key string, value graph.PropertyValue) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bk := bucketKeyFor(key, value)
	bucket, ok := l.propertyIndex[bk]
	if !ok {
		bucket = make(map[graph.NodeID]struct{})
		l.propertyIndex[bk] = bucket
	}
	bucket[node] = struct{}{}
}

// UnindexProperty removes node from the bucket for (key, value), dropping
// the bucket entirely once it is empty so stale buckets never accumulate.
func (l *Layer) UnindexProperty(node graph.NodeID, key string, value graph.PropertyValue) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bk := bucketKeyFor(key, value)
	bucket, ok := l.propertyIndex[bk]
	if !ok {
		return
	}
	delete(bucket, node)
	if len(bucket) == 0 {
		delete(l.propertyIndex, bk)
	}
}

// IndexLabel adds edge to the bucket for label.
func (l *Layer) IndexLabel(edge graph.EdgeID, label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.labelIndex[label]
	if !ok {
		bucket = make(map[graph.EdgeID]struct{})
		l.labelIndex[label] = bucket
	}
	bucket[edge] = struct{}{}
}

// UnindexLabel removes edge from the bucket for label.
func (l *Layer) UnindexLabel(edge graph.EdgeID, label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.labelIndex[label]
	if !ok {
		return
	}
	delete(bucket, edge)
	if len(bucket) == 0 {
		delete(l.labelIndex, label)
	}
}

// debugKeyHex is used only by tests that need to assert two (key,value)
// pairs hash to distinct buckets without exposing the hash type itself.
func debugKeyHex(key string, value graph.PropertyValue) string {
	return hex.EncodeToString(bucketKeyFor(key, value)[:])
}
