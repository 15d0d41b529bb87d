// Package pattern implements the pattern dispatcher (C9): a fixed, closed
// grammar of four query forms, parsed and dispatched directly to
// pkg/index or pkg/graph.Store — never falling through to a general query
// engine. Keyword matching is word-boundary aware so "RETURN" does not
// match inside an identifier like "ReturnValue"; there is no clause
// composition, filtering beyond equality on one property, or joins.
package pattern

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gocoreio/graphcore/pkg/graph"
)

// ResultKind tags which shape a Dispatch result carries.
type ResultKind int

const (
	ResultNodes ResultKind = iota
	ResultEdges
	ResultCount
)

// Result is the dispatcher's output: exactly one of Nodes, Edges or Count
// is meaningful, selected by Kind.
type Result struct {
	Kind  ResultKind
	Nodes []*graph.Node
	Edges []*graph.Edge
	Count int
}

// Store is the read surface pkg/graph.Store provides.
type Store interface {
	ListNodes() []*graph.Node
	ListEdges() []*graph.Edge
	NodeCount() int
	EdgeCount() int
	GetNode(id graph.NodeID) (*graph.Node, error)
	GetEdge(id graph.EdgeID) (*graph.Edge, error)
}

// Index is the read surface pkg/index.Layer provides.
type Index interface {
	FindNodesByProperty(key string, value graph.PropertyValue) []graph.NodeID
	FindEdgesByLabel(label string) []graph.EdgeID
}

func isWordBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

// findKeyword finds keyword at a word boundary, case-insensitively,
// returning -1 if absent.
func findKeyword(s, keyword string) int {
	upper := strings.ToUpper(s)
	kw := strings.ToUpper(keyword)
	idx := 0
	for {
		pos := strings.Index(upper[idx:], kw)
		if pos == -1 {
			return -1
		}
		abs := idx + pos
		leftOK := abs == 0 || isWordBoundary(rune(upper[abs-1]))
		end := abs + len(kw)
		rightOK := end >= len(upper) || isWordBoundary(rune(upper[end]))
		if leftOK && rightOK {
			return abs
		}
		idx = abs + 1
		if idx >= len(upper) {
			return -1
		}
	}
}

// Dispatch parses pattern against the closed four-form grammar and
// executes it against store/idx. Any input outside the four recognized
// forms fails with a graph.CoreError of kind UnsupportedPattern.
func Dispatch(pattern string, store Store, idx Index) (*Result, error) {
	trimmed := strings.TrimSpace(pattern)

	if which, ok := parseCount(trimmed); ok {
		switch which {
		case "n":
			return &Result{Kind: ResultCount, Count: store.NodeCount()}, nil
		case "e":
			return &Result{Kind: ResultCount, Count: store.EdgeCount()}, nil
		}
	}

	if findKeyword(trimmed, "MATCH") == 0 {
		return dispatchMatch(trimmed, store, idx)
	}

	return nil, unsupportedError(trimmed)
}

// parseCount recognizes COUNT(n) / COUNT(e), case-insensitively on the
// keyword, case-sensitively on the identifier.
func parseCount(s string) (string, bool) {
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "COUNT(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	inner := strings.TrimSpace(s[len("COUNT(") : len(s)-1])
	if inner == "n" || inner == "e" {
		return inner, true
	}
	return "", false
}

func dispatchMatch(s string, store Store, idx Index) (*Result, error) {
	returnIdx := findKeyword(s, "RETURN")
	if returnIdx == -1 {
		return nil, unsupportedError(s)
	}
	matchPart := strings.TrimSpace(s[len("MATCH"):returnIdx])
	returnPart := strings.TrimSpace(s[returnIdx+len("RETURN"):])

	// MATCH (n) RETURN n
	if matchPart == "(n)" && returnPart == "n" {
		return &Result{Kind: ResultNodes, Nodes: store.ListNodes()}, nil
	}

	// MATCH (n {K: "V"}) RETURN n
	if key, val, ok := parsePropertyNodePattern(matchPart); ok && returnPart == "n" {
		ids := idx.FindNodesByProperty(key, graph.StringValue(val))
		nodes := make([]*graph.Node, 0, len(ids))
		for _, id := range ids {
			if n, err := store.GetNode(id); err == nil {
				nodes = append(nodes, n)
			}
		}
		return &Result{Kind: ResultNodes, Nodes: nodes}, nil
	}

	// MATCH ()-[:L]-() RETURN r
	if label, ok := parseLabelEdgePattern(matchPart); ok && returnPart == "r" {
		ids := idx.FindEdgesByLabel(label)
		edges := make([]*graph.Edge, 0, len(ids))
		for _, id := range ids {
			if e, err := store.GetEdge(id); err == nil {
				edges = append(edges, e)
			}
		}
		return &Result{Kind: ResultEdges, Edges: edges}, nil
	}

	return nil, unsupportedError(s)
}

// parsePropertyNodePattern recognizes (n {K: "V"}) and returns K, V.
func parsePropertyNodePattern(s string) (key, value string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(n {") || !strings.HasSuffix(s, "})") {
		return "", "", false
	}
	inner := s[len("(n {") : len(s)-len("})")]
	parts := strings.SplitN(inner, ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key = strings.TrimSpace(parts[0])
	valRaw := strings.TrimSpace(parts[1])
	unquoted, err := strconv.Unquote(valRaw)
	if err != nil || key == "" {
		return "", "", false
	}
	return key, unquoted, true
}

// parseLabelEdgePattern recognizes ()-[:L]-() and returns L.
func parseLabelEdgePattern(s string) (label string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "()-[:") || !strings.HasSuffix(s, "]-()") {
		return "", false
	}
	label = s[len("()-[:") : len(s)-len("]-()")]
	if label == "" {
		return "", false
	}
	return label, true
}

// unsupportedError builds the UnsupportedPattern error, naming the
// supported forms so a caller can see what's recognized without guessing.
func unsupportedError(pattern string) error {
	hint := `supported forms: MATCH (n) RETURN n | MATCH (n {K: "V"}) RETURN n | MATCH ()-[:L]-() RETURN r | COUNT(n) | COUNT(e)`
	return graph.NewError(graph.KindUnsupportedPattern, "unrecognized pattern %q; %s", pattern, hint)
}
