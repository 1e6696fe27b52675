package graph

import "fmt"

// Warning reports a non-fatal problem found while indexing a graph.
// Dropped edges and shadowed duplicates are warnings, never errors.
type Warning struct {
	EdgeID string
	NodeID string
	Reason string
}

// String renders the warning for logs.
func (w Warning) String() string {
	if w.EdgeID != "" {
		return fmt.Sprintf("edge %s: %s", w.EdgeID, w.Reason)
	}
	return fmt.Sprintf("node %s: %s", w.NodeID, w.Reason)
}

type pairKey struct {
	source string
	target string
}

// Index is an immutable adjacency snapshot derived from a Graph.
// Neighbor lists preserve the order edges were supplied, so traversal
// results are reproducible across runs on the same input. If the
// underlying Graph changes, the index must be rebuilt; the engine does
// not detect stale indexes.
//
// If multiple edges share a (source,target) pair, only the
// most-recently-indexed edge's attributes are retained under that pair.
// The full edge multiset remains on the Graph value for callers that
// need it.
type Index struct {
	nodes      map[string]Node
	forward    map[string][]string
	reverse    map[string][]string
	edgeByPair map[pairKey]Edge
	nodeCount  int
	edgeCount  int
}

// BuildIndex derives an Index from a graph snapshot. Edges whose source
// or target is absent from the node set are dropped and reported as
// warnings. Duplicate node ids keep the last definition and are also
// reported. Every node gets forward and reverse entries, even isolated
// ones.
func BuildIndex(g *Graph) (*Index, []Warning) {
	ix := &Index{
		nodes:      make(map[string]Node, len(g.Nodes)),
		forward:    make(map[string][]string, len(g.Nodes)),
		reverse:    make(map[string][]string, len(g.Nodes)),
		edgeByPair: make(map[pairKey]Edge, len(g.Edges)),
	}

	var warnings []Warning

	for _, n := range g.Nodes {
		if _, dup := ix.nodes[n.ID]; dup {
			warnings = append(warnings, Warning{NodeID: n.ID, Reason: "duplicate node id, last definition wins"})
		}
		ix.nodes[n.ID] = n
		if _, ok := ix.forward[n.ID]; !ok {
			ix.forward[n.ID] = []string{}
			ix.reverse[n.ID] = []string{}
		}
	}
	ix.nodeCount = len(ix.nodes)

	for _, e := range g.Edges {
		if _, ok := ix.nodes[e.Source]; !ok {
			warnings = append(warnings, Warning{EdgeID: e.ID, Reason: fmt.Sprintf("source node %q not found, edge dropped", e.Source)})
			continue
		}
		if _, ok := ix.nodes[e.Target]; !ok {
			warnings = append(warnings, Warning{EdgeID: e.ID, Reason: fmt.Sprintf("target node %q not found, edge dropped", e.Target)})
			continue
		}

		key := pairKey{source: e.Source, target: e.Target}
		if _, dup := ix.edgeByPair[key]; !dup {
			ix.forward[e.Source] = append(ix.forward[e.Source], e.Target)
			ix.reverse[e.Target] = append(ix.reverse[e.Target], e.Source)
		}
		ix.edgeByPair[key] = e
		ix.edgeCount++
	}

	return ix, warnings
}

// Node returns the node for an id.
func (ix *Index) Node(id string) (Node, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

// HasNode reports whether an id is part of the index.
func (ix *Index) HasNode(id string) bool {
	_, ok := ix.nodes[id]
	return ok
}

// Forward returns the downstream neighbors of a node in insertion
// order. The returned slice must not be modified.
func (ix *Index) Forward(id string) []string {
	return ix.forward[id]
}

// Reverse returns the upstream neighbors of a node in insertion order.
// The returned slice must not be modified.
func (ix *Index) Reverse(id string) []string {
	return ix.reverse[id]
}

// EdgeBetween returns the indexed edge for a (source,target) pair.
func (ix *Index) EdgeBetween(source, target string) (Edge, bool) {
	e, ok := ix.edgeByPair[pairKey{source: source, target: target}]
	return e, ok
}

// NodeCount returns the number of indexed nodes.
func (ix *Index) NodeCount() int { return ix.nodeCount }

// EdgeCount returns the number of indexed edges, dropped edges excluded.
func (ix *Index) EdgeCount() int { return ix.edgeCount }
