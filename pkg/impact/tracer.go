package impact

import (
	"context"

	"github.com/chainsight/chainsight/pkg/graph"
)

// DefaultMaxDepth bounds traversals whose caller does not care about
// depth. It is deep enough to exhaust any realistic supply chain.
const DefaultMaxDepth = 25

// TraceOptions configures a disruption traversal.
type TraceOptions struct {
	// MaxDepth stops expansion at this hop count. Values <= 0 keep only
	// the source nodes themselves at depth 0.
	MaxDepth int
	// IncludeRevisits allows a node to be re-expanded when a strictly
	// shorter route to it is found. Re-expansion on equal or greater
	// depth is never allowed; that bound is what guarantees termination
	// on cyclic graphs.
	IncludeRevisits bool
	// WeightThreshold treats edges below this weight as absent for
	// propagation. They remain part of the graph for rendering.
	WeightThreshold float64
	// Critical marks nodes whose discovery records the full path from a
	// source. Nil disables critical-path capture.
	Critical func(graph.Node) bool
}

// DefaultTraceOptions returns the options used for downstream
// disruption simulation: manufacturers are the critical targets.
func DefaultTraceOptions() TraceOptions {
	return TraceOptions{
		MaxDepth: DefaultMaxDepth,
		Critical: CriticalKinds(graph.KindManufacturer),
	}
}

// DefaultUpstreamOptions returns the options used for upstream
// dependency tracing: raw-material leaves are the critical origins.
func DefaultUpstreamOptions() TraceOptions {
	return TraceOptions{
		MaxDepth: DefaultMaxDepth,
		Critical: CriticalKinds(graph.KindRawMaterial),
	}
}

// CriticalTier marks nodes at or below the given tier as critical.
func CriticalTier(maxTier int) func(graph.Node) bool {
	return func(n graph.Node) bool { return n.Tier <= maxTier }
}

// CriticalKinds marks nodes of any of the given kinds as critical.
func CriticalKinds(kinds ...graph.Kind) func(graph.Node) bool {
	set := make(map[graph.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return func(n graph.Node) bool { return set[n.Kind] }
}

// AffectedSet is the result of a disruption traversal. The id sets are
// hash sets so renderers can do O(1) membership tests per frame; they
// must be treated as read-only.
type AffectedSet struct {
	Nodes         map[string]struct{}
	Edges         map[string]struct{}
	Depth         map[string]int
	CriticalPaths [][]string
	TotalImpact   float64
}

func newAffectedSet() *AffectedSet {
	return &AffectedSet{
		Nodes: make(map[string]struct{}),
		Edges: make(map[string]struct{}),
		Depth: make(map[string]int),
	}
}

// HasNode reports whether a node is affected.
func (s *AffectedSet) HasNode(id string) bool {
	_, ok := s.Nodes[id]
	return ok
}

// HasEdge reports whether an edge was traversed.
func (s *AffectedSet) HasEdge(id string) bool {
	_, ok := s.Edges[id]
	return ok
}

type direction int

const (
	downstream direction = iota
	upstream
)

type frontierEntry struct {
	nodeID string
	depth  int
}

// TraceDownstream computes the entities affected by a disruption at the
// given sources using a multi-source BFS over forward edges. Source ids
// absent from the index are silently ignored; an unknown-only source
// list yields an empty set, not an error. The only error returned is
// ctx cancellation, checked once per dequeue.
func TraceDownstream(ctx context.Context, ix *graph.Index, sourceIDs []string, opts TraceOptions) (*AffectedSet, error) {
	return trace(ctx, ix, sourceIDs, opts, downstream)
}

// TraceUpstream computes the entities a disruption at targetID depends
// on, mirroring TraceDownstream over reverse edges. Captured critical
// paths read in flow direction, leaf first.
func TraceUpstream(ctx context.Context, ix *graph.Index, targetID string, opts TraceOptions) (*AffectedSet, error) {
	return trace(ctx, ix, []string{targetID}, opts, upstream)
}

func trace(ctx context.Context, ix *graph.Index, sourceIDs []string, opts TraceOptions, dir direction) (*AffectedSet, error) {
	maxDepth := opts.MaxDepth
	if maxDepth < 0 {
		maxDepth = 0
	}

	set := newAffectedSet()
	parent := make(map[string]string)

	var queue []frontierEntry
	for _, id := range sourceIDs {
		if !ix.HasNode(id) {
			continue
		}
		if _, seeded := set.Nodes[id]; seeded {
			continue
		}
		set.Nodes[id] = struct{}{}
		set.Depth[id] = 0
		queue = append(queue, frontierEntry{nodeID: id, depth: 0})
	}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cur := queue[0]
		queue = queue[1:]

		// A refinement may have superseded this entry after it was
		// enqueued; expanding it would redo work at a stale depth.
		if best, ok := set.Depth[cur.nodeID]; ok && cur.depth > best {
			continue
		}
		if cur.depth >= maxDepth {
			continue
		}

		var neighbors []string
		if dir == downstream {
			neighbors = ix.Forward(cur.nodeID)
		} else {
			neighbors = ix.Reverse(cur.nodeID)
		}

		for _, nb := range neighbors {
			var edge graph.Edge
			var ok bool
			if dir == downstream {
				edge, ok = ix.EdgeBetween(cur.nodeID, nb)
			} else {
				edge, ok = ix.EdgeBetween(nb, cur.nodeID)
			}
			if !ok || edge.Weight < opts.WeightThreshold {
				continue
			}

			candidate := cur.depth + 1
			best, seen := set.Depth[nb]
			if seen && (!opts.IncludeRevisits || candidate >= best) {
				continue
			}

			set.Nodes[nb] = struct{}{}
			set.Edges[edge.ID] = struct{}{}
			set.Depth[nb] = candidate
			parent[nb] = cur.nodeID

			if opts.Critical != nil {
				if node, found := ix.Node(nb); found && opts.Critical(node) {
					set.CriticalPaths = append(set.CriticalPaths, rebuildPath(parent, nb, dir))
				}
			}

			queue = append(queue, frontierEntry{nodeID: nb, depth: candidate})
		}
	}

	set.TotalImpact = Score(ix, set.Nodes)
	return set, nil
}

// rebuildPath walks parent pointers from a discovered node back to the
// seed it was reached from. Downstream paths read source-first;
// upstream paths already read leaf-first because the traversal runs
// against the flow.
func rebuildPath(parent map[string]string, nodeID string, dir direction) []string {
	path := []string{nodeID}
	for {
		p, ok := parent[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, p)
	}
	if dir == downstream {
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
	}
	return path
}
