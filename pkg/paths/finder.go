package paths

import (
	"context"

	"github.com/chainsight/chainsight/pkg/graph"
)

// Enumeration bounds. All-paths DFS is exponential on dense or cyclic
// graphs, so production callers always run with both limits in force
// and check Result.Truncated.
const (
	DefaultMaxPaths = 128
	DefaultMaxDepth = 16
)

// Options bounds an all-paths enumeration. Zero values select the
// package defaults.
type Options struct {
	MaxPaths int // stop after this many paths
	MaxDepth int // maximum hops per path
}

func (o Options) withDefaults() Options {
	if o.MaxPaths <= 0 {
		o.MaxPaths = DefaultMaxPaths
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// Result holds the enumerated paths. Truncated is set when a bound was
// hit, so a partial result is never mistaken for a complete one.
type Result struct {
	Paths     [][]string
	Truncated bool
}

type finder struct {
	ix      *graph.Index
	target  string
	opts    Options
	visited map[string]bool
	current []string
	result  Result
	ctx     context.Context
}

// FindAllPaths enumerates simple directed paths from sourceID to
// targetID. A node is blocked only within the path being built, so it
// may appear across paths but never twice in one. Unknown endpoints
// yield an empty result, not an error; sourceID == targetID yields the
// single trivial path. The only error returned is ctx cancellation.
func FindAllPaths(ctx context.Context, ix *graph.Index, sourceID, targetID string, opts Options) (Result, error) {
	if !ix.HasNode(sourceID) || !ix.HasNode(targetID) {
		return Result{Paths: [][]string{}}, nil
	}
	if sourceID == targetID {
		return Result{Paths: [][]string{{sourceID}}}, nil
	}

	f := &finder{
		ix:      ix,
		target:  targetID,
		opts:    opts.withDefaults(),
		visited: make(map[string]bool),
		ctx:     ctx,
	}
	f.result.Paths = [][]string{}

	if err := f.walk(sourceID); err != nil {
		return Result{}, err
	}
	return f.result, nil
}

// walk extends the current path by nodeID and recurses into its
// forward neighbors, backtracking on return.
func (f *finder) walk(nodeID string) error {
	select {
	case <-f.ctx.Done():
		return f.ctx.Err()
	default:
	}

	f.current = append(f.current, nodeID)
	f.visited[nodeID] = true
	defer func() {
		f.current = f.current[:len(f.current)-1]
		f.visited[nodeID] = false
	}()

	if nodeID == f.target {
		path := make([]string, len(f.current))
		copy(path, f.current)
		f.result.Paths = append(f.result.Paths, path)
		if len(f.result.Paths) >= f.opts.MaxPaths {
			f.result.Truncated = true
		}
		return nil
	}

	// len(current)-1 hops used so far; stop before exceeding MaxDepth.
	if len(f.current) > f.opts.MaxDepth {
		f.result.Truncated = true
		return nil
	}

	for _, nb := range f.ix.Forward(nodeID) {
		if f.visited[nb] {
			continue
		}
		if err := f.walk(nb); err != nil {
			return err
		}
		if f.result.Truncated && len(f.result.Paths) >= f.opts.MaxPaths {
			return nil
		}
	}
	return nil
}
