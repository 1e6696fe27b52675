package paths

import (
	"context"
	"testing"

	"github.com/chainsight/chainsight/pkg/graph"
)

func diamondIndex(t *testing.T) *graph.Index {
	t.Helper()
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "S", RiskScore: 0.2}, {ID: "X", RiskScore: 0.4},
			{ID: "Y", RiskScore: 0.6}, {ID: "T", RiskScore: 0.8},
		},
		Edges: []graph.Edge{
			{ID: "e1", Source: "S", Target: "X", Weight: 1},
			{ID: "e2", Source: "X", Target: "T", Weight: 1},
			{ID: "e3", Source: "S", Target: "Y", Weight: 1},
			{ID: "e4", Source: "Y", Target: "T", Weight: 1},
		},
	}
	ix, warnings := graph.BuildIndex(g)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	return ix
}

func TestFindAllPaths_Diamond(t *testing.T) {
	ix := diamondIndex(t)

	result, err := FindAllPaths(context.Background(), ix, "S", "T", Options{})
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if result.Truncated {
		t.Error("unexpected truncation")
	}
	if len(result.Paths) != 2 {
		t.Fatalf("paths = %d, want 2", len(result.Paths))
	}
	for _, p := range result.Paths {
		if len(p) != 3 {
			t.Errorf("path %v has %d hops, want 2", p, len(p)-1)
		}
	}
}

func TestFindAllPaths_TrivialPath(t *testing.T) {
	ix := diamondIndex(t)

	result, err := FindAllPaths(context.Background(), ix, "S", "S", Options{})
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(result.Paths) != 1 || len(result.Paths[0]) != 1 || result.Paths[0][0] != "S" {
		t.Errorf("paths = %v, want exactly [[S]]", result.Paths)
	}
}

func TestFindAllPaths_NoRoute(t *testing.T) {
	ix := diamondIndex(t)

	result, err := FindAllPaths(context.Background(), ix, "T", "S", Options{})
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(result.Paths) != 0 {
		t.Errorf("paths = %v, want empty list", result.Paths)
	}
}

func TestFindAllPaths_UnknownEndpoint(t *testing.T) {
	ix := diamondIndex(t)

	result, err := FindAllPaths(context.Background(), ix, "S", "nowhere", Options{})
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(result.Paths) != 0 || result.Truncated {
		t.Errorf("result = %+v, want empty untruncated", result)
	}
}

func TestFindAllPaths_MaxPathsTruncates(t *testing.T) {
	ix := diamondIndex(t)

	result, err := FindAllPaths(context.Background(), ix, "S", "T", Options{MaxPaths: 1})
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(result.Paths) != 1 {
		t.Fatalf("paths = %d, want 1", len(result.Paths))
	}
	if !result.Truncated {
		t.Error("expected truncation flag when MaxPaths is hit")
	}
}

func TestFindAllPaths_MaxDepthTruncates(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Edges: []graph.Edge{
			{ID: "e1", Source: "a", Target: "b", Weight: 1},
			{ID: "e2", Source: "b", Target: "c", Weight: 1},
			{ID: "e3", Source: "c", Target: "d", Weight: 1},
		},
	}
	ix, _ := graph.BuildIndex(g)

	result, err := FindAllPaths(context.Background(), ix, "a", "d", Options{MaxDepth: 2})
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(result.Paths) != 0 {
		t.Errorf("paths = %v, want none within 2 hops", result.Paths)
	}
	if !result.Truncated {
		t.Error("expected truncation flag when MaxDepth cuts the search")
	}
}

func TestFindAllPaths_CycleStaysSimple(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []graph.Edge{
			{ID: "e1", Source: "a", Target: "b", Weight: 1},
			{ID: "e2", Source: "b", Target: "a", Weight: 1},
			{ID: "e3", Source: "b", Target: "c", Weight: 1},
		},
	}
	ix, _ := graph.BuildIndex(g)

	result, err := FindAllPaths(context.Background(), ix, "a", "c", Options{})
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(result.Paths) != 1 {
		t.Fatalf("paths = %v, want exactly one simple path", result.Paths)
	}
	seen := map[string]bool{}
	for _, id := range result.Paths[0] {
		if seen[id] {
			t.Errorf("node %s repeated within one path", id)
		}
		seen[id] = true
	}
}

func TestFindAllPaths_ContextCancelled(t *testing.T) {
	ix := diamondIndex(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := FindAllPaths(ctx, ix, "S", "T", Options{}); err == nil {
		t.Error("expected context error")
	}
}

func TestShortestNeverLongerThanAnyPath(t *testing.T) {
	ix := diamondIndex(t)

	result, _ := FindAllPaths(context.Background(), ix, "S", "T", Options{})
	shortest := SelectShortest(ix, result.Paths)
	for _, p := range result.Paths {
		if len(p)-1 < len(shortest)-1 {
			t.Errorf("path %v is shorter than selected shortest %v", p, shortest)
		}
	}
}
