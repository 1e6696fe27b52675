package paths

import (
	"testing"

	"github.com/chainsight/chainsight/pkg/graph"
)

func TestSelectShortest_FewestHopsWins(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "s"}, {ID: "m"}, {ID: "t"}},
		Edges: []graph.Edge{
			{ID: "e1", Source: "s", Target: "t", Weight: 100},
			{ID: "e2", Source: "s", Target: "m", Weight: 1},
			{ID: "e3", Source: "m", Target: "t", Weight: 1},
		},
	}
	ix, _ := graph.BuildIndex(g)

	got := SelectShortest(ix, [][]string{
		{"s", "m", "t"},
		{"s", "t"},
	})
	if len(got) != 2 || got[0] != "s" || got[1] != "t" {
		t.Errorf("SelectShortest = %v, want direct hop despite higher weight", got)
	}
}

func TestSelectShortest_WeightBreaksHopTie(t *testing.T) {
	ix := weightedDiamond(t, 5, 1)

	got := SelectShortest(ix, [][]string{
		{"S", "X", "T"}, // weight 10
		{"S", "Y", "T"}, // weight 2
	})
	if got[1] != "Y" {
		t.Errorf("SelectShortest = %v, want the lighter route via Y", got)
	}
}

func TestSelectShortest_LexicographicBreaksFullTie(t *testing.T) {
	ix := weightedDiamond(t, 1, 1)

	got := SelectShortest(ix, [][]string{
		{"S", "Y", "T"},
		{"S", "X", "T"},
	})
	if got[1] != "X" {
		t.Errorf("SelectShortest = %v, want lexicographically smaller route via X", got)
	}

	// Determinism: candidate order must not matter.
	reversed := SelectShortest(ix, [][]string{
		{"S", "X", "T"},
		{"S", "Y", "T"},
	})
	if reversed[1] != got[1] {
		t.Errorf("selection depends on candidate order: %v vs %v", got, reversed)
	}
}

func TestSelectShortest_Empty(t *testing.T) {
	ix, _ := graph.BuildIndex(&graph.Graph{})
	if got := SelectShortest(ix, nil); got != nil {
		t.Errorf("SelectShortest(nil) = %v, want nil", got)
	}
}

// weightedDiamond builds S->X->T / S->Y->T with the given per-arm edge weights.
func weightedDiamond(t *testing.T, xWeight, yWeight float64) *graph.Index {
	t.Helper()
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "S"}, {ID: "X"}, {ID: "Y"}, {ID: "T"}},
		Edges: []graph.Edge{
			{ID: "e1", Source: "S", Target: "X", Weight: xWeight},
			{ID: "e2", Source: "X", Target: "T", Weight: xWeight},
			{ID: "e3", Source: "S", Target: "Y", Weight: yWeight},
			{ID: "e4", Source: "Y", Target: "T", Weight: yWeight},
		},
	}
	ix, _ := graph.BuildIndex(g)
	return ix
}
