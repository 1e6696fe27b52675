package graph

import "testing"

func testGraph() *Graph {
	return &Graph{
		Nodes: []Node{
			{ID: "A", Tier: 0, Kind: KindRawMaterial, Importance: 0.5, RiskScore: 0.5},
			{ID: "B", Tier: 1, Kind: KindSupplier, Importance: 0.5, RiskScore: 0.5},
			{ID: "C", Tier: 2, Kind: KindManufacturer, Importance: 0.5, RiskScore: 0.5},
		},
		Edges: []Edge{
			{ID: "e1", Source: "A", Target: "B", Weight: 10},
			{ID: "e2", Source: "B", Target: "C", Weight: 20},
		},
	}
}

func TestBuildIndex_Adjacency(t *testing.T) {
	ix, warnings := BuildIndex(testGraph())
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if ix.NodeCount() != 3 || ix.EdgeCount() != 2 {
		t.Fatalf("expected 3 nodes / 2 edges, got %d / %d", ix.NodeCount(), ix.EdgeCount())
	}

	fwd := ix.Forward("A")
	if len(fwd) != 1 || fwd[0] != "B" {
		t.Errorf("Forward(A) = %v, want [B]", fwd)
	}
	rev := ix.Reverse("C")
	if len(rev) != 1 || rev[0] != "B" {
		t.Errorf("Reverse(C) = %v, want [B]", rev)
	}

	e, ok := ix.EdgeBetween("A", "B")
	if !ok || e.ID != "e1" || e.Weight != 10 {
		t.Errorf("EdgeBetween(A,B) = %+v ok=%v, want e1 weight 10", e, ok)
	}
}

func TestBuildIndex_IsolatedNodeHasEntries(t *testing.T) {
	g := &Graph{Nodes: []Node{{ID: "lonely"}}}
	ix, _ := BuildIndex(g)

	if fwd := ix.Forward("lonely"); fwd == nil || len(fwd) != 0 {
		t.Errorf("Forward(lonely) = %v, want empty non-nil list", fwd)
	}
	if rev := ix.Reverse("lonely"); rev == nil || len(rev) != 0 {
		t.Errorf("Reverse(lonely) = %v, want empty non-nil list", rev)
	}
}

func TestBuildIndex_DropsDanglingEdges(t *testing.T) {
	g := testGraph()
	g.Edges = append(g.Edges,
		Edge{ID: "e3", Source: "A", Target: "ghost", Weight: 1},
		Edge{ID: "e4", Source: "ghost", Target: "B", Weight: 1},
	)

	ix, warnings := BuildIndex(g)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if ix.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2 (dangling edges dropped)", ix.EdgeCount())
	}
	if len(ix.Forward("A")) != 1 {
		t.Errorf("Forward(A) = %v, dropped edge must not appear", ix.Forward("A"))
	}
}

func TestBuildIndex_DuplicatePairKeepsLastEdge(t *testing.T) {
	g := testGraph()
	g.Edges = append(g.Edges, Edge{ID: "e1b", Source: "A", Target: "B", Weight: 99})

	ix, _ := BuildIndex(g)
	e, ok := ix.EdgeBetween("A", "B")
	if !ok || e.ID != "e1b" || e.Weight != 99 {
		t.Errorf("EdgeBetween(A,B) = %+v, want last-indexed edge e1b", e)
	}
	// The neighbor list must not grow for a duplicate pair.
	if fwd := ix.Forward("A"); len(fwd) != 1 {
		t.Errorf("Forward(A) = %v, want single entry for duplicated pair", fwd)
	}
}

func TestBuildIndex_DuplicateNodeLastWins(t *testing.T) {
	g := &Graph{Nodes: []Node{
		{ID: "X", Tier: 1},
		{ID: "X", Tier: 4},
	}}
	ix, warnings := BuildIndex(g)
	if len(warnings) != 1 {
		t.Fatalf("expected duplicate-node warning, got %v", warnings)
	}
	n, _ := ix.Node("X")
	if n.Tier != 4 {
		t.Errorf("Node(X).Tier = %d, want 4 (last definition wins)", n.Tier)
	}
}

func TestBuildIndex_InsertionOrderPreserved(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "S"}, {ID: "B"}, {ID: "A"}, {ID: "C"}},
		Edges: []Edge{
			{ID: "e1", Source: "S", Target: "B", Weight: 1},
			{ID: "e2", Source: "S", Target: "A", Weight: 1},
			{ID: "e3", Source: "S", Target: "C", Weight: 1},
		},
	}
	ix, _ := BuildIndex(g)
	fwd := ix.Forward("S")
	want := []string{"B", "A", "C"}
	for i := range want {
		if fwd[i] != want[i] {
			t.Fatalf("Forward(S) = %v, want %v (edge supply order)", fwd, want)
		}
	}
}
