package impact

import (
	"math"
	"testing"

	"github.com/chainsight/chainsight/pkg/graph"
)

func TestTierWeight_Monotonic(t *testing.T) {
	prev := math.Inf(1)
	for tier := 0; tier <= 7; tier++ {
		w := TierWeight(tier)
		if w >= prev {
			t.Errorf("TierWeight(%d) = %v, not strictly below TierWeight(%d) = %v", tier, w, tier-1, prev)
		}
		prev = w
	}
	if TierWeight(0) != 2.0 || TierWeight(7) != 0.4 {
		t.Errorf("endpoints = %v / %v, want 2.0 / 0.4", TierWeight(0), TierWeight(7))
	}
}

func TestTierWeight_OutOfRange(t *testing.T) {
	for _, tier := range []int{-1, 8, 100} {
		if w := TierWeight(tier); w != 0.5 {
			t.Errorf("TierWeight(%d) = %v, want default 0.5", tier, w)
		}
	}
}

func TestScore(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Tier: 0, Importance: 1.0, RiskScore: 0.5},
			{ID: "b", Tier: 4, Importance: 0.5, RiskScore: 0.8},
		},
	}

	affected := map[string]struct{}{
		"a":     {},
		"b":     {},
		"ghost": {}, // unresolvable ids contribute zero
	}

	want := 1.0*0.5*2.0 + 0.5*0.8*1.0
	got := Score(g, affected)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

func TestScore_EmptySet(t *testing.T) {
	if got := Score(&graph.Graph{}, nil); got != 0 {
		t.Errorf("Score over empty set = %v, want 0", got)
	}
}
