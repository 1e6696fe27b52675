package paths

import (
	"math"
	"testing"
)

func TestMetrics(t *testing.T) {
	ix := diamondIndex(t)

	m := Metrics(ix, []string{"S", "X", "T"})
	if m.HopCount != 2 {
		t.Errorf("HopCount = %d, want 2", m.HopCount)
	}
	if m.TotalWeight != 2 {
		t.Errorf("TotalWeight = %v, want 2", m.TotalWeight)
	}
	wantRisk := (0.2 + 0.4 + 0.8) / 3
	if math.Abs(m.RiskScore-wantRisk) > 1e-12 {
		t.Errorf("RiskScore = %v, want %v", m.RiskScore, wantRisk)
	}
}

func TestMetrics_SingleNode(t *testing.T) {
	ix := diamondIndex(t)

	m := Metrics(ix, []string{"S"})
	if m.HopCount != 0 || m.TotalWeight != 0 {
		t.Errorf("metrics = %+v, want zero hops and weight", m)
	}
	if math.Abs(m.RiskScore-0.2) > 1e-12 {
		t.Errorf("RiskScore = %v, want 0.2", m.RiskScore)
	}
}

func TestMetrics_EmptyPath(t *testing.T) {
	ix := diamondIndex(t)

	if m := Metrics(ix, nil); m != (PathMetrics{}) {
		t.Errorf("metrics of empty path = %+v, want zero value", m)
	}
}
