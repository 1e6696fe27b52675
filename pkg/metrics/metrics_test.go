package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func findFamily(t *testing.T, r *Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.Gather().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestRecordTrace(t *testing.T) {
	r := NewRegistry()
	r.RecordTrace("downstream", "ok", 25*time.Millisecond, 42)
	r.RecordTrace("downstream", "ok", 5*time.Millisecond, 7)
	r.RecordTrace("upstream", "cancelled", time.Millisecond, 0)

	mf := findFamily(t, r, "chainsight_traces_total")
	if mf == nil {
		t.Fatal("chainsight_traces_total not gathered")
	}

	total := 0.0
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	if total != 3 {
		t.Errorf("traces total = %v, want 3", total)
	}
}

func TestRecordPathQuery_Truncation(t *testing.T) {
	r := NewRegistry()
	r.RecordPathQuery("ok", time.Millisecond, false)
	r.RecordPathQuery("ok", time.Millisecond, true)

	mf := findFamily(t, r, "chainsight_path_queries_truncated_total")
	if mf == nil {
		t.Fatal("truncation counter not gathered")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Errorf("truncated total = %v, want 1", got)
	}
}

func TestRecordIndexBuild(t *testing.T) {
	r := NewRegistry()
	r.RecordIndexBuild(10*time.Millisecond, 100, 250, 3)

	if mf := findFamily(t, r, "chainsight_index_nodes"); mf == nil ||
		mf.GetMetric()[0].GetGauge().GetValue() != 100 {
		t.Error("index node gauge not set to 100")
	}
	if mf := findFamily(t, r, "chainsight_index_edges_dropped_total"); mf == nil ||
		mf.GetMetric()[0].GetCounter().GetValue() != 3 {
		t.Error("dropped edge counter not set to 3")
	}
}

func TestRecordSessionEvent(t *testing.T) {
	r := NewRegistry()
	r.RecordSessionEvent("started", 1)
	r.RecordSessionEvent("reconfigured", 1)
	r.RecordSessionEvent("stopped", 0)

	if mf := findFamily(t, r, "chainsight_sessions_active"); mf == nil ||
		mf.GetMetric()[0].GetGauge().GetValue() != 0 {
		t.Error("active gauge should end at 0")
	}
	if mf := findFamily(t, r, "chainsight_session_recomputes_total"); mf == nil ||
		mf.GetMetric()[0].GetCounter().GetValue() != 2 {
		t.Error("recompute counter should be 2 (start + reconfigure)")
	}
}
