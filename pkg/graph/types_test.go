package graph

import (
	"encoding/json"
	"testing"
)

func TestKindRoundTrip(t *testing.T) {
	kinds := []Kind{
		KindRawMaterial, KindSupplier, KindManufacturer,
		KindDistributor, KindRetailer, KindWarehouse, KindCustomer,
	}
	for _, k := range kinds {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) failed: %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), parsed, k)
		}
	}
}

func TestParseKind_Unknown(t *testing.T) {
	if _, err := ParseKind("wizard"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestNodeJSON(t *testing.T) {
	data := []byte(`{"id":"n1","tier":2,"kind":"warehouse","importance":0.9,"riskScore":0.3}`)
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if n.Kind != KindWarehouse || n.Tier != 2 {
		t.Errorf("got %+v, want warehouse at tier 2", n)
	}

	out, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Node
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}
	if back != n {
		t.Errorf("round trip changed node: %+v != %+v", back, n)
	}
}

func TestNodeJSON_BadKind(t *testing.T) {
	var n Node
	if err := json.Unmarshal([]byte(`{"id":"n1","kind":"nonsense"}`), &n); err == nil {
		t.Error("expected error for unknown kind in JSON")
	}
}
