package graph

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a node's role in the supply chain.
type Kind int

const (
	KindRawMaterial Kind = iota
	KindSupplier
	KindManufacturer
	KindDistributor
	KindRetailer
	KindWarehouse
	KindCustomer
)

// String returns the wire name of a kind.
func (k Kind) String() string {
	switch k {
	case KindRawMaterial:
		return "raw-material"
	case KindSupplier:
		return "supplier"
	case KindManufacturer:
		return "manufacturer"
	case KindDistributor:
		return "distributor"
	case KindRetailer:
		return "retailer"
	case KindWarehouse:
		return "warehouse"
	case KindCustomer:
		return "customer"
	default:
		return "unknown"
	}
}

// ParseKind converts a wire name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "raw-material":
		return KindRawMaterial, nil
	case "supplier":
		return KindSupplier, nil
	case "manufacturer":
		return KindManufacturer, nil
	case "distributor":
		return KindDistributor, nil
	case "retailer":
		return KindRetailer, nil
	case "warehouse":
		return KindWarehouse, nil
	case "customer":
		return KindCustomer, nil
	default:
		return 0, fmt.Errorf("unknown node kind %q", s)
	}
}

// MarshalJSON encodes the kind as its wire name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind from its wire name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// DefaultImportance and DefaultRiskScore are applied when a dataset
// omits the optional node attributes.
const (
	DefaultImportance = 0.5
	DefaultRiskScore  = 0.5
)

// Node is a single entity in the supply chain.
type Node struct {
	ID         string  `json:"id" validate:"required"`
	Tier       int     `json:"tier" validate:"min=0"`
	Kind       Kind    `json:"kind"`
	Importance float64 `json:"importance" validate:"min=0"`
	RiskScore  float64 `json:"riskScore" validate:"min=0,max=1"`
}

// Edge is a directed, weighted flow between two nodes.
type Edge struct {
	ID     string  `json:"id" validate:"required"`
	Source string  `json:"source" validate:"required"`
	Target string  `json:"target" validate:"required"`
	Weight float64 `json:"weight" validate:"min=0"`
}

// Graph is a snapshot of nodes and edges. It is never mutated by the
// analysis engine; build an Index over it for queries.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node scans for a node by id. For repeated lookups use an Index,
// which carries a map.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
