package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/chainsight/chainsight/pkg/graph"
)

var validate = validator.New()

// nodeRecord is the wire form of a node. Importance and risk score are
// optional; absent values take the engine defaults.
type nodeRecord struct {
	ID         string   `json:"id" validate:"required"`
	Tier       int      `json:"tier" validate:"min=0"`
	Kind       string   `json:"kind" validate:"required"`
	Importance *float64 `json:"importance" validate:"omitempty,min=0"`
	RiskScore  *float64 `json:"riskScore" validate:"omitempty,min=0,max=1"`
}

type edgeRecord struct {
	ID     string  `json:"id" validate:"required"`
	Source string  `json:"source" validate:"required"`
	Target string  `json:"target" validate:"required"`
	Weight float64 `json:"weight" validate:"min=0"`
}

type fileFormat struct {
	Nodes []nodeRecord `json:"nodes"`
	Edges []edgeRecord `json:"edges"`
}

// Load decodes and validates a JSON graph dataset. Both arrays may be
// empty; contract violations (missing ids, weights below zero, risk
// outside [0,1], unknown kinds) are errors because they come from the
// producer, not from the graph's shape.
func Load(r io.Reader) (*graph.Graph, error) {
	var file fileFormat
	dec := json.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	g := &graph.Graph{
		Nodes: make([]graph.Node, 0, len(file.Nodes)),
		Edges: make([]graph.Edge, 0, len(file.Edges)),
	}

	for i, rec := range file.Nodes {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("node %d (%q): %w", i, rec.ID, err)
		}
		kind, err := graph.ParseKind(rec.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %d (%q): %w", i, rec.ID, err)
		}

		node := graph.Node{
			ID:         rec.ID,
			Tier:       rec.Tier,
			Kind:       kind,
			Importance: graph.DefaultImportance,
			RiskScore:  graph.DefaultRiskScore,
		}
		if rec.Importance != nil {
			node.Importance = *rec.Importance
		}
		if rec.RiskScore != nil {
			node.RiskScore = *rec.RiskScore
		}
		g.Nodes = append(g.Nodes, node)
	}

	for i, rec := range file.Edges {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("edge %d (%q): %w", i, rec.ID, err)
		}
		g.Edges = append(g.Edges, graph.Edge{
			ID:     rec.ID,
			Source: rec.Source,
			Target: rec.Target,
			Weight: rec.Weight,
		})
	}

	return g, nil
}

// LoadFile loads a dataset from disk, picking the snapshot decoder for
// .csnap files and the JSON loader otherwise.
func LoadFile(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if isSnapshotPath(path) {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		return DecodeSnapshot(data)
	}
	return Load(f)
}
