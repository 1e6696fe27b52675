package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsight/chainsight/pkg/graph"
)

const sampleDataset = `{
	"nodes": [
		{"id": "ore", "tier": 4, "kind": "raw-material", "importance": 3.0, "riskScore": 0.7},
		{"id": "mill", "tier": 3, "kind": "supplier"},
		{"id": "plant", "tier": 2, "kind": "manufacturer", "riskScore": 0.2}
	],
	"edges": [
		{"id": "e1", "source": "ore", "target": "mill", "weight": 40},
		{"id": "e2", "source": "mill", "target": "plant", "weight": 25}
	]
}`

func TestLoad(t *testing.T) {
	g, err := Load(strings.NewReader(sampleDataset))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 2)

	ore := g.Nodes[0]
	assert.Equal(t, "ore", ore.ID)
	assert.Equal(t, 4, ore.Tier)
	assert.Equal(t, graph.KindRawMaterial, ore.Kind)
	assert.Equal(t, 3.0, ore.Importance)
	assert.Equal(t, 0.7, ore.RiskScore)

	assert.Equal(t, "e1", g.Edges[0].ID)
	assert.Equal(t, 40.0, g.Edges[0].Weight)
}

func TestLoad_OptionalFieldsDefault(t *testing.T) {
	g, err := Load(strings.NewReader(sampleDataset))
	require.NoError(t, err)

	mill := g.Nodes[1]
	assert.Equal(t, graph.DefaultImportance, mill.Importance)
	assert.Equal(t, graph.DefaultRiskScore, mill.RiskScore)

	plant := g.Nodes[2]
	assert.Equal(t, graph.DefaultImportance, plant.Importance)
	assert.Equal(t, 0.2, plant.RiskScore)
}

func TestLoad_EmptyDataset(t *testing.T) {
	g, err := Load(strings.NewReader(`{"nodes": [], "edges": []}`))
	require.NoError(t, err)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing node id", `{"nodes": [{"tier": 1, "kind": "supplier"}]}`},
		{"unknown kind", `{"nodes": [{"id": "a", "tier": 1, "kind": "wizard"}]}`},
		{"risk above one", `{"nodes": [{"id": "a", "tier": 1, "kind": "supplier", "riskScore": 1.5}]}`},
		{"negative tier", `{"nodes": [{"id": "a", "tier": -1, "kind": "supplier"}]}`},
		{"missing edge source", `{"edges": [{"id": "e", "target": "b", "weight": 1}]}`},
		{"negative weight", `{"edges": [{"id": "e", "source": "a", "target": "b", "weight": -1}]}`},
		{"malformed json", `{"nodes": [`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ErrorNamesOffendingRecord(t *testing.T) {
	_, err := Load(strings.NewReader(`{"nodes": [
		{"id": "ok", "tier": 1, "kind": "supplier"},
		{"id": "bad", "tier": 1, "kind": "wizard"}
	]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `node 1 ("bad")`)
}

func TestLoadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supply.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDataset), 0o644))

	g, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 3)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
