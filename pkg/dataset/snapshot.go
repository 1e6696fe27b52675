package dataset

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/chainsight/chainsight/pkg/graph"
)

// Snapshot framing: magic, crc32 of the compressed payload, payload
// length, then the snappy-compressed JSON dataset. The checksum guards
// against torn writes and bit rot on shared storage.
var snapshotMagic = []byte("CSNAP1")

const snapshotExt = ".csnap"

var (
	ErrNotSnapshot       = errors.New("not a chainsight snapshot")
	ErrSnapshotCorrupted = errors.New("snapshot checksum mismatch")
)

func isSnapshotPath(path string) bool {
	return strings.HasSuffix(path, snapshotExt)
}

// EncodeSnapshot serializes a graph into the framed snapshot format.
func EncodeSnapshot(g *graph.Graph) ([]byte, error) {
	raw, err := json.Marshal(fileFromGraph(g))
	if err != nil {
		return nil, fmt.Errorf("marshal dataset: %w", err)
	}

	compressed := snappy.Encode(nil, raw)

	buf := make([]byte, 0, len(snapshotMagic)+8+len(compressed))
	buf = append(buf, snapshotMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(compressed))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(compressed)))
	buf = append(buf, compressed...)
	return buf, nil
}

// DecodeSnapshot parses a framed snapshot back into a graph, running
// the same contract validation as the JSON loader.
func DecodeSnapshot(data []byte) (*graph.Graph, error) {
	headerLen := len(snapshotMagic) + 8
	if len(data) < headerLen || string(data[:len(snapshotMagic)]) != string(snapshotMagic) {
		return nil, ErrNotSnapshot
	}

	checksum := binary.LittleEndian.Uint32(data[len(snapshotMagic):])
	length := binary.LittleEndian.Uint32(data[len(snapshotMagic)+4:])
	payload := data[headerLen:]
	if uint32(len(payload)) != length {
		return nil, fmt.Errorf("%w: truncated payload", ErrSnapshotCorrupted)
	}
	if crc32.ChecksumIEEE(payload) != checksum {
		return nil, ErrSnapshotCorrupted
	}

	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupted, err)
	}
	return Load(bytes.NewReader(raw))
}

// SaveSnapshot writes a graph to disk in the snapshot format.
func SaveSnapshot(path string, g *graph.Graph) error {
	data, err := EncodeSnapshot(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// fileFromGraph converts a graph back to its wire form so snapshots
// and JSON datasets stay interchangeable.
func fileFromGraph(g *graph.Graph) fileFormat {
	file := fileFormat{
		Nodes: make([]nodeRecord, 0, len(g.Nodes)),
		Edges: make([]edgeRecord, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		importance := n.Importance
		risk := n.RiskScore
		file.Nodes = append(file.Nodes, nodeRecord{
			ID:         n.ID,
			Tier:       n.Tier,
			Kind:       n.Kind.String(),
			Importance: &importance,
			RiskScore:  &risk,
		})
	}
	for _, e := range g.Edges {
		file.Edges = append(file.Edges, edgeRecord{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
		})
	}
	return file
}
