package paths

import "github.com/chainsight/chainsight/pkg/graph"

// PathMetrics summarizes one path for the statistics panel.
type PathMetrics struct {
	// HopCount is the number of edges along the path.
	HopCount int `json:"hopCount"`
	// TotalWeight is the sum of edge weights over consecutive pairs.
	TotalWeight float64 `json:"totalWeight"`
	// RiskScore is the arithmetic mean of node risk scores over all
	// nodes in the path.
	RiskScore float64 `json:"riskScore"`
}

// Metrics computes the metrics of a path against the index it was
// enumerated from. Callers must only pass paths produced by
// FindAllPaths against the same index; a consecutive pair with no
// indexed edge contributes weight 0.
func Metrics(ix *graph.Index, path []string) PathMetrics {
	if len(path) == 0 {
		return PathMetrics{}
	}

	m := PathMetrics{
		HopCount:    len(path) - 1,
		TotalWeight: pathWeight(ix, path),
	}

	riskSum := 0.0
	for _, id := range path {
		if node, ok := ix.Node(id); ok {
			riskSum += node.RiskScore
		}
	}
	m.RiskScore = riskSum / float64(len(path))
	return m
}
