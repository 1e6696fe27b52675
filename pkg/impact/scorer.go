package impact

import "github.com/chainsight/chainsight/pkg/graph"

// NodeSource resolves node ids to nodes. Both *graph.Graph and
// *graph.Index satisfy it.
type NodeSource interface {
	Node(id string) (graph.Node, bool)
}

// tierWeights makes disruptions closer to the finished-good end of the
// chain (tier 0) count more than ones deep in the raw-material tiers.
var tierWeights = [...]float64{2.0, 1.8, 1.5, 1.2, 1.0, 0.8, 0.6, 0.4}

const outOfRangeTierWeight = 0.5

// TierWeight returns the severity multiplier for a tier.
func TierWeight(tier int) float64 {
	if tier < 0 || tier >= len(tierWeights) {
		return outOfRangeTierWeight
	}
	return tierWeights[tier]
}

// Score aggregates a severity score over an affected node set. Ids the
// source cannot resolve contribute zero.
func Score(src NodeSource, affected map[string]struct{}) float64 {
	total := 0.0
	for id := range affected {
		node, ok := src.Node(id)
		if !ok {
			continue
		}
		total += node.Importance * node.RiskScore * TierWeight(node.Tier)
	}
	return total
}
