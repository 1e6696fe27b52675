package paths

import "github.com/chainsight/chainsight/pkg/graph"

// SelectShortest picks the canonical shortest path from an enumeration.
// Ties break deterministically: fewest hops, then lowest cumulative
// edge weight, then lexicographically smallest node-id sequence. The
// same input always selects the same path. An empty enumeration
// returns nil.
func SelectShortest(ix *graph.Index, candidates [][]string) []string {
	var best []string
	bestWeight := 0.0

	for _, p := range candidates {
		if p == nil {
			continue
		}
		if best == nil {
			best, bestWeight = p, pathWeight(ix, p)
			continue
		}

		switch {
		case len(p) < len(best):
			best, bestWeight = p, pathWeight(ix, p)
		case len(p) > len(best):
			continue
		default:
			w := pathWeight(ix, p)
			if w < bestWeight || (w == bestWeight && lexLess(p, best)) {
				best, bestWeight = p, w
			}
		}
	}
	return best
}

func pathWeight(ix *graph.Index, path []string) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		if e, ok := ix.EdgeBetween(path[i], path[i+1]); ok {
			total += e.Weight
		}
	}
	return total
}

func lexLess(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
