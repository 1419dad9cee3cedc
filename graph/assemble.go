package graph

// Assemble builds a Graph directly from pre-sorted, pre-coalesced CSR
// arrays and explicit per-node node weights, recomputing degree, self-loop
// weight, and total weight structurally from the arrays (same derivation
// Build uses). It exists for aggregation (§4.5), whose quotient nodes carry
// node weights that are sums of constituent node weights rather than the
// graph's own degree.
//
// Callers must supply arrays that already satisfy Graph's CSR invariants:
// offsets of length N+1, each row's (neigh, weight) sorted by neighbor
// index with at most one entry per (row, neighbor) pair, and the symmetric
// mirror entry present for every non-loop edge.
//
// Complexity: O(N + E).
func Assemble(offsets []int32, neigh []int32, weight []float64, nodeWeight []float64) *Graph {
	n := len(offsets) - 1
	g := &Graph{
		offsets:    offsets,
		neigh:      neigh,
		weight:     weight,
		nodeWeight: append([]float64(nil), nodeWeight...),
		degree:     make([]float64, n),
		selfLoop:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		lo, hi := offsets[i], offsets[i+1]
		for k := lo; k < hi; k++ {
			if neigh[k] == int32(i) {
				g.selfLoop[i] = weight[k]
			}
		}
	}
	var sumAll, sumLoops float64
	for i := 0; i < n; i++ {
		raw := g.RawNeighborSum(i)
		sumAll += raw
		sumLoops += g.selfLoop[i]
		g.degree[i] = raw + g.selfLoop[i]
	}
	g.totalWeight = 0.5 * (sumAll + sumLoops)
	return g
}
