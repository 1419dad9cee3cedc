package graph

// Graph is an immutable, compressed-sparse-row weighted undirected graph.
// It is built once by Build and never mutated afterward; Leiden's three
// phases share it by reference (§3, §5).
//
// Storage layout mirrors classic CSR: offsets[i]..offsets[i+1] indexes into
// neigh/weight for node i's incident entries, sorted by neighbor index.
// Self-loops occupy exactly one slot in their own node's row (§3).
type Graph struct {
	offsets []int32   // len N+1
	neigh   []int32   // len offsets[N]
	weight  []float64 // len offsets[N], parallel to neigh

	nodeWeight  []float64 // len N; default equals degree(i) (§3)
	degree      []float64 // len N; modularity null-model degree d_i (§4.2)
	selfLoop    []float64 // len N; stored self-loop weight, 0 if none
	totalWeight float64   // W = (1/2)*sum(degree) (§3)
}

// N returns the number of nodes.
func (g *Graph) N() int {
	return len(g.offsets) - 1
}

// M returns the number of distinct undirected edges, counting each
// self-loop as one edge.
func (g *Graph) M() int {
	total := len(g.neigh)
	loops := 0
	for _, w := range g.selfLoop {
		if w != 0 {
			loops++
		}
	}
	// Every non-loop edge occupies two slots (one per endpoint); every
	// self-loop occupies one.
	return (total-loops)/2 + loops
}

// TotalWeight returns W, half the sum of all node degrees (§3).
func (g *Graph) TotalWeight() float64 {
	return g.totalWeight
}

// NodeWeight returns the node weight of node i, defaulting to its degree.
func (g *Graph) NodeWeight(i int) float64 {
	return g.nodeWeight[i]
}

// Degree returns d_i, the modularity null-model degree of node i: the sum
// of incident edge weights with the self-loop weight (if any) counted
// twice, per §4.2.
func (g *Graph) Degree(i int) float64 {
	return g.degree[i]
}

// SelfLoopWeight returns the stored self-loop weight of node i, or 0 if it
// has none.
func (g *Graph) SelfLoopWeight(i int) float64 {
	return g.selfLoop[i]
}

// Neighbors returns node i's neighbor indices and parallel edge weights,
// sorted by neighbor index. The returned slices alias Graph's storage and
// must not be mutated or retained past the Graph's lifetime.
func (g *Graph) Neighbors(i int) (ids []int32, weights []float64) {
	lo, hi := g.offsets[i], g.offsets[i+1]
	return g.neigh[lo:hi], g.weight[lo:hi]
}

// RawNeighborSum returns the sum of node i's incident edge weights exactly
// as stored in the CSR arrays, i.e. with a self-loop counted once. This is
// Degree(i) minus the extra self-loop contribution; most callers want
// Degree instead.
func (g *Graph) RawNeighborSum(i int) float64 {
	_, weights := g.Neighbors(i)
	var sum float64
	for _, w := range weights {
		sum += w
	}
	return sum
}
