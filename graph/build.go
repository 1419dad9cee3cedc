package graph

import (
	"math"
	"sort"
)

// Edge is an undirected input edge with an opaque string label at each
// endpoint. Weight must be strictly positive and finite.
type Edge struct {
	U, V   string
	Weight float64
}

// LabelIndex is the bidirectional label<->index map produced by Build.
// Index assignment follows first-seen order in the input edge list, so
// construction is deterministic given a deterministic edge order.
type LabelIndex struct {
	toIndex map[string]int32
	toLabel []string
}

// Index returns the internal node index for label, and whether it exists.
func (li *LabelIndex) Index(label string) (int32, bool) {
	idx, ok := li.toIndex[label]
	return idx, ok
}

// Label returns the label for internal node index idx.
func (li *LabelIndex) Label(idx int32) string {
	return li.toLabel[idx]
}

// Len returns the number of interned labels.
func (li *LabelIndex) Len() int {
	return len(li.toLabel)
}

// triplet is a directed (src, dst, weight) entry prior to CSR compaction.
type triplet struct {
	src, dst int32
	weight   float64
}

// Build interns edge endpoint labels into contiguous indices in
// first-seen order, validates weights, applies the self-loop and
// duplicate-edge policies, and compacts the result into a CSR Graph.
//
// Algorithm (§4.1):
//  1. Intern labels into contiguous indices in first-seen order.
//  2. Accumulate a symmetric triplet list: both (u,v,w) and (v,u,w) for
//     u != v; a single (u,u,w) (or (u,u,2w) under WithSelfLoopPolicy) for
//     self-loops.
//  3. Sort triplets by (source, neighbor).
//  4. Coalesce duplicates by summing weights (or reject, per
//     WithDuplicatePolicy).
//  5. Build the CSR offsets and derived per-node aggregates.
//
// Errors: ErrEmptyGraph if edges is empty; ErrInvalidEdge if any weight is
// <= 0 or non-finite; ErrSelfLoop / ErrDuplicateEdge per the active
// policies.
//
// Complexity: O(E log E) time (dominated by the sort), O(N + E) space.
func Build(edges []Edge, opts ...Option) (*Graph, *LabelIndex, error) {
	if len(edges) == 0 {
		return nil, nil, ErrEmptyGraph
	}
	cfg := newBuildConfig(opts...)

	li := &LabelIndex{toIndex: make(map[string]int32, 2*len(edges))}
	intern := func(label string) int32 {
		if idx, ok := li.toIndex[label]; ok {
			return idx
		}
		idx := int32(len(li.toLabel))
		li.toIndex[label] = idx
		li.toLabel = append(li.toLabel, label)
		return idx
	}

	triplets := make([]triplet, 0, 2*len(edges))
	for _, e := range edges {
		if e.Weight <= 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, nil, ErrInvalidEdge
		}
		u := intern(e.U)
		v := intern(e.V)

		if u == v {
			switch cfg.selfLoops {
			case RejectSelfLoops:
				return nil, nil, ErrSelfLoop
			case DoubleSelfLoops:
				triplets = append(triplets, triplet{u, v, 2 * e.Weight})
			default: // KeepSelfLoops
				triplets = append(triplets, triplet{u, v, e.Weight})
			}
			continue
		}
		triplets = append(triplets, triplet{u, v, e.Weight})
		triplets = append(triplets, triplet{v, u, e.Weight})
	}

	n := len(li.toLabel)
	sort.Slice(triplets, func(i, j int) bool {
		if triplets[i].src != triplets[j].src {
			return triplets[i].src < triplets[j].src
		}
		return triplets[i].dst < triplets[j].dst
	})

	coalesced := make([]triplet, 0, len(triplets))
	for i := 0; i < len(triplets); {
		j := i + 1
		for j < len(triplets) && triplets[j].src == triplets[i].src && triplets[j].dst == triplets[i].dst {
			j++
		}
		if j-i > 1 {
			if cfg.duplicates == RejectDuplicates {
				return nil, nil, ErrDuplicateEdge
			}
			sum := 0.0
			for k := i; k < j; k++ {
				sum += triplets[k].weight
			}
			coalesced = append(coalesced, triplet{triplets[i].src, triplets[i].dst, sum})
		} else {
			coalesced = append(coalesced, triplets[i])
		}
		i = j
	}

	g := &Graph{
		offsets:    make([]int32, n+1),
		neigh:      make([]int32, len(coalesced)),
		weight:     make([]float64, len(coalesced)),
		nodeWeight: make([]float64, n),
		degree:     make([]float64, n),
		selfLoop:   make([]float64, n),
	}
	for _, t := range coalesced {
		g.offsets[t.src+1]++
	}
	for i := 0; i < n; i++ {
		g.offsets[i+1] += g.offsets[i]
	}
	cursor := append([]int32(nil), g.offsets[:n]...)
	for _, t := range coalesced {
		pos := cursor[t.src]
		g.neigh[pos] = t.dst
		g.weight[pos] = t.weight
		cursor[t.src]++
		if t.src == t.dst {
			g.selfLoop[t.src] = t.weight
		}
	}

	var sumAll, sumLoops float64
	for i := 0; i < n; i++ {
		raw := g.RawNeighborSum(i)
		sumAll += raw
		sumLoops += g.selfLoop[i]
		g.degree[i] = raw + g.selfLoop[i]
		g.nodeWeight[i] = g.degree[i]
	}
	g.totalWeight = 0.5 * (sumAll + sumLoops)

	return g, li, nil
}
