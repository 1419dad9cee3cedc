// Package aggregate implements Leiden's aggregation phase (§4.5): building
// the quotient graph that collapses every community of a clustering to a
// single node, internal edges to a self-loop, and parallel cross-community
// edges to one coalesced edge.
//
// The two-pass count-then-fill CSR construction mirrors graph.Build's own
// sort-and-coalesce pipeline (graph/build.go), reused here at the
// community level instead of the raw edge-list level.
package aggregate

import (
	"sort"

	"github.com/katalvlaran/leiden/cluster"
	"github.com/katalvlaran/leiden/graph"
)

// Graph is the minimal view aggregation needs, matching quality.Graph
// minus TotalWeight (recomputed from the new CSR, not needed from g).
type Graph interface {
	N() int
	NodeWeight(i int) float64
	Neighbors(i int) (ids []int32, weights []float64)
	SelfLoopWeight(i int) float64
}

// Result bundles the quotient graph with the aggregate-node -> constituent
// original-node-index membership needed to unfold a clustering on the
// aggregate graph back onto the original node set (§9's arena/index
// design: the unfold map is owned by the driver frame, walked once).
type Result struct {
	Graph   *graph.Graph
	Members [][]int32 // aggregate node id -> sorted original node indices
}

type pairEdge struct {
	src, dst int32
	weight   float64
}

// Aggregate builds the quotient graph of g under fine: every community of
// fine becomes one node, internal edges collapse into that node's
// self-loop, and cross-community edges coalesce by summing (§4.5). fine's
// community ids are compacted to 0..K-1 first, so the result's node
// indices never depend on fine's internal (possibly sparse) numbering.
//
// The self-loop weight assigned to each aggregate node is exactly the
// community's internal edge weight (the same 0.5*(raw+loops) quantity
// quality.Total uses), which is what makes Q(G, C) == Q(aggregate, identity)
// hold for both objectives: Degree/TotalWeight recompute from the new CSR
// by the same rule graph.Build uses, and a self-loop of weight internal(c)
// contributes 2*internal(c) to the new node's degree, matching the
// degree sum the community carried in g.
//
// Complexity: O(N + E log E) time (sort over cross edges), O(N + E) space.
func Aggregate(g Graph, fine *cluster.Clustering) *Result {
	n := g.N()
	_, remap := fine.Compact()

	newComm := make([]int32, n)
	k := 0
	for i := 0; i < n; i++ {
		nc := remap[fine.Community(i)]
		newComm[i] = nc
		if int(nc)+1 > k {
			k = int(nc) + 1
		}
	}

	members := make([][]int32, k)
	nodeWeight := make([]float64, k)
	for i := 0; i < n; i++ {
		c := newComm[i]
		members[c] = append(members[c], int32(i))
		nodeWeight[c] += g.NodeWeight(i)
	}

	// Pass 1: split every incident arc into a same-community contribution
	// (destined for a self-loop) or a cross-community arc (destined for a
	// regular coalesced edge), exactly mirroring quality.internalWeights'
	// raw/loops split.
	rawSelf := make([]float64, k)
	var cross []pairEdge
	for i := 0; i < n; i++ {
		ci := newComm[i]
		ids, weights := g.Neighbors(i)
		for idx, j := range ids {
			cj := newComm[int(j)]
			if ci == cj {
				rawSelf[ci] += weights[idx]
			} else {
				cross = append(cross, pairEdge{ci, cj, weights[idx]})
			}
		}
		if sl := g.SelfLoopWeight(i); sl != 0 {
			rawSelf[ci] += sl
		}
	}

	sort.Slice(cross, func(a, b int) bool {
		if cross[a].src != cross[b].src {
			return cross[a].src < cross[b].src
		}
		return cross[a].dst < cross[b].dst
	})

	// Pass 2: coalesce cross-community arcs by summing, then merge in one
	// self-loop row per nonempty community, and fill CSR arrays.
	var rows []pairEdge
	for i := 0; i < len(cross); {
		j := i + 1
		sum := cross[i].weight
		for j < len(cross) && cross[j].src == cross[i].src && cross[j].dst == cross[i].dst {
			sum += cross[j].weight
			j++
		}
		rows = append(rows, pairEdge{cross[i].src, cross[i].dst, sum})
		i = j
	}
	for c := 0; c < k; c++ {
		if rawSelf[c] != 0 {
			rows = append(rows, pairEdge{int32(c), int32(c), 0.5 * rawSelf[c]})
		}
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].src != rows[b].src {
			return rows[a].src < rows[b].src
		}
		return rows[a].dst < rows[b].dst
	})

	offsets := make([]int32, k+1)
	for _, e := range rows {
		offsets[e.src+1]++
	}
	for c := 0; c < k; c++ {
		offsets[c+1] += offsets[c]
	}
	neigh := make([]int32, len(rows))
	weight := make([]float64, len(rows))
	cursor := append([]int32(nil), offsets[:k]...)
	for _, e := range rows {
		pos := cursor[e.src]
		neigh[pos] = e.dst
		weight[pos] = e.weight
		cursor[e.src]++
	}

	return &Result{
		Graph:   graph.Assemble(offsets, neigh, weight, nodeWeight),
		Members: members,
	}
}

// InitialClustering builds the starting clustering for the aggregate graph
// per §4.6 step 2d: each aggregate node's community is the community,
// under coarse, shared by all of its constituent original nodes. This is
// always well-defined because refinement (the clustering Aggregate is
// called with) never produces a community spanning more than one coarse
// community (refine.Run's containment guarantee).
func (r *Result) InitialClustering(coarse *cluster.Clustering) (*cluster.Clustering, error) {
	assign := make([]int32, len(r.Members))
	for aggID, members := range r.Members {
		assign[aggID] = coarse.Community(int(members[0]))
	}
	return cluster.FromAssignment(r.Graph, assign)
}
