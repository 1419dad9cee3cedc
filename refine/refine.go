// Package refine implements Leiden's refinement phase (§4.4): splitting
// each community produced by local-moving into "well-connected"
// subcommunities via singleton-start, merge-only moves, so that every
// final community's pieces are guaranteed internally connected — the
// property plain Louvain lacks.
//
// The randomized-proportional acceptance among positive-Δ candidates
// mirrors the teacher's functional-options/weighted-choice idiom for
// threading a single *rand.Rand through a driver frame (tsp's phase
// structure) rather than any package-level source.
package refine

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/leiden/cluster"
	"github.com/katalvlaran/leiden/prng"
	"github.com/katalvlaran/leiden/quality"
)

// Graph is the minimal view refinement needs, matching quality.Graph.
type Graph interface {
	N() int
	NodeWeight(i int) float64
	TotalWeight() float64
	Neighbors(i int) (ids []int32, weights []float64)
	SelfLoopWeight(i int) float64
}

// Run splits parent (the clustering produced by local-moving) into a finer
// clustering in which every community is a subset of exactly one parent
// community and is well-connected to the rest of its parent under obj at
// resolution gamma. theta is the randomness temperature controlling how
// sharply the proportional selection favors the highest-Δ candidate (§4.4).
//
// ctx is checked once per node visit. On cancellation, returns the finest
// clustering reached so far alongside the context error.
//
// Complexity: O(N + E) expected, one neighbor pass per node plus O(d log d)
// for the sorted candidate gather at each merge decision.
func Run(ctx context.Context, g Graph, parent *cluster.Clustering, obj quality.Objective, gamma, theta float64, r *rand.Rand) (*cluster.Clustering, error) {
	n := g.N()
	fine := cluster.Singletons(g)

	parentDegree := make([]float64, n)
	for i := 0; i < n; i++ {
		ids, weights := g.Neighbors(i)
		p := parent.Community(i)
		for k, j := range ids {
			if int(j) == i {
				continue
			}
			if parent.Community(int(j)) == p {
				parentDegree[i] += weights[k]
			}
		}
	}
	cut := append([]float64(nil), parentDegree...)

	type candidate struct {
		id    int32
		delta float64
	}
	var candidates []candidate
	edgeTo := make(map[int32]float64, 8)

	for _, i := range prng.Permutation(n, r) {
		select {
		case <-ctx.Done():
			return fine, ctx.Err()
		default:
		}

		if fine.CommunitySize(fine.Community(i)) != 1 {
			continue // already absorbed into a grown subcommunity
		}

		p := parent.Community(i)
		sizeP := parent.CommunityNodeWeight(p)

		for k := range edgeTo {
			delete(edgeTo, k)
		}
		ids, weights := g.Neighbors(i)
		for k, j := range ids {
			if int(j) == i || parent.Community(int(j)) != p {
				continue
			}
			edgeTo[fine.Community(int(j))] += weights[k]
		}

		candidates = candidates[:0]
		for s := range edgeTo {
			sizeS := fine.CommunityNodeWeight(s)
			restS := sizeP - sizeS
			if obj.ConnectivityThreshold(g, sizeS, restS, gamma) > cut[s] {
				continue // S not currently well-connected
			}

			edgesToS := edgeTo[s]
			newCutS := cut[s] + parentDegree[i] - 2*edgesToS
			sizeSPrime := sizeS + g.NodeWeight(i)
			restSPrime := sizeP - sizeSPrime
			if obj.ConnectivityThreshold(g, sizeSPrime, restSPrime, gamma) > newCutS {
				continue // merging i would break S's well-connectedness
			}

			d := obj.Delta(g, fine, i, fine.Community(i), s, 0, edgesToS, gamma)
			if d > 0 {
				candidates = append(candidates, candidate{id: s, delta: d})
			}
		}

		if len(candidates) == 0 {
			continue
		}
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].id < candidates[b].id })

		weightsOut := make([]float64, len(candidates))
		total := 0.0
		for k, cnd := range candidates {
			w := math.Exp(cnd.delta / theta)
			weightsOut[k] = w
			total += w
		}
		if total <= 0 {
			continue // every candidate underflowed to zero weight
		}
		pick := r.Float64() * total
		chosen := candidates[len(candidates)-1].id
		acc := 0.0
		for k, w := range weightsOut {
			acc += w
			if pick < acc {
				chosen = candidates[k].id
				break
			}
		}

		target := chosen
		fine.MoveNode(g, i, target)
		cut[target] = cut[target] + parentDegree[i] - 2*edgeTo[target]
	}
	return fine, nil
}
