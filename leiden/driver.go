package leiden

import (
	"context"
	"math/rand"

	"github.com/katalvlaran/leiden/aggregate"
	"github.com/katalvlaran/leiden/cluster"
	"github.com/katalvlaran/leiden/graph"
	"github.com/katalvlaran/leiden/localmove"
	"github.com/katalvlaran/leiden/refine"
)

// driverGraph is the minimal view the recursive driver needs. It matches
// quality.Graph exactly, so both graph.Graph (level 0) and the
// aggregate.Result.Graph of every coarser level (both *graph.Graph
// concretely, but expressed structurally so the recursion never cares
// which) satisfy it without adaptation.
type driverGraph interface {
	N() int
	NodeWeight(i int) float64
	TotalWeight() float64
	Neighbors(i int) (ids []int32, weights []float64)
	SelfLoopWeight(i int) float64
}

// runLevel implements §4.6 step 2 (the iterate-until-converged local-
// moving/refinement/aggregation cycle) at one level of the recursion. c is
// mutated in place and also returned for convenience. r is the single RNG
// stream shared by every phase and every recursion level of this trial,
// per §9's "randomness as implicit global... passed by mutable reference"
// design note.
//
// Recursion terminates because aggregate.Aggregate strictly shrinks the
// node count whenever it has room to (agg.Graph.N() < g.N()); once an
// aggregation step stops shrinking the graph, every node is already its
// own refined community and recursing further could only ever reproduce
// the same graph, so runLevel treats that as the base case rather than
// recursing into a fixed point (an explicit resolution of §4.6 step 2e's
// "recurse... until the recursive local-moving makes no moves," since a
// graph identical to its own aggregate has no further moves to make by
// construction).
func runLevel(ctx context.Context, g driverGraph, c *cluster.Clustering, opts Options, r *rand.Rand) error {
	for iterIdx := 0; iterIdx < opts.Iterations; iterIdx++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		localImproved, err := localmove.Run(ctx, g, c, opts.Objective, opts.Resolution, r)
		if err != nil {
			return err
		}
		if !localImproved && iterIdx > 0 {
			break
		}

		cref, err := refine.Run(ctx, g, c, opts.Objective, opts.Resolution, opts.Randomness, r)
		if err != nil {
			return err
		}

		agg := aggregate.Aggregate(g, cref)
		cPrime, err := agg.InitialClustering(c)
		if err != nil {
			return err
		}

		if agg.Graph.N() < g.N() {
			if err := runLevel(ctx, agg.Graph, cPrime, opts, r); err != nil {
				return err
			}
		}

		// Unfold cPrime back onto c: every original node inherits the
		// community its aggregate node ended up in (§9's arena+index
		// design — the membership map is walked once here and discarded).
		for aggID, members := range agg.Members {
			target := cPrime.Community(aggID)
			for _, orig := range members {
				c.MoveNode(g, int(orig), target)
			}
		}
	}
	return nil
}

// runTrial runs one complete driver invocation (§4.6 steps 1-4) over c,
// which the caller owns and which is mutated in place, returning the
// compacted result and its quality.
func runTrial(ctx context.Context, g *graph.Graph, c *cluster.Clustering, opts Options, r *rand.Rand) (*cluster.Clustering, float64, error) {
	if err := runLevel(ctx, g, c, opts, r); err != nil {
		return nil, 0, err
	}
	compact, _ := c.Compact()
	q := opts.Objective.Total(g, compact, opts.Resolution)
	return compact, q, nil
}

// startingClustering builds the initial Clustering for a trial: singletons
// unless start is non-nil, in which case it is cloned so every trial
// mutates its own copy.
func startingClustering(g *graph.Graph, start *cluster.Clustering) *cluster.Clustering {
	if start != nil {
		return start.Clone()
	}
	return cluster.Singletons(g)
}
