package leiden

import (
	"github.com/katalvlaran/leiden/cluster"
	"github.com/katalvlaran/leiden/graph"
	"github.com/katalvlaran/leiden/prng"
)

// Edge is one input (label_u, label_v, weight) triple (§6). Labels are
// opaque strings the engine interns; weight must be strictly positive
// and finite.
type Edge struct {
	U, V   string
	Weight float64
}

// Assignment maps a label to the community id the engine assigned it.
type Assignment map[string]int32

// buildGraph interns edges via graph.Build and translates its sentinel
// errors into this package's Kind taxonomy.
func buildGraph(edges []Edge) (*graph.Graph, *graph.LabelIndex, error) {
	ge := make([]graph.Edge, len(edges))
	for i, e := range edges {
		ge[i] = graph.Edge{U: e.U, V: e.V, Weight: e.Weight}
	}
	g, li, err := graph.Build(ge)
	if err == nil {
		return g, li, nil
	}
	switch err {
	case graph.ErrEmptyGraph:
		return nil, nil, wrapError(EmptyGraph, "edge list is empty", err)
	case graph.ErrInvalidEdge:
		return nil, nil, wrapError(InvalidEdge, "edge weight must be positive and finite", err)
	default:
		return nil, nil, wrapError(InternalInvariant, "unexpected graph build error", err)
	}
}

// startingAssignment translates a label->community map into an
// index-space assignment slice, singletons for labels that are absent.
// Unknown labels (present in the map but not in li) are rejected as
// UnknownLabel per §4.9.
func startingAssignment(li *graph.LabelIndex, starting map[string]int32) ([]int32, error) {
	n := li.Len()
	assign := make([]int32, n)
	for i := range assign {
		assign[i] = int32(i) // default: singleton
	}
	for label, comm := range starting {
		idx, ok := li.Index(label)
		if !ok {
			return nil, newError(UnknownLabel, "starting_communities references unknown label "+label)
		}
		if comm < 0 {
			return nil, newError(InvalidParameter, "starting_communities value must be non-negative")
		}
		assign[idx] = comm
	}
	return assign, nil
}

// Partition runs the Leiden driver to a fixed point and returns the
// winning trial's quality and label->community assignment (§6.1).
func Partition(edges []Edge, opts ...Option) (quality float64, result Assignment, err error) {
	defer recoverInvariant(&err)

	o := newOptions(opts...)
	if verr := o.validate(false); verr != nil {
		return 0, nil, verr
	}
	return partitionWithSeed(edges, o, masterSeed(o))
}

// partitionWithSeed is Partition's engine, taking the master seed
// explicitly so HierarchicalPartition can hand each recursion level its
// own deterministic sub-seed (§4.7) instead of re-deriving one from
// o.Seed at every level.
func partitionWithSeed(edges []Edge, o Options, master int64) (float64, Assignment, error) {
	g, li, berr := buildGraph(edges)
	if berr != nil {
		return 0, nil, berr
	}

	assign, aerr := startingAssignment(li, o.StartingCommunities)
	if aerr != nil {
		return 0, nil, aerr
	}
	start, cerr := cluster.FromAssignment(g, assign)
	assertInvariant(cerr == nil, "starting assignment rejected by cluster: %v", cerr)

	bestQ := 0.0
	var bestC *cluster.Clustering
	for trial := 0; trial < o.Trials; trial++ {
		r := prng.Derive(master, uint64(trial))
		c := start.Clone()
		resC, q, rerr := runTrial(o.context(), g, c, o, r)
		if rerr != nil {
			return 0, nil, wrapError(InternalInvariant, "trial failed", rerr)
		}
		if bestC == nil || q > bestQ {
			bestQ = q
			bestC = resC
		}
	}

	return bestQ, toAssignment(li, bestC), nil
}

// Quality computes Q(G, community_assignment) without running a
// partition (§6.3).
func Quality(edges []Edge, assignment Assignment, opts ...Option) (q float64, err error) {
	defer recoverInvariant(&err)

	o := newOptions(opts...)
	if verr := o.validate(false); verr != nil {
		return 0, verr
	}

	g, li, berr := buildGraph(edges)
	if berr != nil {
		return 0, berr
	}

	assign := make([]int32, li.Len())
	for label, comm := range assignment {
		idx, ok := li.Index(label)
		if !ok {
			return 0, newError(UnknownLabel, "community_assignment references unknown label "+label)
		}
		if comm < 0 {
			return 0, newError(InvalidParameter, "community id must be non-negative")
		}
		assign[idx] = comm
	}
	c, cerr := cluster.FromAssignment(g, assign)
	assertInvariant(cerr == nil, "quality assignment rejected by cluster: %v", cerr)

	return o.Objective.Total(g, c, o.Resolution), nil
}

// masterSeed resolves the trial-0 master seed: the caller's Seed if set,
// otherwise one drawn from process entropy (prng.EntropySeed), matching
// §6's "random source contract" (the seed, once fixed, fully determines
// the output; an unset seed simply means the caller accepted whichever
// one got drawn).
func masterSeed(o Options) int64 {
	if o.Seed != nil {
		return *o.Seed
	}
	return prng.EntropySeed()
}

// toAssignment reads back a final Clustering into the label-keyed
// Assignment the host boundary returns.
func toAssignment(li *graph.LabelIndex, c *cluster.Clustering) Assignment {
	out := make(Assignment, c.N())
	for i := 0; i < c.N(); i++ {
		out[li.Label(int32(i))] = c.Community(i)
	}
	return out
}
