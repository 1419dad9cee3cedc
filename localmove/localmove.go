// Package localmove implements Leiden's local-moving phase (§4.3): a
// queue-driven sweep that repeatedly relocates nodes to whichever
// neighboring community (or a fresh empty one) most improves quality,
// re-queuing neighbors whose context changed, until the queue empties.
//
// The queue/dirty-set shape is grounded on the teacher's bfs.walker:
// a slice-backed FIFO paired with a boolean membership set, so a node
// already pending is never queued twice (bfs/bfs.go).
package localmove

import (
	"context"
	"math/rand"

	"github.com/katalvlaran/leiden/cluster"
	"github.com/katalvlaran/leiden/prng"
	"github.com/katalvlaran/leiden/quality"
)

// Graph is the minimal view local-moving needs, matching quality.Graph so
// any graph.Graph (or test double) satisfies both without adaptation.
type Graph interface {
	N() int
	NodeWeight(i int) float64
	TotalWeight() float64
	Neighbors(i int) (ids []int32, weights []float64)
	SelfLoopWeight(i int) float64
}

// queue is a FIFO of pending node indices with O(1) duplicate rejection,
// the same shape as bfs.walker's queue + visited set.
type queue struct {
	items  []int32
	queued []bool
}

func newQueue(n int, capacityHint int) *queue {
	return &queue{
		items:  make([]int32, 0, capacityHint),
		queued: make([]bool, n),
	}
}

func (q *queue) push(i int32) {
	if q.queued[i] {
		return
	}
	q.queued[i] = true
	q.items = append(q.items, i)
}

func (q *queue) pop() int32 {
	i := q.items[0]
	q.items = q.items[1:]
	q.queued[i] = false
	return i
}

func (q *queue) empty() bool {
	return len(q.items) == 0
}

// Run sweeps every node of g at least once, moving nodes between
// communities of c to improve obj at resolution gamma, until the queue of
// pending nodes empties. The initial visit order is a random permutation
// drawn from r (§4.3). ctx is checked once per dequeue; a non-nil error
// from ctx aborts the sweep with the clustering left in its last
// consistent state.
//
// Run reports whether it moved at least one node, which the Leiden driver
// uses to decide whether a pass converged (§4.6 step 2a/2b).
//
// Complexity: amortized O((N + E) * moves) in the worst case; in practice
// a small constant number of passes over the node set.
func Run(ctx context.Context, g Graph, c *cluster.Clustering, obj quality.Objective, gamma float64, r *rand.Rand) (bool, error) {
	n := g.N()
	q := newQueue(c.Capacity(), n)
	for _, i := range prng.Permutation(n, r) {
		q.push(int32(i))
	}

	edgeTo := make(map[int32]float64, 8)
	anyMoved := false

	for !q.empty() {
		select {
		case <-ctx.Done():
			return anyMoved, ctx.Err()
		default:
		}

		i := q.pop()
		moved, target := bestMove(g, c, obj, gamma, int(i), edgeTo)
		if !moved {
			continue
		}
		anyMoved = true

		c.MoveNode(g, int(i), target)

		ids, _ := g.Neighbors(int(i))
		for _, j := range ids {
			if int(j) == int(i) {
				continue
			}
			if c.Community(int(j)) != target {
				q.push(j)
			}
		}
	}
	return anyMoved, nil
}

// bestMove finds the quality-maximizing community for node i among its
// current community, every community represented among its neighbors, and
// one freshly offered empty community. scratch is reused across calls to
// avoid a map allocation per node visit.
//
// Returns (false, 0) if no candidate strictly improves quality (Δ <= 0
// for every alternative), per §4.3's "stays put" rule.
func bestMove(g Graph, c *cluster.Clustering, obj quality.Objective, gamma float64, i int, scratch map[int32]float64) (bool, int32) {
	for k := range scratch {
		delete(scratch, k)
	}
	current := c.Community(i)
	ids, weights := g.Neighbors(i)
	for k, j := range ids {
		if int(j) == i {
			continue
		}
		scratch[c.Community(int(j))] += weights[k]
	}

	bestDelta := 0.0
	bestComm := current

	edgesToCurrent := scratch[current]
	for comm, w := range scratch {
		if comm == current {
			continue
		}
		d := obj.Delta(g, c, i, current, comm, edgesToCurrent, w, gamma)
		if d > bestDelta || (d == bestDelta && d > 0 && comm < bestComm) {
			bestDelta = d
			bestComm = comm
		}
	}

	if c.CommunitySize(current) > 1 {
		empty := c.EmptyCommunity()
		d := obj.Delta(g, c, i, current, empty, edgesToCurrent, 0, gamma)
		if d > bestDelta || (d == bestDelta && d > 0 && empty < bestComm) {
			bestDelta = d
			bestComm = empty
		} else {
			c.RecycleEmpty(empty)
		}
	}

	if bestComm == current {
		return false, 0
	}
	return true, bestComm
}
