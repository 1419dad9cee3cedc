package localmove_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/leiden/cluster"
	"github.com/katalvlaran/leiden/localmove"
	"github.com/katalvlaran/leiden/prng"
	"github.com/katalvlaran/leiden/quality"
)

type fakeGraph struct {
	nw       []float64
	neigh    [][]int32
	weights  [][]float64
	selfLoop []float64
	total    float64
}

func (f fakeGraph) N() int                       { return len(f.nw) }
func (f fakeGraph) NodeWeight(i int) float64     { return f.nw[i] }
func (f fakeGraph) TotalWeight() float64         { return f.total }
func (f fakeGraph) SelfLoopWeight(i int) float64 { return f.selfLoop[i] }
// Neighbors mirrors graph.Graph's contract (graph/build.go, graph/types.go):
// a self-loop occupies one slot in its own node's row of the neighbor
// array, alongside the regular incident entries.
func (f fakeGraph) Neighbors(i int) ([]int32, []float64) {
	if f.selfLoop[i] == 0 {
		return f.neigh[i], f.weights[i]
	}
	ids := append(append([]int32(nil), f.neigh[i]...), int32(i))
	weights := append(append([]float64(nil), f.weights[i]...), f.selfLoop[i])
	return ids, weights
}

// twoTriangles builds two disjoint weight-1 triangles: {0,1,2} and {3,4,5},
// with no edges between the two groups.
func twoTriangles() fakeGraph {
	adj := [][]int32{
		{1, 2}, {0, 2}, {0, 1},
		{4, 5}, {3, 5}, {3, 4},
	}
	n := len(adj)
	g := fakeGraph{
		nw:       make([]float64, n),
		neigh:    adj,
		weights:  make([][]float64, n),
		selfLoop: make([]float64, n),
		total:    6,
	}
	for i := range adj {
		g.weights[i] = make([]float64, len(adj[i]))
		for k := range adj[i] {
			g.weights[i][k] = 1
		}
		g.nw[i] = float64(len(adj[i]))
	}
	return g
}

func emptyGraph(n int) fakeGraph {
	g := fakeGraph{
		nw:       make([]float64, n),
		neigh:    make([][]int32, n),
		weights:  make([][]float64, n),
		selfLoop: make([]float64, n),
		total:    0,
	}
	return g
}

func TestRun_MergesDisjointTriangles(t *testing.T) {
	g := twoTriangles()
	c := cluster.Singletons(g)
	r := prng.New(1)

	moved, err := localmove.Run(context.Background(), g, c, quality.Modularity, 1.0, r)
	require.NoError(t, err)
	require.True(t, moved)

	require.Equal(t, c.Community(0), c.Community(1))
	require.Equal(t, c.Community(0), c.Community(2))
	require.Equal(t, c.Community(3), c.Community(4))
	require.Equal(t, c.Community(3), c.Community(5))
	require.NotEqual(t, c.Community(0), c.Community(3))
}

func TestRun_QualityNonDecreasing(t *testing.T) {
	g := twoTriangles()
	c := cluster.Singletons(g)
	before := quality.Modularity.Total(g, c, 1.0)

	r := prng.New(42)
	_, err := localmove.Run(context.Background(), g, c, quality.Modularity, 1.0, r)
	require.NoError(t, err)

	after := quality.Modularity.Total(g, c, 1.0)
	require.GreaterOrEqual(t, after, before)
}

func TestRun_NoEdgesLeavesSingletonsUnchanged(t *testing.T) {
	g := emptyGraph(4)
	c := cluster.Singletons(g)
	r := prng.New(7)

	moved, err := localmove.Run(context.Background(), g, c, quality.Modularity, 1.0, r)
	require.NoError(t, err)
	require.False(t, moved)

	for i := 0; i < 4; i++ {
		require.Equal(t, int32(i), c.Community(i))
	}
}

func TestRun_RespectsCancellation(t *testing.T) {
	g := twoTriangles()
	c := cluster.Singletons(g)
	r := prng.New(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := localmove.Run(ctx, g, c, quality.Modularity, 1.0, r)
	require.ErrorIs(t, err, context.Canceled)
	for i := 0; i < 6; i++ {
		require.Equal(t, int32(i), c.Community(i))
	}
}
