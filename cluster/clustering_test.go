package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/leiden/cluster"
)

type fakeGraph struct {
	weights []float64
}

func (f fakeGraph) N() int                   { return len(f.weights) }
func (f fakeGraph) NodeWeight(i int) float64 { return f.weights[i] }

func TestSingletons(t *testing.T) {
	g := fakeGraph{weights: []float64{1, 2, 3}}
	c := cluster.Singletons(g)
	require.Equal(t, 3, c.N())
	for i := 0; i < 3; i++ {
		require.Equal(t, int32(i), c.Community(i))
		require.InDelta(t, g.weights[i], c.CommunityNodeWeight(int32(i)), 1e-12)
		require.Equal(t, int32(1), c.CommunitySize(int32(i)))
	}
}

func TestMoveNode(t *testing.T) {
	g := fakeGraph{weights: []float64{1, 1, 1}}
	c := cluster.Singletons(g)
	c.MoveNode(g, 0, 1)
	require.Equal(t, int32(1), c.Community(0))
	require.InDelta(t, 2.0, c.CommunityNodeWeight(1), 1e-12)
	require.Equal(t, int32(2), c.CommunitySize(1))
	require.InDelta(t, 0.0, c.CommunityNodeWeight(0), 1e-12)
	require.Equal(t, int32(0), c.CommunitySize(0))
}

func TestEmptyCommunityGrowsCapacity(t *testing.T) {
	g := fakeGraph{weights: []float64{1, 1}}
	c := cluster.Singletons(g)
	before := c.Capacity()
	fresh := c.EmptyCommunity()
	require.Equal(t, int32(before), fresh)
	require.Equal(t, before+1, c.Capacity())
	c.MoveNode(g, 0, fresh)
	require.Equal(t, fresh, c.Community(0))
}

func TestFromAssignment_RejectsMismatch(t *testing.T) {
	g := fakeGraph{weights: []float64{1, 1}}
	_, err := cluster.FromAssignment(g, []int32{0})
	require.ErrorIs(t, err, cluster.ErrDimensionMismatch)
}

func TestFromAssignment_RejectsNegative(t *testing.T) {
	g := fakeGraph{weights: []float64{1, 1}}
	_, err := cluster.FromAssignment(g, []int32{0, -1})
	require.ErrorIs(t, err, cluster.ErrNegativeCommunity)
}

func TestCompact_RenumbersContiguously(t *testing.T) {
	g := fakeGraph{weights: []float64{1, 1, 1, 1}}
	c, err := cluster.FromAssignment(g, []int32{5, 5, 9, 9})
	require.NoError(t, err)
	out, remap := c.Compact()
	require.Equal(t, int32(0), out.Community(0))
	require.Equal(t, int32(0), out.Community(1))
	require.Equal(t, int32(1), out.Community(2))
	require.Equal(t, int32(1), out.Community(3))
	require.Equal(t, int32(0), remap[5])
	require.Equal(t, int32(1), remap[9])
	require.InDelta(t, 2.0, out.CommunityNodeWeight(0), 1e-12)
}

func TestEmptyCommunity_RecyclesVacatedSlot(t *testing.T) {
	g := fakeGraph{weights: []float64{1, 1, 1}}
	c := cluster.Singletons(g)
	before := c.Capacity()

	// Empty out community 1 by moving its sole member elsewhere.
	c.MoveNode(g, 1, 0)
	require.Equal(t, int32(0), c.CommunitySize(1))

	fresh := c.EmptyCommunity()
	require.Equal(t, int32(1), fresh, "should recycle the now-empty slot rather than grow")
	require.Equal(t, before, c.Capacity())
}

func TestEmptyCommunity_SkipsStaleFreeListEntry(t *testing.T) {
	g := fakeGraph{weights: []float64{1, 1, 1}}
	c := cluster.Singletons(g)

	id := c.EmptyCommunity() // grows a fresh slot, e.g. 3
	c.RecycleEmpty(id)
	// Someone else moves directly into id before it is drawn again.
	c.MoveNode(g, 2, id)

	next := c.EmptyCommunity()
	require.NotEqual(t, id, next, "a slot occupied since being recycled must not be reissued")
	require.Equal(t, int32(0), c.CommunitySize(next))
}

func TestClone_Independence(t *testing.T) {
	g := fakeGraph{weights: []float64{1, 1}}
	c := cluster.Singletons(g)
	clone := c.Clone()
	c.MoveNode(g, 0, 1)
	require.Equal(t, int32(0), clone.Community(0))
	require.Equal(t, int32(1), c.Community(0))
}
