package leiden_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/leiden/leiden"
	"github.com/katalvlaran/leiden/quality"
)

// cliqueEdges returns the edges of a complete graph over labels, each edge
// weight 1.
func cliqueEdges(labels []string) []leiden.Edge {
	var edges []leiden.Edge
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			edges = append(edges, leiden.Edge{U: labels[i], V: labels[j], Weight: 1})
		}
	}
	return edges
}

// twoCliquesBridged is §8 scenario 1: two 4-cliques {a,b,c,d} and {e,f,g,h},
// bridged by a single edge (d,e,1).
func twoCliquesBridged() []leiden.Edge {
	edges := cliqueEdges([]string{"a", "b", "c", "d"})
	edges = append(edges, cliqueEdges([]string{"e", "f", "g", "h"})...)
	edges = append(edges, leiden.Edge{U: "d", V: "e", Weight: 1})
	return edges
}

func pathLabel(i int) string {
	return fmt.Sprintf("n%d", i)
}

// pathEdges returns a weight-1 path graph over n nodes.
func pathEdges(n int) []leiden.Edge {
	edges := make([]leiden.Edge, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, leiden.Edge{U: pathLabel(i), V: pathLabel(i + 1), Weight: 1})
	}
	return edges
}

// TestPartition_TwoCliquesBridged is §8 scenario 1.
func TestPartition_TwoCliquesBridged(t *testing.T) {
	edges := twoCliquesBridged()
	q, assign, err := leiden.Partition(edges,
		leiden.WithObjective(quality.Modularity),
		leiden.WithResolution(1.0),
		leiden.WithRandomness(0.01),
		leiden.WithIterations(10),
		leiden.WithSeed(42),
		leiden.WithTrials(1),
	)
	require.NoError(t, err)
	require.InDelta(t, 0.423077, q, 1e-4)

	require.Equal(t, assign["a"], assign["b"])
	require.Equal(t, assign["a"], assign["c"])
	require.Equal(t, assign["a"], assign["d"])
	require.Equal(t, assign["e"], assign["f"])
	require.Equal(t, assign["e"], assign["g"])
	require.Equal(t, assign["e"], assign["h"])
	require.NotEqual(t, assign["a"], assign["e"])
}

// TestPartition_Triangle is §8 scenario 2.
func TestPartition_Triangle(t *testing.T) {
	edges := []leiden.Edge{
		{U: "a", V: "b", Weight: 1},
		{U: "b", V: "c", Weight: 1},
		{U: "a", V: "c", Weight: 1},
	}
	q, assign, err := leiden.Partition(edges,
		leiden.WithObjective(quality.Modularity),
		leiden.WithResolution(1.0),
		leiden.WithSeed(1),
	)
	require.NoError(t, err)
	require.InDelta(t, 0.0, q, 1e-9)
	require.Equal(t, assign["a"], assign["b"])
	require.Equal(t, assign["a"], assign["c"])
}

// TestPartition_DisconnectedSingletonsHonored is §8 scenario 3: with
// iterations=0 the returned clustering equals the caller-supplied starting
// communities exactly, and the reported quality is Q(G, starting) rather
// than the quality of some further-optimized clustering.
func TestPartition_DisconnectedSingletonsHonored(t *testing.T) {
	edges := []leiden.Edge{
		{U: "a", V: "b", Weight: 1},
		{U: "c", V: "d", Weight: 1},
	}
	starting := map[string]int32{"a": 0, "b": 1, "c": 2, "d": 2}

	q, assign, err := leiden.Partition(edges,
		leiden.WithIterations(0),
		leiden.WithStartingCommunities(starting),
	)
	require.NoError(t, err)
	for label, comm := range starting {
		require.Equal(t, comm, assign[label], "label %s", label)
	}

	want, qerr := leiden.Quality(edges, leiden.Assignment(starting))
	require.NoError(t, qerr)
	require.InDelta(t, want, q, 1e-9)
}

// TestPartition_CPMResolutionSweep is §8 scenario 4: a 10-node path under
// CPM collapses to one community at low resolution and to all singletons
// at high resolution.
func TestPartition_CPMResolutionSweep(t *testing.T) {
	edges := pathEdges(10)

	_, loAssign, err := leiden.Partition(edges,
		leiden.WithObjective(quality.CPM),
		leiden.WithResolution(0.01),
		leiden.WithSeed(7),
	)
	require.NoError(t, err)
	first := loAssign[pathLabel(0)]
	for i := 1; i < 10; i++ {
		require.Equal(t, first, loAssign[pathLabel(i)], "node %d should share the single low-resolution community", i)
	}

	_, hiAssign, err := leiden.Partition(edges,
		leiden.WithObjective(quality.CPM),
		leiden.WithResolution(10.0),
		leiden.WithSeed(7),
	)
	require.NoError(t, err)
	seen := make(map[int32]bool, 10)
	for i := 0; i < 10; i++ {
		seen[hiAssign[pathLabel(i)]] = true
	}
	require.Len(t, seen, 10, "high resolution should split every node into its own singleton")
}

// TestQuality_TwoCliquesBridged is §8 scenario 6: Quality alone, given the
// scenario-1 graph and its two-community assignment, without running a
// partition.
func TestQuality_TwoCliquesBridged(t *testing.T) {
	edges := twoCliquesBridged()
	assignment := leiden.Assignment{
		"a": 0, "b": 0, "c": 0, "d": 0,
		"e": 1, "f": 1, "g": 1, "h": 1,
	}
	q, err := leiden.Quality(edges, assignment, leiden.WithResolution(1.0))
	require.NoError(t, err)
	require.InDelta(t, 0.423077, q, 1e-4)
}

func TestPartition_Determinism(t *testing.T) {
	edges := twoCliquesBridged()
	q1, a1, err := leiden.Partition(edges, leiden.WithSeed(99))
	require.NoError(t, err)
	q2, a2, err := leiden.Partition(edges, leiden.WithSeed(99))
	require.NoError(t, err)

	require.Equal(t, q1, q2)
	require.Equal(t, a1, a2)
}

func TestPartition_EmptyGraph(t *testing.T) {
	_, _, err := leiden.Partition(nil)
	require.Error(t, err)
	kind, ok := leiden.KindOf(err)
	require.True(t, ok)
	require.Equal(t, leiden.EmptyGraph, kind)
}

func TestPartition_InvalidEdgeWeight(t *testing.T) {
	_, _, err := leiden.Partition([]leiden.Edge{{U: "a", V: "b", Weight: 0}})
	require.Error(t, err)
	kind, ok := leiden.KindOf(err)
	require.True(t, ok)
	require.Equal(t, leiden.InvalidEdge, kind)
}

func TestPartition_UnknownStartingLabel(t *testing.T) {
	edges := []leiden.Edge{{U: "a", V: "b", Weight: 1}}
	_, _, err := leiden.Partition(edges, leiden.WithStartingCommunities(map[string]int32{"z": 0}))
	require.Error(t, err)
	kind, ok := leiden.KindOf(err)
	require.True(t, ok)
	require.Equal(t, leiden.UnknownLabel, kind)
}

func TestPartition_InvalidParameter(t *testing.T) {
	edges := []leiden.Edge{{U: "a", V: "b", Weight: 1}}

	_, _, err := leiden.Partition(edges, leiden.WithResolution(0))
	kind, ok := leiden.KindOf(err)
	require.True(t, ok)
	require.Equal(t, leiden.InvalidParameter, kind)

	_, _, err = leiden.Partition(edges, leiden.WithRandomness(-1))
	kind, ok = leiden.KindOf(err)
	require.True(t, ok)
	require.Equal(t, leiden.InvalidParameter, kind)

	_, _, err = leiden.Partition(edges, leiden.WithTrials(0))
	kind, ok = leiden.KindOf(err)
	require.True(t, ok)
	require.Equal(t, leiden.InvalidParameter, kind)
}

func TestQuality_UnknownLabel(t *testing.T) {
	edges := []leiden.Edge{{U: "a", V: "b", Weight: 1}}
	_, err := leiden.Quality(edges, leiden.Assignment{"z": 0})
	require.Error(t, err)
	kind, ok := leiden.KindOf(err)
	require.True(t, ok)
	require.Equal(t, leiden.UnknownLabel, kind)
}
