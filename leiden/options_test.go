package leiden_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/leiden/leiden"
	"github.com/katalvlaran/leiden/quality"
)

func TestDefaultOptions_MatchesDocumentedDefaults(t *testing.T) {
	o := leiden.DefaultOptions()
	require.Equal(t, leiden.DefaultResolution, o.Resolution)
	require.Equal(t, leiden.DefaultRandomness, o.Randomness)
	require.Equal(t, leiden.DefaultIterations, o.Iterations)
	require.Equal(t, quality.Modularity, o.Objective)
	require.Equal(t, leiden.DefaultTrials, o.Trials)
	require.Equal(t, leiden.DefaultMaxClusterSize, o.MaxClusterSize)
	require.Nil(t, o.Seed)
}

func TestWithSeed_FixesMasterSeed(t *testing.T) {
	o := leiden.DefaultOptions()
	for _, opt := range []leiden.Option{leiden.WithSeed(123)} {
		opt(&o)
	}
	require.NotNil(t, o.Seed)
	require.Equal(t, int64(123), *o.Seed)
}
