package leiden

import (
	"context"

	"github.com/katalvlaran/leiden/quality"
)

// Default knobs, grounded on tsp.DefaultEps/DefaultTwoOptMaxIters's
// named-constant style (tsp/types.go).
const (
	// DefaultResolution is gamma when the caller does not set one.
	DefaultResolution = 1.0

	// DefaultRandomness is theta, refinement's softmax temperature.
	DefaultRandomness = 0.01

	// DefaultIterations bounds the outer local-moving/refine/aggregate loop.
	DefaultIterations = 10

	// DefaultTrials is the number of independent sub-seeded attempts.
	DefaultTrials = 1

	// DefaultMaxClusterSize is only consulted by HierarchicalPartition.
	DefaultMaxClusterSize = 50
)

// Options configures a Partition/HierarchicalPartition/Quality call.
// Built with the teacher's functional-options constructor pattern
// (builder.builderConfig/newBuilderConfig, tsp.Options/DefaultOptions):
// a zero-value Options is never used directly, DefaultOptions() plus
// With* functions is.
type Options struct {
	// Resolution is gamma, the quality function's granularity knob.
	Resolution float64

	// Randomness is theta, refinement's proportional-selection temperature.
	Randomness float64

	// Iterations bounds the outer driver loop (§4.6 step 2).
	Iterations int

	// Objective selects Modularity or CPM.
	Objective quality.Objective

	// Seed fixes the master PRNG seed. Nil draws one from process entropy
	// via prng.EntropySeed; the drawn seed is not returned to the caller.
	Seed *int64

	// Trials is the number of independent sub-seeded attempts; the
	// highest-quality trial wins, ties broken by lowest trial index (§4.6).
	Trials int

	// MaxClusterSize bounds community size for HierarchicalPartition; it is
	// neither validated nor used by Partition/Quality.
	MaxClusterSize int

	// StartingCommunities maps a label to a non-negative starting community
	// id; labels absent from the map start as singletons (§6).
	StartingCommunities map[string]int32

	// ctx is checked between phases (§5/§14); callers set it via
	// WithContext. nil means context.Background(), grounded on the
	// teacher's bfs.WithContext default (bfs/types.go).
	ctx context.Context
}

// Option mutates an Options under construction.
type Option func(*Options)

// DefaultOptions returns the Options every driver call starts from absent
// explicit overrides.
func DefaultOptions() Options {
	return Options{
		Resolution:     DefaultResolution,
		Randomness:     DefaultRandomness,
		Iterations:     DefaultIterations,
		Objective:      quality.Modularity,
		Trials:         DefaultTrials,
		MaxClusterSize: DefaultMaxClusterSize,
	}
}

// WithResolution sets gamma.
func WithResolution(gamma float64) Option {
	return func(o *Options) { o.Resolution = gamma }
}

// WithRandomness sets theta.
func WithRandomness(theta float64) Option {
	return func(o *Options) { o.Randomness = theta }
}

// WithIterations sets the outer loop bound.
func WithIterations(n int) Option {
	return func(o *Options) { o.Iterations = n }
}

// WithObjective selects Modularity or CPM.
func WithObjective(obj quality.Objective) Option {
	return func(o *Options) { o.Objective = obj }
}

// WithSeed fixes the master PRNG seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = &seed }
}

// WithTrials sets the number of independent sub-seeded attempts.
func WithTrials(n int) Option {
	return func(o *Options) { o.Trials = n }
}

// WithMaxClusterSize sets the hierarchical split threshold.
func WithMaxClusterSize(n int) Option {
	return func(o *Options) { o.MaxClusterSize = n }
}

// WithStartingCommunities supplies an initial label->community mapping.
func WithStartingCommunities(m map[string]int32) Option {
	return func(o *Options) { o.StartingCommunities = m }
}

// WithContext sets the cancellation signal checked between phases.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.ctx = ctx }
}

// context returns the configured context, defaulting to Background.
func (o Options) context() context.Context {
	if o.ctx != nil {
		return o.ctx
	}
	return context.Background()
}

// newOptions applies opts over DefaultOptions.
func newOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// validate checks Options for the range violations §4.9 calls fatal.
// hierarchical is true only for HierarchicalPartition, whose
// MaxClusterSize must be >= 2; Partition and Quality ignore that field.
func (o Options) validate(hierarchical bool) error {
	switch {
	case o.Resolution <= 0:
		return newError(InvalidParameter, "resolution must be > 0")
	case o.Randomness <= 0:
		return newError(InvalidParameter, "randomness must be > 0")
	case o.Iterations < 0:
		// §4.9's prose says "iterations < 1" is fatal, but §8 scenario 3
		// exercises iterations=0 as a meaningful no-op (starting
		// communities returned unchanged). Resolved in favor of the
		// concrete scenario: only a negative count is rejected; see
		// DESIGN.md.
		return newError(InvalidParameter, "iterations must be >= 0")
	case o.Trials < 1:
		return newError(InvalidParameter, "trials must be >= 1")
	case hierarchical && o.MaxClusterSize < 2:
		return newError(InvalidParameter, "max_cluster_size must be >= 2")
	}
	return nil
}
