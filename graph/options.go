package graph

// DuplicatePolicy controls how Build handles repeated (u, v) pairs in the
// input edge list. spec.md leaves this an open question ("whether
// duplicate edges in the input are summed or rejected"); this module
// resolves it explicitly rather than guessing at runtime (see DESIGN.md).
type DuplicatePolicy int

const (
	// SumDuplicates accumulates repeated edges by summing their weights.
	// This is the default: it matches §4.1's "coalesce duplicates by
	// summing weights."
	SumDuplicates DuplicatePolicy = iota

	// RejectDuplicates returns ErrDuplicateEdge on any repeated (u, v).
	RejectDuplicates
)

// SelfLoopPolicy controls how Build handles edges where u == v. spec.md
// leaves this an open question too; this module resolves it explicitly.
type SelfLoopPolicy int

const (
	// KeepSelfLoops stores the self-loop once in the neighbor array, with
	// its weight as given. Degree counts that stored weight twice (once
	// from the neighbor array, once as the self-loop term). This is the
	// default.
	KeepSelfLoops SelfLoopPolicy = iota

	// RejectSelfLoops returns ErrSelfLoop on any u == v edge.
	RejectSelfLoops

	// DoubleSelfLoops stores the self-loop weight doubled, matching the
	// symmetric-storage convention applied uniformly (u,v,w) and
	// (v,u,w) would imply for u == v. Provided for callers whose
	// upstream data already assumes this convention.
	DoubleSelfLoops
)

// Option configures Build before construction. Option constructors never
// panic. Build does not reject policy values outside the declared
// constants: an unknown SelfLoopPolicy keeps self-loops and an unknown
// DuplicatePolicy sums duplicates.
type Option func(*buildConfig)

type buildConfig struct {
	duplicates DuplicatePolicy
	selfLoops  SelfLoopPolicy
}

func newBuildConfig(opts ...Option) *buildConfig {
	cfg := &buildConfig{
		duplicates: SumDuplicates,
		selfLoops:  KeepSelfLoops,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithDuplicatePolicy sets how repeated (u, v) edges are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(cfg *buildConfig) { cfg.duplicates = p }
}

// WithSelfLoopPolicy sets how u == v edges are handled.
func WithSelfLoopPolicy(p SelfLoopPolicy) Option {
	return func(cfg *buildConfig) { cfg.selfLoops = p }
}
