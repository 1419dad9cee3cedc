// Package graph provides an immutable, compressed-sparse-row
// representation of a weighted undirected graph, built once from an edge
// list and thereafter read-only for the lifetime of a Leiden invocation.
//
// Design goals:
//   - Compactness: O(N + E) storage, no per-edge allocation beyond the
//     two backing slices.
//   - Determinism: the same edge list in the same order always yields the
//     same CSR layout (node indices follow first-seen label order);
//     neighbor lists are sorted by neighbor index.
//   - Strict sentinels: only errors defined in this file are returned;
//     never fmt.Errorf where a sentinel suffices.
package graph

import "errors"

// ErrInvalidEdge indicates an edge weight that is non-positive or
// non-finite (NaN or +/-Inf).
//
// Classification: validation error (input shape).
// Usage: if errors.Is(err, ErrInvalidEdge) { ... }
var ErrInvalidEdge = errors.New("graph: invalid edge weight")

// ErrEmptyGraph indicates that Build was called with no edges.
//
// Classification: validation error (input shape).
var ErrEmptyGraph = errors.New("graph: empty edge list")

// ErrDuplicateEdge indicates a parallel edge was rejected because
// WithDuplicatePolicy(RejectDuplicates) is in effect.
//
// Classification: validation error (policy violation).
var ErrDuplicateEdge = errors.New("graph: duplicate edge rejected by policy")

// ErrSelfLoop indicates a self-loop was rejected because
// WithSelfLoopPolicy(RejectSelfLoops) is in effect.
//
// Classification: validation error (policy violation).
var ErrSelfLoop = errors.New("graph: self-loop rejected by policy")
