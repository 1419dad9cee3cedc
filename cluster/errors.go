// Package cluster implements Clustering, a mutable node -> community
// assignment with incrementally maintained per-community aggregates
// (§3). A Clustering is owned by whichever phase mutates it and is
// snapshotted (cloned) at phase boundaries so aggregation sees a stable
// input (§3's Lifecycles).
package cluster

import "errors"

// ErrDimensionMismatch indicates an assignment slice whose length does
// not match the graph's node count.
var ErrDimensionMismatch = errors.New("cluster: assignment length mismatch")

// ErrNegativeCommunity indicates a negative community id in a supplied
// starting assignment.
var ErrNegativeCommunity = errors.New("cluster: negative community id")
