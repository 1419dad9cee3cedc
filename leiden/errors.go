// Package leiden drives the Leiden community-detection algorithm: the
// local-moving / refinement / aggregation cycle of §4.3-4.5, wrapped by
// the iterate-until-converged driver of §4.6 and the induced-subgraph
// recursion of §4.7, exposed to callers through three host-boundary
// functions (§6).
//
// Error handling follows the teacher's sentinel-error convention
// (core/types.go, tsp/types.go), generalized into a single Kind enum
// plus an Error wrapper because §7 names a closed, caller-switchable
// taxonomy rather than one sentinel per failure mode; see DESIGN.md for
// why this departs from the teacher's flat var-block style.
package leiden

import (
	"errors"
	"fmt"
)

// Kind classifies a leiden.Error for callers that want to branch on
// failure category without string-matching, per §7's error taxonomy.
type Kind int

const (
	// InvalidParameter indicates an out-of-range driver option: resolution
	// <= 0, randomness <= 0, iterations < 0, trials < 1, or
	// max_cluster_size < 2.
	InvalidParameter Kind = iota

	// InvalidEdge indicates a non-finite or non-positive edge weight.
	InvalidEdge

	// UnknownLabel indicates starting_communities referenced a label not
	// present in the edge list.
	UnknownLabel

	// EmptyGraph indicates an empty edge list.
	EmptyGraph

	// InternalInvariant indicates a should-never-happen assertion failure.
	// It is the one error kind this package raises via a panic/recover
	// boundary. It is also returned directly, wrapping the cause, for a
	// graph build error outside graph's known sentinels and for a trial
	// that stopped with an error (a cancelled context, set via
	// WithContext). The panic/recover boundary is grounded on the teacher's
	// total absence of panics on user input (tsp/validate.go,
	// prim_kruskal/kruskal.go never panic on bad input) — InternalInvariant
	// is reserved for states those files would instead treat as "this
	// cannot happen," which Go has no sentinel for short of a panic.
	InternalInvariant
)

// String names a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "InvalidParameter"
	case InvalidEdge:
		return "InvalidEdge"
	case UnknownLabel:
		return "UnknownLabel"
	case EmptyGraph:
		return "EmptyGraph"
	case InternalInvariant:
		return "InternalInvariant"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned across the leiden host
// boundary. All failures are terminal (§4.9): no partial result is ever
// returned alongside a non-nil error.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("leiden: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("leiden: %s: %s", e.Kind, e.Message)
}

// Unwrap exposes Cause so errors.Is/errors.As see through to a wrapped
// graph or cluster sentinel.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError builds an *Error with no wrapped cause.
func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// wrapError builds an *Error wrapping cause under kind.
func wrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err if it is (or wraps) a *leiden.Error,
// for callers that want to branch on failure category:
//
//	if k, ok := leiden.KindOf(err); ok && k == leiden.InvalidParameter { ... }
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}

// assertInvariant panics with an *Error carrying InternalInvariant when
// cond is false. Callers at the package's recover boundary (the three
// host-boundary functions) convert the panic back into a returned error;
// this is the only place this package uses panic/recover, reserved for
// should-never-happen internal states per §4.9.
func assertInvariant(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	panic(newError(InternalInvariant, fmt.Sprintf(format, args...)))
}

// recoverInvariant converts a panic raised by assertInvariant into *errp.
// Call via `defer recoverInvariant(&err)` at the top of every exported
// host-boundary function.
func recoverInvariant(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok {
		*errp = e
		return
	}
	*errp = newError(InternalInvariant, fmt.Sprintf("unexpected panic: %v", r))
}
