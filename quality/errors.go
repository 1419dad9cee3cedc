// Package quality implements the two community-quality objectives Leiden
// optimizes, Modularity and CPM (§4.2), behind a single Objective tagged
// variant so the hot inner loops of local-moving and refinement branch to
// straight-line code rather than dynamic dispatch (§9).
package quality

import "errors"

// ErrUnknownObjective indicates an Objective value outside {Modularity,
// CPM}.
var ErrUnknownObjective = errors.New("quality: unknown objective")
