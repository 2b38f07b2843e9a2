package engine

import "errors"

// Fatal engine errors. Routine boundary conditions (end of tree, unset
// cursor, out-of-range path) are reported as nil nodes, never as errors.
var (
	// ErrDepthCeiling indicates a path needs more levels than the cursor set
	// may ever hold. It usually means the provider describes a cycle.
	ErrDepthCeiling = errors.New("tree depth exceeds ceiling")

	// ErrProviderContract indicates the node provider answered inconsistently,
	// e.g. a negative child count other than -1 or a missing node at an index
	// its own count admits.
	ErrProviderContract = errors.New("node provider contract violation")
)
