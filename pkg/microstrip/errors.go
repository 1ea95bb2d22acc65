package microstrip

import "errors"

// Sentinel errors for design validation. Callers are expected to fail fast:
// the synthesis is deterministic, so retrying cannot help, and downstream
// board generation or simulation cannot proceed from a partial design.
var (
	// ErrInvalidSubstrate indicates non-physical substrate properties
	// (relative permittivity <= 1, non-positive height, negative copper
	// thickness) or a substrate that produced a non-physical derived value.
	ErrInvalidSubstrate = errors.New("invalid substrate")

	// ErrInvalidFrequency indicates a non-positive design frequency.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInfeasibleGeometry indicates the synthesized geometry cannot be
	// fabricated: the inset notch would cut past the patch boundary, or the
	// edge impedance cannot be matched down to the requested feed impedance.
	ErrInfeasibleGeometry = errors.New("infeasible geometry")
)
