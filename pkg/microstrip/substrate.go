// Package microstrip synthesizes inset-fed rectangular microstrip patch
// antenna geometry from substrate properties and a target frequency using the
// transmission-line design equations. All lengths are in millimeters and all
// frequencies in hertz unless stated otherwise.
package microstrip

import "fmt"

// Substrate describes the dielectric and conductor stack the antenna is
// printed on. It is an immutable value object; construct it with
// NewSubstrate so the physical constraints are enforced.
type Substrate struct {
	EpsilonR          float64 // Relative permittivity (dimensionless, > 1)
	HeightMM          float64 // Dielectric thickness in mm (> 0)
	CopperThicknessMM float64 // Copper foil thickness in mm (>= 0)
}

// NewSubstrate validates and returns a Substrate.
// Typical FR4: NewSubstrate(4.6, 1.6, 0.035).
func NewSubstrate(epsilonR, heightMM, copperThicknessMM float64) (Substrate, error) {
	s := Substrate{
		EpsilonR:          epsilonR,
		HeightMM:          heightMM,
		CopperThicknessMM: copperThicknessMM,
	}
	if err := s.Validate(); err != nil {
		return Substrate{}, err
	}
	return s, nil
}

// Validate checks the substrate against its physical constraints.
func (s Substrate) Validate() error {
	if !(s.EpsilonR > 1) {
		return fmt.Errorf("%w: relative permittivity must be > 1, got %g", ErrInvalidSubstrate, s.EpsilonR)
	}
	if !(s.HeightMM > 0) {
		return fmt.Errorf("%w: height must be > 0 mm, got %g", ErrInvalidSubstrate, s.HeightMM)
	}
	if s.CopperThicknessMM < 0 {
		return fmt.Errorf("%w: copper thickness must be >= 0 mm, got %g", ErrInvalidSubstrate, s.CopperThicknessMM)
	}
	return nil
}
