// Package sim drives an openEMS full-wave simulation of a patch antenna
// design: it builds the 3D model, runs the external solver, and turns the
// recorded port signals into S-parameters, impedance, and Smith-chart data.
package sim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Sweep is the simulation frequency range.
type Sweep struct {
	StartHz float64
	StopHz  float64
	Points  int
}

// DefaultSweep spans 2.0-3.0 GHz with 101 points, bracketing a 2.45 GHz
// design the way the reference simulation does.
func DefaultSweep() Sweep {
	return Sweep{StartHz: 2.0e9, StopHz: 3.0e9, Points: 101}
}

// Validate checks the sweep bounds.
func (s Sweep) Validate() error {
	if !(s.StartHz > 0) {
		return fmt.Errorf("sweep start must be > 0 Hz, got %g", s.StartHz)
	}
	if !(s.StopHz > s.StartHz) {
		return fmt.Errorf("sweep stop %g Hz must be above start %g Hz", s.StopHz, s.StartHz)
	}
	if s.Points < 2 {
		return fmt.Errorf("sweep needs at least 2 points, got %d", s.Points)
	}
	return nil
}

// CenterHz returns the middle of the sweep, used as the excitation center.
func (s Sweep) CenterHz() float64 {
	return (s.StartHz + s.StopHz) / 2
}

// Frequencies returns the evaluation frequencies, evenly spaced from start
// to stop inclusive.
func (s Sweep) Frequencies() ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return floats.Span(make([]float64, s.Points), s.StartHz, s.StopHz), nil
}
