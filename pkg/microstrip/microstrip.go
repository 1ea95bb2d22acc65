package microstrip

import (
	"fmt"
	"math"
)

// SpeedOfLight is the free-space propagation speed in m/s.
const SpeedOfLight = 299792458.0

const mmPerMeter = 1000.0

// EffectivePermittivity returns the effective dielectric constant seen by a
// microstrip trace of the given width on the substrate (Hammerstad). The
// result depends on the width, so it must be evaluated per trace; there is no
// caching. Both the W/h >= 1 and W/h < 1 regimes are covered.
func EffectivePermittivity(s Substrate, widthMM float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if !(widthMM > 0) {
		return 0, fmt.Errorf("%w: trace width must be > 0 mm, got %g", ErrInfeasibleGeometry, widthMM)
	}

	ratio := widthMM / s.HeightMM
	fringe := 1.0 / math.Sqrt(1.0+12.0/ratio)
	if ratio < 1 {
		fringe += 0.04 * (1.0 - ratio) * (1.0 - ratio)
	}
	eeff := (s.EpsilonR+1.0)/2.0 + (s.EpsilonR-1.0)/2.0*fringe

	// Cannot happen for a valid substrate and positive width, but a result
	// outside (1, er] would poison every downstream length.
	if !(eeff > 1) || eeff > s.EpsilonR || math.IsNaN(eeff) || math.IsInf(eeff, 0) {
		return 0, fmt.Errorf("%w: effective permittivity %g out of range (1, %g]",
			ErrInvalidSubstrate, eeff, s.EpsilonR)
	}
	return eeff, nil
}

// CharacteristicImpedance returns the characteristic impedance in ohms of a
// microstrip trace of the given width (Hammerstad analysis equations).
func CharacteristicImpedance(s Substrate, widthMM float64) (float64, error) {
	eeff, err := EffectivePermittivity(s, widthMM)
	if err != nil {
		return 0, err
	}

	ratio := widthMM / s.HeightMM
	if ratio <= 1 {
		return 60.0 / math.Sqrt(eeff) * math.Log(8.0/ratio+ratio/4.0), nil
	}
	return 120.0 * math.Pi / (math.Sqrt(eeff) * (ratio + 1.393 + 0.667*math.Log(ratio+1.444))), nil
}

// SynthesizeTraceWidth returns the trace width in mm that realizes the target
// characteristic impedance on the substrate, using the Wheeler closed-form
// synthesis with the standard copper-thickness correction.
func SynthesizeTraceWidth(s Substrate, targetOhms float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if !(targetOhms > 0) {
		return 0, fmt.Errorf("%w: target impedance must be > 0 ohm, got %g", ErrInfeasibleGeometry, targetOhms)
	}

	er := s.EpsilonR
	a := targetOhms/60.0*math.Sqrt((er+1.0)/2.0) + (er-1.0)/(er+1.0)*(0.23+0.11/er)
	ratio := 8.0 * math.Exp(a) / (math.Exp(2.0*a) - 2.0)
	if ratio >= 2 {
		// Wide-trace branch.
		b := 377.0 * math.Pi / (2.0 * targetOhms * math.Sqrt(er))
		ratio = 2.0 / math.Pi * (b - 1.0 - math.Log(2.0*b-1.0) +
			(er-1.0)/(2.0*er)*(math.Log(b-1.0)+0.39-0.61/er))
	}

	widthMM := ratio * s.HeightMM

	// A finite foil thickness makes the trace electrically wider; compensate
	// so the fabricated trace hits the target impedance.
	if t := s.CopperThicknessMM; t > 0 {
		widthMM -= t / math.Pi * (1.0 + math.Log(2.0*s.HeightMM/t))
	}

	if !(widthMM > 0) || math.IsNaN(widthMM) || math.IsInf(widthMM, 0) {
		return 0, fmt.Errorf("%w: synthesized trace width %g mm for %g ohm",
			ErrInfeasibleGeometry, widthMM, targetOhms)
	}
	return widthMM, nil
}

// edgeResistance approximates the input resistance in ohms at the radiating
// edge of a resonant rectangular patch (transmission-line model).
func edgeResistance(epsilonR, patchLengthMM, patchWidthMM float64) float64 {
	lw := patchLengthMM / patchWidthMM
	return 90.0 * epsilonR * epsilonR / (epsilonR - 1.0) * lw * lw
}

// lengthExtension returns the fringing-field length extension ΔL in mm added
// to each radiating edge of the patch.
func lengthExtension(heightMM, eeff, widthMM float64) float64 {
	ratio := widthMM / heightMM
	return 0.412 * heightMM * (eeff + 0.3) * (ratio + 0.264) /
		((eeff - 0.258) * (ratio + 0.8))
}
