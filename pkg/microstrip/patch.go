package microstrip

import (
	"fmt"
	"math"
)

// Options tunes the parts of the synthesis that are design rules rather than
// electromagnetics. The zero value is not usable; start from DefaultOptions.
type Options struct {
	// FeedImpedanceOhms is the characteristic impedance the inset feed is
	// matched to. 50 ohm for almost every board-level system.
	FeedImpedanceOhms float64

	// GroundMarginFactor sets the ground-plane clearance beyond the patch as
	// a multiple of the substrate height per side. 6 is the usual
	// rule-of-thumb for adequate radiation-pattern clearance.
	GroundMarginFactor float64

	// InsetGapMM is the fabrication clearance between the feed trace and the
	// patch copper on each side of the inset notch.
	InsetGapMM float64
}

// DefaultOptions returns the standard design rules: 50 ohm feed, 6h ground
// margin, 1 mm inset clearance.
func DefaultOptions() Options {
	return Options{
		FeedImpedanceOhms:  50.0,
		GroundMarginFactor: 6.0,
		InsetGapMM:         1.0,
	}
}

func (o Options) validate() error {
	if !(o.FeedImpedanceOhms > 0) {
		return fmt.Errorf("%w: feed impedance must be > 0 ohm, got %g", ErrInfeasibleGeometry, o.FeedImpedanceOhms)
	}
	if !(o.GroundMarginFactor > 0) {
		return fmt.Errorf("%w: ground margin factor must be > 0, got %g", ErrInfeasibleGeometry, o.GroundMarginFactor)
	}
	if !(o.InsetGapMM > 0) {
		return fmt.Errorf("%w: inset gap must be > 0 mm, got %g", ErrInfeasibleGeometry, o.InsetGapMM)
	}
	return nil
}

// Design holds every geometric parameter of an inset-fed rectangular patch
// antenna. It is computed once by NewDesign and read-only afterwards; two
// calls with identical inputs produce bit-identical designs.
//
// The width is the radiating-edge dimension (the side the feed line enters
// through the inset notch); the length is the resonant dimension.
type Design struct {
	Substrate   Substrate
	FrequencyHz float64
	Options     Options

	// EffEpsilon is the effective dielectric constant of a trace as wide as
	// the patch. Traces of other widths (such as the feed line) see a
	// different value; use EffectivePermittivity for those.
	EffEpsilon float64

	PatchWidthMM  float64
	PatchLengthMM float64

	GroundPlaneWidthMM  float64
	GroundPlaneLengthMM float64

	FeedLineWidthMM float64 // Feed trace width for the target impedance
	InsetDepthMM    float64 // How far the notch cuts into the patch
	InsetGapMM      float64 // Clearance between feed trace and patch copper

	// EdgeResistanceOhms is the patch input resistance at the radiating edge
	// before inset matching, kept for reporting.
	EdgeResistanceOhms float64
}

// NewDesign synthesizes a patch antenna for the substrate at the given
// frequency with the default design rules.
func NewDesign(s Substrate, frequencyHz float64) (*Design, error) {
	return NewDesignWithOptions(s, frequencyHz, DefaultOptions())
}

// NewDesignWithOptions synthesizes a patch antenna with explicit design
// rules. It either returns a fully valid design or an error; there are no
// partial results and no retained state.
func NewDesignWithOptions(s Substrate, frequencyHz float64, opts Options) (*Design, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !(frequencyHz > 0) || math.IsInf(frequencyHz, 0) || math.IsNaN(frequencyHz) {
		return nil, fmt.Errorf("%w: frequency must be > 0 Hz, got %g", ErrInvalidFrequency, frequencyHz)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	halfWaveMM := SpeedOfLight / (2.0 * frequencyHz) * mmPerMeter

	// Radiating-edge width for efficient radiation.
	widthMM := halfWaveMM * math.Sqrt(2.0/(s.EpsilonR+1.0))

	eeff, err := EffectivePermittivity(s, widthMM)
	if err != nil {
		return nil, err
	}

	// Resonant length: half a guided wavelength, shortened by the fringing
	// extension at each radiating edge.
	deltaL := lengthExtension(s.HeightMM, eeff, widthMM)
	lengthMM := halfWaveMM/math.Sqrt(eeff) - 2.0*deltaL
	if !(lengthMM > 0) {
		return nil, fmt.Errorf("%w: patch length %g mm at %g Hz", ErrInfeasibleGeometry, lengthMM, frequencyHz)
	}

	feedWidthMM, err := SynthesizeTraceWidth(s, opts.FeedImpedanceOhms)
	if err != nil {
		return nil, err
	}

	redge := edgeResistance(s.EpsilonR, lengthMM, widthMM)
	if redge <= opts.FeedImpedanceOhms {
		return nil, fmt.Errorf("%w: edge resistance %.1f ohm is below the %.1f ohm feed, inset matching impossible",
			ErrInfeasibleGeometry, redge, opts.FeedImpedanceOhms)
	}

	// Inset depth where the cos^2 resistance taper crosses the feed
	// impedance.
	insetDepthMM := lengthMM / math.Pi * math.Acos(math.Sqrt(opts.FeedImpedanceOhms/redge))

	d := &Design{
		Substrate:           s,
		FrequencyHz:         frequencyHz,
		Options:             opts,
		EffEpsilon:          eeff,
		PatchWidthMM:        widthMM,
		PatchLengthMM:       lengthMM,
		GroundPlaneWidthMM:  widthMM + 2.0*opts.GroundMarginFactor*s.HeightMM,
		GroundPlaneLengthMM: lengthMM + 2.0*opts.GroundMarginFactor*s.HeightMM,
		FeedLineWidthMM:     feedWidthMM,
		InsetDepthMM:        insetDepthMM,
		InsetGapMM:          opts.InsetGapMM,
		EdgeResistanceOhms:  redge,
	}
	if err := d.checkFeasible(); err != nil {
		return nil, err
	}
	return d, nil
}

// checkFeasible rejects geometry that would self-intersect or be
// unfabricatable. All failures here surface as ErrInfeasibleGeometry rather
// than silently producing a broken outline.
func (d *Design) checkFeasible() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"patch width", d.PatchWidthMM},
		{"patch length", d.PatchLengthMM},
		{"ground plane width", d.GroundPlaneWidthMM},
		{"ground plane length", d.GroundPlaneLengthMM},
		{"feed line width", d.FeedLineWidthMM},
		{"inset depth", d.InsetDepthMM},
		{"inset gap", d.InsetGapMM},
	} {
		if !(v.value > 0) || math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s is %g mm", ErrInfeasibleGeometry, v.name, v.value)
		}
	}
	if d.InsetDepthMM >= d.PatchLengthMM {
		return fmt.Errorf("%w: inset depth %.3f mm exceeds patch length %.3f mm",
			ErrInfeasibleGeometry, d.InsetDepthMM, d.PatchLengthMM)
	}
	if notch := d.NotchWidthMM(); notch >= d.PatchWidthMM {
		return fmt.Errorf("%w: inset notch %.3f mm exceeds patch width %.3f mm",
			ErrInfeasibleGeometry, notch, d.PatchWidthMM)
	}
	return nil
}

// NotchWidthMM is the full width of the inset cutout: the feed trace plus
// the clearance gap on both sides.
func (d *Design) NotchWidthMM() float64 {
	return d.FeedLineWidthMM + 2.0*d.InsetGapMM
}

// FeedLineLengthMM is the feed trace length from the ground-plane edge to the
// bottom of the inset notch.
func (d *Design) FeedLineLengthMM() float64 {
	return (d.GroundPlaneLengthMM-d.PatchLengthMM)/2.0 + d.InsetDepthMM
}

// WavelengthMM is the free-space wavelength at the design frequency.
func (d *Design) WavelengthMM() float64 {
	return SpeedOfLight / d.FrequencyHz * mmPerMeter
}

// Outline traces the patch-with-inset polygon around the given patch-center
// origin. See InsetOutline for the point order and conventions. Coordinates
// are multiplied by scale, so scale=1 yields millimeters and scale=0.001
// yields meters.
func (d *Design) Outline(origin Point, scale float64) []Point {
	return InsetOutline(OutlineSpec{
		PatchWidthMM:  d.PatchWidthMM,
		PatchLengthMM: d.PatchLengthMM,
		FeedWidthMM:   d.FeedLineWidthMM,
		InsetDepthMM:  d.InsetDepthMM,
		GapMM:         d.InsetGapMM,
	}, origin, scale)
}
