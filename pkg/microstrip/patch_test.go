package microstrip

import (
	"errors"
	"math"
	"testing"
)

// fr4Design synthesizes the reference design used throughout these tests:
// 1.6 mm FR4 (er 4.6, 35 um copper) at 2.45 GHz with default rules.
func fr4Design(t *testing.T) *Design {
	t.Helper()
	s := mustSubstrate(t, 4.6, 1.6, 0.035)
	d, err := NewDesign(s, 2.45e9)
	if err != nil {
		t.Fatalf("NewDesign: %v", err)
	}
	return d
}

func TestDesignFR4At2450MHz(t *testing.T) {
	// Hand-computed from the transmission-line equations (matching the
	// published Balanis worked examples for this stackup):
	//   W    = c/(2f) * sqrt(2/5.6)          = 36.563 mm
	//   eeff = 4.2575 at W/h = 22.85
	//   dL   = 0.734 mm, L = 29.652 - 1.468  = 28.184 mm
	d := fr4Design(t)

	if d.PatchWidthMM < 36.3 || d.PatchWidthMM > 36.8 {
		t.Errorf("patch width = %.3f mm, want 36.3..36.8", d.PatchWidthMM)
	}
	if d.PatchLengthMM < 27.9 || d.PatchLengthMM > 28.4 {
		t.Errorf("patch length = %.3f mm, want 27.9..28.4", d.PatchLengthMM)
	}
	if d.EffEpsilon < 4.2 || d.EffEpsilon > 4.3 {
		t.Errorf("effective permittivity = %.4f, want 4.2..4.3", d.EffEpsilon)
	}
	if d.FeedLineWidthMM < 2.7 || d.FeedLineWidthMM > 3.1 {
		t.Errorf("feed line width = %.3f mm, want 2.7..3.1 (50 ohm on 1.6 mm FR4)", d.FeedLineWidthMM)
	}
	if d.InsetDepthMM < 9.5 || d.InsetDepthMM > 11.2 {
		t.Errorf("inset depth = %.3f mm, want 9.5..11.2", d.InsetDepthMM)
	}

	// 6h clearance rule: margin of exactly 9.6 mm per side.
	const tol = 1e-9
	if diff := d.GroundPlaneWidthMM - d.PatchWidthMM; math.Abs(diff-19.2) > tol {
		t.Errorf("ground width margin = %.9f mm, want 19.2", diff)
	}
	if diff := d.GroundPlaneLengthMM - d.PatchLengthMM; math.Abs(diff-19.2) > tol {
		t.Errorf("ground length margin = %.9f mm, want 19.2", diff)
	}
}

func TestDesignInvariants(t *testing.T) {
	subs := []struct {
		er, h, cu float64
	}{
		{4.6, 1.6, 0.035},
		{2.2, 0.787, 0.017},
		{3.38, 0.813, 0.035},
		{9.8, 0.635, 0.017},
	}
	freqs := []float64{0.9e9, 2.45e9, 5.8e9}

	for _, sub := range subs {
		for _, f := range freqs {
			s := mustSubstrate(t, sub.er, sub.h, sub.cu)
			d, err := NewDesign(s, f)
			if err != nil {
				t.Fatalf("NewDesign(er=%g, f=%g): %v", sub.er, f, err)
			}

			for name, v := range map[string]float64{
				"patch width":    d.PatchWidthMM,
				"patch length":   d.PatchLengthMM,
				"ground width":   d.GroundPlaneWidthMM,
				"ground length":  d.GroundPlaneLengthMM,
				"feed width":     d.FeedLineWidthMM,
				"inset depth":    d.InsetDepthMM,
				"feed length":    d.FeedLineLengthMM(),
				"effective eps":  d.EffEpsilon - 1, // strictly above 1
			} {
				if !(v > 0) || math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("er=%g f=%g: %s = %g, want positive finite", sub.er, f, name, v)
				}
			}

			if !(d.GroundPlaneWidthMM > d.PatchWidthMM) {
				t.Errorf("er=%g f=%g: ground plane does not enclose patch width", sub.er, f)
			}
			if !(d.GroundPlaneLengthMM > d.PatchLengthMM) {
				t.Errorf("er=%g f=%g: ground plane does not enclose patch length", sub.er, f)
			}
			if !(d.EffEpsilon < sub.er) {
				t.Errorf("er=%g f=%g: eeff = %g not below er", sub.er, f, d.EffEpsilon)
			}
			if !(d.InsetDepthMM < d.PatchLengthMM) {
				t.Errorf("er=%g f=%g: inset depth %g >= patch length %g", sub.er, f, d.InsetDepthMM, d.PatchLengthMM)
			}
			if !(d.NotchWidthMM() < d.PatchWidthMM) {
				t.Errorf("er=%g f=%g: notch %g >= patch width %g", sub.er, f, d.NotchWidthMM(), d.PatchWidthMM)
			}
		}
	}
}

func TestDesignIsDeterministic(t *testing.T) {
	s := mustSubstrate(t, 4.6, 1.6, 0.035)

	a, err := NewDesign(s, 2.45e9)
	if err != nil {
		t.Fatalf("NewDesign: %v", err)
	}
	b, err := NewDesign(s, 2.45e9)
	if err != nil {
		t.Fatalf("NewDesign: %v", err)
	}

	// Pure function: identical inputs must give bit-for-bit identical
	// outputs, not merely approximately equal ones.
	if *a != *b {
		t.Errorf("two designs from identical inputs differ:\n%+v\n%+v", *a, *b)
	}
}

func TestDesignShrinksWithFrequency(t *testing.T) {
	s := mustSubstrate(t, 4.6, 1.6, 0.035)

	var prev *Design
	for _, f := range []float64{1.0e9, 1.5e9, 2.45e9, 3.5e9, 5.8e9} {
		d, err := NewDesign(s, f)
		if err != nil {
			t.Fatalf("NewDesign(f=%g): %v", f, err)
		}
		if prev != nil {
			if !(d.PatchWidthMM < prev.PatchWidthMM) {
				t.Errorf("patch width did not shrink from %g to %g Hz", prev.FrequencyHz, f)
			}
			if !(d.PatchLengthMM < prev.PatchLengthMM) {
				t.Errorf("patch length did not shrink from %g to %g Hz", prev.FrequencyHz, f)
			}
		}
		prev = d
	}
}

func TestDesignInvalidFrequency(t *testing.T) {
	s := mustSubstrate(t, 4.6, 1.6, 0.035)

	for _, f := range []float64{0, -2.45e9, math.NaN(), math.Inf(1)} {
		_, err := NewDesign(s, f)
		if err == nil {
			t.Errorf("NewDesign(f=%g) expected error, got nil", f)
			continue
		}
		if !errors.Is(err, ErrInvalidFrequency) {
			t.Errorf("NewDesign(f=%g) error = %v, want ErrInvalidFrequency", f, err)
		}
	}
}

func TestDesignRejectsInvalidSubstrate(t *testing.T) {
	// A substrate constructed bypassing NewSubstrate must still be rejected.
	s := Substrate{EpsilonR: 1.0, HeightMM: 1.6, CopperThicknessMM: 0.035}
	_, err := NewDesign(s, 2.45e9)
	if !errors.Is(err, ErrInvalidSubstrate) {
		t.Errorf("NewDesign(er=1) error = %v, want ErrInvalidSubstrate", err)
	}
}

func TestDesignOptions(t *testing.T) {
	s := mustSubstrate(t, 4.6, 1.6, 0.035)

	t.Run("ground margin factor is configurable", func(t *testing.T) {
		opts := DefaultOptions()
		opts.GroundMarginFactor = 4
		d, err := NewDesignWithOptions(s, 2.45e9, opts)
		if err != nil {
			t.Fatalf("NewDesignWithOptions: %v", err)
		}
		want := 2 * 4 * 1.6
		if diff := d.GroundPlaneWidthMM - d.PatchWidthMM; math.Abs(diff-want) > 1e-9 {
			t.Errorf("ground width margin = %g, want %g", diff, want)
		}
	})

	t.Run("deeper inset for higher feed impedance", func(t *testing.T) {
		opts := DefaultOptions()
		opts.FeedImpedanceOhms = 100
		d100, err := NewDesignWithOptions(s, 2.45e9, opts)
		if err != nil {
			t.Fatalf("NewDesignWithOptions(100 ohm): %v", err)
		}
		d50, err := NewDesign(s, 2.45e9)
		if err != nil {
			t.Fatalf("NewDesign: %v", err)
		}
		// Matching to a higher impedance needs less inset.
		if !(d100.InsetDepthMM < d50.InsetDepthMM) {
			t.Errorf("inset at 100 ohm (%g) not shallower than at 50 ohm (%g)",
				d100.InsetDepthMM, d50.InsetDepthMM)
		}
	})

	t.Run("feed impedance above edge resistance is infeasible", func(t *testing.T) {
		opts := DefaultOptions()
		opts.FeedImpedanceOhms = 1e6
		_, err := NewDesignWithOptions(s, 2.45e9, opts)
		if !errors.Is(err, ErrInfeasibleGeometry) {
			t.Errorf("error = %v, want ErrInfeasibleGeometry", err)
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		for _, opts := range []Options{
			{FeedImpedanceOhms: 0, GroundMarginFactor: 6, InsetGapMM: 1},
			{FeedImpedanceOhms: 50, GroundMarginFactor: 0, InsetGapMM: 1},
			{FeedImpedanceOhms: 50, GroundMarginFactor: 6, InsetGapMM: 0},
		} {
			if _, err := NewDesignWithOptions(s, 2.45e9, opts); err == nil {
				t.Errorf("NewDesignWithOptions(%+v) expected error, got nil", opts)
			}
		}
	})
}
