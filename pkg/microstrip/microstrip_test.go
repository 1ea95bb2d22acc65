package microstrip

import (
	"math"
	"testing"
)

func mustSubstrate(t *testing.T, er, height, copper float64) Substrate {
	t.Helper()
	s, err := NewSubstrate(er, height, copper)
	if err != nil {
		t.Fatalf("NewSubstrate(%g, %g, %g): %v", er, height, copper, err)
	}
	return s
}

func TestEffectivePermittivityBounds(t *testing.T) {
	// The effective permittivity must stay strictly between 1 and er for any
	// valid substrate and positive width, in both W/h regimes.
	ers := []float64{1.1, 2.2, 4.6, 9.8}
	heights := []float64{0.2, 0.8, 1.6}
	widths := []float64{0.1, 0.5, 1.0, 3.0, 30.0}

	for _, er := range ers {
		for _, h := range heights {
			for _, w := range widths {
				s := mustSubstrate(t, er, h, 0.035)
				eeff, err := EffectivePermittivity(s, w)
				if err != nil {
					t.Fatalf("EffectivePermittivity(er=%g h=%g w=%g): %v", er, h, w, err)
				}
				if !(eeff > 1) || !(eeff < er) {
					t.Errorf("EffectivePermittivity(er=%g h=%g w=%g) = %g, want in (1, %g)", er, h, w, eeff, er)
				}
			}
		}
	}
}

func TestEffectivePermittivityGrowsWithWidth(t *testing.T) {
	// Wider traces concentrate more field in the dielectric, so eeff must be
	// monotonically increasing in width across both regime branches.
	s := mustSubstrate(t, 4.6, 1.6, 0.035)

	prev := 0.0
	for _, w := range []float64{0.2, 0.8, 1.59, 1.61, 3.2, 8.0, 32.0} {
		eeff, err := EffectivePermittivity(s, w)
		if err != nil {
			t.Fatalf("EffectivePermittivity(w=%g): %v", w, err)
		}
		if eeff <= prev {
			t.Errorf("EffectivePermittivity(w=%g) = %g, not greater than %g at the previous width", w, eeff, prev)
		}
		prev = eeff
	}
}

func TestEffectivePermittivityInvalidWidth(t *testing.T) {
	s := mustSubstrate(t, 4.6, 1.6, 0.035)
	if _, err := EffectivePermittivity(s, 0); err == nil {
		t.Error("EffectivePermittivity(w=0) expected error, got nil")
	}
	if _, err := EffectivePermittivity(s, -1); err == nil {
		t.Error("EffectivePermittivity(w=-1) expected error, got nil")
	}
}

func TestImpedanceSynthesisRoundTrip(t *testing.T) {
	// The Wheeler synthesis and the Hammerstad analysis are independent
	// closed forms; feeding one into the other has to land near the target.
	tests := []struct {
		name   string
		er     float64
		height float64
		target float64
	}{
		{name: "FR4 50 ohm", er: 4.6, height: 1.6, target: 50},
		{name: "FR4 75 ohm", er: 4.6, height: 1.6, target: 75},
		{name: "PTFE 50 ohm wide branch", er: 2.2, height: 1.6, target: 50},
		{name: "alumina 75 ohm narrow branch", er: 9.8, height: 1.6, target: 75},
		{name: "thin laminate 50 ohm", er: 3.38, height: 0.813, target: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Zero copper so the analysis sees exactly the synthesized width.
			s := mustSubstrate(t, tt.er, tt.height, 0)

			w, err := SynthesizeTraceWidth(s, tt.target)
			if err != nil {
				t.Fatalf("SynthesizeTraceWidth(%g): %v", tt.target, err)
			}
			if !(w > 0) {
				t.Fatalf("SynthesizeTraceWidth(%g) = %g, want positive", tt.target, w)
			}

			z, err := CharacteristicImpedance(s, w)
			if err != nil {
				t.Fatalf("CharacteristicImpedance(%g): %v", w, err)
			}
			if math.Abs(z-tt.target) > 2.0 {
				t.Errorf("round trip impedance = %.2f ohm, want %.0f +/- 2", z, tt.target)
			}
		})
	}
}

func TestSynthesizeTraceWidthCopperCorrection(t *testing.T) {
	// Finite copper thickness makes the trace electrically wider, so the
	// synthesized physical width must shrink slightly.
	bare := mustSubstrate(t, 4.6, 1.6, 0)
	plated := mustSubstrate(t, 4.6, 1.6, 0.035)

	wBare, err := SynthesizeTraceWidth(bare, 50)
	if err != nil {
		t.Fatalf("SynthesizeTraceWidth(bare): %v", err)
	}
	wPlated, err := SynthesizeTraceWidth(plated, 50)
	if err != nil {
		t.Fatalf("SynthesizeTraceWidth(plated): %v", err)
	}

	if !(wPlated < wBare) {
		t.Errorf("plated width %g mm not below bare width %g mm", wPlated, wBare)
	}
	if wBare-wPlated > 0.2 {
		t.Errorf("copper correction %g mm is implausibly large", wBare-wPlated)
	}
}

func TestSynthesizeTraceWidthInvalidTarget(t *testing.T) {
	s := mustSubstrate(t, 4.6, 1.6, 0.035)
	for _, target := range []float64{0, -50} {
		if _, err := SynthesizeTraceWidth(s, target); err == nil {
			t.Errorf("SynthesizeTraceWidth(%g) expected error, got nil", target)
		}
	}
}
