package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rflabs/patchcad/pkg/microstrip"
)

func fr4Model(t *testing.T) *Model {
	t.Helper()
	sub, err := microstrip.NewSubstrate(4.6, 1.6, 0.035)
	if err != nil {
		t.Fatalf("NewSubstrate: %v", err)
	}
	d, err := microstrip.NewDesign(sub, 2.45e9)
	if err != nil {
		t.Fatalf("NewDesign: %v", err)
	}
	m, err := NewModel(d, DefaultSweep())
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestNewModelValidation(t *testing.T) {
	if _, err := NewModel(nil, DefaultSweep()); err == nil {
		t.Error("NewModel(nil design) expected error, got nil")
	}

	sub, _ := microstrip.NewSubstrate(4.6, 1.6, 0.035)
	d, _ := microstrip.NewDesign(sub, 2.45e9)
	if _, err := NewModel(d, Sweep{StartHz: 3e9, StopHz: 2e9, Points: 11}); err == nil {
		t.Error("NewModel(inverted sweep) expected error, got nil")
	}
}

func TestModelWriteXML(t *testing.T) {
	m := fr4Model(t)

	var buf bytes.Buffer
	if err := m.WriteXML(&buf); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<openEMS>",
		"<FDTD",
		`f0="2.5e+09"`,
		`xmin="MUR"`,
		"<ContinuousStructure",
		`Name="substrate"`,
		`Epsilon="4.6"`,
		`Name="gnd"`,
		`Name="patch"`,
		`Name="feed"`,
		"<LumpedPort",
		`Impedance="50"`,
		`Direction="z"`,
		`DeltaUnit="0.001"`,
		"<XLines>",
		"<YLines>",
		"<ZLines>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("model XML missing %q", want)
		}
	}

	// The patch is a closed 9-corner inset outline; the polygon drops the
	// repeated closing point.
	if got := strings.Count(out, "<Vertex "); got != 9 {
		t.Errorf("patch polygon has %d vertices, want 9", got)
	}
}

func TestModelGridCoversBoard(t *testing.T) {
	m := fr4Model(t)
	g := m.grid()

	for _, lines := range []string{g.XLines.Values, g.YLines.Values, g.ZLines.Values} {
		if strings.Count(lines, ",") < 10 {
			t.Errorf("grid axis too sparse: %q", lines)
		}
	}
}

func TestFillLines(t *testing.T) {
	out := fillLines([]float64{0, 10}, 3)

	if out[0] != 0 || out[len(out)-1] != 10 {
		t.Fatalf("endpoints = %g, %g; want 0, 10", out[0], out[len(out)-1])
	}
	for k := 1; k < len(out); k++ {
		if gap := out[k] - out[k-1]; gap > 3.0001 {
			t.Errorf("gap %g between %g and %g exceeds max step", gap, out[k-1], out[k])
		}
		if out[k] <= out[k-1] {
			t.Errorf("lines not strictly increasing at %d: %v", k, out)
		}
	}
}

func TestFillLinesDuplicates(t *testing.T) {
	out := fillLines([]float64{5, 0, 5, 10}, 100)
	want := []float64{0, 5, 10}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for k := range want {
		if out[k] != want[k] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
}
