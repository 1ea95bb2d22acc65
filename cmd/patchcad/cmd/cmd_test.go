package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the CLI with the given arguments and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCalcTable(t *testing.T) {
	out, err := execute(t, "calc")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}

	for _, want := range []string{
		"Patch width", "Patch length", "Ground plane",
		"Feed line width", "Inset depth", "2.45 GHz",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calc output missing %q:\n%s", want, out)
		}
	}
}

func TestCalcJSON(t *testing.T) {
	out, err := execute(t, "calc", "--json")
	if err != nil {
		t.Fatalf("calc --json: %v", err)
	}

	var dims struct {
		PatchWidthMM  float64 `json:"patch_width_mm"`
		PatchLengthMM float64 `json:"patch_length_mm"`
	}
	if err := json.Unmarshal([]byte(out), &dims); err != nil {
		t.Fatalf("calc --json produced invalid JSON: %v\n%s", err, out)
	}

	// FR4 defaults at 2.45 GHz.
	if dims.PatchWidthMM < 36.3 || dims.PatchWidthMM > 36.8 {
		t.Errorf("patch_width_mm = %g, want about 36.56", dims.PatchWidthMM)
	}
	if dims.PatchLengthMM < 27.9 || dims.PatchLengthMM > 28.4 {
		t.Errorf("patch_length_mm = %g, want about 28.18", dims.PatchLengthMM)
	}
}

func TestCalcRejectsBadSubstrate(t *testing.T) {
	if _, err := execute(t, "calc", "--er", "0.5"); err == nil {
		t.Error("calc --er 0.5 expected error, got nil")
	}
}

func TestBoardWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "antenna.kicad_pcb")

	out, err := execute(t, "board", "--output", path)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Errorf("unexpected output: %s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("board file not written: %v", err)
	}
	for _, want := range []string{"(kicad_pcb", "Edge.Cuts", "F.Cu", "gr_poly"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("board file missing %q", want)
		}
	}
}

func TestSimAnalyzeOnly(t *testing.T) {
	dir := t.TempDir()

	// Synthetic matched-port recordings: i = u/50 sample for sample.
	var u, i strings.Builder
	u.WriteString("% voltage probe\n")
	i.WriteString("% current probe\n")
	const freq = 2.45e9
	for k := 0; k < 2048; k++ {
		ts := float64(k) / (freq * 64)
		v := math.Cos(2 * math.Pi * freq * ts)
		fmt.Fprintf(&u, "%e %e\n", ts, v)
		fmt.Fprintf(&i, "%e %e\n", ts, v/50)
	}
	if err := os.WriteFile(filepath.Join(dir, "port_ut1"), []byte(u.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "port_it1"), []byte(i.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := execute(t, "sim", "--analyze-only", "--workdir", dir, "--points", "11")
	if err != nil {
		t.Fatalf("sim --analyze-only: %v", err)
	}
	if !strings.Contains(out, "Resonance") || !strings.Contains(out, "Return loss") {
		t.Errorf("sim output missing summary:\n%s", out)
	}

	if _, err := os.Stat(filepath.Join(dir, "antenna.s1p")); err != nil {
		t.Errorf("touchstone file not written: %v", err)
	}
}

func TestReportWritesPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "antenna.pdf")

	if _, err := execute(t, "report", "--output", path); err != nil {
		t.Fatalf("report: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("report output is not a PDF")
	}
}
