package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rflabs/patchcad/pkg/sim"
)

var (
	simFlags       designFlags
	simWorkdir     string
	simStartHz     float64
	simStopHz      float64
	simPoints      int
	simFormat      string
	simAnalyzeOnly bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a full-wave openEMS simulation of the antenna",
	Long: `Builds the 3D openEMS model for the synthesized antenna, runs the
solver, and reduces the recorded port signals to S11 over the sweep.
Results are printed and written as a touchstone .s1p file next to the
solver outputs.

The openEMS binary is found on PATH, or through the OPENEMS environment
variable. With --analyze-only an earlier solver run in the work
directory is re-analyzed without solving again.`,
	RunE: runSim,
}

func init() {
	rootCmd.AddCommand(simCmd)
	simFlags.register(simCmd)
	simCmd.Flags().StringVar(&simWorkdir, "workdir", "sim", "solver work directory")
	simCmd.Flags().Float64Var(&simStartHz, "f-start", 2.0e9, "sweep start in Hz")
	simCmd.Flags().Float64Var(&simStopHz, "f-stop", 3.0e9, "sweep stop in Hz")
	simCmd.Flags().IntVar(&simPoints, "points", 101, "sweep points")
	simCmd.Flags().StringVar(&simFormat, "format", "RI", "touchstone format: RI, MA, or DB")
	simCmd.Flags().BoolVar(&simAnalyzeOnly, "analyze-only", false, "reuse existing solver output")
}

func runSim(cmd *cobra.Command, args []string) error {
	d, err := simFlags.design()
	if err != nil {
		return err
	}
	sweep := sim.Sweep{StartHz: simStartHz, StopHz: simStopHz, Points: simPoints}

	model, err := sim.NewModel(d, sweep)
	if err != nil {
		return err
	}

	runner := sim.NewRunner(simWorkdir)
	if !simAnalyzeOnly {
		if err := runner.Simulate(cmd.Context(), model); err != nil {
			return err
		}
	}

	signals, err := runner.LoadPortSignals()
	if err != nil {
		return err
	}
	result, err := signals.Analyze(sweep, d.Options.FeedImpedanceOhms)
	if err != nil {
		return err
	}

	s1p := filepath.Join(simWorkdir, "antenna.s1p")
	if err := result.WriteTouchstoneFile(s1p, sim.TouchstoneFormat(simFormat)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-10s %10s %8s %18s\n", "f (GHz)", "S11 (dB)", "VSWR", "Zin (ohm)")
	for _, p := range result.Points {
		fmt.Fprintf(out, "%-10.4f %10.2f %8.3f %9.1f%+8.1fj\n",
			p.FrequencyHz/1e9, p.ReturnLossDB(), p.VSWR(),
			real(p.Impedance), imag(p.Impedance))
	}
	fmt.Fprintln(out)

	peak := result.Resonance()
	fmt.Fprintf(out, "Simulated %d points from %.4g to %.4g GHz\n",
		simPoints, simStartHz/1e9, simStopHz/1e9)
	fmt.Fprintf(out, "  Resonance   %.4f GHz\n", peak.FrequencyHz/1e9)
	fmt.Fprintf(out, "  Return loss %.2f dB\n", peak.ReturnLossDB())
	fmt.Fprintf(out, "  VSWR        %.3f\n", peak.VSWR())
	fmt.Fprintf(out, "  Impedance   %.1f%+.1fj ohm\n", real(peak.Impedance), imag(peak.Impedance))
	if bw := result.Bandwidth(-10); bw > 0 {
		fmt.Fprintf(out, "  -10 dB BW   %.1f MHz\n", bw/1e6)
	} else {
		fmt.Fprintf(out, "  -10 dB BW   none (antenna never matched)\n")
	}
	fmt.Fprintf(out, "  Touchstone  %s\n", s1p)
	return nil
}
