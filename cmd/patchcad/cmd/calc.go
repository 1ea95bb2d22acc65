package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rflabs/patchcad/pkg/microstrip"
)

var (
	calcFlags designFlags
	calcJSON  bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate patch antenna dimensions",
	Long: `Synthesizes a microstrip-fed rectangular patch antenna from the
substrate parameters and design frequency, and prints the resulting
dimensions. All lengths are millimeters.`,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcFlags.register(calcCmd)
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "emit machine-readable JSON")
}

func runCalc(cmd *cobra.Command, args []string) error {
	d, err := calcFlags.design()
	if err != nil {
		return err
	}

	if calcJSON {
		return printDesignJSON(cmd, d)
	}
	printDesignTable(cmd, d)
	return nil
}

func printDesignTable(cmd *cobra.Command, d *microstrip.Design) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Patch antenna design at %.4g GHz\n\n", d.FrequencyHz/1e9)
	fmt.Fprintf(out, "  Substrate:        er=%.3g  h=%.3g mm  t=%.3g mm\n",
		d.Substrate.EpsilonR, d.Substrate.HeightMM, d.Substrate.CopperThicknessMM)
	fmt.Fprintf(out, "  Eff. permittivity %.4f\n", d.EffEpsilon)
	fmt.Fprintf(out, "  Guided wavelength %.2f mm\n\n", d.WavelengthMM())

	fmt.Fprintf(out, "  Patch width       %.3f mm\n", d.PatchWidthMM)
	fmt.Fprintf(out, "  Patch length      %.3f mm\n", d.PatchLengthMM)
	fmt.Fprintf(out, "  Ground plane      %.3f x %.3f mm\n",
		d.GroundPlaneWidthMM, d.GroundPlaneLengthMM)
	fmt.Fprintf(out, "  Feed line width   %.3f mm (%.4g ohm)\n",
		d.FeedLineWidthMM, d.Options.FeedImpedanceOhms)
	fmt.Fprintf(out, "  Feed line length  %.3f mm\n", d.FeedLineLengthMM())
	fmt.Fprintf(out, "  Inset depth       %.3f mm\n", d.InsetDepthMM)
	fmt.Fprintf(out, "  Inset notch width %.3f mm\n", d.NotchWidthMM())
	fmt.Fprintf(out, "  Edge resistance   %.1f ohm\n", d.EdgeResistanceOhms)
}

func printDesignJSON(cmd *cobra.Command, d *microstrip.Design) error {
	type dims struct {
		FrequencyHz         float64 `json:"frequency_hz"`
		EffEpsilon          float64 `json:"effective_permittivity"`
		PatchWidthMM        float64 `json:"patch_width_mm"`
		PatchLengthMM       float64 `json:"patch_length_mm"`
		GroundPlaneWidthMM  float64 `json:"ground_plane_width_mm"`
		GroundPlaneLengthMM float64 `json:"ground_plane_length_mm"`
		FeedLineWidthMM     float64 `json:"feed_line_width_mm"`
		FeedLineLengthMM    float64 `json:"feed_line_length_mm"`
		InsetDepthMM        float64 `json:"inset_depth_mm"`
		NotchWidthMM        float64 `json:"notch_width_mm"`
		EdgeResistanceOhms  float64 `json:"edge_resistance_ohms"`
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dims{
		FrequencyHz:         d.FrequencyHz,
		EffEpsilon:          d.EffEpsilon,
		PatchWidthMM:        d.PatchWidthMM,
		PatchLengthMM:       d.PatchLengthMM,
		GroundPlaneWidthMM:  d.GroundPlaneWidthMM,
		GroundPlaneLengthMM: d.GroundPlaneLengthMM,
		FeedLineWidthMM:     d.FeedLineWidthMM,
		FeedLineLengthMM:    d.FeedLineLengthMM(),
		InsetDepthMM:        d.InsetDepthMM,
		NotchWidthMM:        d.NotchWidthMM(),
		EdgeResistanceOhms:  d.EdgeResistanceOhms,
	})
}
