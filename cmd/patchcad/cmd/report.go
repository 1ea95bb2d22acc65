package cmd

import (
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/spf13/cobra"

	"github.com/rflabs/patchcad/pkg/microstrip"
)

var (
	reportFlags  designFlags
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a one-page PDF design summary",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportFlags.register(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "antenna.pdf", "output PDF file")
}

func runReport(cmd *cobra.Command, args []string) error {
	d, err := reportFlags.design()
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Microstrip Patch Antenna Design")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Design frequency: %.4g GHz", d.FrequencyHz/1e9))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Substrate: er=%.3g, h=%.3g mm, copper %.3g mm",
		d.Substrate.EpsilonR, d.Substrate.HeightMM, d.Substrate.CopperThicknessMM))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Dimensions")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range designRows(d) {
		pdf.Cell(70, 7, row[0])
		pdf.Cell(0, 7, row[1])
		pdf.Ln(7)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Transmission-line synthesis; verify with a full-wave sweep before fabrication.")

	if err := pdf.OutputFileAndClose(reportOutput); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", reportOutput)
	return nil
}

func designRows(d *microstrip.Design) [][2]string {
	mm := func(v float64) string { return fmt.Sprintf("%.3f mm", v) }
	return [][2]string{
		{"Patch width", mm(d.PatchWidthMM)},
		{"Patch length", mm(d.PatchLengthMM)},
		{"Ground plane", fmt.Sprintf("%.3f x %.3f mm", d.GroundPlaneWidthMM, d.GroundPlaneLengthMM)},
		{"Feed line width", mm(d.FeedLineWidthMM)},
		{"Feed line length", mm(d.FeedLineLengthMM())},
		{"Inset depth", mm(d.InsetDepthMM)},
		{"Inset notch width", mm(d.NotchWidthMM())},
		{"Effective permittivity", fmt.Sprintf("%.4f", d.EffEpsilon)},
		{"Edge resistance", fmt.Sprintf("%.1f ohm", d.EdgeResistanceOhms)},
		{"Feed impedance", fmt.Sprintf("%.4g ohm", d.Options.FeedImpedanceOhms)},
	}
}
