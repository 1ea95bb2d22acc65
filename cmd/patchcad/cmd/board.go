package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rflabs/patchcad/pkg/board"
)

var (
	boardFlags  designFlags
	boardOutput string
	boardTitle  string
	boardCX     float64
	boardCY     float64
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Generate the antenna board as a .kicad_pcb file",
	Long: `Synthesizes the antenna and writes a complete KiCad board file:
board outline, back-copper ground plane, the inset-fed patch on front
copper, the feed trace, and solder mask openings over the radiator.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardFlags.register(boardCmd)
	boardCmd.Flags().StringVarP(&boardOutput, "output", "o", "antenna.kicad_pcb", "output board file")
	boardCmd.Flags().StringVar(&boardTitle, "title", "", "board title (silkscreen and metadata)")
	boardCmd.Flags().Float64Var(&boardCX, "center-x", 100, "patch center X on the sheet in mm")
	boardCmd.Flags().Float64Var(&boardCY, "center-y", 100, "patch center Y on the sheet in mm")
}

func runBoard(cmd *cobra.Command, args []string) error {
	d, err := boardFlags.design()
	if err != nil {
		return err
	}

	opts := board.DefaultBuildOptions()
	opts.CenterX = boardCX
	opts.CenterY = boardCY
	if boardTitle != "" {
		opts.Title = boardTitle
	}

	b, err := board.Build(d, opts)
	if err != nil {
		return err
	}
	if err := board.WriteFile(b, boardOutput); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"file":   boardOutput,
		"ground": fmt.Sprintf("%.2fx%.2f mm", d.GroundPlaneWidthMM, d.GroundPlaneLengthMM),
		"patch":  fmt.Sprintf("%.2fx%.2f mm", d.PatchWidthMM, d.PatchLengthMM),
	}).Info("board written")

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%.2f x %.2f mm board)\n",
		boardOutput, d.GroundPlaneWidthMM, d.GroundPlaneLengthMM)
	return nil
}
