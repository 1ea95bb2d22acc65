package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rflabs/patchcad/pkg/fab"
)

var (
	fabOutput  string
	fabStackup string
)

var fabCmd = &cobra.Command{
	Use:   "fab <board_file>",
	Short: "Export fabrication outputs with kicad-cli",
	Long: `Runs kicad-cli on a generated board file to produce gerbers for
every stackup layer, the excellon drill file, and the position file.

The kicad-cli binary is found on PATH, or through the KICAD_CLI
environment variable. A custom stackup can be supplied as a JSON
descriptor; without one the standard two-layer antenna stackup is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runFab,
}

func init() {
	rootCmd.AddCommand(fabCmd)
	fabCmd.Flags().StringVarP(&fabOutput, "output", "o", "fab", "output directory")
	fabCmd.Flags().StringVar(&fabStackup, "stackup", "", "stackup descriptor JSON file")
}

func runFab(cmd *cobra.Command, args []string) error {
	boardPath := args[0]

	stackup := fab.DefaultStackup()
	if fabStackup != "" {
		var err error
		stackup, err = fab.LoadStackup(fabStackup)
		if err != nil {
			return err
		}
	}

	exporter := fab.NewExporter(fabOutput)
	if err := exporter.ExportAll(cmd.Context(), boardPath, stackup); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "fabrication outputs written to %s\n", fabOutput)
	return nil
}
