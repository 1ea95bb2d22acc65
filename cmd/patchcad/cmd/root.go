package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "patchcad",
	Short: "patchcad - Microstrip patch antenna PCB generator",
	Long: `patchcad designs microstrip-fed rectangular patch antennas and drives
the KiCad and openEMS toolchains around them:

  patchcad calc --er 4.6 --height 1.6 --freq 2.45e9   # print dimensions
  patchcad board --output antenna.kicad_pcb           # write the layout
  patchcad fab antenna.kicad_pcb --output fab/        # gerbers and drill
  patchcad sim --workdir sim/                         # full-wave S11 sweep
  patchcad report --output antenna.pdf                # design summary PDF
  patchcad preview                                    # interactive viewer`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Optional .env for KICAD_CLI and OPENEMS paths; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
