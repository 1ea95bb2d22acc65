package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rflabs/patchcad/pkg/microstrip"
)

// designFlags holds the antenna parameters shared by every subcommand that
// synthesizes a design.
type designFlags struct {
	epsilonR    float64
	heightMM    float64
	copperMM    float64
	frequencyHz float64
	feedOhms    float64
	margin      float64
	gapMM       float64
}

// register adds the design flags to a command. Defaults are the FR4 2.45 GHz
// reference design.
func (f *designFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.epsilonR, "er", 4.6, "substrate relative permittivity")
	cmd.Flags().Float64Var(&f.heightMM, "height", 1.6, "substrate height in mm")
	cmd.Flags().Float64Var(&f.copperMM, "copper", 0.035, "copper thickness in mm")
	cmd.Flags().Float64Var(&f.frequencyHz, "freq", 2.45e9, "design frequency in Hz")
	cmd.Flags().Float64Var(&f.feedOhms, "z0", 50.0, "feed line impedance in ohm")
	cmd.Flags().Float64Var(&f.margin, "margin", 6.0, "ground margin in substrate heights per side")
	cmd.Flags().Float64Var(&f.gapMM, "gap", 1.0, "inset clearance gap in mm")
}

// design synthesizes the antenna from the flag values.
func (f *designFlags) design() (*microstrip.Design, error) {
	sub, err := microstrip.NewSubstrate(f.epsilonR, f.heightMM, f.copperMM)
	if err != nil {
		return nil, err
	}
	return microstrip.NewDesignWithOptions(sub, f.frequencyHz, microstrip.Options{
		FeedImpedanceOhms:  f.feedOhms,
		GroundMarginFactor: f.margin,
		InsetGapMM:         f.gapMM,
	})
}
