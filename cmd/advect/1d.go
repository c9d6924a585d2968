package main

import (
	"github.com/nimbusworks/wxmodel/internal/sim"
	"github.com/spf13/cobra"
)

var onedCmd = &cobra.Command{
	Use:   "1d",
	Short: "Run the 1-D upwind advection model",
	Long: `Run the 1-D linear advection model with a periodic Gaussian pulse
initial condition and print the sampled solution as JSON.

    advect 1d --nx 200 --c -0.5 --num-steps 100`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runOneD(cmd)
	},
}

func init() {
	rootCmd.AddCommand(onedCmd)
	onedCmd.Flags().Int("nx", 100, "number of grid points")
	onedCmd.Flags().Float64("c", 1.0, "advection speed, sign sets the upwind direction")
	onedCmd.Flags().Int("num-steps", 50, "number of time steps")
	onedCmd.Flags().Int("output-interval", 10, "steps between stored snapshots")
	addRunFlags(onedCmd)
}

func runOneD(cmd *cobra.Command) error {
	c, err := loadCase(cmd)
	if err != nil {
		return err
	}
	params := sim.Params1D{
		NX:             resolveInt(cmd, "nx", c.NX, "1d.nx"),
		C:              resolveFloat(cmd, "c", c.C, "1d.c"),
		NumSteps:       resolveInt(cmd, "num-steps", c.NumSteps, "1d.num-steps"),
		OutputInterval: resolveInt(cmd, "output-interval", c.OutputInterval, "1d.output-interval"),
	}

	stop := maybeProfile(cmd)
	res, err := sim.SolveAdvection1D(params)
	stop()
	if err != nil {
		return err
	}
	return writeResult(cmd, res)
}
