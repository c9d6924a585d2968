package main

import (
	"github.com/nimbusworks/wxmodel/internal/sim"
	"github.com/spf13/cobra"
)

var twodCmd = &cobra.Command{
	Use:   "2d",
	Short: "Run the 2-D advection-diffusion model",
	Long: `Run the 2-D advection-diffusion model with a centered Gaussian blob
initial condition and print the sampled solution as JSON. Snapshots are the
row-major flattening of the ny x nx field.

    advect 2d --cx 0.5 --cy 0.25 --diffusion 0.002`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTwoD(cmd)
	},
}

func init() {
	rootCmd.AddCommand(twodCmd)
	twodCmd.Flags().Int("nx", 40, "grid points along x")
	twodCmd.Flags().Int("ny", 30, "grid points along y")
	twodCmd.Flags().Float64("cx", 0.5, "advection speed along x")
	twodCmd.Flags().Float64("cy", 0.0, "advection speed along y")
	twodCmd.Flags().Float64("diffusion", 0.001, "diffusion coefficient")
	twodCmd.Flags().Int("num-steps", 30, "number of time steps")
	twodCmd.Flags().Int("output-interval", 10, "steps between stored snapshots")
	addRunFlags(twodCmd)
}

func runTwoD(cmd *cobra.Command) error {
	c, err := loadCase(cmd)
	if err != nil {
		return err
	}
	params := sim.Params2D{
		NX:             resolveInt(cmd, "nx", c.NX, "2d.nx"),
		NY:             resolveInt(cmd, "ny", c.NY, "2d.ny"),
		CX:             resolveFloat(cmd, "cx", c.CX, "2d.cx"),
		CY:             resolveFloat(cmd, "cy", c.CY, "2d.cy"),
		Diffusion:      resolveFloat(cmd, "diffusion", c.Diffusion, "2d.diffusion"),
		NumSteps:       resolveInt(cmd, "num-steps", c.NumSteps, "2d.num-steps"),
		OutputInterval: resolveInt(cmd, "output-interval", c.OutputInterval, "2d.output-interval"),
	}

	stop := maybeProfile(cmd)
	res, err := sim.SolveAdvection2D(params)
	stop()
	if err != nil {
		return err
	}
	return writeResult(cmd, res)
}
