package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// Case is a saved run configuration. Fields are pointers so a case file can
// set just the parameters it cares about; the rest keep their defaults.
type Case struct {
	Title          string   `json:"title,omitempty"`
	NX             *int     `json:"nx,omitempty"`
	NY             *int     `json:"ny,omitempty"`
	C              *float64 `json:"c,omitempty"`
	CX             *float64 `json:"cx,omitempty"`
	CY             *float64 `json:"cy,omitempty"`
	Diffusion      *float64 `json:"diffusion,omitempty"`
	NumSteps       *int     `json:"num_steps,omitempty"`
	OutputInterval *int     `json:"output_interval,omitempty"`
}

// Parse fills the case from YAML.
func (c *Case) Parse(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// loadCase reads the case file named by the --case flag. An empty path
// yields an empty case so callers can resolve parameters uniformly.
func loadCase(cmd *cobra.Command) (*Case, error) {
	path, _ := cmd.Flags().GetString("case")
	if path == "" {
		return &Case{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Case{}
	if err := c.Parse(data); err != nil {
		return nil, fmt.Errorf("parse case file %s: %w", path, err)
	}
	return c, nil
}

// maybeProfile starts a CPU profile when --cpuprofile names a directory.
// The returned func stops it; without the flag it is a no-op.
func maybeProfile(cmd *cobra.Command) func() {
	dir, _ := cmd.Flags().GetString("cpuprofile")
	if dir == "" {
		return func() {}
	}
	p := profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet)
	return p.Stop
}

// writeResult marshals the solver output and writes it to the --out file,
// or to stdout when the flag is unset or "-".
func writeResult(cmd *cobra.Command, v any) error {
	out, _ := cmd.Flags().GetString("out")
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if out == "" || out == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
