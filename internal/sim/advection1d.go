package sim

import (
	"fmt"
	"math"
)

// Params1D configures a 1-D pure-advection run.
type Params1D struct {
	NX             int
	C              float64
	NumSteps       int
	OutputInterval int
}

// stencil applies one upwind update, reading src and overwriting dst.
// coef is c*dt/dx.
type stencil func(dst, src []float64, coef float64)

// upwindBackward differences against the lower-index neighbor, wrapping
// index 0 to the far end. Used when the speed is non-negative.
func upwindBackward(dst, src []float64, coef float64) {
	n := len(src)
	for i := 1; i < n; i++ {
		dst[i] = src[i] - coef*(src[i]-src[i-1])
	}
	dst[0] = src[0] - coef*(src[0]-src[n-1])
}

// upwindForward differences against the higher-index neighbor, wrapping the
// last index to the origin. Used when the speed is negative.
func upwindForward(dst, src []float64, coef float64) {
	n := len(src)
	for i := 0; i < n-1; i++ {
		dst[i] = src[i] - coef*(src[i+1]-src[i])
	}
	dst[n-1] = src[n-1] - coef*(src[0]-src[n-1])
}

// Advection1D integrates u_t + c u_x = 0 on the periodic unit interval with
// the first-order upwind scheme. The timestep locks the Courant number at
// exactly 1, so the Gaussian profile translates one cell per step without
// amplitude loss.
type Advection1D struct {
	Grid *Grid1D
	C    float64
	DT   float64

	u       []float64
	scratch []float64
	apply   stencil
	coef    float64
}

// NewAdvection1D builds the grid, evaluates the initial profile
// exp(-40(x-0.25)^2) and fixes the timestep and upwind direction for the
// whole run.
func NewAdvection1D(p Params1D) (*Advection1D, error) {
	g, err := NewGrid1D(p.NX)
	if err != nil {
		return nil, err
	}
	dt := g.DX
	if p.C != 0 {
		dt = g.DX / math.Abs(p.C)
	}
	s := &Advection1D{
		Grid:    g,
		C:       p.C,
		DT:      dt,
		u:       make([]float64, g.N),
		scratch: make([]float64, g.N),
		coef:    p.C * dt / g.DX,
		apply:   upwindBackward,
	}
	if p.C < 0 {
		s.apply = upwindForward
	}
	for i, x := range g.X {
		d := x - 0.25
		s.u[i] = math.Exp(-40 * (d * d))
	}
	return s, nil
}

// Step advances the field by one timestep.
func (s *Advection1D) Step() {
	s.apply(s.scratch, s.u, s.coef)
	s.u, s.scratch = s.scratch, s.u
}

// Field returns the live field. Run records copies, never this slice.
func (s *Advection1D) Field() []float64 { return s.u }

// Run advances numSteps steps, sampling step 0 and every step divisible by
// outputInterval. The final step is not sampled unless it lands on the
// interval.
func (s *Advection1D) Run(numSteps, outputInterval int) (*Result1D, error) {
	if numSteps < 0 {
		return nil, fmt.Errorf("num_steps=%d: %w", numSteps, ErrNumSteps)
	}
	if outputInterval < 1 {
		return nil, fmt.Errorf("output_interval=%d: %w", outputInterval, ErrOutputInterval)
	}
	series := make([]Snapshot, 0, numSteps/outputInterval+1)
	series = append(series, Snapshot{Step: 0, U: snapshotOf(s.u)})
	for n := 1; n <= numSteps; n++ {
		s.Step()
		if !finite(s.u) {
			return nil, fmt.Errorf("step %d: %w", n, ErrNonFinite)
		}
		if n%outputInterval == 0 {
			series = append(series, Snapshot{Step: n, U: snapshotOf(s.u)})
		}
	}
	return &Result1D{
		X:        s.Grid.X,
		C:        s.C,
		DT:       s.DT,
		DX:       s.Grid.DX,
		NumSteps: numSteps,
		Series:   series,
	}, nil
}

// SolveAdvection1D runs a complete 1-D advection simulation.
func SolveAdvection1D(p Params1D) (*Result1D, error) {
	s, err := NewAdvection1D(p)
	if err != nil {
		return nil, err
	}
	return s.Run(p.NumSteps, p.OutputInterval)
}

func finite(u []float64) bool {
	for _, v := range u {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
