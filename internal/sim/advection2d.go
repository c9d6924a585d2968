package sim

import (
	"fmt"
	"math"
)

// Params2D configures a 2-D advection-diffusion run.
type Params2D struct {
	NX, NY         int
	CX, CY         float64
	Diffusion      float64
	NumSteps       int
	OutputInterval int
}

// Timestep guards. The floors keep the CFL quotients finite as the speeds
// or the diffusivity approach zero; the cap bounds runs whose formal limits
// are large.
const (
	velocityFloor  = 1e-6
	diffusionFloor = 1e-10
	maxTimestep2D  = 0.002
)

// pass reads the frozen pre-step field src and accumulates one term of the
// update into dst.
type pass func(dst, src []float64)

// xUpwindBackward returns the x-advection pass for non-negative cx: every
// row differences against its left neighbor, column 0 wrapping to the last
// column.
func xUpwindBackward(nx, ny int, coef float64) pass {
	return func(dst, src []float64) {
		for j := 0; j < ny; j++ {
			row := j * nx
			for i := 1; i < nx; i++ {
				dst[row+i] -= coef * (src[row+i] - src[row+i-1])
			}
			dst[row] -= coef * (src[row] - src[row+nx-1])
		}
	}
}

// xUpwindForward is the negative-cx counterpart: rows difference against the
// right neighbor, the last column wrapping to column 0.
func xUpwindForward(nx, ny int, coef float64) pass {
	return func(dst, src []float64) {
		for j := 0; j < ny; j++ {
			row := j * nx
			for i := 0; i < nx-1; i++ {
				dst[row+i] -= coef * (src[row+i+1] - src[row+i])
			}
			dst[row+nx-1] -= coef * (src[row] - src[row+nx-1])
		}
	}
}

func yUpwindBackward(nx, ny int, coef float64) pass {
	return func(dst, src []float64) {
		for j := 1; j < ny; j++ {
			for i := 0; i < nx; i++ {
				dst[j*nx+i] -= coef * (src[j*nx+i] - src[(j-1)*nx+i])
			}
		}
		last := (ny - 1) * nx
		for i := 0; i < nx; i++ {
			dst[i] -= coef * (src[i] - src[last+i])
		}
	}
}

func yUpwindForward(nx, ny int, coef float64) pass {
	return func(dst, src []float64) {
		for j := 0; j < ny-1; j++ {
			for i := 0; i < nx; i++ {
				dst[j*nx+i] -= coef * (src[(j+1)*nx+i] - src[j*nx+i])
			}
		}
		last := (ny - 1) * nx
		for i := 0; i < nx; i++ {
			dst[last+i] -= coef * (src[i] - src[last+i])
		}
	}
}

// laplacian returns the diffusion pass: the 5-point Laplacian scaled by
// D*dt/(dx*dy), added to interior points only. Edge rows and columns are
// left untouched; see the package documentation.
func laplacian(nx, ny int, dd, denom float64) pass {
	return func(dst, src []float64) {
		for j := 1; j < ny-1; j++ {
			for i := 1; i < nx-1; i++ {
				idx := j*nx + i
				lap := src[idx+nx] + src[idx-nx] + src[idx+1] + src[idx-1] - 4*src[idx]
				dst[idx] += dd * (lap / denom)
			}
		}
	}
}

// Advection2D integrates u_t + cx u_x + cy u_y = D (u_xx + u_yy) on the
// periodic unit square. The field is row-major, u[j*nx+i] at (x_i, y_j).
// Each step applies three passes in a fixed order, all reading the pre-step
// field: x-advection, y-advection, diffusion.
type Advection2D struct {
	Grid      *Grid2D
	CX, CY    float64
	Diffusion float64
	DT        float64

	u       []float64
	scratch []float64
	passes  [3]pass
}

// NewAdvection2D builds the grid, evaluates the Gaussian blob
// exp(-80((x-0.3)^2+(y-0.5)^2)) and fixes the timestep and the upwind
// directions for the whole run.
func NewAdvection2D(p Params2D) (*Advection2D, error) {
	g, err := NewGrid2D(p.NX, p.NY)
	if err != nil {
		return nil, err
	}
	dtAdv := math.Min(
		g.DX/math.Max(math.Abs(p.CX), velocityFloor),
		g.DY/math.Max(math.Abs(p.CY), velocityFloor),
	)
	dtDiff := 0.25 * math.Min(g.DX*g.DX, g.DY*g.DY) / math.Max(p.Diffusion, diffusionFloor)
	dt := math.Min(math.Min(dtAdv, dtDiff), maxTimestep2D)

	s := &Advection2D{
		Grid:      g,
		CX:        p.CX,
		CY:        p.CY,
		Diffusion: p.Diffusion,
		DT:        dt,
		u:         make([]float64, g.NX*g.NY),
		scratch:   make([]float64, g.NX*g.NY),
	}
	for j, y := range g.Y {
		dy := y - 0.5
		for i, x := range g.X {
			dx := x - 0.3
			s.u[j*g.NX+i] = math.Exp(-80 * (dx*dx + dy*dy))
		}
	}

	coefX := p.CX * dt / g.DX
	coefY := p.CY * dt / g.DY
	if p.CX >= 0 {
		s.passes[0] = xUpwindBackward(g.NX, g.NY, coefX)
	} else {
		s.passes[0] = xUpwindForward(g.NX, g.NY, coefX)
	}
	if p.CY >= 0 {
		s.passes[1] = yUpwindBackward(g.NX, g.NY, coefY)
	} else {
		s.passes[1] = yUpwindForward(g.NX, g.NY, coefY)
	}
	s.passes[2] = laplacian(g.NX, g.NY, p.Diffusion*dt, g.DX*g.DY)
	return s, nil
}

// Step advances one timestep: copy the field, accumulate the three passes
// against the frozen pre-step state, swap.
func (s *Advection2D) Step() {
	copy(s.scratch, s.u)
	for _, apply := range s.passes {
		apply(s.scratch, s.u)
	}
	s.u, s.scratch = s.scratch, s.u
}

// Field returns the live row-major field. Run records copies.
func (s *Advection2D) Field() []float64 { return s.u }

// Run advances numSteps steps, sampling step 0 and every step divisible by
// outputInterval.
func (s *Advection2D) Run(numSteps, outputInterval int) (*Result2D, error) {
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
	return &Result2D{
		NX:        s.Grid.NX,
		NY:        s.Grid.NY,
		CX:        s.CX,
		CY:        s.CY,
		Diffusion: s.Diffusion,
		NumSteps:  numSteps,
		Series:    series,
	}, nil
}

// SolveAdvection2D runs a complete 2-D advection-diffusion simulation.
func SolveAdvection2D(p Params2D) (*Result2D, error) {
	s, err := NewAdvection2D(p)
	if err != nil {
		return nil, err
	}
	return s.Run(p.NumSteps, p.OutputInterval)
}
