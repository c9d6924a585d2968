package sim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid1D is a uniform mesh of N points spanning [0, 1] inclusive of both
// endpoints, with periodic topology.
type Grid1D struct {
	N  int
	DX float64
	X  []float64
}

// NewGrid1D builds the mesh. floats.Span pins both endpoints exactly, so
// X[0] == 0 and X[N-1] == 1 regardless of rounding in the interior.
func NewGrid1D(n int) (*Grid1D, error) {
	if n < 2 {
		return nil, fmt.Errorf("nx=%d: %w", n, ErrGridTooSmall)
	}
	return &Grid1D{
		N:  n,
		DX: 1.0 / float64(n-1),
		X:  floats.Span(make([]float64, n), 0, 1),
	}, nil
}

// Grid2D is the uniform unit-square mesh, NX points along x and NY along y.
type Grid2D struct {
	NX, NY int
	DX, DY float64
	X, Y   []float64
}

func NewGrid2D(nx, ny int) (*Grid2D, error) {
	if nx < 2 {
		return nil, fmt.Errorf("nx=%d: %w", nx, ErrGridTooSmall)
	}
	if ny < 2 {
		return nil, fmt.Errorf("ny=%d: %w", ny, ErrGridTooSmall)
	}
	return &Grid2D{
		NX: nx,
		NY: ny,
		DX: 1.0 / float64(nx-1),
		DY: 1.0 / float64(ny-1),
		X:  floats.Span(make([]float64, nx), 0, 1),
		Y:  floats.Span(make([]float64, ny), 0, 1),
	}, nil
}
