package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid1D(t *testing.T) {
	g, err := NewGrid1D(10)
	require.NoError(t, err)

	assert.Equal(t, 10, g.N)
	assert.Equal(t, 1.0/9.0, g.DX)
	require.Len(t, g.X, 10)
	assert.Equal(t, 0.0, g.X[0])
	assert.Equal(t, 1.0, g.X[9], "upper endpoint must be pinned exactly")
	for i := 1; i < len(g.X); i++ {
		assert.InDelta(t, g.DX, g.X[i]-g.X[i-1], 1e-15, "spacing at %d", i)
	}
}

func TestNewGrid1D_TooSmall(t *testing.T) {
	for _, n := range []int{-3, 0, 1} {
		_, err := NewGrid1D(n)
		assert.ErrorIs(t, err, ErrGridTooSmall, "n=%d", n)
	}

	g, err := NewGrid1D(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, g.X)
	assert.Equal(t, 1.0, g.DX)
}

func TestNewGrid2D(t *testing.T) {
	g, err := NewGrid2D(5, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, g.NX)
	assert.Equal(t, 3, g.NY)
	assert.Equal(t, 0.25, g.DX)
	assert.Equal(t, 0.5, g.DY)
	assert.Len(t, g.X, 5)
	assert.Len(t, g.Y, 3)
	assert.Equal(t, 1.0, g.X[4])
	assert.Equal(t, 1.0, g.Y[2])
}

func TestNewGrid2D_TooSmall(t *testing.T) {
	_, err := NewGrid2D(1, 10)
	assert.ErrorIs(t, err, ErrGridTooSmall)

	_, err = NewGrid2D(10, 1)
	assert.ErrorIs(t, err, ErrGridTooSmall)

	_, err = NewGrid2D(2, 2)
	assert.NoError(t, err)
}
