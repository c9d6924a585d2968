package sounding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatVaporPressure(t *testing.T) {
	assert.Equal(t, 6.112, satVaporPressure(0))
	assert.InDelta(t, 42.4, satVaporPressure(30), 0.5)
	assert.InDelta(t, 1.91, satVaporPressure(-15), 0.05)
}

func TestDewpointFromRH(t *testing.T) {
	// Saturated air has dewpoint equal to temperature.
	assert.InDelta(t, 25.0, DewpointFromRH(25, 1.0), 1e-9)
	assert.InDelta(t, 13.87, DewpointFromRH(25, 0.5), 0.05)
	assert.Less(t, DewpointFromRH(10, 0.3), 10.0)
}

func TestLCL(t *testing.T) {
	pLCL, tLCL := lcl(1000, 25+celsiusZero, 20+celsiusZero)
	assert.InDelta(t, 291.96, tLCL, 0.1)
	assert.InDelta(t, 929, pLCL, 3)

	// A saturated parcel is already at its LCL.
	pSat, tSat := lcl(950, 20+celsiusZero, 20+celsiusZero)
	assert.InDelta(t, 950, pSat, 1e-9)
	assert.InDelta(t, 20+celsiusZero, tSat, 1e-9)
}

func TestParcelProfile(t *testing.T) {
	p := []float64{1000, 950, 900, 850, 700, 500}
	parcel := ParcelProfile(p, 25, 20)
	require.Len(t, parcel, len(p))

	// Surface value is the unlifted parcel temperature.
	assert.InDelta(t, 25.0, parcel[0], 1e-12)

	// 950 hPa is below the ~929 hPa LCL, so the ascent there is dry.
	assert.InDelta(t, 20.67, parcel[1], 0.01)

	for i := 1; i < len(parcel); i++ {
		assert.Less(t, parcel[i], parcel[i-1])
	}

	// Above the LCL latent heating keeps the parcel warmer than a dry
	// ascent would be.
	dryAt700 := (25+celsiusZero)*math.Pow(700.0/1000.0, kappa) - celsiusZero
	assert.Greater(t, parcel[4], dryAt700+3)
}

func TestConvectiveEnergy_StableColumn(t *testing.T) {
	p := []float64{1000, 850, 700, 500}
	temp := []float64{15, 14, 10, 2}
	td := []float64{5, 2, -5, -20}

	cape, cin := ConvectiveEnergy(p, temp, td)
	assert.Zero(t, cape)
	assert.Zero(t, cin)
}

func TestConvectiveEnergy_UnstableColumn(t *testing.T) {
	n := len(demoPressure)
	td := make([]float64, n)
	for i := 0; i < n; i++ {
		td[i] = DewpointFromRH(demoTemp[i], demoRH[i])
	}

	cape, cin := ConvectiveEnergy(demoPressure, demoTemp, td)
	assert.Greater(t, cape, 500.0)
	assert.Less(t, cape, 8000.0)
	assert.LessOrEqual(t, cin, 0.0)
	assert.Greater(t, cin, -500.0)
}

func TestConvectiveEnergy_TooShort(t *testing.T) {
	cape, cin := ConvectiveEnergy([]float64{1000}, []float64{20}, []float64{15})
	assert.Zero(t, cape)
	assert.Zero(t, cin)
}
