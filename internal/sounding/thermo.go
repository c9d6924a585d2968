package sounding

import "math"

// Thermodynamic constants, Bolton (1980) values.
const (
	celsiusZero = 273.15
	rd          = 287.04749 // dry air gas constant, J/(kg K)
	cpd         = 1005.7    // dry air specific heat at constant pressure, J/(kg K)
	kappa       = rd / cpd
	epsilon     = 0.6220  // Rd/Rv
	lv          = 2.501e6 // latent heat of vaporization, J/kg
)

// satVaporPressure returns saturation vapor pressure in hPa for a
// temperature in degrees C, using Bolton's fit.
func satVaporPressure(tempC float64) float64 {
	return 6.112 * math.Exp(17.67*tempC/(tempC+243.5))
}

// DewpointFromRH inverts Bolton's fit: dewpoint in degrees C for a
// temperature in degrees C and relative humidity in [0, 1].
func DewpointFromRH(tempC, rh float64) float64 {
	ln := math.Log(rh * satVaporPressure(tempC) / 6.112)
	return 243.5 * ln / (17.67 - ln)
}

// saturationMixingRatio returns kg of water vapor per kg of dry air at
// pressure p in hPa and temperature in K.
func saturationMixingRatio(p, tempK float64) float64 {
	es := satVaporPressure(tempK - celsiusZero)
	return epsilon * es / (p - es)
}

// moistLapse is dT/dp in K per hPa along a pseudoadiabat.
func moistLapse(p, tempK float64) float64 {
	rs := saturationMixingRatio(p, tempK)
	num := rd*tempK + lv*rs
	den := cpd + lv*lv*rs*epsilon/(rd*tempK*tempK)
	return num / den / p
}

// lcl returns the lifting condensation level as (pressure hPa, temperature
// K) for a parcel at p0 hPa, using Bolton's closed form for the temperature
// and a dry-adiabatic descent for the pressure.
func lcl(p0, t0K, td0K float64) (float64, float64) {
	tLCL := 56.0 + 1.0/(1.0/(td0K-56.0)+math.Log(t0K/td0K)/800.0)
	pLCL := p0 * math.Pow(tLCL/t0K, 1.0/kappa)
	return pLCL, tLCL
}

// ParcelProfile lifts the surface parcel through every profile pressure,
// dry adiabatically to the LCL and pseudoadiabatically above it. p must run
// from the surface upward (decreasing pressure). Temperatures are degrees C
// in and out.
func ParcelProfile(p []float64, t0C, td0C float64) []float64 {
	t0 := t0C + celsiusZero
	td0 := td0C + celsiusZero
	pLCL, tLCL := lcl(p[0], t0, td0)

	parcel := make([]float64, len(p))
	pCur, tCur := pLCL, tLCL
	for i, pi := range p {
		if pi >= pLCL {
			parcel[i] = t0*math.Pow(pi/p[0], kappa) - celsiusZero
			continue
		}
		tCur = pseudoadiabat(pCur, tCur, pi)
		pCur = pi
		parcel[i] = tCur - celsiusZero
	}
	return parcel
}

// pseudoadiabat integrates the moist lapse rate from (pFrom, tFromK) up to
// pTo with midpoint steps of at most 1 hPa.
func pseudoadiabat(pFrom, tFromK, pTo float64) float64 {
	const maxStep = 1.0
	p, t := pFrom, tFromK
	for p > pTo {
		dp := math.Min(maxStep, p-pTo)
		k1 := moistLapse(p, t)
		k2 := moistLapse(p-dp/2, t-k1*dp/2)
		t -= k2 * dp
		p -= dp
	}
	return t
}

// ConvectiveEnergy returns (CAPE, CIN) in J/kg for an environmental profile,
// lifting the surface parcel. Slices are parallel, surface first, pressures
// in hPa and temperatures in degrees C.
func ConvectiveEnergy(p, t, td []float64) (float64, float64) {
	if len(p) < 2 {
		return 0, 0
	}
	parcel := ParcelProfile(p, t[0], td[0])
	pLCL, _ := lcl(p[0], t[0]+celsiusZero, td[0]+celsiusZero)
	return capeCIN(p, t, parcel, pLCL)
}

// capeCIN integrates parcel buoyancy rd*(Tp-Te) over ln p. CAPE is the net
// integral from the level of free convection to the equilibrium level, CIN
// the net integral from the surface to the LFC, clamped to zero when the
// column has no inhibition. Sign changes are interpolated in ln p so area
// does not bleed across a crossing.
func capeCIN(p, tEnv, tParcel []float64, pLCL float64) (float64, float64) {
	xs := make([]float64, 0, 2*len(p))
	ys := make([]float64, 0, 2*len(p))
	for i := range p {
		x := math.Log(p[i])
		y := tParcel[i] - tEnv[i]
		if n := len(ys); n > 0 {
			prevX, prevY := xs[n-1], ys[n-1]
			if (prevY < 0 && y > 0) || (prevY > 0 && y < 0) {
				frac := prevY / (prevY - y)
				xs = append(xs, prevX+frac*(x-prevX))
				ys = append(ys, 0)
			}
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	lnLCL := math.Log(pLCL)

	// The LFC is the first point at or above the LCL where the parcel is
	// warmer than the environment. No such point means no free convection.
	lfc := -1
	for i, y := range ys {
		if y > 0 && xs[i] <= lnLCL {
			lfc = i
			break
		}
	}
	if lfc < 0 {
		return 0, 0
	}
	if lfc > 0 && ys[lfc-1] == 0 && xs[lfc-1] <= lnLCL {
		lfc--
	}

	// The EL is the last crossing back to negative buoyancy above the LFC.
	// A parcel still buoyant at the profile top integrates to the top.
	el := len(ys) - 1
	for i := len(ys) - 2; i > lfc; i-- {
		if ys[i] == 0 && ys[i+1] < 0 {
			el = i
			break
		}
	}

	var cape, cin float64
	for i := lfc; i < el; i++ {
		cape += 0.5 * (ys[i] + ys[i+1]) * (xs[i] - xs[i+1])
	}
	cape *= rd

	for i := 0; i < lfc; i++ {
		cin += 0.5 * (ys[i] + ys[i+1]) * (xs[i] - xs[i+1])
	}
	cin *= rd
	if cin > 0 {
		cin = 0
	}
	return cape, cin
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
