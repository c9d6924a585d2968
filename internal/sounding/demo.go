package sounding

// Demo profile: a moderately unstable warm-season column on 50 hPa levels.
var (
	demoPressure = []float64{1000, 950, 900, 850, 800, 750, 700, 650, 600, 550, 500, 450, 400, 350, 300, 250, 200}
	demoTemp     = []float64{24, 22, 19, 15, 11, 7, 3, -2, -7, -13, -20, -28, -37, -47, -55, -58, -52}
	demoRH       = []float64{0.75, 0.70, 0.65, 0.60, 0.55, 0.50, 0.45, 0.40, 0.35, 0.30, 0.25, 0.20, 0.15, 0.12, 0.10, 0.08, 0.05}
)

// DemoSounding builds the fallback sounding served when no observed or
// model data is available.
func DemoSounding() Sounding {
	n := len(demoPressure)
	profile := make([]Level, n)
	td := make([]float64, n)
	for i := 0; i < n; i++ {
		td[i] = DewpointFromRH(demoTemp[i], demoRH[i])
		profile[i] = Level{Pressure: demoPressure[i], Temperature: demoTemp[i], Dewpoint: td[i]}
	}
	cape, cin := ConvectiveEnergy(demoPressure, demoTemp, td)
	return Sounding{
		Source:  "demo",
		CAPE:    round1(cape),
		CIN:     round1(cin),
		Profile: profile,
	}
}
