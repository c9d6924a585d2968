package sim

// Snapshot is one sampled state of the field. For 2-D runs U is the
// row-major flattening of the ny x nx field.
type Snapshot struct {
	Step int       `json:"step"`
	U    []float64 `json:"u"`
}

// Result1D is the complete output of a 1-D advection run. JSON names match
// the API payload consumed by the frontend plots.
type Result1D struct {
	X        []float64  `json:"x"`
	C        float64    `json:"c"`
	DT       float64    `json:"dt"`
	DX       float64    `json:"dx"`
	NumSteps int        `json:"num_steps"`
	Series   []Snapshot `json:"series"`
}

// Result2D is the complete output of a 2-D advection-diffusion run.
type Result2D struct {
	NX        int        `json:"nx"`
	NY        int        `json:"ny"`
	CX        float64    `json:"cx"`
	CY        float64    `json:"cy"`
	Diffusion float64    `json:"diffusion"`
	NumSteps  int        `json:"num_steps"`
	Series    []Snapshot `json:"series"`
}

func snapshotOf(u []float64) []float64 {
	out := make([]float64, len(u))
	copy(out, u)
	return out
}
