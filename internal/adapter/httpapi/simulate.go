package httpapi

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nimbusworks/wxmodel/internal/sim"
)

const (
	min1DPoints, max1DPoints = 10, 500
	min1DSteps, max1DSteps   = 1, 500
	min2DAxis, max2DAxis     = 5, 80
	min2DSteps, max2DSteps   = 1, 200
)

// queryReader parses solver parameters from a query string, remembering the
// first error it hits so handlers can validate a whole parameter set and
// check once.
type queryReader struct {
	values url.Values
	err    error
}

func newQueryReader(r *http.Request) *queryReader {
	return &queryReader{values: r.URL.Query()}
}

func (q *queryReader) intParam(name string, def, min, max int) int {
	if q.err != nil {
		return def
	}
	raw := q.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.err = fmt.Errorf("invalid %s: %q", name, raw)
		return def
	}
	if v < min || v > max {
		q.err = fmt.Errorf("%s must be between %d and %d", name, min, max)
		return def
	}
	return v
}

func (q *queryReader) intAtLeast(name string, def, min int) int {
	if q.err != nil {
		return def
	}
	raw := q.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.err = fmt.Errorf("invalid %s: %q", name, raw)
		return def
	}
	if v < min {
		q.err = fmt.Errorf("%s must be at least %d", name, min)
		return def
	}
	return v
}

func (q *queryReader) floatParam(name string, def float64) float64 {
	if q.err != nil {
		return def
	}
	raw := q.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		q.err = fmt.Errorf("invalid %s: %q", name, raw)
		return def
	}
	return v
}

func (q *queryReader) nonNegativeFloat(name string, def float64) float64 {
	v := q.floatParam(name, def)
	if q.err == nil && v < 0 {
		q.err = fmt.Errorf("%s must be non-negative", name)
		return def
	}
	return v
}

func (s *Server) handleAdvection1D(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r)
	params := sim.Params1D{
		NX:             q.intParam("nx", 100, min1DPoints, max1DPoints),
		C:              q.floatParam("c", 1.0),
		NumSteps:       q.intParam("num_steps", 50, min1DSteps, max1DSteps),
		OutputInterval: q.intAtLeast("output_interval", 10, 1),
	}
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	start := time.Now()
	res, err := sim.SolveAdvection1D(params)
	s.finishSimulation(w, "advection1d", start, res, err)
}

func (s *Server) handleAdvection2D(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r)
	params := sim.Params2D{
		NX:             q.intParam("nx", 40, min2DAxis, max2DAxis),
		NY:             q.intParam("ny", 30, min2DAxis, max2DAxis),
		CX:             q.floatParam("cx", 0.5),
		CY:             q.floatParam("cy", 0.0),
		Diffusion:      q.nonNegativeFloat("diffusion", 0.001),
		NumSteps:       q.intParam("num_steps", 30, min2DSteps, max2DSteps),
		OutputInterval: q.intAtLeast("output_interval", 10, 1),
	}
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	start := time.Now()
	res, err := sim.SolveAdvection2D(params)
	s.finishSimulation(w, "advection2d", start, res, err)
}

// finishSimulation records run metrics and writes either the solver result
// or the mapped error. Numerical blowups are reported as 422 to separate
// them from parameter mistakes.
func (s *Server) finishSimulation(w http.ResponseWriter, model string, start time.Time, result any, err error) {
	s.metrics.SimulationDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.SimulationRuns.WithLabelValues(model, "error").Inc()
		status := http.StatusBadRequest
		if errors.Is(err, sim.ErrNonFinite) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}
	s.metrics.SimulationRuns.WithLabelValues(model, "success").Inc()
	writeJSON(w, http.StatusOK, result)
}
