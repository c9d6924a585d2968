package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/nimbusworks/wxmodel/internal/glossary"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "weather-modeling-api",
		"version": "0.1.0",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleGlossary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":     glossary.Entries(),
		"by_category": glossary.ByCategory(),
	})
}

func (s *Server) handleGlossaryTerm(w http.ResponseWriter, r *http.Request) {
	term := r.PathValue("term")
	entry, ok := glossary.Lookup(term)
	if !ok {
		writeError(w, http.StatusNotFound, "Term not found: "+term)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// proxy writes an upstream payload through unchanged, or reports the
// upstream failure as a 502.
func (s *Server) proxy(w http.ResponseWriter, data json.RawMessage, err error) {
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// coordinates parses and validates the lat/lon query parameters.
func coordinates(r *http.Request) (lat, lon float64, err error) {
	lat, err = queryFloat(r, "lat")
	if err != nil {
		return 0, 0, err
	}
	lon, err = queryFloat(r, "lon")
	if err != nil {
		return 0, 0, err
	}
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("lat must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("lon must be between -180 and 180")
	}
	return lat, lon, nil
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required query parameter %q", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := coordinates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := s.upstream.Points(r.Context(), lat, lon)
	s.proxy(w, data, err)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	forecastURL := r.URL.Query().Get("url")
	if forecastURL == "" {
		writeError(w, http.StatusBadRequest, `missing required query parameter "url"`)
		return
	}
	data, err := s.upstream.Forecast(r.Context(), forecastURL)
	s.proxy(w, data, err)
}

func (s *Server) handleForecastHourly(w http.ResponseWriter, r *http.Request) {
	forecastURL := r.URL.Query().Get("url")
	if forecastURL == "" {
		writeError(w, http.StatusBadRequest, `missing required query parameter "url"`)
		return
	}
	data, err := s.upstream.ForecastHourly(r.Context(), forecastURL)
	s.proxy(w, data, err)
}

func (s *Server) handleStationsObservations(w http.ResponseWriter, r *http.Request) {
	stationsURL := r.URL.Query().Get("url")
	if stationsURL == "" {
		writeError(w, http.StatusBadRequest, `missing required query parameter "url"`)
		return
	}
	data, err := s.upstream.StationsObservations(r.Context(), stationsURL)
	s.proxy(w, data, err)
}

func (s *Server) handleObservationLatest(w http.ResponseWriter, r *http.Request) {
	data, err := s.upstream.ObservationLatest(r.Context(), r.PathValue("stationID"))
	s.proxy(w, data, err)
}

func (s *Server) handleGridpoint(w http.ResponseWriter, r *http.Request) {
	gridX, err := strconv.Atoi(r.PathValue("gridX"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid grid_x: %q", r.PathValue("gridX")))
		return
	}
	gridY, err := strconv.Atoi(r.PathValue("gridY"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid grid_y: %q", r.PathValue("gridY")))
		return
	}
	data, err := s.upstream.Gridpoint(r.Context(), r.PathValue("gridID"), gridX, gridY)
	s.proxy(w, data, err)
}

func (s *Server) handleAlertsActive(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if area := q.Get("area"); area != "" {
		data, err := s.upstream.AlertsActiveByArea(r.Context(), area)
		s.proxy(w, data, err)
		return
	}
	data, err := s.upstream.AlertsActive(r.Context(), q.Get("zone"))
	s.proxy(w, data, err)
}

// handleSounding serves the nearest-station observed profile when a full
// coordinate pair is given, and the demo profile otherwise.
func (s *Server) handleSounding(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("lat") == "" || q.Get("lon") == "" {
		writeJSON(w, http.StatusOK, s.soundings.Demo())
		return
	}
	lat, lon, err := coordinates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.soundings.Get(r.Context(), lat, lon, q.Get("source")))
}
