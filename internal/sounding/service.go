package sounding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nimbusworks/wxmodel/internal/adapter/wyoming"
	"github.com/nimbusworks/wxmodel/internal/cache"
	"github.com/nimbusworks/wxmodel/internal/observability"
)

// A usable launch needs at least this many levels with both temperature and
// dewpoint present.
const minLevels = 5

// Observations fetches parsed sounding levels for a WMO station at a
// synoptic hour.
type Observations interface {
	Sounding(ctx context.Context, stationID int, fromTime string) ([]wyoming.Level, error)
}

// Service resolves sounding requests to an observed profile when one is
// available and to the demo profile otherwise.
type Service struct {
	obs     Observations
	cache   *cache.TTLCache[Sounding]
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a sounding service backed by obs for observed data.
func NewService(obs Observations, soundingCache *cache.TTLCache[Sounding], logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		obs:     obs,
		cache:   soundingCache,
		logger:  logger,
		metrics: metrics,
	}
}

// Get returns the sounding for a coordinate. Source "wyoming" (or anything
// unrecognized) resolves the nearest upper-air station's latest observed
// launch; "rap" and "hrrr" have no model feed here and serve the demo
// profile, as does any coordinate without a usable observation.
func (s *Service) Get(ctx context.Context, lat, lon float64, source string) Sounding {
	switch strings.ToLower(source) {
	case "rap", "hrrr":
		return s.Demo()
	}
	snd, err := s.observed(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("observed sounding unavailable, serving demo", "lat", lat, "lon", lon, "error", err)
		return s.Demo()
	}
	return snd
}

// Demo returns the built-in fallback sounding.
func (s *Service) Demo() Sounding {
	return DemoSounding()
}

// observed tries the nearest station's 12Z launch, then 00Z. Each result is
// cached per station and hour so the archive is hit at most twice per TTL.
func (s *Service) observed(ctx context.Context, lat, lon float64) (Sounding, error) {
	st := NearestStation(lat, lon)
	var lastErr error
	for _, fromTime := range []string{"1200", "0000"} {
		key := fmt.Sprintf("wyoming_sounding:%d:%s", st.ID, fromTime)
		if cached, ok := s.cache.Get(key); ok {
			s.metrics.CacheLookups.WithLabelValues("sounding", "hit").Inc()
			return cached, nil
		}
		s.metrics.CacheLookups.WithLabelValues("sounding", "miss").Inc()

		levels, err := s.obs.Sounding(ctx, st.ID, fromTime)
		if err != nil {
			lastErr = err
			continue
		}
		if len(levels) < minLevels {
			lastErr = fmt.Errorf("station %d at %sZ: only %d usable levels", st.ID, fromTime, len(levels))
			continue
		}

		snd := buildObserved(st, fromTime, levels)
		s.cache.Set(key, snd)
		return snd, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no sounding available")
	}
	return Sounding{}, lastErr
}

func buildObserved(st Station, fromTime string, levels []wyoming.Level) Sounding {
	n := len(levels)
	profile := make([]Level, n)
	p := make([]float64, n)
	t := make([]float64, n)
	td := make([]float64, n)
	for i, lv := range levels {
		profile[i] = Level{Pressure: lv.Pressure, Temperature: lv.Temperature, Dewpoint: lv.Dewpoint}
		p[i] = lv.Pressure
		t[i] = lv.Temperature
		td[i] = lv.Dewpoint
	}
	cape, cin := ConvectiveEnergy(p, t, td)
	return Sounding{
		Source:     "uwyo",
		StationID:  st.ID,
		StationLat: st.Lat,
		StationLon: st.Lon,
		FromTime:   fromTime,
		CAPE:       round1(cape),
		CIN:        round1(cin),
		Profile:    profile,
	}
}
