package sounding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nimbusworks/wxmodel/internal/adapter/wyoming"
	"github.com/nimbusworks/wxmodel/internal/cache"
	"github.com/nimbusworks/wxmodel/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObservations struct {
	calls  []string
	levels map[string][]wyoming.Level
	errs   map[string]error
}

func (f *fakeObservations) Sounding(_ context.Context, stationID int, fromTime string) ([]wyoming.Level, error) {
	key := fmt.Sprintf("%d/%s", stationID, fromTime)
	f.calls = append(f.calls, key)
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return f.levels[key], nil
}

var observedLevels = []wyoming.Level{
	{Pressure: 1000, Temperature: 25, Dewpoint: 21},
	{Pressure: 925, Temperature: 21, Dewpoint: 18.5},
	{Pressure: 850, Temperature: 17, Dewpoint: 15},
	{Pressure: 700, Temperature: 8, Dewpoint: 2},
	{Pressure: 500, Temperature: -8, Dewpoint: -18},
	{Pressure: 300, Temperature: -33, Dewpoint: -48},
}

func testSoundingService(obs Observations) *Service {
	soundingCache := cache.New[Sounding](6*time.Hour, 32, clockwork.NewFakeClock())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(obs, soundingCache, logger, observability.NewMetricsForTesting())
}

func TestService_Get_Observed(t *testing.T) {
	obs := &fakeObservations{levels: map[string][]wyoming.Level{"72215/1200": observedLevels}}
	svc := testSoundingService(obs)

	snd := svc.Get(context.Background(), 25.9, -80.2, "wyoming")
	assert.Equal(t, "uwyo", snd.Source)
	assert.Equal(t, 72215, snd.StationID)
	assert.Equal(t, 25.8, snd.StationLat)
	assert.Equal(t, -80.3, snd.StationLon)
	assert.Equal(t, "1200", snd.FromTime)
	require.Len(t, snd.Profile, 6)
	assert.Equal(t, 1000.0, snd.Profile[0].Pressure)
	assert.Greater(t, snd.CAPE, 0.0)
	assert.LessOrEqual(t, snd.CIN, 0.0)
}

func TestService_Get_CachesPerStationAndHour(t *testing.T) {
	obs := &fakeObservations{levels: map[string][]wyoming.Level{"72215/1200": observedLevels}}
	svc := testSoundingService(obs)

	first := svc.Get(context.Background(), 25.9, -80.2, "wyoming")
	second := svc.Get(context.Background(), 25.85, -80.25, "")
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"72215/1200"}, obs.calls)
}

func TestService_Get_FallsBackToEarlierLaunch(t *testing.T) {
	obs := &fakeObservations{
		errs:   map[string]error{"72215/1200": errors.New("archive timeout")},
		levels: map[string][]wyoming.Level{"72215/0000": observedLevels},
	}
	svc := testSoundingService(obs)

	snd := svc.Get(context.Background(), 25.8, -80.3, "wyoming")
	assert.Equal(t, "uwyo", snd.Source)
	assert.Equal(t, "0000", snd.FromTime)
	assert.Equal(t, []string{"72215/1200", "72215/0000"}, obs.calls)
}

func TestService_Get_TooFewLevelsServesDemo(t *testing.T) {
	short := observedLevels[:3]
	obs := &fakeObservations{levels: map[string][]wyoming.Level{
		"72215/1200": short,
		"72215/0000": short,
	}}
	svc := testSoundingService(obs)

	snd := svc.Get(context.Background(), 25.8, -80.3, "wyoming")
	assert.Equal(t, "demo", snd.Source)
	assert.Zero(t, snd.StationID)
	assert.Empty(t, snd.FromTime)
}

func TestService_Get_ModelSourcesServeDemo(t *testing.T) {
	obs := &fakeObservations{}
	svc := testSoundingService(obs)

	for _, source := range []string{"rap", "hrrr", "RAP"} {
		snd := svc.Get(context.Background(), 39.75, -104.87, source)
		assert.Equal(t, "demo", snd.Source, "source %q", source)
	}
	assert.Empty(t, obs.calls)
}

func TestDemoSounding(t *testing.T) {
	snd := DemoSounding()
	assert.Equal(t, "demo", snd.Source)
	require.Len(t, snd.Profile, 17)
	assert.Equal(t, 1000.0, snd.Profile[0].Pressure)
	assert.InDelta(t, 19.3, snd.Profile[0].Dewpoint, 0.1)
	assert.Greater(t, snd.CAPE, 0.0)
	assert.LessOrEqual(t, snd.CIN, 0.0)

	// Station fields stay out of the demo payload.
	data, err := json.Marshal(snd)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "station_id")
	assert.NotContains(t, string(data), "from_time")
	assert.Contains(t, string(data), `"source":"demo"`)
}
