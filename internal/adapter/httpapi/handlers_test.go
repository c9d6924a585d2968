package httpapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/nimbusworks/wxmodel/internal/glossary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlossaryList(t *testing.T) {
	srv, _, _ := newTestServer(nil)

	rec := doGet(srv, "/api/glossary")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Entries    []glossary.Entry            `json:"entries"`
		ByCategory map[string][]glossary.Entry `json:"by_category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Entries, 30)
	assert.NotEmpty(t, body.ByCategory["Simple physics"])
}

func TestGlossaryTerm(t *testing.T) {
	srv, _, _ := newTestServer(nil)

	rec := doGet(srv, "/api/glossary/CAPE")

	assert.Equal(t, http.StatusOK, rec.Code)

	var entry glossary.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "CAPE", entry.Term)
	assert.Equal(t, "Simple physics", entry.Category)
}

func TestGlossaryTermIgnoresCase(t *testing.T) {
	srv, _, _ := newTestServer(nil)

	rec := doGet(srv, "/api/glossary/"+url.PathEscape("Dew Point"))

	assert.Equal(t, http.StatusOK, rec.Code)

	var entry glossary.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "dew point", entry.Term)
}

func TestGlossaryTermNotFound(t *testing.T) {
	srv, _, _ := newTestServer(nil)

	rec := doGet(srv, "/api/glossary/derecho")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Term not found: derecho", body["error"])
}

func TestPointsProxiesCoordinates(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/points?lat=30.2672&lon=-97.7431")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, []string{"Points"}, upstream.calls)
	assert.Equal(t, 30.2672, upstream.lat)
	assert.Equal(t, -97.7431, upstream.lon)
}

func TestPointsValidation(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr string
	}{
		{"missing lat", "/api/points?lon=-97.7", `missing required query parameter "lat"`},
		{"missing lon", "/api/points?lat=30.3", `missing required query parameter "lon"`},
		{"garbage lat", "/api/points?lat=abc&lon=-97.7", `invalid lat: "abc"`},
		{"lat out of range", "/api/points?lat=91&lon=-97.7", "lat must be between -90 and 90"},
		{"lon out of range", "/api/points?lat=30.3&lon=181", "lon must be between -180 and 180"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, upstream, _ := newTestServer(nil)

			rec := doGet(srv, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantErr, body["error"])
			assert.Empty(t, upstream.calls)
		})
	}
}

func TestUpstreamFailureIs502(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)
	upstream.err = fmt.Errorf("nws API error: status 500: oops")

	rec := doGet(srv, "/api/points?lat=30.2672&lon=-97.7431")

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "nws API error: status 500: oops", body["error"])
}

func TestForecastRequiresURL(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/forecast")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, upstream.calls)
}

func TestForecastPassesURLThrough(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)
	forecastURL := "https://api.weather.gov/gridpoints/EWX/155,90/forecast"

	rec := doGet(srv, "/api/forecast?url="+url.QueryEscape(forecastURL))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Forecast"}, upstream.calls)
	assert.Equal(t, forecastURL, upstream.url)
}

func TestForecastHourlyPassesURLThrough(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/forecast/hourly?url=/gridpoints/EWX/155,90/forecast/hourly")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ForecastHourly"}, upstream.calls)
	assert.Equal(t, "/gridpoints/EWX/155,90/forecast/hourly", upstream.url)
}

func TestStationsObservationsPassesURLThrough(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/stations/observations?url=/gridpoints/EWX/155,90/stations")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"StationsObservations"}, upstream.calls)
	assert.Equal(t, "/gridpoints/EWX/155,90/stations", upstream.url)
}

func TestObservationLatestUsesStationID(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/stations/KAUS/observations/latest")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ObservationLatest"}, upstream.calls)
	assert.Equal(t, "KAUS", upstream.stationID)
}

func TestGridpointParsesCoordinates(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/gridpoints/EWX/155/90")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Gridpoint"}, upstream.calls)
	assert.Equal(t, "EWX", upstream.gridID)
	assert.Equal(t, 155, upstream.gridX)
	assert.Equal(t, 90, upstream.gridY)
}

func TestGridpointRejectsNonIntegerCoordinates(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/gridpoints/EWX/abc/90")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, `invalid grid_x: "abc"`, body["error"])
	assert.Empty(t, upstream.calls)
}

func TestAlertsActiveWithZone(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/alerts/active?zone=TXZ192")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"AlertsActive"}, upstream.calls)
	assert.Equal(t, "TXZ192", upstream.zone)
}

func TestAlertsActiveAreaWinsOverZone(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/alerts/active?zone=TXZ192&area=TX")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"AlertsActiveByArea"}, upstream.calls)
	assert.Equal(t, "TX", upstream.area)
}

func TestAlertsActiveNoFilters(t *testing.T) {
	srv, upstream, _ := newTestServer(nil)

	rec := doGet(srv, "/api/alerts/active")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"AlertsActive"}, upstream.calls)
	assert.Empty(t, upstream.zone)
}

func TestSoundingDefaultsToDemo(t *testing.T) {
	srv, _, soundings := newTestServer(nil)

	rec := doGet(srv, "/api/sounding")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, soundings.demoCalls)
	assert.Equal(t, 0, soundings.getCalls)
	assert.Contains(t, rec.Body.String(), `"source":"demo"`)
}

func TestSoundingWithCoordinates(t *testing.T) {
	srv, _, soundings := newTestServer(nil)

	rec := doGet(srv, "/api/sounding?lat=25.9&lon=-80.4&source=wyoming")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, soundings.getCalls)
	assert.Equal(t, 25.9, soundings.lat)
	assert.Equal(t, -80.4, soundings.lon)
	assert.Equal(t, "wyoming", soundings.source)
	assert.Contains(t, rec.Body.String(), `"station_id":72215`)
}

func TestSoundingPartialCoordinatesServeDemo(t *testing.T) {
	srv, _, soundings := newTestServer(nil)

	rec := doGet(srv, "/api/sounding?lat=25.9")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, soundings.getCalls)
	assert.Equal(t, 1, soundings.demoCalls)
	assert.Contains(t, rec.Body.String(), `"source":"demo"`)
}

func TestSoundingCoordinateRangeChecked(t *testing.T) {
	srv, _, soundings := newTestServer(nil)

	rec := doGet(srv, "/api/sounding?lat=95&lon=-80.4")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, soundings.getCalls)
}
