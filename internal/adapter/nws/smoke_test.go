//go:build nws

package nws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nimbusworks/wxmodel/internal/cache"
	"github.com/nimbusworks/wxmodel/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real NWS API. No credentials are needed, but the
// endpoint is rate limited, so they stay behind a build tag.
// Run with: go test -tags=nws ./internal/adapter/nws/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	return &Client{
		baseURL:    "https://api.weather.gov",
		userAgent:  "wxmodel-smoke-test (github.com/nimbusworks/wxmodel)",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache.New[json.RawMessage](time.Minute, 16, clockwork.NewRealClock()),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    observability.NewMetricsForTesting(),
	}
}

func TestSmoke_Points(t *testing.T) {
	c := smokeClient(t)

	// Austin, TX coordinates
	raw, err := c.Points(context.Background(), 30.2672, -97.7431)
	require.NoError(t, err)

	var pts struct {
		Properties struct {
			GridID   string `json:"gridId"`
			Forecast string `json:"forecast"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(raw, &pts))
	assert.NotEmpty(t, pts.Properties.GridID)
	assert.Contains(t, pts.Properties.Forecast, "https://api.weather.gov/gridpoints/")
}

func TestSmoke_PointsThenForecast(t *testing.T) {
	c := smokeClient(t)

	raw, err := c.Points(context.Background(), 30.2672, -97.7431)
	require.NoError(t, err)

	var pts struct {
		Properties struct {
			Forecast string `json:"forecast"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(raw, &pts))
	require.NotEmpty(t, pts.Properties.Forecast)

	fc, err := c.Forecast(context.Background(), pts.Properties.Forecast)
	require.NoError(t, err)

	var forecast struct {
		Properties struct {
			Periods []struct {
				Name string `json:"name"`
			} `json:"periods"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(fc, &forecast))
	assert.NotEmpty(t, forecast.Properties.Periods)
}

func TestSmoke_AlertsActiveByArea(t *testing.T) {
	c := smokeClient(t)

	// There may be no active TX alerts at run time; only the shape is checked.
	raw, err := c.AlertsActiveByArea(context.Background(), "TX")
	require.NoError(t, err)

	var alerts struct {
		Features []json.RawMessage `json:"features"`
	}
	assert.NoError(t, json.Unmarshal(raw, &alerts))
}
