package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nimbusworks/wxmodel/internal/cache"
	"github.com/nimbusworks/wxmodel/internal/config"
	"github.com/nimbusworks/wxmodel/internal/observability"
)

// Client proxies the National Weather Service REST API. Payloads pass
// through as raw JSON without reshaping, and every successful response is
// cached under its full URL so repeat lookups inside the TTL skip the
// upstream entirely.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      *cache.TTLCache[json.RawMessage]
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an api.weather.gov client.
func NewClient(cfg *config.Config, responseCache *cache.TTLCache[json.RawMessage], logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.NWSBaseURL, "/"),
		userAgent: cfg.NWSUserAgent,
		httpClient: &http.Client{
			Timeout: cfg.NWSTimeout,
		},
		cache:   responseCache,
		logger:  logger,
		metrics: metrics,
	}
}

// Points resolves a coordinate to its NWS grid cell plus the forecast and
// station URLs for it. Coordinates are formatted with four decimals, the
// most the API accepts before it redirects.
func (c *Client) Points(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/points/%.4f,%.4f", lat, lon))
}

// Forecast fetches the half-day period forecast. forecastURL is the
// forecast property handed back by Points, absolute or relative.
func (c *Client) Forecast(ctx context.Context, forecastURL string) (json.RawMessage, error) {
	return c.get(ctx, c.trimBase(forecastURL))
}

// ForecastHourly fetches the hourly forecast, given the forecastHourly
// property handed back by Points.
func (c *Client) ForecastHourly(ctx context.Context, forecastURL string) (json.RawMessage, error) {
	return c.get(ctx, c.trimBase(forecastURL))
}

// StationsObservations fetches observations for a station collection URL.
func (c *Client) StationsObservations(ctx context.Context, stationsURL string) (json.RawMessage, error) {
	return c.get(ctx, c.trimBase(stationsURL))
}

// ObservationLatest fetches the most recent observation for one station.
func (c *Client) ObservationLatest(ctx context.Context, stationID string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/stations/%s/observations/latest", url.PathEscape(stationID)))
}

// Gridpoint fetches the raw forecast grid data for one NWS grid cell.
func (c *Client) Gridpoint(ctx context.Context, gridID string, gridX, gridY int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/gridpoints/%s/%d,%d", url.PathEscape(gridID), gridX, gridY))
}

// AlertsActive fetches active alerts, optionally filtered to a zone ID.
func (c *Client) AlertsActive(ctx context.Context, zone string) (json.RawMessage, error) {
	path := "/alerts/active"
	if zone != "" {
		path += "?zone=" + url.QueryEscape(zone)
	}
	return c.get(ctx, path)
}

// AlertsActiveByArea fetches active alerts for a state or marine area code.
func (c *Client) AlertsActiveByArea(ctx context.Context, area string) (json.RawMessage, error) {
	return c.get(ctx, "/alerts/active?area="+url.QueryEscape(area))
}

// trimBase reduces absolute URLs handed back by earlier responses to their
// path and query, so the request always targets the configured base even
// when the stored URL names another host. Relative paths pass through
// unchanged.
func (c *Client) trimBase(raw string) string {
	if !strings.HasPrefix(raw, "http") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	path := u.Path
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	fullURL := c.baseURL + path

	if cached, ok := c.cache.Get(fullURL); ok {
		c.metrics.CacheLookups.WithLabelValues("nws", "hit").Inc()
		return cached, nil
	}
	c.metrics.CacheLookups.WithLabelValues("nws", "miss").Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("nws").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("nws", "error").Inc()
		return nil, fmt.Errorf("nws request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("nws", "error").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("nws", "error").Inc()
		c.logger.Warn("nws API error", "url", fullURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("nws API error: status %d: %s", resp.StatusCode, body)
	}

	if !json.Valid(body) {
		c.metrics.UpstreamRequests.WithLabelValues("nws", "error").Inc()
		return nil, fmt.Errorf("nws API returned non-JSON response from %s", fullURL)
	}
	c.metrics.UpstreamRequests.WithLabelValues("nws", "success").Inc()

	data := json.RawMessage(body)
	c.cache.Set(fullURL, data)
	return data, nil
}
