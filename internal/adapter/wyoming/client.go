// Package wyoming fetches observed upper-air soundings from the University
// of Wyoming text archive.
package wyoming

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nimbusworks/wxmodel/internal/config"
	"github.com/nimbusworks/wxmodel/internal/observability"
)

// missingValue marks an absent reading in the archive's text columns.
const missingValue = "***"

// soundingPath is the archive's CGI endpoint under the configured base URL.
const soundingPath = "/cgi-bin/sounding"

// Level is one pressure level parsed from the sounding text. Pressure is in
// hPa, temperature and dewpoint in degrees C.
type Level struct {
	Pressure    float64
	Temperature float64
	Dewpoint    float64
}

// Client fetches TEXT:LIST soundings. The clock is injectable because the
// archive is queried by calendar day.
type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Wyoming sounding client.
func NewClient(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: cfg.WyomingBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.SoundingTimeout,
		},
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Sounding fetches and parses the observed sounding for a WMO station at
// the given synoptic hour, "0000" or "1200". Requests always target the
// current UTC day; the archive serves nothing newer.
func (c *Client) Sounding(ctx context.Context, stationID int, fromTime string) ([]Level, error) {
	text, err := c.fetch(ctx, stationID, fromTime)
	if err != nil {
		return nil, err
	}
	return parseLevels(text), nil
}

func (c *Client) fetch(ctx context.Context, stationID int, fromTime string) (string, error) {
	now := c.clock.Now().UTC()
	q := url.Values{
		"region": {"naconf"},
		"TYPE":   {"TEXT:LIST"},
		"YEAR":   {strconv.Itoa(now.Year())},
		"MONTH":  {strconv.Itoa(int(now.Month()))},
		"DAY":    {strconv.Itoa(now.Day())},
		"FROM":   {fromTime},
		"TO":     {fromTime},
		"STNM":   {strconv.Itoa(stationID)},
	}
	fullURL := c.baseURL + soundingPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("wyoming").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("wyoming", "error").Inc()
		return "", fmt.Errorf("wyoming request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("wyoming", "error").Inc()
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("wyoming", "error").Inc()
		c.logger.Warn("wyoming archive error", "station", stationID, "status", resp.StatusCode)
		return "", fmt.Errorf("wyoming archive error: status %d", resp.StatusCode)
	}
	c.metrics.UpstreamRequests.WithLabelValues("wyoming", "success").Inc()
	return string(body), nil
}

// parseLevels extracts pressure levels from the archive's TEXT:LIST page.
// Data rows start after the PRES/HGHT/TEMP column header. Rows missing a
// temperature or dewpoint are dropped, as are pressures outside 50..1050
// hPa and any line that is not a data row.
func parseLevels(text string) []Level {
	var levels []Level
	inData := false
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "PRES") && strings.Contains(line, "HGHT") && strings.Contains(line, "TEMP") {
			inData = true
			continue
		}
		if !inData {
			continue
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "Station") || strings.HasPrefix(line, "(") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			continue
		}
		pres, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || pres < 50 || pres > 1050 {
			continue
		}
		if parts[2] == missingValue || parts[3] == missingValue {
			continue
		}
		temp, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			continue
		}
		dwpt, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			continue
		}
		levels = append(levels, Level{Pressure: pres, Temperature: temp, Dewpoint: dwpt})
	}
	return levels
}
