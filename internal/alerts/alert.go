// Package alerts watches the active NWS alert feed for an area and hands
// newly issued alerts to a publisher.
package alerts

import (
	"encoding/json"
	"fmt"
	"time"
)

// Alert is one active NWS alert, flattened from the feed's GeoJSON feature
// properties.
type Alert struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Severity  string    `json:"severity"`
	Urgency   string    `json:"urgency"`
	Headline  string    `json:"headline"`
	AreaDesc  string    `json:"area_desc"`
	Effective time.Time `json:"effective"`
	Expires   time.Time `json:"expires"`
}

// ParseActive extracts alerts from an alerts/active response body.
func ParseActive(raw json.RawMessage) ([]Alert, error) {
	var resp struct {
		Features []struct {
			Properties struct {
				ID        string    `json:"id"`
				Event     string    `json:"event"`
				Severity  string    `json:"severity"`
				Urgency   string    `json:"urgency"`
				Headline  string    `json:"headline"`
				AreaDesc  string    `json:"areaDesc"`
				Effective time.Time `json:"effective"`
				Expires   time.Time `json:"expires"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse alerts response: %w", err)
	}

	parsed := make([]Alert, 0, len(resp.Features))
	for _, f := range resp.Features {
		p := f.Properties
		parsed = append(parsed, Alert{
			ID:        p.ID,
			Event:     p.Event,
			Severity:  p.Severity,
			Urgency:   p.Urgency,
			Headline:  p.Headline,
			AreaDesc:  p.AreaDesc,
			Effective: p.Effective,
			Expires:   p.Expires,
		})
	}
	return parsed, nil
}
