// Package routing talks to the distance-matrix endpoint that prices
// deliveries. The response is consumed read-only; any status other than OK is
// an error the caller reports and retries manually.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"crispy-corner/models"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

type Route struct {
	DistanceText    string
	DurationText    string
	DistanceMeters  int64
	DurationSeconds int64
}

func (r Route) DistanceKm() float64 {
	return float64(r.DistanceMeters) / 1000
}

type Client struct {
	baseURL string
	apiKey  string
	mode    string
	http    *http.Client
}

func NewClient(baseURL, apiKey, mode string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if mode == "" {
		mode = "driving"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		mode:    mode,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Text  string `json:"text"`
				Value int64  `json:"value"`
			} `json:"distance"`
			Duration struct {
				Text  string `json:"text"`
				Value int64  `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// Route asks the service for the road distance and duration from origin to
// destination.
func (c *Client) Route(ctx context.Context, origin, dest models.LatLng) (Route, error) {
	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	q.Set("destinations", fmt.Sprintf("%f,%f", dest.Lat, dest.Lng))
	q.Set("mode", c.mode)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Route{}, fmt.Errorf("build distance request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Route{}, fmt.Errorf("distance request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Route{}, fmt.Errorf("distance service returned HTTP %d", resp.StatusCode)
	}

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return Route{}, fmt.Errorf("decode distance response: %w", err)
	}
	if mr.Status != "OK" {
		return Route{}, fmt.Errorf("distance service status %q", mr.Status)
	}
	if len(mr.Rows) == 0 || len(mr.Rows[0].Elements) == 0 {
		return Route{}, fmt.Errorf("distance response has no elements")
	}
	el := mr.Rows[0].Elements[0]
	if el.Status != "OK" {
		return Route{}, fmt.Errorf("no route to destination: status %q", el.Status)
	}
	return Route{
		DistanceText:    el.Distance.Text,
		DurationText:    el.Duration.Text,
		DistanceMeters:  el.Distance.Value,
		DurationSeconds: el.Duration.Value,
	}, nil
}
