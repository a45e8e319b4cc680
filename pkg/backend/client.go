// Package backend talks to the itinerary backend that owns the transit
// graph: shortest paths, line shapes, trip stops and departures.
package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var baseURL = "http://localhost:8000"

// Client interacts with the itinerary backend API.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a backend client. An empty base keeps the default
// local development address.
func NewClient(base string) *Client {
	if base != "" {
		baseURL = base
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// getWithRetries attempts an HTTP GET up to 3 times for transient
// gateway errors and timeouts.
func (c *Client) getWithRetries(reqURL string) (*http.Response, error) {
	var lastErr error
	var resp *http.Response

	for attempt := 0; attempt < 3; attempt++ {
		req, err := http.NewRequest("GET", reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "transmap/1.0")

		resp, lastErr = c.httpClient.Do(req)

		// Retry transient gateway codes, return everything else as-is
		if lastErr == nil && (resp.StatusCode == 502 || resp.StatusCode == 503 || resp.StatusCode == 504) {
			resp.Body.Close()
			lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
		} else if lastErr == nil {
			return resp, nil
		}

		time.Sleep(time.Duration(attempt+1) * time.Second)
	}

	return nil, fmt.Errorf("failed after 3 attempts: %v", lastErr)
}

// PathQuery selects the endpoints of a constructed route. Stops are
// addressed by ID; pins and addresses by raw coordinates plus a label.
type PathQuery struct {
	StartID    string
	EndID      string
	StartLat   float64
	StartLon   float64
	EndLat     float64
	EndLon     float64
	StartLabel string
	EndLabel   string
}

func (q PathQuery) values() url.Values {
	v := url.Values{}
	if q.StartID != "" {
		v.Set("start", q.StartID)
	} else {
		v.Set("start_lat", strconv.FormatFloat(q.StartLat, 'f', -1, 64))
		v.Set("start_lon", strconv.FormatFloat(q.StartLon, 'f', -1, 64))
	}
	if q.EndID != "" {
		v.Set("end", q.EndID)
	} else {
		v.Set("end_lat", strconv.FormatFloat(q.EndLat, 'f', -1, 64))
		v.Set("end_lon", strconv.FormatFloat(q.EndLon, 'f', -1, 64))
	}
	if q.StartLabel != "" {
		v.Set("start_label", q.StartLabel)
	}
	if q.EndLabel != "" {
		v.Set("end_label", q.EndLabel)
	}
	return v
}

// FetchPath asks the backend for an itinerary between two selections.
// Backend-reported errors ({"error": ...} or a non-2xx status) come back
// verbatim so the UI can surface them as the status message.
func (c *Client) FetchPath(q PathQuery) ([]Leg, error) {
	reqURL := fmt.Sprintf("%s/api/path?%s", baseURL, q.values().Encode())

	resp, err := c.getWithRetries(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch path: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read path response body: %w", err)
	}

	var pathResp PathResponse
	if err := json.Unmarshal(body, &pathResp); err != nil {
		return nil, fmt.Errorf("failed to decode path JSON: %w", err)
	}

	if pathResp.Error != "" {
		return nil, fmt.Errorf("%s", pathResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return pathResp.Legs, nil
}

// FetchRoute returns the drawn shape of a named transit line.
func (c *Client) FetchRoute(routeName string) (*RouteShape, error) {
	reqURL := fmt.Sprintf("%s/api/route/%s", baseURL, url.PathEscape(routeName))

	resp, err := c.getWithRetries(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch route %s: %w", routeName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read route response body: %w", err)
	}

	var shape RouteShape
	if err := json.Unmarshal(body, &shape); err != nil {
		return nil, fmt.Errorf("failed to decode route JSON: %w", err)
	}

	return &shape, nil
}

// FetchTripStops returns the ordered stops of one concrete trip.
func (c *Client) FetchTripStops(tripID string) ([]Point, error) {
	reqURL := fmt.Sprintf("%s/api/trip_stops/%s", baseURL, url.PathEscape(tripID))

	resp, err := c.getWithRetries(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trip stops: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trip stops response body: %w", err)
	}

	var trip TripStops
	if err := json.Unmarshal(body, &trip); err != nil {
		return nil, fmt.Errorf("failed to decode trip stops JSON: %w", err)
	}

	return trip.Stops, nil
}

// FetchDepartures returns the raw upcoming departures at a stop.
func (c *Client) FetchDepartures(stopID string) ([]Departure, error) {
	reqURL := fmt.Sprintf("%s/api/departures/%s", baseURL, url.PathEscape(stopID))

	resp, err := c.getWithRetries(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch departures: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read departures response body: %w", err)
	}

	var deps []Departure
	if err := json.Unmarshal(body, &deps); err != nil {
		return nil, fmt.Errorf("failed to decode departures JSON: %w", err)
	}

	return deps, nil
}

// FetchStops returns the full stop list used to seed the search index.
func (c *Client) FetchStops() ([]Stop, error) {
	reqURL := fmt.Sprintf("%s/api/stops", baseURL)

	resp, err := c.getWithRetries(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stops: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stops response body: %w", err)
	}

	var stops []Stop
	if err := json.Unmarshal(body, &stops); err != nil {
		return nil, fmt.Errorf("failed to decode stops JSON: %w", err)
	}

	return stops, nil
}
