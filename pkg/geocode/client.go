// Package geocode resolves free-text queries to addresses via a
// Nominatim-compatible search endpoint, bounded to a city viewbox.
package geocode

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"transmap/pkg/geo"
)

var baseURL = "https://nominatim.openstreetmap.org"

// Result is one geocoded address candidate. Nominatim ships coordinates
// as strings; Lat/Lon hold the parsed values.
type Result struct {
	Label string
	Type  string
	Lat   float64
	Lon   float64
}

// rawResult mirrors the relevant parts of the OSM search payload.
type rawResult struct {
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Client queries the geocoding service.
type Client struct {
	httpClient *http.Client
	box        geo.BBox
}

// NewClient creates a geocoder restricted to the given bounding box.
func NewClient(box geo.BBox) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		box:        box,
	}
}

// Search geocodes a free-text query. Results outside the client's
// bounding box are dropped even though the viewbox is already passed to
// the service, because "bounded" viewbox handling is best-effort on some
// deployments.
func (c *Client) Search(query string) ([]Result, error) {
	v := url.Values{}
	v.Set("q", query)
	v.Set("format", "json")
	v.Set("limit", "5")
	v.Set("countrycodes", "de")
	v.Set("bounded", "1")
	// viewbox is lon1,lat1,lon2,lat2
	v.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f", c.box.MinLon, c.box.MaxLat, c.box.MaxLon, c.box.MinLat))

	reqURL := fmt.Sprintf("%s/search?%s", baseURL, v.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying user agent
	req.Header.Set("User-Agent", "transmap/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch geocoding results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geocoding response body: %w", err)
	}

	var raw []rawResult
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding JSON: %w", err)
	}

	var results []Result
	for _, r := range raw {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		if !c.box.Contains(lat, lon) {
			continue
		}
		results = append(results, Result{
			Label: r.DisplayName,
			Type:  r.Type,
			Lat:   lat,
			Lon:   lon,
		})
	}

	return results, nil
}
