// Package routing asks an OSRM-compatible service for road-following
// geometry between ordered waypoints.
package routing

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/bluele/gcache"

	"transmap/pkg/geo"
	"transmap/pkg/polyline"
)

const defaultBaseURL = "https://router.project-osrm.org"

// Profile selects the road network the route is computed on.
type Profile string

const (
	Foot    Profile = "foot"
	Driving Profile = "driving"
)

// Route is the decoded result of one routing call.
type Route struct {
	Geometry       []geo.Coordinate
	DistanceMeters float64
}

// Service is the routing dependency of the rendering pipeline. The
// pipeline only needs this one call, so tests swap in a stub.
type Service interface {
	Route(profile Profile, waypoints []geo.Coordinate) (*Route, error)
}

// Client calls the OSRM HTTP API and caches responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      gcache.Cache
}

// NewClient creates a routing client. An empty base targets the public
// OSRM instance. The cache keeps recent responses so re-rendering after
// a marker drag does not re-route unchanged legs.
func NewClient(base string) *Client {
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      gcache.New(256).LRU().Expiration(10 * time.Minute).Build(),
	}
}

type osrmRoute struct {
	Geometry string  `json:"geometry"`
	Distance float64 `json:"distance"`
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

// Route fetches geometry and distance for the given ordered waypoints.
// The waypoint order is preserved as-is; callers that need reordering do
// it before calling.
func (c *Client) Route(profile Profile, waypoints []geo.Coordinate) (*Route, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("routing needs at least 2 waypoints, got %d", len(waypoints))
	}

	key := cacheKey(profile, waypoints)
	if cached, err := c.cache.Get(key); err == nil {
		if route, ok := cached.(*Route); ok {
			return route, nil
		}
	}

	coords := make([]string, len(waypoints))
	for i, w := range waypoints {
		// OSRM wants lon,lat pairs
		coords[i] = fmt.Sprintf("%f,%f", w.Lon, w.Lat)
	}

	reqURL := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=polyline",
		c.baseURL, profile, strings.Join(coords, ";"))

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "transmap/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read routing response body: %w", err)
	}

	var obj osrmResponse
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode routing JSON: %w", err)
	}

	if len(obj.Routes) == 0 {
		return nil, fmt.Errorf("no route returned")
	}

	geometry := polyline.Decode(obj.Routes[0].Geometry)
	if len(geometry) == 0 {
		return nil, fmt.Errorf("empty route geometry")
	}

	route := &Route{
		Geometry:       geometry,
		DistanceMeters: obj.Routes[0].Distance,
	}

	_ = c.cache.Set(key, route)
	return route, nil
}

// cacheKey quantizes waypoints to 4 decimal places (~11m) so a dragged
// marker that barely moved still hits the cache.
func cacheKey(profile Profile, waypoints []geo.Coordinate) string {
	var b strings.Builder
	b.WriteString(string(profile))
	for _, w := range waypoints {
		fmt.Fprintf(&b, ";%.4f,%.4f", quantize(w.Lat), quantize(w.Lon))
	}
	return b.String()
}

func quantize(coord float64) float64 {
	return math.Round(coord*10000) / 10000
}
