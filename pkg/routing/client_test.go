package routing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transmap/pkg/geo"
	"transmap/pkg/polyline"
)

func TestClient_Route(t *testing.T) {
	geometry := polyline.Encode([]geo.Coordinate{
		{Lat: 48.1351, Lon: 11.5820},
		{Lat: 48.1373, Lon: 11.5754},
	})

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		if !strings.HasPrefix(r.URL.Path, "/route/v1/foot/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// Waypoints are lon,lat ordered
		if !strings.Contains(r.URL.Path, "11.582000,48.135100") {
			t.Errorf("expected lon,lat waypoint encoding, got %s", r.URL.Path)
		}

		w.Write([]byte(`{"code": "Ok", "routes": [{"geometry": "` + geometry + `", "distance": 523.4}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	waypoints := []geo.Coordinate{
		{Lat: 48.1351, Lon: 11.5820},
		{Lat: 48.1373, Lon: 11.5754},
	}

	route, err := client.Route(Foot, waypoints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if route.DistanceMeters != 523.4 {
		t.Errorf("expected service distance 523.4, got %f", route.DistanceMeters)
	}
	if len(route.Geometry) != 2 {
		t.Errorf("expected 2 decoded geometry points, got %d", len(route.Geometry))
	}

	// Second identical call must come from the cache
	if _, err := client.Route(Foot, waypoints); err != nil {
		t.Fatalf("unexpected error on cached call: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected the repeat call to hit the cache, saw %d requests", requests)
	}
}

func TestClient_Route_NoRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Route(Driving, []geo.Coordinate{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}})
	if err == nil {
		t.Fatalf("expected an error when the service returns zero routes")
	}
}

func TestClient_IndependentBaseURLs(t *testing.T) {
	response := func(geometry string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code": "Ok", "routes": [{"geometry": "` + geometry + `", "distance": 100}]}`))
		}
	}

	first := httptest.NewServer(response(polyline.Encode([]geo.Coordinate{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}})))
	defer first.Close()
	second := httptest.NewServer(response(polyline.Encode([]geo.Coordinate{{Lat: 3, Lon: 3}, {Lat: 4, Lon: 4}, {Lat: 5, Lon: 5}})))
	defer second.Close()

	clientA := NewClient(first.URL)
	clientB := NewClient(second.URL)

	waypoints := []geo.Coordinate{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}

	routeA, err := clientA.Route(Foot, waypoints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	routeB, err := clientB.Route(Foot, waypoints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Each client must keep talking to its own router
	if len(routeA.Geometry) != 2 {
		t.Errorf("expected client A to get 2 points from its own server, got %d", len(routeA.Geometry))
	}
	if len(routeB.Geometry) != 3 {
		t.Errorf("expected client B to get 3 points from its own server, got %d", len(routeB.Geometry))
	}
}

func TestClient_Route_TooFewWaypoints(t *testing.T) {
	client := NewClient("")
	if _, err := client.Route(Foot, []geo.Coordinate{{Lat: 1, Lon: 1}}); err == nil {
		t.Fatalf("expected an error for a single waypoint")
	}
}
