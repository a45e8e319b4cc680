package backend

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func withMockBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	// Temporarily override the unexported package baseURL
	originalBaseURL := baseURL
	baseURL = server.URL
	t.Cleanup(func() { baseURL = originalBaseURL })

	return NewClient("")
}

func TestClient_FetchPath_ByStopID(t *testing.T) {
	mockJSON := `{
		"legs": [
			{
				"mode": "WALK",
				"points": [
					{"lat": 48.135, "lon": 11.582},
					{"lat": 48.136, "lon": 11.583, "name": "Sendlinger Tor", "id": "369800"}
				]
			},
			{
				"mode": "U-BAHN",
				"route": "U3",
				"points": [
					{"lat": 48.136, "lon": 11.583, "name": "Sendlinger Tor", "id": "369800"},
					{"lat": 48.139, "lon": 11.566, "name": "Goetheplatz", "id": "369812"}
				]
			}
		]
	}`

	client := withMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "369800" {
			t.Errorf("expected start parameter 369800, got %s", r.URL.Query().Get("start"))
		}
		if r.URL.Query().Get("end") != "419473" {
			t.Errorf("expected end parameter 419473, got %s", r.URL.Query().Get("end"))
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockJSON))
	})

	legs, err := client.FetchPath(PathQuery{StartID: "369800", EndID: "419473"})
	if err != nil {
		t.Fatalf("unexpected error fetching mocked path: %v", err)
	}

	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}
	if legs[1].Route != "U3" {
		t.Errorf("expected second leg route U3, got %q", legs[1].Route)
	}
	if legs[1].Points[1].Name != "Goetheplatz" {
		t.Errorf("expected destination Goetheplatz, got %q", legs[1].Points[1].Name)
	}
}

func TestClient_FetchPath_ByCoordinates(t *testing.T) {
	client := withMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start") != "" {
			t.Errorf("expected no start ID for a pin query")
		}
		if q.Get("start_lat") == "" || q.Get("start_lon") == "" {
			t.Errorf("expected start coordinates to be set")
		}
		if q.Get("start_label") != "Dropped pin" {
			t.Errorf("expected start_label to pass through, got %q", q.Get("start_label"))
		}
		w.Write([]byte(`{"legs": []}`))
	})

	_, err := client.FetchPath(PathQuery{
		StartLat: 48.15, StartLon: 11.55, StartLabel: "Dropped pin",
		EndID: "419473",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_FetchPath_BackendError(t *testing.T) {
	client := withMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "No path found"}`))
	})

	_, err := client.FetchPath(PathQuery{StartID: "1", EndID: "2"})
	if err == nil {
		t.Fatalf("expected backend error to surface")
	}
	if !strings.Contains(err.Error(), "No path found") {
		t.Errorf("expected the backend message verbatim, got: %v", err)
	}
}

func TestClient_FetchRoute(t *testing.T) {
	mockJSON := `{
		"segments": [
			{"from": {"lat": 48.10, "lon": 11.50}, "to": {"lat": 48.11, "lon": 11.51}},
			{"from": {"lat": 48.11, "lon": 11.51}, "to": {"lat": 48.12, "lon": 11.52}}
		],
		"stops": [
			{"stop_id": "100", "stop_name": "Alpha", "lat": 48.10, "lon": 11.50},
			{"id": "101", "name": "Beta", "lat": 48.11, "lon": 11.51}
		]
	}`

	client := withMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/route/54" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(mockJSON))
	})

	shape, err := client.FetchRoute("54")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(shape.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(shape.Segments))
	}

	// Both field spellings must resolve
	if shape.Stops[0].Identifier() != "100" || shape.Stops[1].Identifier() != "101" {
		t.Errorf("stop ID fallback did not resolve both spellings")
	}
	if shape.Stops[0].DisplayName() != "Alpha" || shape.Stops[1].DisplayName() != "Beta" {
		t.Errorf("stop name fallback did not resolve both spellings")
	}
}

func TestClient_FetchDepartures(t *testing.T) {
	mockJSON := `[
		{"route_short_name": "54", "trip_id": "t1", "departure_timestamp": 1700000000, "delay": 60},
		{"route_short_name": "U3", "trip_id": "t2", "departure_timestamp": 1700000300, "delay": 0}
	]`

	client := withMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/departures/369800" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(mockJSON))
	})

	deps, err := client.FetchDepartures("369800")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(deps) != 2 {
		t.Fatalf("expected 2 departures, got %d", len(deps))
	}
	if deps[0].Delay != 60 {
		t.Errorf("expected 60s delay on the first departure, got %d", deps[0].Delay)
	}
}

func TestClient_GetWithRetries_TransientThenOK(t *testing.T) {
	attempts := 0
	client := withMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	})

	if _, err := client.FetchStops(); err != nil {
		t.Fatalf("expected retry to succeed on 3rd attempt, got error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}
}
