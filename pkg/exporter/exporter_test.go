package exporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"transmap/pkg/backend"
	"transmap/pkg/geo"
	"transmap/pkg/itinerary"
	"transmap/pkg/modes"
)

func sampleOverlay() *itinerary.Overlay {
	return &itinerary.Overlay{
		Legs: []itinerary.RenderedLeg{
			{
				Mode: modes.Walk,
				Geometry: []geo.Coordinate{
					{Lat: 48.1351, Lon: 11.5820},
					{Lat: 48.1373, Lon: 11.5754},
				},
				DistanceMeters: 600,
				Style:          itinerary.StyleFor(modes.Walk),
				Label:          "WALK (600 m) to Marienplatz",
				SourcePoints: []backend.Point{
					{Lat: 48.1351, Lon: 11.5820},
					{Lat: 48.1373, Lon: 11.5754, Name: "Marienplatz", ID: "1"},
				},
			},
			{
				Mode: modes.UBahn,
				Geometry: []geo.Coordinate{
					{Lat: 48.1373, Lon: 11.5754},
					{Lat: 48.1299, Lon: 11.5585},
				},
				DistanceMeters: 1500,
				Style:          itinerary.StyleFor(modes.UBahn),
				Label:          "U-BAHN U3 (1.5 km) to Goetheplatz",
			},
		},
		TotalDistance: 2100,
	}
}

func TestGenerateGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateGeoJSON(sampleOverlay(), &buf); err != nil {
		t.Fatalf("GenerateGeoJSON failed: %v", err)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}

	if err := json.Unmarshal(buf.Bytes(), &fc); err != nil {
		t.Fatalf("output is not valid GeoJSON: %v", err)
	}

	if fc.Type != "FeatureCollection" {
		t.Errorf("expected a FeatureCollection, got %q", fc.Type)
	}

	// 2 leg lines + 1 named stop marker
	if len(fc.Features) != 3 {
		t.Fatalf("expected 3 features, got %d", len(fc.Features))
	}

	first := fc.Features[0]
	if first.Geometry.Type != "LineString" {
		t.Errorf("expected the first feature to be a LineString, got %q", first.Geometry.Type)
	}
	if first.Properties["mode"] != "WALK" {
		t.Errorf("expected mode property WALK, got %v", first.Properties["mode"])
	}
	if first.Properties["stroke"] == "" {
		t.Errorf("expected a stroke color property")
	}

	foundMarker := false
	for _, f := range fc.Features {
		if f.Geometry.Type == "Point" {
			foundMarker = true
			if f.Properties["name"] != "Marienplatz" {
				t.Errorf("expected the stop marker to be named, got %v", f.Properties["name"])
			}
		}
	}
	if !foundMarker {
		t.Errorf("expected a Point feature for the named stop")
	}
}

func TestGenerateCommuteICS(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Berlin")
	departAt := time.Date(2026, 3, 2, 8, 15, 0, 0, loc) // a Monday

	var buf bytes.Buffer
	if err := GenerateCommuteICS(sampleOverlay(), departAt, &buf); err != nil {
		t.Fatalf("GenerateCommuteICS failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "SUMMARY:Commute (2.1 km)") {
		t.Errorf("expected the commute summary, got:\n%s", output)
	}
	if !strings.Contains(output, "U-BAHN U3") {
		t.Errorf("expected the leg labels in the description")
	}

	// Mon-Fri of the starting week, weekend skipped
	if got := strings.Count(output, "BEGIN:VEVENT"); got != 5 {
		t.Errorf("expected 5 weekday events, got %d", got)
	}
}

func TestGenerateCommuteICS_EmptyOverlay(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateCommuteICS(&itinerary.Overlay{}, time.Now(), &buf); err == nil {
		t.Errorf("expected an error for an empty overlay")
	}
}
