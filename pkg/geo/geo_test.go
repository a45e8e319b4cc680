package geo

import (
	"math"
	"testing"
)

func TestHaversineEquator(t *testing.T) {
	// One degree of longitude along the equator is roughly 111.195 km.
	a := Coordinate{Lat: 0, Lon: 0}
	b := Coordinate{Lat: 0, Lon: 1}

	d := Haversine(a, b)
	expected := 111195.0

	if math.Abs(d-expected)/expected > 0.01 {
		t.Errorf("expected roughly %.0f m, got %.0f m", expected, d)
	}
}

func TestHaversineSymmetryAndIdentity(t *testing.T) {
	a := Coordinate{Lat: 48.1351, Lon: 11.5820}
	b := Coordinate{Lat: 48.1743, Lon: 11.5466}

	if d := Haversine(a, a); d != 0 {
		t.Errorf("distance from a point to itself should be 0, got %f", d)
	}

	if Haversine(a, b) != Haversine(b, a) {
		t.Errorf("haversine distance is not symmetric")
	}
}

func TestPathDistance(t *testing.T) {
	coords := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: 2},
	}

	single := Haversine(coords[0], coords[1])
	total := PathDistance(coords)

	if math.Abs(total-2*single) > 1 {
		t.Errorf("expected path distance %.0f, got %.0f", 2*single, total)
	}

	if PathDistance(coords[:1]) != 0 {
		t.Errorf("single-point path should have zero length")
	}
}

func TestNearestNeighborOrderIsPermutation(t *testing.T) {
	coords := []Coordinate{
		{Lat: 48.10, Lon: 11.50},
		{Lat: 48.20, Lon: 11.60},
		{Lat: 48.11, Lon: 11.51},
		{Lat: 48.19, Lon: 11.59},
		{Lat: 48.15, Lon: 11.55},
	}

	ordered := NearestNeighborOrder(coords)

	if len(ordered) != len(coords) {
		t.Fatalf("expected %d points, got %d", len(coords), len(ordered))
	}

	seen := make(map[Coordinate]int)
	for _, c := range coords {
		seen[c]++
	}
	for _, c := range ordered {
		seen[c]--
	}
	for c, n := range seen {
		if n != 0 {
			t.Errorf("point %v appears a different number of times in the output", c)
		}
	}

	// Starting point is preserved
	if ordered[0] != coords[0] {
		t.Errorf("expected ordering to start from the first input point")
	}
}

func TestNearestNeighborOrderPicksCloserPointFirst(t *testing.T) {
	coords := []Coordinate{
		{Lat: 48.10, Lon: 11.50},
		{Lat: 48.25, Lon: 11.70}, // far
		{Lat: 48.11, Lon: 11.51}, // near
	}

	ordered := NearestNeighborOrder(coords)
	if ordered[1] != coords[2] {
		t.Errorf("expected the nearer point to be visited second, got %v", ordered[1])
	}
}

func TestBBoxContains(t *testing.T) {
	if !Munich.Contains(48.1351, 11.5820) {
		t.Errorf("Munich center should be inside the Munich bounding box")
	}
	if Munich.Contains(52.52, 13.40) {
		t.Errorf("Berlin should not be inside the Munich bounding box")
	}
}
