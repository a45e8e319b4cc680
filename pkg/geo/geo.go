package geo

import "math"

// EarthRadiusM is the mean Earth radius in meters used for all
// great-circle math in this package.
const EarthRadiusM = 6371000.0

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(a, b Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLon*sinLon
	return 2 * EarthRadiusM * math.Asin(math.Sqrt(h))
}

// PathDistance returns the length of an ordered coordinate sequence in
// meters, accumulated pairwise. Sequences shorter than two points have
// length zero.
func PathDistance(coords []Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(coords); i++ {
		total += Haversine(coords[i-1], coords[i])
	}
	return total
}

// NearestNeighborOrder reorders coords so that each point is followed by
// the unvisited point nearest to it, starting from coords[0]. It is a
// greedy heuristic meant to give an external routing call a sane waypoint
// order, not an optimal tour. The result is a permutation of the input.
func NearestNeighborOrder(coords []Coordinate) []Coordinate {
	if len(coords) < 3 {
		out := make([]Coordinate, len(coords))
		copy(out, coords)
		return out
	}

	remaining := make([]Coordinate, len(coords)-1)
	copy(remaining, coords[1:])

	ordered := make([]Coordinate, 0, len(coords))
	ordered = append(ordered, coords[0])

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1]
		bestIdx := 0
		bestDist := math.MaxFloat64
		for i, c := range remaining {
			if d := Haversine(last, c); d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		ordered = append(ordered, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return ordered
}

// BBox is a geographic bounding box.
type BBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Contains reports whether the point lies inside the box (inclusive).
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Munich is the bounding box the search layer is restricted to, matching
// the city boundary filter of the data pipeline.
var Munich = BBox{MinLat: 48.04, MinLon: 11.33, MaxLat: 48.26, MaxLon: 11.76}

// MunichCenter is used for map centering and the "distance from center"
// fact in the stop popup.
var MunichCenter = Coordinate{Lat: 48.1351, Lon: 11.5820}

func radians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
