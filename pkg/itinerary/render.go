// Package itinerary turns abstract backend legs into concrete, styled
// map geometry. Each leg picks a mode-dependent strategy: walking and
// bus legs ask the road-routing service for real geometry and fall back
// to a straight line when it fails; rail legs are always straight lines
// because trains do not follow roads.
package itinerary

import (
	"fmt"
	"log"
	"sync"

	"transmap/pkg/backend"
	"transmap/pkg/geo"
	"transmap/pkg/modes"
	"transmap/pkg/routing"
)

// RenderedLeg is the drawable form of one leg. It is never mutated after
// creation, only replaced by the next render cycle.
type RenderedLeg struct {
	Mode           modes.Mode
	Geometry       []geo.Coordinate
	DistanceMeters float64
	Style          Style
	Label          string
	SourcePoints   []backend.Point
	// Fallback is set when the routing service failed and the geometry
	// is the straight line through the raw points.
	Fallback bool
}

// Overlay is the rendered form of a whole itinerary or transit line,
// owned by exactly one render cycle.
type Overlay struct {
	Legs          []RenderedLeg
	TotalDistance float64
	Label         string
}

// Renderer executes the per-leg rendering pipeline.
type Renderer struct {
	router routing.Service
}

// NewRenderer creates a renderer on top of a routing service.
func NewRenderer(router routing.Service) *Renderer {
	return &Renderer{router: router}
}

// RenderItinerary renders all legs of an itinerary concurrently and
// joins the results in leg order. Total latency is bounded by the
// slowest single leg, not the sum. Every leg always produces drawable
// geometry; upstream routing failures degrade to straight lines.
func (r *Renderer) RenderItinerary(legs []backend.Leg) (*Overlay, error) {
	if len(legs) == 0 {
		return nil, fmt.Errorf("itinerary has no legs")
	}

	rendered := make([]RenderedLeg, len(legs))
	var wg sync.WaitGroup

	for i, leg := range legs {
		wg.Add(1)
		go func(slot int, leg backend.Leg) {
			defer wg.Done()
			rendered[slot] = r.renderLeg(leg)
		}(i, leg)
	}

	wg.Wait()

	overlay := &Overlay{Legs: rendered}
	for _, l := range rendered {
		overlay.TotalDistance += l.DistanceMeters
	}
	return overlay, nil
}

// renderLeg applies the mode strategy for a single leg.
func (r *Renderer) renderLeg(leg backend.Leg) RenderedLeg {
	mode := modes.Resolve(leg.Mode, leg.Route)
	points := coordinates(leg.Points)

	out := RenderedLeg{
		Mode:         mode,
		Style:        StyleFor(mode),
		SourcePoints: leg.Points,
	}

	switch {
	case modes.Rail(mode):
		// Straight line through the stops; no routing call
		out.Geometry = points
		out.DistanceMeters = geo.PathDistance(points)
	case mode == modes.Walk:
		out.Geometry, out.DistanceMeters, out.Fallback = r.routeOrStraight(routing.Foot, points)
	default:
		out.Geometry, out.DistanceMeters, out.Fallback = r.routeOrStraight(routing.Driving, points)
	}

	out.Label = legLabel(mode, leg, out.DistanceMeters)
	return out
}

// routeOrStraight asks the routing service for geometry and falls back
// to the straight line through the raw points on any failure. The raw
// points are already leg-ordered, so no reordering happens here.
func (r *Renderer) routeOrStraight(profile routing.Profile, points []geo.Coordinate) ([]geo.Coordinate, float64, bool) {
	if len(points) >= 2 {
		route, err := r.router.Route(profile, points)
		if err == nil && len(route.Geometry) > 0 {
			return route.Geometry, route.DistanceMeters, false
		}
		if err != nil {
			log.Printf("itinerary: %s routing failed, falling back to straight line: %v", profile, err)
		}
	}
	return points, geo.PathDistance(points), true
}

// RenderLine renders an entire named transit line. Bus-like lines
// deduplicate their segment endpoints, order them nearest-neighbor and
// issue one batched routing call; rail-like lines draw the raw segments
// directly.
func (r *Renderer) RenderLine(shape *backend.RouteShape, label string) (*Overlay, error) {
	if shape == nil || len(shape.Segments) == 0 {
		return nil, fmt.Errorf("route shape has no segments")
	}

	mode := modes.Infer(label)
	style := StyleFor(mode)

	if modes.Rail(mode) {
		legs := make([]RenderedLeg, 0, len(shape.Segments))
		total := 0.0
		for _, seg := range shape.Segments {
			line := []geo.Coordinate{
				{Lat: seg.From.Lat, Lon: seg.From.Lon},
				{Lat: seg.To.Lat, Lon: seg.To.Lon},
			}
			d := geo.PathDistance(line)
			total += d
			legs = append(legs, RenderedLeg{
				Mode:           mode,
				Geometry:       line,
				DistanceMeters: d,
				Style:          style,
				Label:          label,
			})
		}
		return &Overlay{Legs: legs, TotalDistance: total, Label: label}, nil
	}

	waypoints := geo.NearestNeighborOrder(dedupeEndpoints(shape.Segments))

	geometry, distance, fallback := r.routeOrStraight(routing.Driving, waypoints)
	leg := RenderedLeg{
		Mode:           mode,
		Geometry:       geometry,
		DistanceMeters: distance,
		Style:          style,
		Label:          label,
		Fallback:       fallback,
	}
	return &Overlay{Legs: []RenderedLeg{leg}, TotalDistance: distance, Label: label}, nil
}

// dedupeEndpoints collects the unique segment endpoints using exact
// structural equality on the decimal coordinates. No tolerance
// clustering: two stops 1e-6 degrees apart stay distinct waypoints.
func dedupeEndpoints(segments []backend.Segment) []geo.Coordinate {
	seen := make(map[geo.Coordinate]struct{})
	var unique []geo.Coordinate

	add := func(p backend.Point) {
		c := geo.Coordinate{Lat: p.Lat, Lon: p.Lon}
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			unique = append(unique, c)
		}
	}

	for _, seg := range segments {
		add(seg.From)
		add(seg.To)
	}
	return unique
}

// legLabel combines mode and route with the formatted distance and the
// leg's destination name.
func legLabel(mode modes.Mode, leg backend.Leg, meters float64) string {
	name := string(mode)
	if leg.Route != "" {
		name = fmt.Sprintf("%s %s", mode, leg.Route)
	}

	dest := ""
	if n := len(leg.Points); n > 0 && leg.Points[n-1].Name != "" {
		dest = " to " + leg.Points[n-1].Name
	}

	return fmt.Sprintf("%s (%s)%s", name, FormatDistance(meters), dest)
}

// FormatDistance renders meters the way the leg labels and the summary
// line do: meters below one kilometer, one decimal above.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

func coordinates(points []backend.Point) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(points))
	for i, p := range points {
		coords[i] = geo.Coordinate{Lat: p.Lat, Lon: p.Lon}
	}
	return coords
}
