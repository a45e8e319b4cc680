// Package exporter writes rendered overlays to files other tools can
// open: GeoJSON for map viewers, ICS for calendars.
package exporter

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"transmap/pkg/itinerary"
)

// GenerateGeoJSON serializes an overlay as a GeoJSON FeatureCollection:
// one LineString feature per rendered leg, styled with the leg's stroke
// properties, plus a Point feature per named source stop.
func GenerateGeoJSON(overlay *itinerary.Overlay, w io.Writer) error {
	fc := geojson.NewFeatureCollection()

	for _, leg := range overlay.Legs {
		line := make(orb.LineString, 0, len(leg.Geometry))
		for _, c := range leg.Geometry {
			// GeoJSON positions are lon,lat
			line = append(line, orb.Point{c.Lon, c.Lat})
		}

		feature := geojson.NewFeature(line)
		feature.Properties["label"] = leg.Label
		feature.Properties["mode"] = string(leg.Mode)
		feature.Properties["stroke"] = leg.Style.Color
		feature.Properties["stroke-width"] = leg.Style.Weight
		feature.Properties["distance_m"] = leg.DistanceMeters
		if leg.Style.Dashed {
			feature.Properties["dash"] = true
		}
		if leg.Fallback {
			feature.Properties["fallback"] = true
		}
		fc.Append(feature)

		for _, p := range leg.SourcePoints {
			if p.Name == "" {
				continue
			}
			marker := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
			marker.Properties["name"] = p.Name
			if p.ID != "" {
				marker.Properties["stop_id"] = p.ID
			}
			fc.Append(marker)
		}
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}
