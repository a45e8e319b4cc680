package search

import (
	"strings"

	"transmap/pkg/backend"
)

// maxStopMatches caps how many local stop matches one query returns.
const maxStopMatches = 3

// Index is the in-memory stop list matched locally on every search, so
// stop names keep working when the geocoder is down.
type Index struct {
	stops []backend.Stop
}

// NewIndex builds an index from the backend stop list.
func NewIndex(stops []backend.Stop) *Index {
	return &Index{stops: stops}
}

// Len returns the number of indexed stops.
func (idx *Index) Len() int {
	return len(idx.stops)
}

// Match returns up to maxStopMatches stops whose name or ID contains the
// query, case-insensitively.
func (idx *Index) Match(query string) []Location {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var matches []Location
	for _, s := range idx.stops {
		if len(matches) >= maxStopMatches {
			break
		}
		name := s.DisplayName()
		id := s.Identifier()
		if strings.Contains(strings.ToLower(name), needle) || strings.Contains(strings.ToLower(id), needle) {
			matches = append(matches, Location{
				Label:  name,
				Detail: "Stop " + id,
				Lat:    s.Lat,
				Lon:    s.Lon,
				Source: SourceStop,
				StopID: id,
			})
		}
	}

	return matches
}
