package backend

// Point is one geographic point of a leg or route shape. Name and ID are
// only set when the point is a stop.
type Point struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name,omitempty"`
	ID   string  `json:"id,omitempty"`
}

// Leg is a single mode-homogeneous segment of an itinerary, immutable
// once received for a render cycle.
type Leg struct {
	Mode   string  `json:"mode"`
	Route  string  `json:"route,omitempty"`
	Points []Point `json:"points"`
}

// PathResponse is the payload of /api/path. Exactly one of Legs or Error
// is populated.
type PathResponse struct {
	Legs  []Leg  `json:"legs,omitempty"`
	Error string `json:"error,omitempty"`
}

// Segment is one drawn edge of a named transit line.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Stop is one entry of the stop list used to seed the search index and
// the line overlay markers. The backend is inconsistent about field
// names, so both spellings are accepted.
type Stop struct {
	StopID   string  `json:"stop_id"`
	ID       string  `json:"id"`
	StopName string  `json:"stop_name"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Identifier returns whichever stop ID spelling is present.
func (s Stop) Identifier() string {
	if s.StopID != "" {
		return s.StopID
	}
	return s.ID
}

// DisplayName returns whichever stop name spelling is present.
func (s Stop) DisplayName() string {
	if s.StopName != "" {
		return s.StopName
	}
	return s.Name
}

// RouteShape is the payload of /api/route/<name>.
type RouteShape struct {
	Segments []Segment `json:"segments"`
	Stops    []Stop    `json:"stops"`
}

// TripStops is the payload of /api/trip_stops/<id>.
type TripStops struct {
	Stops []Point `json:"stops"`
}

// Departure is one raw scheduled departure at a stop.
type Departure struct {
	RouteShortName     string `json:"route_short_name"`
	TripID             string `json:"trip_id"`
	DepartureTimestamp int64  `json:"departure_timestamp"` // epoch seconds
	Delay              int64  `json:"delay"`               // seconds
}
