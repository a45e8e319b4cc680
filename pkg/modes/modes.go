// Package modes classifies transport modes and infers them from route
// labels when the backend does not supply one.
package modes

import (
	"strconv"
	"strings"
)

// Mode is a transport mode as delivered by the itinerary backend.
type Mode string

const (
	Walk  Mode = "WALK"
	Bus   Mode = "BUS"
	Tram  Mode = "TRAM"
	UBahn Mode = "U-BAHN"
	SBahn Mode = "S-BAHN"
)

// Parse normalizes a backend mode string. Unknown values map to Bus so a
// leg always gets drawable styling.
func Parse(s string) Mode {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WALK", "FOOT":
		return Walk
	case "TRAM":
		return Tram
	case "U-BAHN", "UBAHN", "SUBWAY", "METRO":
		return UBahn
	case "S-BAHN", "SBAHN", "SUBURBAN":
		return SBahn
	default:
		return Bus
	}
}

// Infer guesses the mode from a route label. The backend mode field is
// authoritative when present; this heuristic only covers records that
// carry nothing but a label, e.g. departure rows. Labels starting with
// "U" are U-Bahn, "S" S-Bahn, anything containing "tram" is a tram, and
// purely numeric labels up to 30 are trams by Munich numbering
// convention. Everything else is a bus.
func Infer(label string) Mode {
	l := strings.TrimSpace(label)
	if l == "" {
		return Bus
	}

	upper := strings.ToUpper(l)
	switch {
	case strings.HasPrefix(upper, "U"):
		return UBahn
	case strings.HasPrefix(upper, "S"):
		return SBahn
	case strings.Contains(strings.ToLower(l), "tram"):
		return Tram
	}

	if n, err := strconv.Atoi(l); err == nil && n <= 30 {
		return Tram
	}

	return Bus
}

// Resolve prefers the backend-supplied mode and falls back to the label
// heuristic when the field is absent.
func Resolve(raw string, label string) Mode {
	if strings.TrimSpace(raw) != "" {
		return Parse(raw)
	}
	return Infer(label)
}

// Rail reports whether the mode runs on fixed rails. Rail legs are drawn
// as straight lines between their points because road-network geometry
// would be visually wrong for them.
func Rail(m Mode) bool {
	return m == Tram || m == UBahn || m == SBahn
}
