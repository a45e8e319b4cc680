package itinerary

import "transmap/pkg/modes"

// Style is the stroke styling of one rendered leg.
type Style struct {
	Color   string
	Weight  float64
	Dashed  bool
}

// styleTable maps modes to the fixed color scheme of the map overlay.
// Walking legs are dashed so the fallback straight line still reads as
// "on foot" even without road geometry.
var styleTable = map[modes.Mode]Style{
	modes.Walk:  {Color: "#2e7d32", Weight: 3, Dashed: true},
	modes.Bus:   {Color: "#005a9f", Weight: 4},
	modes.Tram:  {Color: "#d22630", Weight: 4},
	modes.UBahn: {Color: "#0065b0", Weight: 5},
	modes.SBahn: {Color: "#408335", Weight: 5},
}

var defaultStyle = Style{Color: "#666666", Weight: 3}

// StyleFor returns the stroke style for a mode, defaulting for anything
// unrecognized.
func StyleFor(m modes.Mode) Style {
	if s, ok := styleTable[m]; ok {
		return s
	}
	return defaultStyle
}
