// Package state tracks the map UI's selection: start/end locations, the
// active input field, pin-placement mode, and which overlay kind is
// drawn. It owns no I/O; callers render overlays elsewhere and hand them
// in, which keeps every transition unit-testable.
package state

import (
	"fmt"

	"transmap/pkg/itinerary"
	"transmap/pkg/search"
)

// Field names a selection slot.
type Field string

const (
	FieldStart Field = "start"
	FieldEnd   Field = "end"
)

// PinMode says which slot the next map click should fill, if any.
type PinMode string

const (
	PinNone  PinMode = "none"
	PinStart PinMode = "start"
	PinEnd   PinMode = "end"
)

// RouteMode says which overlay kind is currently drawn. Constructed and
// transport are mutually exclusive; producing one always tears down the
// other.
type RouteMode string

const (
	RouteNone        RouteMode = "none"
	RouteConstructed RouteMode = "constructed"
	RouteTransport   RouteMode = "transport"
)

// Machine is the selection state machine. The zero value is not usable;
// use New.
type Machine struct {
	start  *search.Location
	end    *search.Location
	active Field
	pin    PinMode
	route  RouteMode

	overlay *itinerary.Overlay
	// renderGen identifies the current render cycle; completions from
	// older cycles are dropped instead of applied.
	renderGen uint64
}

// New returns an empty machine: no selections, start field active, no
// pin mode, no overlay.
func New() *Machine {
	return &Machine{active: FieldStart, pin: PinNone, route: RouteNone}
}

// Start returns the start selection, or nil.
func (m *Machine) Start() *search.Location { return m.start }

// End returns the end selection, or nil.
func (m *Machine) End() *search.Location { return m.end }

// ActiveField returns the slot the next search selection fills.
func (m *Machine) ActiveField() Field { return m.active }

// Pin returns the current pin-placement mode.
func (m *Machine) Pin() PinMode { return m.pin }

// Route returns which overlay kind is active.
func (m *Machine) Route() RouteMode { return m.route }

// Overlay returns the active overlay, or nil.
func (m *Machine) Overlay() *itinerary.Overlay { return m.overlay }

// SetLocation fills a slot with a selected location (search result, pin
// or drag result), switches the active field to the other slot and
// leaves pin mode.
func (m *Machine) SetLocation(field Field, loc search.Location) {
	l := loc
	if field == FieldStart {
		m.start = &l
		m.active = FieldEnd
	} else {
		m.end = &l
		m.active = FieldStart
	}
	m.pin = PinNone
}

// EnablePin arms pin-placement for a slot; the next map click consumes
// it.
func (m *Machine) EnablePin(field Field) {
	if field == FieldStart {
		m.pin = PinStart
	} else {
		m.pin = PinEnd
	}
}

// MapClick handles a click on the map. When an overlay is active the
// click clears it (click-to-clear wins over click-to-pin). Otherwise, if
// pin mode is armed, the click becomes a pin Location for that slot.
// Clicks with neither an overlay nor an armed pin do nothing.
func (m *Machine) MapClick(lat, lon float64, label string) {
	if m.route != RouteNone {
		m.ClearAll()
		return
	}

	if m.pin == PinNone {
		return
	}

	field := FieldStart
	if m.pin == PinEnd {
		field = FieldEnd
	}

	if label == "" {
		label = fmt.Sprintf("Pin %.5f, %.5f", lat, lon)
	}

	m.SetLocation(field, search.Location{
		Label:  label,
		Lat:    lat,
		Lon:    lon,
		Source: search.SourcePin,
	})
}

// CanRequestRoute reports whether a constructed route may be requested,
// with a user-facing reason when it may not. Identical endpoints are an
// input error caught before any network call.
func (m *Machine) CanRequestRoute() (bool, string) {
	if m.start == nil || m.end == nil {
		return false, "select both a start and an end location first"
	}
	if m.start.Lat == m.end.Lat && m.start.Lon == m.end.Lon {
		return false, "start and end are the same place"
	}
	return true, ""
}

// BeginRender starts a new render cycle and returns its generation
// token. Starting a new cycle implicitly invalidates any in-flight one.
func (m *Machine) BeginRender() uint64 {
	m.renderGen++
	return m.renderGen
}

// SetConstructed installs a constructed-route overlay for the given
// render cycle. Stale completions (an older generation) are dropped and
// reported. Any transport overlay is torn down first.
func (m *Machine) SetConstructed(gen uint64, overlay *itinerary.Overlay) bool {
	if gen != m.renderGen {
		return false
	}
	m.overlay = overlay
	m.route = RouteConstructed
	return true
}

// SetTransport installs a transport-line overlay, tearing down any
// constructed overlay first.
func (m *Machine) SetTransport(gen uint64, overlay *itinerary.Overlay) bool {
	if gen != m.renderGen {
		return false
	}
	m.overlay = overlay
	m.route = RouteTransport
	return true
}

// ClearOverlay removes the route geometry but keeps pins and
// selections: the overlay-only clear.
func (m *Machine) ClearOverlay() {
	m.overlay = nil
	m.route = RouteNone
}

// ClearAll is the full clear: overlay, selections and pin mode all
// reset.
func (m *Machine) ClearAll() {
	m.ClearOverlay()
	m.start = nil
	m.end = nil
	m.active = FieldStart
	m.pin = PinNone
}

// DragMarker moves an existing selection to new coordinates with a
// regenerated label. The route mode is untouched and no recomputation
// happens; the user re-triggers rendering explicitly.
func (m *Machine) DragMarker(field Field, lat, lon float64, label string) bool {
	var slot **search.Location
	if field == FieldStart {
		slot = &m.start
	} else {
		slot = &m.end
	}
	if *slot == nil {
		return false
	}

	if label == "" {
		label = fmt.Sprintf("Pin %.5f, %.5f", lat, lon)
	}

	(*slot).Lat = lat
	(*slot).Lon = lon
	(*slot).Label = label
	(*slot).Source = search.SourcePin
	(*slot).StopID = ""
	return true
}
