// Package departures transforms the flat departure list of a stop into
// the per-route, time-sorted structure the stop popup displays.
package departures

import (
	"fmt"
	"sort"
	"time"

	"transmap/pkg/backend"
	"transmap/pkg/modes"
)

// maxPerRoute limits how many upcoming times one route shows, so
// high-frequency routes do not spam the popup.
const maxPerRoute = 3

// Group holds the next few departures of one route at a stop. Times are
// minutes until departure, ascending.
type Group struct {
	RouteLabel string
	Mode       modes.Mode
	TripID     string
	Minutes    []int
}

// GroupDepartures groups raw departures by route label relative to now.
// Departures already gone (negative minutes) are skipped; each group is
// sorted ascending and truncated to the soonest maxPerRoute. Groups come
// back ordered by their soonest departure.
func GroupDepartures(raw []backend.Departure, now time.Time) []Group {
	nowMillis := now.UnixMilli()

	groupMap := make(map[string]*Group)
	var order []string // first-appearance order, chronological after sorting below

	type timed struct {
		label   string
		tripID  string
		minutes int
	}
	var all []timed

	for _, d := range raw {
		if d.RouteShortName == "" {
			continue
		}
		effectiveMillis := (d.DepartureTimestamp + d.Delay) * 1000
		deltaMillis := effectiveMillis - nowMillis
		if deltaMillis < 0 {
			continue
		}
		// Whole minutes; anything under a minute stays 0 and renders as
		// "now" rather than rounding up to 1.
		minutes := int(deltaMillis / 60000)
		all = append(all, timed{label: d.RouteShortName, tripID: d.TripID, minutes: minutes})

		if _, exists := groupMap[d.RouteShortName]; !exists {
			groupMap[d.RouteShortName] = &Group{
				RouteLabel: d.RouteShortName,
				Mode:       modes.Infer(d.RouteShortName),
			}
		}
	}

	// Feed times in chronological order so truncation keeps the soonest
	sort.Slice(all, func(i, j int) bool { return all[i].minutes < all[j].minutes })

	for _, t := range all {
		g := groupMap[t.label]
		if len(g.Minutes) == 0 {
			// First entry after sorting is the group's soonest departure,
			// so its trip is the one "next <route>" refers to
			order = append(order, t.label)
			g.TripID = t.tripID
		}
		if len(g.Minutes) < maxPerRoute {
			g.Minutes = append(g.Minutes, t.minutes)
		}
	}

	result := make([]Group, 0, len(order))
	for _, label := range order {
		result = append(result, *groupMap[label])
	}
	return result
}

// FormatMinutes renders a minutes-until value for the popup: "now" under
// a minute, plain minutes under 90, hours with one decimal beyond that.
func FormatMinutes(minutes int) string {
	switch {
	case minutes < 1:
		return "now"
	case minutes < 90:
		return fmt.Sprintf("%d min", minutes)
	default:
		return fmt.Sprintf("%.1f h", float64(minutes)/60.0)
	}
}
