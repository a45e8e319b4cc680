package exporter

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"transmap/pkg/itinerary"
)

// GenerateCommuteICS writes a week of commute events for a rendered
// itinerary: one event per weekday at the given departure time, carrying
// the per-leg summary in the description. The walking/driving duration
// is estimated from the overlay's total distance at a mixed 12 km/h.
func GenerateCommuteICS(overlay *itinerary.Overlay, departAt time.Time, w io.Writer) error {
	if overlay == nil || len(overlay.Legs) == 0 {
		return fmt.Errorf("no rendered itinerary to export")
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	duration := time.Duration(overlay.TotalDistance/12000*60) * time.Minute
	if duration < 10*time.Minute {
		duration = 10 * time.Minute
	}

	desc := "Itinerary:\n"
	for i, leg := range overlay.Legs {
		desc += fmt.Sprintf("%d. %s\n", i+1, leg.Label)
	}
	desc += fmt.Sprintf("Total: %s", itinerary.FormatDistance(overlay.TotalDistance))

	for i := 0; i < 7; i++ {
		targetDate := departAt.AddDate(0, 0, i)
		// Skip weekends
		if targetDate.Weekday() == time.Saturday || targetDate.Weekday() == time.Sunday {
			continue
		}

		eventStart := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(),
			departAt.Hour(), departAt.Minute(), 0, 0, departAt.Location())

		event := cal.AddEvent(fmt.Sprintf("transmap-commute-%d", i))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetModifiedAt(time.Now())
		event.SetStartAt(eventStart)
		event.SetEndAt(eventStart.Add(duration))
		event.SetSummary(fmt.Sprintf("Commute (%s)", itinerary.FormatDistance(overlay.TotalDistance)))
		event.SetDescription(desc)
	}

	return cal.SerializeTo(w)
}
