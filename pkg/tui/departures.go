package tui

import (
	"fmt"
	"strings"
	"time"

	"transmap/pkg/backend"
	"transmap/pkg/departures"
	"transmap/pkg/geo"
	"transmap/pkg/itinerary"
	"transmap/pkg/search"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// RunDeparturesTUI is the stop popup: search for a stop, then show its
// grouped upcoming departures.
func RunDeparturesTUI(app *App) error {
	var query string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stop name or ID").
				Value(&query),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	results := app.Orchestrator.SearchNow(query)

	var stops []search.Location
	for _, r := range results {
		if r.Source == search.SourceStop {
			stops = append(stops, r)
		}
	}

	if len(stops) == 0 {
		fmt.Println(errorStyle.Render("No matching stop found."))
		return nil
	}

	stop := stops[0]
	if len(stops) > 1 {
		options := make([]huh.Option[int], 0, len(stops))
		for i, s := range stops {
			options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", s.Label, s.StopID), i))
		}

		var choice int
		pick := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int]().Title("Which stop?").Options(options...).Value(&choice),
			),
		).WithTheme(GetTheme())

		if err := pick.Run(); err != nil {
			return err
		}
		stop = stops[choice]
	}

	var deps []backend.Departure
	var err error

	_ = spinner.New().
		Title(fmt.Sprintf("Fetching departures for %s...", stop.Label)).
		Action(func() {
			deps, err = app.Backend.FetchDepartures(stop.StopID)
		}).
		Run()

	if err != nil {
		return fmt.Errorf("could not fetch departures: %w", err)
	}

	PrintDepartures(stop, deps, time.Now())

	groups := departures.GroupDepartures(deps, time.Now())
	if len(groups) == 0 {
		return nil
	}

	options := []huh.Option[int]{huh.NewOption("Back", -1)}
	for i, g := range groups {
		options = append(options, huh.NewOption(fmt.Sprintf("Show stops of the next %s", g.RouteLabel), i))
	}

	var choice int
	pick := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Inspect a trip?").Options(options...).Value(&choice),
		),
	).WithTheme(GetTheme())

	if err := pick.Run(); err != nil {
		return err
	}
	if choice < 0 {
		return nil
	}

	return printTripStops(app, groups[choice])
}

// printTripStops lists the ordered stops of the chosen group's next trip.
func printTripStops(app *App, group departures.Group) error {
	var points []backend.Point
	var err error

	_ = spinner.New().
		Title(fmt.Sprintf("Fetching stops of %s...", group.RouteLabel)).
		Action(func() {
			points, err = app.Backend.FetchTripStops(group.TripID)
		}).
		Run()

	if err != nil {
		return fmt.Errorf("could not fetch trip stops: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 🚏 %s trip stops ---", group.RouteLabel)))
	for i, p := range points {
		fmt.Printf("%2d. %s\n", i+1, p.Name)
	}
	fmt.Println()
	return nil
}

// PrintDepartures renders the grouped departures of a stop, plus the
// distance-from-center fact shown in the map popup.
func PrintDepartures(stop search.Location, deps []backend.Departure, now time.Time) {
	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 🕐 %s ---", stop.Label)))
	if stop.Lat != 0 || stop.Lon != 0 {
		fromCenter := geo.Haversine(geo.Coordinate{Lat: stop.Lat, Lon: stop.Lon}, geo.MunichCenter)
		fmt.Println(faintStyle.Render(fmt.Sprintf("Stop %s · %s from the center", stop.StopID, itinerary.FormatDistance(fromCenter))))
	} else {
		fmt.Println(faintStyle.Render(fmt.Sprintf("Stop %s", stop.StopID)))
	}

	groups := departures.GroupDepartures(deps, now)
	if len(groups) == 0 {
		fmt.Println("No upcoming departures.")
		return
	}

	for _, g := range groups {
		// Reuse the overlay stroke color for the route badge
		badge := lipgloss.NewStyle().Foreground(lipgloss.Color(itinerary.StyleFor(g.Mode).Color)).Bold(true)
		times := make([]string, 0, len(g.Minutes))
		for _, m := range g.Minutes {
			times = append(times, departures.FormatMinutes(m))
		}
		fmt.Printf("  %s  %s\n", badge.Render(g.RouteLabel), strings.Join(times, " · "))
	}
	fmt.Println()
}
