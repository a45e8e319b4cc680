package tui

import (
	"fmt"

	"transmap/pkg/backend"
	"transmap/pkg/itinerary"
	"transmap/pkg/search"
	"transmap/pkg/state"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// pickLocation runs one search round for a slot: prompt for a query,
// spinner while both sources fan out, then a select over the merged
// results. A pin option lets the user type raw coordinates instead.
func pickLocation(app *App, field state.Field) (*search.Location, error) {
	var query string

	queryForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Search %s location", field)).
				Description("Address or stop name (or 'pin' for raw coordinates)").
				Value(&query),
		),
	).WithTheme(GetTheme())

	if err := queryForm.Run(); err != nil {
		return nil, err
	}

	if query == "pin" {
		return pickPin(app, field)
	}

	var results []search.Location

	_ = spinner.New().
		Title(fmt.Sprintf("Searching for %q...", query)).
		Action(func() {
			results = app.Orchestrator.SearchNow(query)
		}).
		Run()

	if len(results) == 0 {
		fmt.Println(errorStyle.Render("No results. Try at least 3 characters of an address or stop name."))
		return nil, nil
	}

	options := make([]huh.Option[int], 0, len(results))
	for i, r := range results {
		label := r.Label
		if r.Detail != "" {
			label = fmt.Sprintf("%s (%s)", r.Label, r.Detail)
		}
		options = append(options, huh.NewOption(label, i))
	}

	var choice int
	selectForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Pick a result").
				Options(options...).
				Value(&choice),
		),
	).WithTheme(GetTheme())

	if err := selectForm.Run(); err != nil {
		return nil, err
	}

	return &results[choice], nil
}

// pickPin arms pin mode for the slot and simulates the map click with
// typed coordinates.
func pickPin(app *App, field state.Field) (*search.Location, error) {
	var latStr, lonStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Latitude").Value(&latStr),
			huh.NewInput().Title("Longitude").Value(&lonStr),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return nil, err
	}

	var lat, lon float64
	if _, err := fmt.Sscanf(latStr, "%f", &lat); err != nil {
		return nil, fmt.Errorf("invalid latitude %q", latStr)
	}
	if _, err := fmt.Sscanf(lonStr, "%f", &lon); err != nil {
		return nil, fmt.Errorf("invalid longitude %q", lonStr)
	}

	app.Machine.EnablePin(field)
	app.Machine.MapClick(lat, lon, "")

	if field == state.FieldStart {
		return app.Machine.Start(), nil
	}
	return app.Machine.End(), nil
}

// RunRouteTUI drives the constructed-route flow: select both endpoints,
// fetch the path, render it, and print the per-leg summary.
func RunRouteTUI(app *App) error {
	for _, field := range []state.Field{state.FieldStart, state.FieldEnd} {
		loc, err := pickLocation(app, field)
		if err != nil {
			return err
		}
		if loc == nil {
			return nil
		}
		// Pin picks already went through the machine
		if loc.Source != search.SourcePin {
			app.Machine.SetLocation(field, *loc)
		}
	}

	if ok, reason := app.Machine.CanRequestRoute(); !ok {
		fmt.Println(errorStyle.Render(reason))
		return nil
	}

	start, end := app.Machine.Start(), app.Machine.End()

	var legs []backend.Leg
	var fetchErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Routing %s → %s...", start.Label, end.Label)).
		Action(func() {
			legs, fetchErr = app.Backend.FetchPath(pathQuery(start, end))
		}).
		Run()

	if fetchErr != nil {
		// Backend path errors surface verbatim as the status message
		fmt.Println(errorStyle.Render(fetchErr.Error()))
		return nil
	}

	gen := app.Machine.BeginRender()

	var overlay *itinerary.Overlay
	var renderErr error

	_ = spinner.New().
		Title("Rendering legs...").
		Action(func() {
			overlay, renderErr = app.Renderer.RenderItinerary(legs)
		}).
		Run()

	if renderErr != nil {
		fmt.Println(errorStyle.Render(renderErr.Error()))
		return nil
	}

	if !app.Machine.SetConstructed(gen, overlay) {
		// A newer cycle superseded this render; drop it silently
		return nil
	}

	PrintOverlay(overlay)
	return nil
}

// pathQuery addresses stops by ID and everything else by coordinates.
func pathQuery(start, end *search.Location) backend.PathQuery {
	q := backend.PathQuery{}
	if start.StopID != "" {
		q.StartID = start.StopID
	} else {
		q.StartLat, q.StartLon, q.StartLabel = start.Lat, start.Lon, start.Label
	}
	if end.StopID != "" {
		q.EndID = end.StopID
	} else {
		q.EndLat, q.EndLon, q.EndLabel = end.Lat, end.Lon, end.Label
	}
	return q
}

// PrintOverlay writes the textual summary of a rendered overlay.
func PrintOverlay(overlay *itinerary.Overlay) {
	fmt.Println(accentStyle.Render("\n--- 🗺️  Itinerary ---"))

	for i, leg := range overlay.Legs {
		line := fmt.Sprintf("%d. %s", i+1, leg.Label)
		if leg.Fallback {
			line += faintStyle.Render(" (straight-line estimate)")
		}
		fmt.Println(line)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("Total: %s", itinerary.FormatDistance(overlay.TotalDistance))))
	fmt.Println()
}

// RunClearTUI offers the two clear variants: overlay-only keeps the
// pins, full clear drops everything.
func RunClearTUI(app *App) error {
	var variant string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Clear what?").
				Options(
					huh.NewOption("Overlay only (keep pins)", "overlay"),
					huh.NewOption("Everything", "all"),
				).
				Value(&variant),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if variant == "all" {
		app.Machine.ClearAll()
		fmt.Println(faintStyle.Render("Cleared overlay, pins and selections."))
	} else {
		app.Machine.ClearOverlay()
		fmt.Println(faintStyle.Render("Cleared overlay, selections kept."))
	}
	return nil
}
