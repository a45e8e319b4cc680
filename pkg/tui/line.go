package tui

import (
	"fmt"

	"transmap/pkg/backend"
	"transmap/pkg/itinerary"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// RunLineTUI draws a whole named transit line as the transport overlay,
// tearing down any constructed route first.
func RunLineTUI(app *App) error {
	var lineName string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Line name").
				Description("e.g. U3, S1, 54, Tram 19").
				Value(&lineName),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}
	if lineName == "" {
		return nil
	}

	var shape *backend.RouteShape
	var fetchErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Fetching line %s...", lineName)).
		Action(func() {
			shape, fetchErr = app.Backend.FetchRoute(lineName)
		}).
		Run()

	if fetchErr != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Could not load line %s: %v", lineName, fetchErr)))
		return nil
	}

	gen := app.Machine.BeginRender()

	var overlay *itinerary.Overlay
	var renderErr error

	_ = spinner.New().
		Title("Rendering line...").
		Action(func() {
			overlay, renderErr = app.Renderer.RenderLine(shape, lineName)
		}).
		Run()

	if renderErr != nil {
		fmt.Println(errorStyle.Render(renderErr.Error()))
		return nil
	}

	if !app.Machine.SetTransport(gen, overlay) {
		return nil
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 🚏 Line %s ---", lineName)))
	fmt.Printf("%d drawn segment(s), %s, %d stop(s)\n\n",
		len(overlay.Legs),
		itinerary.FormatDistance(overlay.TotalDistance),
		len(shape.Stops))

	return nil
}
