package cmd

import (
	"fmt"

	"transmap/pkg/backend"
	"transmap/pkg/config"
	"transmap/pkg/itinerary"
	"transmap/pkg/search"
	"transmap/pkg/state"
	"transmap/pkg/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Plan and draw a route between two locations",
	Long:  "Resolves both endpoints through address and stop search, asks the backend for a path, and draws each leg with road-following geometry.",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		routeHome, _ := cmd.Flags().GetBool("home")

		if from == "" {
			return fmt.Errorf("must specify a start using --from")
		}
		if to == "" && !routeHome {
			return fmt.Errorf("must specify a destination using --to (or --home)")
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		start, err := resolveLocation(app, from)
		if err != nil {
			return err
		}

		var end *search.Location
		if routeHome {
			cfg, err := config.Load()
			if err != nil || cfg.HomeStopID == "" {
				return fmt.Errorf("home stop is not configured. Please run 'transmap config --set-home \"Your Stop\"' first")
			}
			end = &search.Location{Label: cfg.HomeLabel, StopID: cfg.HomeStopID, Source: search.SourceStop}
		} else {
			end, err = resolveLocation(app, to)
			if err != nil {
				return err
			}
		}

		app.Machine.SetLocation(state.FieldStart, *start)
		app.Machine.SetLocation(state.FieldEnd, *end)

		if ok, reason := app.Machine.CanRequestRoute(); !ok {
			return fmt.Errorf("%s", reason)
		}

		var legs []backend.Leg
		var fetchErr error

		_ = spinner.New().
			Title(fmt.Sprintf("Routing %s → %s...", start.Label, end.Label)).
			Action(func() {
				legs, fetchErr = app.Backend.FetchPath(buildPathQuery(start, end))
			}).
			Run()

		if fetchErr != nil {
			return fetchErr
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
			return renderErr
		}
		app.Machine.SetConstructed(gen, overlay)

		tui.PrintOverlay(overlay)
		return nil
	},
}

// resolveLocation runs one non-debounced search round and takes the
// top-ranked result, matching what a click on the first dropdown row
// would select.
func resolveLocation(app *tui.App, query string) (*search.Location, error) {
	var results []search.Location

	_ = spinner.New().
		Title(fmt.Sprintf("Searching for %q...", query)).
		Action(func() {
			results = app.Orchestrator.SearchNow(query)
		}).
		Run()

	if len(results) == 0 {
		return nil, fmt.Errorf("no matching address or stop found for '%s'", query)
	}

	match := results[0]
	fmt.Printf("📍 %s: %s\n", query, match.Label)
	return &match, nil
}

// buildPathQuery addresses stops by ID and everything else by
// coordinates.
func buildPathQuery(start, end *search.Location) backend.PathQuery {
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

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringP("from", "f", "", "Start address or stop name")
	routeCmd.Flags().StringP("to", "t", "", "Destination address or stop name")
	routeCmd.Flags().BoolP("home", "r", false, "Route to your saved home stop instead of --to")
}
