package cmd

import (
	"fmt"

	"transmap/pkg/backend"
	"transmap/pkg/config"
	"transmap/pkg/geo"
	"transmap/pkg/geocode"
	"transmap/pkg/itinerary"
	"transmap/pkg/routing"
	"transmap/pkg/search"
	"transmap/pkg/state"
	"transmap/pkg/tui"
)

// newApp wires up the engine for one CLI session: backend client from
// the saved config, a geocoder bounded to the search box, the stop
// index, and the road router.
func newApp() (*tui.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	backendClient := backend.NewClient(cfg.BackendURL)

	box := geo.Munich
	if len(cfg.BoundingBox) == 4 {
		box = geo.BBox{
			MinLat: cfg.BoundingBox[0],
			MinLon: cfg.BoundingBox[1],
			MaxLat: cfg.BoundingBox[2],
			MaxLon: cfg.BoundingBox[3],
		}
	}

	stops, err := backendClient.FetchStops()
	if err == nil {
		search.WriteCachedStops(stops)
	} else {
		cached, ok := search.ReadCachedStops()
		if !ok {
			fmt.Printf("⚠️ Warning: stop list unavailable (%v), search will only return addresses.\n", err)
		}
		stops = cached
	}

	return &tui.App{
		Backend:      backendClient,
		Orchestrator: search.NewOrchestrator(geocode.NewClient(box), search.NewIndex(stops)),
		Renderer:     itinerary.NewRenderer(routing.NewClient("")),
		Machine:      state.New(),
	}, nil
}
