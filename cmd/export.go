package cmd

import (
	"fmt"
	"os"
	"time"

	"transmap/pkg/backend"
	"transmap/pkg/exporter"
	"transmap/pkg/itinerary"
	"transmap/pkg/state"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a rendered route or line to a file",
	Long: `Render a route (--from/--to) or a whole line (--line) and write the
result as a GeoJSON overlay, or export a planned route as a recurring
commute calendar (.ics).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		lineName, _ := cmd.Flags().GetString("line")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		departStr, _ := cmd.Flags().GetString("depart")

		app, err := newApp()
		if err != nil {
			return err
		}

		var overlay *itinerary.Overlay

		switch {
		case lineName != "":
			var shape *backend.RouteShape
			var fetchErr error

			_ = spinner.New().
				Title(fmt.Sprintf("Fetching line %s...", lineName)).
				Action(func() {
					shape, fetchErr = app.Backend.FetchRoute(lineName)
				}).
				Run()
			if fetchErr != nil {
				return fetchErr
			}

			overlay, err = app.Renderer.RenderLine(shape, lineName)
			if err != nil {
				return err
			}

		case from != "" && to != "":
			start, err := resolveLocation(app, from)
			if err != nil {
				return err
			}
			end, err := resolveLocation(app, to)
			if err != nil {
				return err
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

			overlay, err = app.Renderer.RenderItinerary(legs)
			if err != nil {
				return err
			}

		default:
			return fmt.Errorf("must specify either --line or both --from and --to")
		}

		if output == "" {
			output = "overlay." + format
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		switch format {
		case "geojson":
			err = exporter.GenerateGeoJSON(overlay, file)
		case "ics":
			departAt, perr := parseDepart(departStr)
			if perr != nil {
				return perr
			}
			err = exporter.GenerateCommuteICS(overlay, departAt, file)
		default:
			return fmt.Errorf("unknown format %q (want geojson or ics)", format)
		}
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", format, err)
		}

		fmt.Printf("✨ Successfully exported %d leg(s) to %s\n", len(overlay.Legs), output)
		return nil
	},
}

// parseDepart turns a HH:MM flag into the next occurrence of that time
// of day. An empty flag means leave now.
func parseDepart(s string) (time.Time, error) {
	now := time.Now()
	if s == "" {
		return now, nil
	}

	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --depart time %q, want HH:MM", s)
	}

	departAt := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if departAt.Before(now) {
		departAt = departAt.AddDate(0, 0, 1)
	}
	return departAt, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("from", "f", "", "Start address or stop name")
	exportCmd.Flags().StringP("to", "t", "", "Destination address or stop name")
	exportCmd.Flags().StringP("line", "l", "", "Transit line to export instead of a route")
	exportCmd.Flags().String("format", "geojson", "Output format: geojson or ics")
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default overlay.<format>)")
	exportCmd.Flags().String("depart", "", "Commute departure time for ics export, as HH:MM")
}
