package cmd

import (
	"fmt"
	"strings"

	"transmap/pkg/backend"
	"transmap/pkg/config"
	"transmap/pkg/itinerary"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var lineCmd = &cobra.Command{
	Use:   "line [name]",
	Short: "Draw a whole transit line",
	Long:  "Fetches the shape of a named line (e.g. U3, S1, 54) from the backend and draws its segments, batching road routing for bus lines.",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, _ := cmd.Flags().GetBool("list")
		save, _ := cmd.Flags().GetBool("save")

		if list {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(cfg.SavedLines) == 0 {
				fmt.Println("No saved lines yet. Save one with 'transmap line U3 --save'.")
				return nil
			}
			fmt.Println("Saved lines:", strings.Join(cfg.SavedLines, ", "))
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("must specify exactly one line name (e.g. 'transmap line U3')")
		}
		lineName := args[0]

		app, err := newApp()
		if err != nil {
			return err
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
			return fmt.Errorf("could not load line %s: %w", lineName, fetchErr)
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
			return renderErr
		}
		app.Machine.SetTransport(gen, overlay)

		fmt.Printf("\n--- 🚏 Line %s ---\n", lineName)
		fmt.Printf("%d drawn segment(s), %s, %d stop(s)\n",
			len(overlay.Legs),
			itinerary.FormatDistance(overlay.TotalDistance),
			len(shape.Stops))

		if save {
			if err := saveLine(lineName); err != nil {
				return err
			}
			fmt.Printf("✅ Line %s added to your saved lines.\n", lineName)
		}

		return nil
	},
}

func saveLine(name string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	for _, existing := range cfg.SavedLines {
		if strings.EqualFold(existing, name) {
			return nil
		}
	}
	cfg.SavedLines = append(cfg.SavedLines, name)
	return config.Save(cfg)
}

func init() {
	rootCmd.AddCommand(lineCmd)
	lineCmd.Flags().BoolP("save", "s", false, "Remember this line for quick access")
	lineCmd.Flags().BoolP("list", "l", false, "List your saved lines")
}
