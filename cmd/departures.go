package cmd

import (
	"fmt"
	"time"

	"transmap/pkg/backend"
	"transmap/pkg/config"
	"transmap/pkg/search"
	"transmap/pkg/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var departuresCmd = &cobra.Command{
	Use:   "departures [stop]",
	Short: "Show live departures for a stop",
	Long:  "Looks up a stop by name or ID and lists its next departures, grouped by route with the soonest three times each.",
	RunE: func(cmd *cobra.Command, args []string) error {
		useHome, _ := cmd.Flags().GetBool("home")

		app, err := newApp()
		if err != nil {
			return err
		}

		var stop search.Location
		switch {
		case useHome:
			cfg, err := config.Load()
			if err != nil || cfg.HomeStopID == "" {
				return fmt.Errorf("home stop is not configured. Please run 'transmap config --set-home \"Your Stop\"' first")
			}
			stop = search.Location{Label: cfg.HomeLabel, StopID: cfg.HomeStopID, Source: search.SourceStop}
		case len(args) == 1:
			query := args[0]
			results := app.Orchestrator.SearchNow(query)

			var found bool
			for _, r := range results {
				if r.Source == search.SourceStop {
					stop = r
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("no stop found matching '%s'", cases.Title(language.German).String(query))
			}
		default:
			return fmt.Errorf("must specify a stop name or --home")
		}

		var deps []backend.Departure
		var fetchErr error

		_ = spinner.New().
			Title(fmt.Sprintf("Fetching departures for %s...", stop.Label)).
			Action(func() {
				deps, fetchErr = app.Backend.FetchDepartures(stop.StopID)
			}).
			Run()

		if fetchErr != nil {
			return fetchErr
		}

		tui.PrintDepartures(stop, deps, time.Now())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(departuresCmd)
	departuresCmd.Flags().BoolP("home", "r", false, "Show departures for your saved home stop")
}
