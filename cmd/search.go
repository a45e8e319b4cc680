package cmd

import (
	"fmt"

	"transmap/pkg/search"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search addresses and stops",
	Long:  "Runs one search round against both sources (geocoder and stop index) and prints the ranked results, addresses first.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		app, err := newApp()
		if err != nil {
			return err
		}

		var results []search.Location

		_ = spinner.New().
			Title(fmt.Sprintf("Searching for %q...", query)).
			Action(func() {
				results = app.Orchestrator.SearchNow(query)
			}).
			Run()

		if len(results) == 0 {
			return fmt.Errorf("no matching address or stop found for '%s' (queries need at least 3 characters)", query)
		}

		for i, r := range results {
			fmt.Println(formatSearchResult(i, r))
		}
		return nil
	},
}

// formatSearchResult renders one ranked result line, tagged with where
// it came from.
func formatSearchResult(rank int, r search.Location) string {
	tag := "📍 address"
	if r.Source == search.SourceStop {
		tag = fmt.Sprintf("🚏 stop %s", r.StopID)
	}

	label := r.Label
	if r.Detail != "" {
		label = fmt.Sprintf("%s (%s)", r.Label, r.Detail)
	}

	return fmt.Sprintf("%2d. %s  [%s]  %.5f, %.5f", rank+1, label, tag, r.Lat, r.Lon)
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
